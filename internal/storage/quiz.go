package storage

import (
	"sync"

	"github.com/aliskhannn/maktabati-bot/internal/domain/quiz"
)

// QuizStorage keeps the running quiz engine of each chat in memory.
// Engines are not persisted; a restart drops every quiz in progress.
type QuizStorage struct {
	mu      sync.RWMutex
	engines map[int64]*quiz.Engine
}

// NewQuizStorage creates a new QuizStorage.
func NewQuizStorage() *QuizStorage {
	return &QuizStorage{
		engines: make(map[int64]*quiz.Engine),
	}
}

// Store saves the engine for a chat, replacing any previous one.
func (s *QuizStorage) Store(chatID int64, e *quiz.Engine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engines[chatID] = e
}

// Get retrieves the engine of a chat.
func (s *QuizStorage) Get(chatID int64) (*quiz.Engine, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.engines[chatID]
	return e, ok
}

// Delete removes the engine of a chat and returns it, so the caller can
// invalidate timers still holding a reference.
func (s *QuizStorage) Delete(chatID int64) (*quiz.Engine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.engines[chatID]
	delete(s.engines, chatID)
	return e, ok
}

func (s *QuizStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.engines)
}
