package storage

import (
	"context"
	"sync"
	"time"

	"github.com/aliskhannn/maktabati-bot/internal/domain/session"
)

// SessionStorage is the in-memory session store. It hands out copies so
// callers can never mutate a stored session behind the lock.
type SessionStorage struct {
	mu       sync.RWMutex
	sessions map[int64]*session.Session
}

func NewSessionStorage() *SessionStorage {
	return &SessionStorage{
		sessions: make(map[int64]*session.Session),
	}
}

// Get returns the session of a chat or session.ErrNotFound.
func (s *SessionStorage) Get(_ context.Context, chatID int64) (*session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[chatID]
	if !ok {
		return nil, session.ErrNotFound
	}
	return sess.Clone(), nil
}

// Save inserts or replaces the session of sess.ChatID.
func (s *SessionStorage) Save(_ context.Context, sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ChatID] = sess.Clone()
	return nil
}

func (s *SessionStorage) Delete(_ context.Context, chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
	return nil
}

// DeleteIdle drops sessions not updated since before and returns their chat ids.
func (s *SessionStorage) DeleteIdle(_ context.Context, before time.Time) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []int64
	for id, sess := range s.sessions {
		if sess.UpdatedAt.Before(before) {
			delete(s.sessions, id)
			removed = append(removed, id)
		}
	}
	return removed, nil
}

// Ping always succeeds; it lets the memory store satisfy readiness checks.
func (s *SessionStorage) Ping(context.Context) error {
	return nil
}
