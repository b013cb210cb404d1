package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/maktabati-bot/internal/domain/entities"
	"github.com/aliskhannn/maktabati-bot/internal/domain/quiz"
	"github.com/aliskhannn/maktabati-bot/internal/storage"
)

var ErrNoActiveQuiz = errors.New("no quiz in progress")

// Timer is the part of *time.Timer the quiz service needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc is the production value.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// QuizSnapshot is a consistent copy of a chat's quiz for rendering.
type QuizSnapshot struct {
	Question entities.QuizQuestion
	Index    int
	Total    int
	Score    int
	Stars    int
	Selected int // -1 while unanswered
	Phase    quiz.Phase
}

// QuizService runs one quiz engine per chat and advances it after the
// reveal delay.
type QuizService struct {
	content  ContentRepository
	engines  *storage.QuizStorage
	delay    time.Duration
	after    AfterFunc
	notifier QuizNotifier
	logger   *zap.Logger

	mu     sync.Mutex // guards engine internals and timers
	timers map[int64]Timer
}

func NewQuizService(
	content ContentRepository,
	engines *storage.QuizStorage,
	delay time.Duration,
	logger *zap.Logger,
) *QuizService {
	return &QuizService{
		content: content,
		engines: engines,
		delay:   delay,
		after:   realAfterFunc,
		logger:  logger,
		timers:  make(map[int64]Timer),
	}
}

// SetNotifier sets the notifier (called after handler is created).
func (s *QuizService) SetNotifier(notifier QuizNotifier) {
	s.notifier = notifier
}

// Start begins a fresh quiz over the lesson's questions, dropping any quiz
// the chat had before.
func (s *QuizService) Start(chatID int64, lessonID string) error {
	e, err := quiz.NewEngine(s.content.QuizQuestions(lessonID))
	if err != nil {
		return fmt.Errorf("start quiz for lesson %s: %w", lessonID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.discardLocked(chatID)
	s.engines.Store(chatID, e)
	return nil
}

// Answer records option for question index. Accepted answers schedule the
// automatic advance.
func (s *QuizService) Answer(chatID int64, index, option int) (quiz.Answer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.engines.Get(chatID)
	if !ok {
		return quiz.Answer{}, ErrNoActiveQuiz
	}

	a, err := e.Select(index, option)
	if err != nil || !a.Accepted {
		return a, err
	}

	s.stopTimerLocked(chatID)
	s.timers[chatID] = s.after(s.delay, func() {
		s.advance(chatID, e, a.Token)
	})

	return a, nil
}

func (s *QuizService) advance(chatID int64, e *quiz.Engine, tok quiz.Token) {
	s.mu.Lock()
	current, ok := s.engines.Get(chatID)
	applied := ok && current == e && e.Advance(tok)
	if applied {
		delete(s.timers, chatID)
	}
	s.mu.Unlock()

	if !applied {
		s.logger.Debug("stale quiz advance dropped", zap.Int64("chat_id", chatID))
		return
	}
	if s.notifier != nil {
		s.notifier.QuizAdvanced(chatID)
	}
}

// Restart resets the chat's quiz to the first question.
func (s *QuizService) Restart(chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.engines.Get(chatID)
	if !ok {
		return ErrNoActiveQuiz
	}
	s.stopTimerLocked(chatID)
	e.Restart()
	return nil
}

// Snapshot copies the chat's quiz state.
func (s *QuizService) Snapshot(chatID int64) (QuizSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.engines.Get(chatID)
	if !ok {
		return QuizSnapshot{}, ErrNoActiveQuiz
	}

	selected, answered := e.Selected()
	if !answered {
		selected = -1
	}
	return QuizSnapshot{
		Question: e.Question(),
		Index:    e.Index(),
		Total:    e.Total(),
		Score:    e.Score(),
		Stars:    e.Stars(),
		Selected: selected,
		Phase:    e.Phase(),
	}, nil
}

// Discard drops the chat's quiz. A pending advance for it becomes a no-op.
func (s *QuizService) Discard(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.discardLocked(chatID)
}

// DiscardAll drops the quizzes of several chats, e.g. after their sessions
// expired.
func (s *QuizService) DiscardAll(chatIDs []int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range chatIDs {
		s.discardLocked(id)
	}
}

// Stop cancels every pending advance. Quizzes stay where they are.
func (s *QuizService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := len(s.timers)
	for id := range s.timers {
		s.stopTimerLocked(id)
	}
	s.logger.Info("quiz timers stopped",
		zap.Int("pending_advances", pending),
		zap.Int("active_quizzes", s.engines.Len()),
	)
}

func (s *QuizService) discardLocked(chatID int64) {
	s.stopTimerLocked(chatID)
	if e, ok := s.engines.Delete(chatID); ok {
		e.Invalidate()
	}
}

func (s *QuizService) stopTimerLocked(chatID int64) {
	if t, ok := s.timers[chatID]; ok {
		t.Stop()
		delete(s.timers, chatID)
	}
}
