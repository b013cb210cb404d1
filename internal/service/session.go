package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/maktabati-bot/internal/domain/navigation"
	"github.com/aliskhannn/maktabati-bot/internal/domain/quiz"
	"github.com/aliskhannn/maktabati-bot/internal/domain/screens"
	"github.com/aliskhannn/maktabati-bot/internal/domain/session"
)

// ErrSessionNotFound is what session stores return for unknown chats; the
// service turns it into a fresh session.
var ErrSessionNotFound = session.ErrNotFound

// SessionService owns the navigator of every chat: it applies events, runs
// the entry and exit effects of each screen and persists the result.
// Operations on one chat run one at a time.
type SessionService struct {
	store   SessionStore
	content *ContentService
	quiz    *QuizService
	logger  *zap.Logger
	now     func() time.Time

	mu    sync.Mutex // guards chats
	chats map[int64]*chatLock
}

type chatLock struct {
	mu   sync.Mutex
	refs int
}

func NewSessionService(
	store SessionStore,
	content *ContentService,
	quizService *QuizService,
	logger *zap.Logger,
) *SessionService {
	return &SessionService{
		store:   store,
		content: content,
		quiz:    quizService,
		logger:  logger,
		now:     time.Now,
		chats:   make(map[int64]*chatLock),
	}
}

// lock serializes work on one chat. The returned func releases it.
func (s *SessionService) lock(chatID int64) func() {
	s.mu.Lock()
	l, ok := s.chats[chatID]
	if !ok {
		l = &chatLock{}
		s.chats[chatID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.chats, chatID)
		}
		s.mu.Unlock()
	}
}

// Current returns the chat's session, starting a new one on the home screen
// when the store has none. A stored state that can no longer be rendered is
// reset to home.
func (s *SessionService) Current(ctx context.Context, chatID int64) (*session.Session, error) {
	defer s.lock(chatID)()
	return s.load(ctx, chatID)
}

// Peek returns the chat's stored session as is. Unlike Current it never
// starts a quiz or repairs the state.
func (s *SessionService) Peek(ctx context.Context, chatID int64) (*session.Session, error) {
	defer s.lock(chatID)()

	sess, err := s.store.Get(ctx, chatID)
	if errors.Is(err, ErrSessionNotFound) {
		return session.New(chatID, s.now()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return sess, nil
}

func (s *SessionService) load(ctx context.Context, chatID int64) (*session.Session, error) {
	sess, err := s.store.Get(ctx, chatID)
	if errors.Is(err, ErrSessionNotFound) {
		// The session expired; a quiz left behind has no screen any more.
		s.quiz.Discard(chatID)
		return session.New(chatID, s.now()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	if err := s.check(sess); err != nil {
		s.logger.Warn("restored session is inconsistent, resetting to home",
			zap.Int64("chat_id", chatID),
			zap.String("view", sess.View().String()),
			zap.Error(err),
		)
		fresh := session.New(chatID, s.now())
		fresh.MessageID = sess.MessageID
		return fresh, nil
	}

	// Quizzes do not survive a restart; a restored quiz screen has nothing to show.
	if sess.View() == navigation.ViewQuiz {
		if _, err := s.quiz.Snapshot(chatID); errors.Is(err, ErrNoActiveQuiz) {
			if err := s.enter(chatID, sess); err != nil {
				return nil, err
			}
		}
	}

	return sess, nil
}

func (s *SessionService) check(sess *session.Session) error {
	if err := sess.Nav.Validate(); err != nil {
		return err
	}
	if sess.Nav.HasBook() {
		if _, err := s.content.GetBook(sess.Nav.BookID); err != nil {
			return err
		}
	}
	if sess.Nav.HasLesson() {
		if err := s.content.LessonInBook(sess.Nav.LessonID, sess.Nav.BookID); err != nil {
			return err
		}
	}
	return nil
}

// Dispatch applies a navigation event to the chat.
func (s *SessionService) Dispatch(ctx context.Context, chatID int64, ev navigation.Event) (*session.Session, error) {
	defer s.lock(chatID)()

	sess, err := s.load(ctx, chatID)
	if err != nil {
		return nil, err
	}

	switch ev.Kind {
	case navigation.EventSelectBook:
		if _, err := s.content.GetBook(ev.BookID); err != nil {
			return nil, err
		}
	case navigation.EventSelectLesson:
		if err := s.content.LessonInBook(ev.LessonID, sess.Nav.BookID); err != nil {
			return nil, err
		}
	}

	next, err := navigation.Apply(sess.Nav, ev)
	if err != nil {
		return nil, err
	}

	prev := sess.View()
	sess.Nav = next

	if prev == navigation.ViewQuiz && next.View != navigation.ViewQuiz {
		s.quiz.Discard(chatID)
	}
	if err := s.enter(chatID, sess); err != nil {
		return nil, err
	}

	s.logger.Debug("navigated",
		zap.Int64("chat_id", chatID),
		zap.String("event", string(ev.Kind)),
		zap.String("from", prev.String()),
		zap.String("to", next.View.String()),
	)

	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// enter resets the local state of the screen sess now shows.
func (s *SessionService) enter(chatID int64, sess *session.Session) error {
	switch sess.View() {
	case navigation.ViewHome:
		sess.Grade = screens.NewGradeFilter()
	case navigation.ViewUnits:
		sess.Accordion = screens.NewAccordion(s.content.Units(sess.Nav.BookID))
	case navigation.ViewLesson:
		sess.Reader = screens.NewReader()
	case navigation.ViewVocab:
		sess.Vocab = screens.VocabCursor{}
	case navigation.ViewQuiz:
		if err := s.quiz.Start(chatID, sess.Nav.LessonID); err != nil {
			return err
		}
	}
	return nil
}

// SelectGrade changes the home screen filter.
func (s *SessionService) SelectGrade(ctx context.Context, chatID int64, gradeID string) (*session.Session, error) {
	return s.update(ctx, chatID, navigation.ViewHome, func(sess *session.Session) error {
		if _, err := s.content.GetGrade(gradeID); err != nil {
			return err
		}
		sess.Grade = screens.GradeFilter{GradeID: gradeID}
		return nil
	})
}

// ToggleUnit opens or collapses a unit of the selected book.
func (s *SessionService) ToggleUnit(ctx context.Context, chatID int64, unitID string) (*session.Session, error) {
	return s.update(ctx, chatID, navigation.ViewUnits, func(sess *session.Session) error {
		if err := s.content.UnitInBook(unitID, sess.Nav.BookID); err != nil {
			return err
		}
		sess.Accordion = sess.Accordion.Toggle(unitID)
		return nil
	})
}

// TogglePlay flips the lesson reader's audio flag.
func (s *SessionService) TogglePlay(ctx context.Context, chatID int64) (*session.Session, error) {
	return s.update(ctx, chatID, navigation.ViewLesson, func(sess *session.Session) error {
		sess.Reader = sess.Reader.TogglePlay()
		return nil
	})
}

// SelectParagraph highlights a paragraph of the current lesson.
func (s *SessionService) SelectParagraph(ctx context.Context, chatID int64, i int) (*session.Session, error) {
	return s.update(ctx, chatID, navigation.ViewLesson, func(sess *session.Session) error {
		count := len(s.content.LessonContent(sess.Nav.LessonID).Paragraphs)
		sess.Reader = sess.Reader.Select(i, count)
		return nil
	})
}

func (s *SessionService) VocabNext(ctx context.Context, chatID int64) (*session.Session, error) {
	return s.update(ctx, chatID, navigation.ViewVocab, func(sess *session.Session) error {
		sess.Vocab = sess.Vocab.Next(len(s.content.Vocabulary(sess.Nav.LessonID)))
		return nil
	})
}

func (s *SessionService) VocabPrev(ctx context.Context, chatID int64) (*session.Session, error) {
	return s.update(ctx, chatID, navigation.ViewVocab, func(sess *session.Session) error {
		sess.Vocab = sess.Vocab.Prev()
		return nil
	})
}

// AnswerQuiz records an answer if the chat is still on the quiz screen.
func (s *SessionService) AnswerQuiz(ctx context.Context, chatID int64, index, option int) (quiz.Answer, error) {
	defer s.lock(chatID)()

	if _, err := s.onView(ctx, chatID, navigation.ViewQuiz); err != nil {
		return quiz.Answer{}, err
	}
	return s.quiz.Answer(chatID, index, option)
}

// RestartQuiz starts the chat's quiz over if it is still on the quiz screen.
func (s *SessionService) RestartQuiz(ctx context.Context, chatID int64) error {
	defer s.lock(chatID)()

	if _, err := s.onView(ctx, chatID, navigation.ViewQuiz); err != nil {
		return err
	}
	return s.quiz.Restart(chatID)
}

// SetMessageID remembers which message holds the chat's screen.
func (s *SessionService) SetMessageID(ctx context.Context, chatID int64, messageID int) error {
	defer s.lock(chatID)()

	sess, err := s.load(ctx, chatID)
	if err != nil {
		return err
	}
	sess.MessageID = messageID
	return s.save(ctx, sess)
}

// Reset puts the chat back on a fresh home screen and drops its quiz.
func (s *SessionService) Reset(ctx context.Context, chatID int64) (*session.Session, error) {
	defer s.lock(chatID)()

	s.quiz.Discard(chatID)

	sess := session.New(chatID, s.now())
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// update runs fn on the session if it currently shows view.
func (s *SessionService) update(
	ctx context.Context,
	chatID int64,
	view navigation.View,
	fn func(sess *session.Session) error,
) (*session.Session, error) {
	defer s.lock(chatID)()

	sess, err := s.onView(ctx, chatID, view)
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// onView loads the session and fails unless it shows view. The chat lock
// must be held.
func (s *SessionService) onView(ctx context.Context, chatID int64, view navigation.View) (*session.Session, error) {
	sess, err := s.load(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if sess.View() != view {
		return nil, fmt.Errorf("%w: %s action on %s screen", navigation.ErrInvalidTransition, view, sess.View())
	}
	return sess, nil
}

func (s *SessionService) save(ctx context.Context, sess *session.Session) error {
	sess.UpdatedAt = s.now()
	if err := s.store.Save(ctx, sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
