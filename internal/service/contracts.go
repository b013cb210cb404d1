package service

import (
	"context"

	"github.com/aliskhannn/maktabati-bot/internal/domain/entities"
	"github.com/aliskhannn/maktabati-bot/internal/domain/session"
)

// ContentRepository is the read-only catalog.
type ContentRepository interface {
	Grades() []entities.Grade
	Books() []entities.Book
	Games() []entities.Game
	GetBook(id string) (entities.Book, error)
	GetUnit(id string) (entities.Unit, error)
	GetLesson(id string) (entities.Lesson, error)
	UnitsByBook(bookID string) []entities.Unit
	LessonsByUnit(unitID string) []entities.Lesson
	LessonContent(lessonID string) entities.LessonContent
	QuizQuestions(lessonID string) []entities.QuizQuestion
	Vocabulary(lessonID string) []entities.VocabEntry
}

// SessionStore persists per-chat sessions. Get returns session.ErrNotFound
// for unknown chats.
type SessionStore interface {
	Get(ctx context.Context, chatID int64) (*session.Session, error)
	Save(ctx context.Context, s *session.Session) error
	Delete(ctx context.Context, chatID int64) error
}

// QuizNotifier is told when a quiz moved on by itself, so the chat's screen
// can be redrawn.
type QuizNotifier interface {
	QuizAdvanced(chatID int64)
}
