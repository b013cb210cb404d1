package telegram

import (
	"context"

	"github.com/aliskhannn/maktabati-bot/internal/domain/entities"
	"github.com/aliskhannn/maktabati-bot/internal/domain/navigation"
	"github.com/aliskhannn/maktabati-bot/internal/domain/quiz"
	"github.com/aliskhannn/maktabati-bot/internal/domain/screens"
	"github.com/aliskhannn/maktabati-bot/internal/domain/session"
	"github.com/aliskhannn/maktabati-bot/internal/service"
)

type SessionService interface {
	Current(ctx context.Context, chatID int64) (*session.Session, error)
	Peek(ctx context.Context, chatID int64) (*session.Session, error)
	Dispatch(ctx context.Context, chatID int64, ev navigation.Event) (*session.Session, error)
	SelectGrade(ctx context.Context, chatID int64, gradeID string) (*session.Session, error)
	ToggleUnit(ctx context.Context, chatID int64, unitID string) (*session.Session, error)
	TogglePlay(ctx context.Context, chatID int64) (*session.Session, error)
	SelectParagraph(ctx context.Context, chatID int64, i int) (*session.Session, error)
	VocabNext(ctx context.Context, chatID int64) (*session.Session, error)
	VocabPrev(ctx context.Context, chatID int64) (*session.Session, error)
	AnswerQuiz(ctx context.Context, chatID int64, index, option int) (quiz.Answer, error)
	RestartQuiz(ctx context.Context, chatID int64) error
	SetMessageID(ctx context.Context, chatID int64, messageID int) error
	Reset(ctx context.Context, chatID int64) (*session.Session, error)
}

type QuizService interface {
	Snapshot(chatID int64) (service.QuizSnapshot, error)
}

type ContentService interface {
	Grades() []entities.Grade
	FilterBooks(f screens.GradeFilter) []entities.Book
	GetBook(id string) (entities.Book, error)
	GetLesson(id string) (entities.Lesson, error)
	UnitOverviews(bookID string) []service.UnitOverview
	LessonContent(lessonID string) entities.LessonContent
	Vocabulary(lessonID string) []entities.VocabEntry
	Games() []entities.Game
}
