package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/maktabati-bot/internal/domain/navigation"
	"github.com/aliskhannn/maktabati-bot/internal/domain/quiz"
	"github.com/aliskhannn/maktabati-bot/internal/repository"
	"github.com/aliskhannn/maktabati-bot/internal/service"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

var errUnknownCallback = errors.New("unknown callback data")

func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := fn(ctx, chatID); err != nil {
			text, expected := userNotice(err)
			if !expected {
				h.log(ctx).Error("handle error",
					zap.Int64("chat_id", chatID),
					zap.Error(err),
				)
			}
			h.sendError(ctx, chatID, text)
		}
		return nil
	}
}

// userNotice maps an error to the text shown to the user. expected is false
// for failures worth logging as errors.
func userNotice(err error) (text string, expected bool) {
	switch {
	case errors.Is(err, navigation.ErrNoBookSelected):
		return noticeChooseBook, true
	case errors.Is(err, navigation.ErrInvalidTransition),
		errors.Is(err, service.ErrNoActiveQuiz),
		errors.Is(err, service.ErrLessonNotInBook),
		errors.Is(err, quiz.ErrQuizFinished),
		errors.Is(err, quiz.ErrInvalidOption):
		return noticeOutdated, true
	case errors.Is(err, repository.ErrBookNotFound),
		errors.Is(err, repository.ErrUnitNotFound),
		errors.Is(err, repository.ErrLessonNotFound),
		errors.Is(err, service.ErrGradeNotFound):
		return noticeNotFound, true
	case errors.Is(err, errUnknownCallback):
		return noticeUnknownData, true
	}
	return msgInternalError, false
}
