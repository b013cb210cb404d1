package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/maktabati-bot/internal/domain/session"
)

type loggerKey struct{}

// withLogger attaches the per-update logger to ctx.
func withLogger(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func (h *Handler) log(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
		return l
	}
	return h.logger
}

// sendScreen posts the session's screen as a new message and makes it the
// chat's screen message.
func (h *Handler) sendScreen(ctx context.Context, sess *session.Session) error {
	sc, err := h.render(sess)
	if err != nil {
		return err
	}

	msg := newMessage(sess.ChatID, sc.text)
	msg.ReplyMarkup = sc.kb
	msg.DisableWebPagePreview = true

	sent, err := h.bot.Send(msg)
	if err != nil {
		return err
	}
	return h.sessions.SetMessageID(ctx, sess.ChatID, sent.MessageID)
}

// editScreen redraws the session's screen in place.
func (h *Handler) editScreen(ctx context.Context, sess *session.Session, messageID int) error {
	sc, err := h.render(sess)
	if err != nil {
		return err
	}
	h.send(ctx, newEdit(sess.ChatID, messageID, sc.text, sc.kb))

	if sess.MessageID != messageID {
		return h.sessions.SetMessageID(ctx, sess.ChatID, messageID)
	}
	return nil
}

func (h *Handler) sendError(ctx context.Context, chatID int64, text string) {
	h.send(ctx, newPlainMessage(chatID, text))
}

func (h *Handler) send(ctx context.Context, c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		// Editing a message into identical content is reported as an error.
		if strings.Contains(err.Error(), "message is not modified") {
			return
		}
		h.log(ctx).Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}

// answerCallback removes the button's loading state, optionally with a toast
// or an alert.
func (h *Handler) answerCallback(ctx context.Context, id, text string, alert bool) {
	answer := tgbotapi.NewCallback(id, text)
	answer.ShowAlert = alert
	if _, err := h.bot.Request(answer); err != nil {
		h.log(ctx).Warn("callback answer error", zap.Error(err))
	}
}
