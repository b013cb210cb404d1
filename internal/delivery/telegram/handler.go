package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/maktabati-bot/internal/domain/navigation"
)

// Sender is the part of *tgbotapi.BotAPI the handler talks to.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type Handler struct {
	bot      Sender
	logger   *zap.Logger
	sessions SessionService
	quiz     QuizService
	content  ContentService
}

func NewHandler(
	bot Sender,
	logger *zap.Logger,
	sessions SessionService,
	quiz QuizService,
	content ContentService,
) *Handler {
	return &Handler{
		bot:      bot,
		logger:   logger,
		sessions: sessions,
		quiz:     quiz,
		content:  content,
	}
}

// Commands is the command menu registered with Telegram.
func Commands() []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: "start", Description: "البداية من جديد"},
		{Command: "home", Description: "الصفحة الرئيسية"},
		{Command: "units", Description: "وحدات الكتاب الحالي"},
		{Command: "games", Description: "الألعاب"},
		{Command: "help", Description: "المساعدة"},
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	log := h.logger.With(
		zap.String("request_id", uuid.NewString()),
		zap.Int("update_id", update.UpdateID),
	)
	ctx = withLogger(ctx, log)

	if update.CallbackQuery != nil {
		log.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		log.Debug("update without message and callback")
		return
	}

	chatID := update.Message.Chat.ID
	log.Debug("update received",
		zap.Int64("chat_id", chatID),
		zap.String("text", update.Message.Text),
	)

	if !update.Message.IsCommand() {
		h.send(ctx, newPlainMessage(chatID, msgUnknownInput))
		return
	}

	switch update.Message.Command() {
	case "start":
		_ = h.withErrorHandling(h.startHandler())(ctx, chatID)
	case "home":
		_ = h.withErrorHandling(h.jumpHandler(navigation.JumpHome()))(ctx, chatID)
	case "units":
		_ = h.withErrorHandling(h.jumpHandler(navigation.JumpUnits()))(ctx, chatID)
	case "games":
		_ = h.withErrorHandling(h.jumpHandler(navigation.JumpGames()))(ctx, chatID)
	case "help":
		h.send(ctx, newPlainMessage(chatID, msgHelp))
	default:
		h.send(ctx, newPlainMessage(chatID, msgUnknownInput))
	}
}

// startHandler resets the chat and sends a fresh home screen.
func (h *Handler) startHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		sess, err := h.sessions.Reset(ctx, chatID)
		if err != nil {
			return err
		}
		return h.sendScreen(ctx, sess)
	}
}

// jumpHandler applies a navigation bar jump typed as a command.
func (h *Handler) jumpHandler(ev navigation.Event) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		sess, err := h.sessions.Dispatch(ctx, chatID, ev)
		if err != nil {
			return err
		}
		return h.sendScreen(ctx, sess)
	}
}
