package telegram

import (
	"context"
	"errors"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/maktabati-bot/internal/domain/navigation"
	"github.com/aliskhannn/maktabati-bot/internal/domain/session"
	"github.com/aliskhannn/maktabati-bot/internal/service"
)

// handleCallback applies a button press and redraws the pressed message with
// the chat's current screen, whether or not the press was accepted.
func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil || cb.Message.Chat == nil {
		h.answerCallback(ctx, cb.ID, "", false)
		return
	}
	chatID := cb.Message.Chat.ID
	log := h.log(ctx).With(zap.Int64("chat_id", chatID))

	notice, err := h.applyCallback(ctx, chatID, decodeCallback(cb.Data))
	alert := false
	if err != nil {
		var expected bool
		notice, expected = userNotice(err)
		if !expected {
			log.Error("callback failed", zap.String("data", cb.Data), zap.Error(err))
		}
		alert = errors.Is(err, navigation.ErrNoBookSelected)
	}

	sess, err := h.sessions.Current(ctx, chatID)
	if err == nil {
		err = h.editScreen(ctx, sess, cb.Message.MessageID)
	}
	if err != nil {
		log.Error("failed to redraw screen", zap.Error(err))
	}

	h.answerCallback(ctx, cb.ID, notice, alert)
}

// applyCallback runs the action behind callback data and returns an optional
// toast for the user.
func (h *Handler) applyCallback(ctx context.Context, chatID int64, cd callbackData) (string, error) {
	switch cd.Action {
	case actionNav:
		ev, err := navEvent(cd)
		if err != nil {
			return "", err
		}
		_, err = h.sessions.Dispatch(ctx, chatID, ev)
		return "", err

	case actionHome:
		if cd.param(0) != homeGrade || cd.param(1) == "" {
			return "", unknown(cd)
		}
		_, err := h.sessions.SelectGrade(ctx, chatID, cd.param(1))
		return "", err

	case actionUnit:
		if cd.param(0) != unitToggle || cd.param(1) == "" {
			return "", unknown(cd)
		}
		_, err := h.sessions.ToggleUnit(ctx, chatID, cd.param(1))
		return "", err

	case actionLesson:
		return "", h.applyLesson(ctx, chatID, cd)

	case actionVocab:
		return h.applyVocab(ctx, chatID, cd)

	case actionQuiz:
		return h.applyQuiz(ctx, chatID, cd)

	case actionGame:
		return noticeComingSoon, nil
	}

	return "", unknown(cd)
}

func navEvent(cd callbackData) (navigation.Event, error) {
	switch cd.param(0) {
	case navBook:
		if cd.param(1) != "" {
			return navigation.SelectBook(cd.param(1)), nil
		}
	case navLesson:
		if cd.param(1) != "" {
			return navigation.SelectLesson(cd.param(1)), nil
		}
	case navBack:
		return navigation.Back(), nil
	case navQuiz:
		return navigation.StartQuiz(), nil
	case navGames:
		return navigation.StartGames(), nil
	case navVocab:
		return navigation.OpenVocab(), nil
	case navComplete:
		return navigation.CompleteQuiz(), nil
	case navJump:
		switch cd.param(1) {
		case jumpHome:
			return navigation.JumpHome(), nil
		case jumpUnits:
			return navigation.JumpUnits(), nil
		case jumpGames:
			return navigation.JumpGames(), nil
		}
	}
	return navigation.Event{}, unknown(cd)
}

func (h *Handler) applyLesson(ctx context.Context, chatID int64, cd callbackData) error {
	switch cd.param(0) {
	case lessonPlay:
		_, err := h.sessions.TogglePlay(ctx, chatID)
		return err
	case lessonPara:
		i, ok := cd.intParam(1)
		if !ok {
			return unknown(cd)
		}
		_, err := h.sessions.SelectParagraph(ctx, chatID, i)
		return err
	}
	return unknown(cd)
}

func (h *Handler) applyVocab(ctx context.Context, chatID int64, cd callbackData) (string, error) {
	switch cd.param(0) {
	case vocabNext:
		_, err := h.sessions.VocabNext(ctx, chatID)
		return "", err
	case vocabPrev:
		_, err := h.sessions.VocabPrev(ctx, chatID)
		return "", err
	case vocabListen:
		return noticeListen, nil
	}
	return "", unknown(cd)
}

func (h *Handler) applyQuiz(ctx context.Context, chatID int64, cd callbackData) (string, error) {
	switch cd.param(0) {
	case quizAnswer:
		index, ok1 := cd.intParam(1)
		option, ok2 := cd.intParam(2)
		if !ok1 || !ok2 {
			return "", unknown(cd)
		}
		a, err := h.sessions.AnswerQuiz(ctx, chatID, index, option)
		if err != nil || !a.Accepted {
			return "", err
		}
		if a.Correct {
			return noticeCorrect, nil
		}
		return noticeWrong, nil

	case quizRestart:
		return "", h.sessions.RestartQuiz(ctx, chatID)
	}
	return "", unknown(cd)
}

func unknown(cd callbackData) error {
	return fmt.Errorf("%w: %q", errUnknownCallback, cd.Raw)
}

// QuizAdvanced redraws the quiz screen after the engine moved on by itself.
// It runs on a timer goroutine.
func (h *Handler) QuizAdvanced(chatID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sess, err := h.sessions.Peek(ctx, chatID)
	if err != nil {
		h.logger.Error("failed to load session for quiz redraw",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		return
	}
	if !quizOnScreen(sess) {
		return
	}

	sc, err := h.render(sess)
	if errors.Is(err, service.ErrNoActiveQuiz) {
		// The chat left the quiz between the advance and this redraw.
		return
	}
	if err != nil {
		h.logger.Error("failed to render quiz", zap.Int64("chat_id", chatID), zap.Error(err))
		return
	}
	h.send(ctx, newEdit(chatID, sess.MessageID, sc.text, sc.kb))
}

func quizOnScreen(sess *session.Session) bool {
	return sess.View() == navigation.ViewQuiz && sess.MessageID != 0
}
