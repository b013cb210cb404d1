package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/maktabati-bot/internal/domain/navigation"
	"github.com/aliskhannn/maktabati-bot/internal/domain/quiz"
	"github.com/aliskhannn/maktabati-bot/internal/domain/session"
)

// screen is one rendered view: MarkdownV2 text plus its keyboard.
type screen struct {
	text string
	kb   tgbotapi.InlineKeyboardMarkup
}

// render draws the view the session is on.
func (h *Handler) render(sess *session.Session) (screen, error) {
	switch sess.View() {
	case navigation.ViewHome:
		return h.renderHome(sess), nil
	case navigation.ViewUnits:
		return h.renderUnits(sess)
	case navigation.ViewLesson:
		return h.renderLesson(sess)
	case navigation.ViewQuiz:
		return h.renderQuiz(sess.ChatID)
	case navigation.ViewVocab:
		return h.renderVocab(sess), nil
	case navigation.ViewGames:
		return h.renderGames(), nil
	}
	return screen{}, fmt.Errorf("render: unknown view %q", sess.View())
}

func (h *Handler) renderHome(sess *session.Session) screen {
	books := h.content.FilterBooks(sess.Grade)

	var sb strings.Builder
	sb.WriteString(bold("📚 " + msgAppTitle))
	sb.WriteString("\n")
	sb.WriteString(md(msgAppSubtitle))
	if len(books) == 0 {
		sb.WriteString("\n\n")
		sb.WriteString(italic(msgNoBooks))
	}

	return screen{
		text: sb.String(),
		kb:   buildHomeKeyboard(h.content.Grades(), sess.Grade, books),
	}
}

func (h *Handler) renderUnits(sess *session.Session) (screen, error) {
	book, err := h.content.GetBook(sess.Nav.BookID)
	if err != nil {
		return screen{}, err
	}
	units := h.content.UnitOverviews(book.ID)

	var sb strings.Builder
	sb.WriteString(bold("📘 " + book.Title))
	sb.WriteString(md(" · " + book.Level))
	sb.WriteString("\n")
	if book.CoverImage != "" {
		sb.WriteString(link("🖼", book.CoverImage))
		sb.WriteString("\n")
	}

	for _, u := range units {
		sb.WriteString("\n")
		sb.WriteString(md(u.Unit.Icon + " "))
		sb.WriteString(bold(u.Unit.Title))
		sb.WriteString("\n")
		if u.Unit.Description != "" {
			sb.WriteString(md(u.Unit.Description))
			sb.WriteString("\n")
		}
		sb.WriteString(md(progressBar(u.Completed, len(u.Lessons), 10) + " " +
			fmt.Sprintf(msgLessonsDone, u.Completed, len(u.Lessons))))
		sb.WriteString("\n")
		if sess.Accordion.IsExpanded(u.Unit.ID) && len(u.Lessons) == 0 {
			sb.WriteString(italic(msgNoLessons))
			sb.WriteString("\n")
		}
	}

	return screen{
		text: sb.String(),
		kb:   buildUnitsKeyboard(units, sess.Accordion),
	}, nil
}

func (h *Handler) renderLesson(sess *session.Session) (screen, error) {
	lesson, err := h.content.GetLesson(sess.Nav.LessonID)
	if err != nil {
		return screen{}, err
	}
	content := h.content.LessonContent(lesson.ID)

	var sb strings.Builder
	sb.WriteString(italic(lesson.Title))
	sb.WriteString("\n")
	sb.WriteString(bold(content.Title))
	sb.WriteString("\n")
	if content.Image != "" {
		sb.WriteString(link(msgLessonImage, content.Image))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	for i, p := range content.Paragraphs {
		if i == sess.Reader.Active {
			marker := "👉 "
			if sess.Reader.Playing {
				marker = "🔊 "
			}
			sb.WriteString(md(marker))
			sb.WriteString(bold(p))
		} else {
			sb.WriteString(md(p))
		}
		sb.WriteString("\n")
	}

	return screen{
		text: sb.String(),
		kb:   buildLessonKeyboard(len(content.Paragraphs), sess.Reader),
	}, nil
}

func (h *Handler) renderQuiz(chatID int64) (screen, error) {
	snap, err := h.quiz.Snapshot(chatID)
	if err != nil {
		return screen{}, err
	}

	var sb strings.Builder
	if snap.Phase == quiz.PhaseFinished {
		sb.WriteString(bold("🏆 " + msgQuizDone))
		sb.WriteString("\n\n")
		sb.WriteString(md(starsLine(snap.Stars)))
		sb.WriteString("\n\n")
		sb.WriteString(md(fmt.Sprintf(msgQuizScore, snap.Score, snap.Total)))
	} else {
		sb.WriteString(md(fmt.Sprintf(msgQuestionOf, snap.Index+1, snap.Total)))
		sb.WriteString("\n")
		sb.WriteString(md(progressBar(snap.Index, snap.Total, 10)))
		sb.WriteString("\n\n")
		sb.WriteString(bold(snap.Question.Question))
		if snap.Phase == quiz.PhaseRevealed {
			notice := noticeWrong
			if snap.Question.IsCorrect(snap.Selected) {
				notice = noticeCorrect
			}
			sb.WriteString("\n\n")
			sb.WriteString(md(notice))
		}
	}

	return screen{text: sb.String(), kb: buildQuizKeyboard(snap)}, nil
}

func (h *Handler) renderVocab(sess *session.Session) screen {
	words := h.content.Vocabulary(sess.Nav.LessonID)
	cursor := sess.Vocab.Clamp(len(words))

	var sb strings.Builder
	sb.WriteString(bold("🔤 " + msgVocabTitle))
	sb.WriteString("\n\n")
	if len(words) > 0 {
		w := words[cursor.Index]
		sb.WriteString(md(w.Image))
		sb.WriteString("\n")
		sb.WriteString(bold(w.Word))
		sb.WriteString("\n\n")
		sb.WriteString(md(fmt.Sprintf("%d / %d", cursor.Index+1, len(words))))
	}

	return screen{text: sb.String(), kb: buildVocabKeyboard(cursor, len(words))}
}

func (h *Handler) renderGames() screen {
	games := h.content.Games()

	var sb strings.Builder
	sb.WriteString(bold("🎮 " + msgGamesTitle))
	sb.WriteString("\n")
	for _, g := range games {
		sb.WriteString("\n")
		sb.WriteString(md(g.Icon + " "))
		sb.WriteString(bold(g.Title))
		if g.Description != "" {
			sb.WriteString(md(" — " + g.Description))
		}
	}

	return screen{text: sb.String(), kb: buildGamesKeyboard(games)}
}

// progressBar draws done/total as a bar of width cells.
func progressBar(done, total, width int) string {
	filled := 0
	if total > 0 {
		filled = done * width / total
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat("▰", filled) + strings.Repeat("▱", width-filled)
}

func starsLine(stars int) string {
	if stars < 0 {
		stars = 0
	}
	if stars > quiz.MaxStars {
		stars = quiz.MaxStars
	}
	return strings.Repeat("⭐", stars) + strings.Repeat("☆", quiz.MaxStars-stars)
}
