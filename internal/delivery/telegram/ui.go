package telegram

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/maktabati-bot/internal/domain/entities"
	"github.com/aliskhannn/maktabati-bot/internal/domain/quiz"
	"github.com/aliskhannn/maktabati-bot/internal/domain/screens"
	"github.com/aliskhannn/maktabati-bot/internal/service"
)

const gradesPerRow = 4

func button(text, data string) tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData(text, data)
}

// buildNavBarRow is the global navigation shown under every screen.
func buildNavBarRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		button(btnHome, buildJumpCallback(jumpHome)),
		button(btnUnits, buildJumpCallback(jumpUnits)),
		button(btnGames, buildJumpCallback(jumpGames)),
	)
}

func buildBackRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(button(btnBack, buildNavCallback(navBack)))
}

// buildHomeKeyboard lists the grade filter and the visible books.
func buildHomeKeyboard(grades []entities.Grade, filter screens.GradeFilter, books []entities.Book) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	var row []tgbotapi.InlineKeyboardButton
	for _, g := range grades {
		label := g.Label
		if g.ID == filter.GradeID {
			label = "✅ " + label
		}
		row = append(row, button(label, buildGradeCallback(g.ID)))
		if len(row) == gradesPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	for _, b := range books {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			button("📘 "+b.Title+" · "+b.Level, buildSelectBookCallback(b.ID)),
		))
	}

	rows = append(rows, buildNavBarRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildUnitsKeyboard shows one toggle per unit and the lessons of the
// expanded one right under it.
func buildUnitsKeyboard(units []service.UnitOverview, acc screens.Accordion) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	for _, u := range units {
		marker := "◂ "
		if acc.IsExpanded(u.Unit.ID) {
			marker = "▾ "
		}
		caption := marker + u.Unit.Icon + " " + u.Unit.Title
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button(caption, buildUnitToggleCallback(u.Unit.ID))))

		if !acc.IsExpanded(u.Unit.ID) {
			continue
		}
		for _, l := range u.Lessons {
			caption := lessonGlyph(l) + " " + l.Title + " · " + l.Type.Label()
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(button(caption, buildSelectLessonCallback(l.ID))))
		}
	}

	rows = append(rows, buildBackRow(), buildNavBarRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func lessonGlyph(l entities.Lesson) string {
	if l.IsCompleted {
		return "✅"
	}
	switch l.Type {
	case entities.LessonSong:
		return "🎵"
	case entities.LessonExercise:
		return "✏️"
	}
	return "📖"
}

// buildLessonKeyboard has the audio toggle, one button per paragraph and the
// ways out of the lesson.
func buildLessonKeyboard(paragraphs int, reader screens.Reader) tgbotapi.InlineKeyboardMarkup {
	play := btnListen
	if reader.Playing {
		play = btnStop
	}

	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(button(play, buildLessonPlayCallback())),
	}

	var paras []tgbotapi.InlineKeyboardButton
	for i := 0; i < paragraphs; i++ {
		label := strconv.Itoa(i + 1)
		if i == reader.Active {
			label = "• " + label + " •"
		}
		paras = append(paras, button(label, buildParagraphCallback(i)))
	}
	if len(paras) > 0 {
		rows = append(rows, paras)
	}

	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			button(btnQuiz, buildNavCallback(navQuiz)),
			button(btnVocab, buildNavCallback(navVocab)),
		),
		tgbotapi.NewInlineKeyboardRow(button(btnPlayGames, buildNavCallback(navGames))),
		buildBackRow(),
		buildNavBarRow(),
	)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildQuizKeyboard lists the options of the current question. Once the
// question is revealed the buttons show the result but keep their data, so a
// late press is a no-op.
func buildQuizKeyboard(snap service.QuizSnapshot) tgbotapi.InlineKeyboardMarkup {
	if snap.Phase == quiz.PhaseFinished {
		return tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(button(btnRestart, buildQuizRestartCallback())),
			tgbotapi.NewInlineKeyboardRow(button(btnBackLesson, buildNavCallback(navComplete))),
		)
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for i, option := range snap.Question.Options {
		label := option
		if snap.Phase == quiz.PhaseRevealed {
			switch {
			case snap.Question.IsCorrect(i):
				label = "✅ " + option
			case i == snap.Selected:
				label = "❌ " + option
			}
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button(label, buildQuizAnswerCallback(snap.Index, i))))
	}

	rows = append(rows, buildBackRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildVocabKeyboard hides the arrows that would not move the cursor.
func buildVocabKeyboard(cursor screens.VocabCursor, length int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	var arrows []tgbotapi.InlineKeyboardButton
	if !cursor.AtStart() {
		arrows = append(arrows, button(btnPrev, buildVocabCallback(vocabPrev)))
	}
	if !cursor.AtEnd(length) {
		arrows = append(arrows, button(btnNext, buildVocabCallback(vocabNext)))
	}
	if len(arrows) > 0 {
		rows = append(rows, arrows)
	}

	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(button(btnTapListen, buildVocabCallback(vocabListen))),
		buildBackRow(),
		buildNavBarRow(),
	)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func buildGamesKeyboard(games []entities.Game) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, g := range games {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button(g.Icon+" "+g.Title, buildGameCallback(g.ID))))
	}
	rows = append(rows, buildBackRow(), buildNavBarRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
