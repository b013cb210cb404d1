package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aliskhannn/maktabati-bot/internal/domain/entities"
	"github.com/aliskhannn/maktabati-bot/internal/domain/quiz"
	"github.com/aliskhannn/maktabati-bot/internal/domain/screens"
	"github.com/aliskhannn/maktabati-bot/internal/service"
)

func TestProgressBar(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "▱▱▱▱", progressBar(0, 0, 4))
	assert.Equal(t, "▰▰▱▱", progressBar(1, 2, 4))
	assert.Equal(t, "▰▰▰▰", progressBar(9, 2, 4))
}

func TestStarsLine(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "☆☆☆", starsLine(0))
	assert.Equal(t, "⭐⭐☆", starsLine(2))
	assert.Equal(t, "⭐⭐⭐", starsLine(7))
}

func TestBuildQuizKeyboard(t *testing.T) {
	t.Parallel()

	q := entities.QuizQuestion{ID: "q", Question: "?", Options: []string{"a", "b", "c"}, CorrectAnswer: 2}

	t.Run("answering", func(t *testing.T) {
		kb := buildQuizKeyboard(service.QuizSnapshot{Question: q, Index: 1, Total: 3, Selected: -1, Phase: quiz.PhaseAnswering})
		assert.Len(t, kb.InlineKeyboard, 4)
		assert.Equal(t, "a", kb.InlineKeyboard[0][0].Text)
		assert.Equal(t, "quiz:answer:1:0", *kb.InlineKeyboard[0][0].CallbackData)
	})

	t.Run("revealed", func(t *testing.T) {
		kb := buildQuizKeyboard(service.QuizSnapshot{Question: q, Index: 1, Total: 3, Selected: 0, Phase: quiz.PhaseRevealed})
		assert.Equal(t, "❌ a", kb.InlineKeyboard[0][0].Text)
		assert.Equal(t, "b", kb.InlineKeyboard[1][0].Text)
		assert.Equal(t, "✅ c", kb.InlineKeyboard[2][0].Text)
		assert.Equal(t, "quiz:answer:1:0", *kb.InlineKeyboard[0][0].CallbackData)
	})

	t.Run("finished", func(t *testing.T) {
		kb := buildQuizKeyboard(service.QuizSnapshot{Total: 3, Score: 3, Stars: 3, Selected: -1, Phase: quiz.PhaseFinished})
		data := keyboardData(&kb)
		assert.Equal(t, []string{"quiz:restart", "nav:complete"}, data)
	})
}

func TestBuildHomeKeyboard_NoBooks(t *testing.T) {
	t.Parallel()

	grades := []entities.Grade{
		{ID: "all", Label: "all"}, {ID: "y1", Label: "1"}, {ID: "y2", Label: "2"},
		{ID: "y3", Label: "3"}, {ID: "y4", Label: "4"},
	}
	kb := buildHomeKeyboard(grades, screens.GradeFilter{GradeID: "y4"}, nil)

	assert.Len(t, kb.InlineKeyboard, 3, "two grade rows and the navigation bar")
	assert.Len(t, kb.InlineKeyboard[0], gradesPerRow)
	assert.Equal(t, "✅ 4", kb.InlineKeyboard[1][0].Text)
}

func TestBuildUnitsKeyboard(t *testing.T) {
	t.Parallel()

	units := []service.UnitOverview{
		{Unit: entities.Unit{ID: "u1", Title: "one"}, Lessons: []entities.Lesson{{ID: "l1", Title: "x", Type: entities.LessonSong}}},
		{Unit: entities.Unit{ID: "u2", Title: "two"}, Lessons: []entities.Lesson{{ID: "l2", Title: "y"}}},
	}
	kb := buildUnitsKeyboard(units, screens.Accordion{Expanded: "u1"})
	data := keyboardData(&kb)

	assert.Equal(t, []string{
		"unit:toggle:u1", "nav:lesson:l1", "unit:toggle:u2",
		"nav:back", "nav:jump:home", "nav:jump:units", "nav:jump:games",
	}, data)
}

func TestBuildVocabKeyboard_ArrowsAtEnds(t *testing.T) {
	t.Parallel()

	tail := []string{"vocab:listen", "nav:back", "nav:jump:home", "nav:jump:units", "nav:jump:games"}

	tests := []struct {
		name   string
		cursor screens.VocabCursor
		length int
		arrows []string
	}{
		{name: "first word", cursor: screens.VocabCursor{Index: 0}, length: 3, arrows: []string{"vocab:next"}},
		{name: "middle word", cursor: screens.VocabCursor{Index: 1}, length: 3, arrows: []string{"vocab:prev", "vocab:next"}},
		{name: "last word", cursor: screens.VocabCursor{Index: 2}, length: 3, arrows: []string{"vocab:prev"}},
		{name: "single word", cursor: screens.VocabCursor{}, length: 1},
		{name: "no words", cursor: screens.VocabCursor{}, length: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kb := buildVocabKeyboard(tt.cursor, tt.length)
			assert.Equal(t, append(append([]string{}, tt.arrows...), tail...), keyboardData(&kb))
			for _, row := range kb.InlineKeyboard {
				assert.NotEmpty(t, row)
			}
		})
	}
}
