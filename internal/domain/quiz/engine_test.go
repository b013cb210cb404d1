package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/maktabati-bot/internal/domain/entities"
)

func seededQuestions() []entities.QuizQuestion {
	return []entities.QuizQuestion{
		{ID: "q1", Question: "مَا اسْمُ الأَبِ؟", Options: []string{"خَالِد", "أَحْمَد", "سَامِي"}, CorrectAnswer: 0},
		{ID: "q2", Question: "مَاذا يُحِبُّ الأَبُ؟", Options: []string{"الرَّسْم", "الْقِرَاءَة", "اللَّعِب"}, CorrectAnswer: 1},
	}
}

func TestNewEngine_RequiresQuestions(t *testing.T) {
	t.Parallel()

	_, err := NewEngine(nil)
	require.ErrorIs(t, err, ErrNoQuestions)
}

func TestEngine_AllCorrect(t *testing.T) {
	t.Parallel()

	e, err := NewEngine(seededQuestions())
	require.NoError(t, err)

	a, err := e.Select(0, 0)
	require.NoError(t, err)
	assert.True(t, a.Accepted)
	assert.True(t, a.Correct)
	assert.Equal(t, PhaseRevealed, e.Phase())
	require.True(t, e.Advance(a.Token))

	a, err = e.Select(1, 1)
	require.NoError(t, err)
	assert.True(t, a.Correct)
	require.True(t, e.Advance(a.Token))

	assert.True(t, e.Finished())
	assert.Equal(t, PhaseFinished, e.Phase())
	assert.Equal(t, 2, e.Score())
	assert.Equal(t, 3, e.Stars())
}

func TestEngine_SecondClickIsNoop(t *testing.T) {
	t.Parallel()

	e, err := NewEngine(seededQuestions())
	require.NoError(t, err)

	first, err := e.Select(0, 1)
	require.NoError(t, err)
	require.True(t, first.Accepted)
	assert.False(t, first.Correct)

	for option := 0; option < 3; option++ {
		again, err := e.Select(0, option)
		require.NoError(t, err)
		assert.False(t, again.Accepted)
	}

	selected, ok := e.Selected()
	assert.True(t, ok)
	assert.Equal(t, 1, selected)
	assert.Equal(t, 0, e.Score())
	assert.True(t, e.Advance(first.Token), "ignored clicks do not invalidate the pending advance")
}

func TestEngine_StaleQuestionIndexIgnored(t *testing.T) {
	t.Parallel()

	e, err := NewEngine(seededQuestions())
	require.NoError(t, err)

	a, err := e.Select(1, 1)
	require.NoError(t, err)
	assert.False(t, a.Accepted)
	assert.Equal(t, PhaseAnswering, e.Phase())
}

func TestEngine_InvalidOption(t *testing.T) {
	t.Parallel()

	e, err := NewEngine(seededQuestions())
	require.NoError(t, err)

	_, err = e.Select(0, 3)
	require.ErrorIs(t, err, ErrInvalidOption)
	_, err = e.Select(0, -1)
	require.ErrorIs(t, err, ErrInvalidOption)
	assert.Equal(t, PhaseAnswering, e.Phase())
}

func TestEngine_StaleAdvanceDiscarded(t *testing.T) {
	t.Parallel()

	t.Run("after restart", func(t *testing.T) {
		e, err := NewEngine(seededQuestions())
		require.NoError(t, err)

		a, err := e.Select(0, 0)
		require.NoError(t, err)
		e.Restart()

		assert.False(t, e.Advance(a.Token))
		assert.Equal(t, 0, e.Index())
		assert.Equal(t, 0, e.Score())
		assert.Equal(t, PhaseAnswering, e.Phase())
	})

	t.Run("after invalidate", func(t *testing.T) {
		e, err := NewEngine(seededQuestions())
		require.NoError(t, err)

		a, err := e.Select(0, 0)
		require.NoError(t, err)
		e.Invalidate()

		assert.False(t, e.Advance(a.Token))
		assert.Equal(t, PhaseRevealed, e.Phase())
	})

	t.Run("token used twice", func(t *testing.T) {
		e, err := NewEngine(seededQuestions())
		require.NoError(t, err)

		a, err := e.Select(0, 0)
		require.NoError(t, err)
		require.True(t, e.Advance(a.Token))
		assert.False(t, e.Advance(a.Token))
		assert.Equal(t, 1, e.Index())
	})
}

func TestEngine_RestartAfterFinish(t *testing.T) {
	t.Parallel()

	e, err := NewEngine(seededQuestions())
	require.NoError(t, err)

	for i, opt := range []int{2, 2} {
		a, err := e.Select(i, opt)
		require.NoError(t, err)
		require.True(t, e.Advance(a.Token))
	}
	require.True(t, e.Finished())

	_, err = e.Select(0, 0)
	require.ErrorIs(t, err, ErrQuizFinished)

	e.Restart()
	assert.False(t, e.Finished())
	assert.Equal(t, 0, e.Index())
	assert.Equal(t, 0, e.Score())
	_, ok := e.Selected()
	assert.False(t, ok)
}

func TestStars(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score, total, want int
	}{
		{0, 2, 0},
		{1, 2, 2},
		{2, 2, 3},
		{1, 3, 1},
		{2, 3, 2},
		{1, 7, 0},
		{1, 6, 1},
		{5, 4, 3},
		{-1, 4, 0},
		{0, 0, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Stars(tt.score, tt.total), "score=%d total=%d", tt.score, tt.total)
	}
}
