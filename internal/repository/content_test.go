package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/maktabati-bot/internal/domain/entities"
)

func loadBundled(t *testing.T) *ContentRepository {
	t.Helper()

	repo, err := NewContentRepository("../../assets/content.yaml")
	require.NoError(t, err)
	return repo
}

func TestContentRepository_BundledCatalog(t *testing.T) {
	t.Parallel()

	repo := loadBundled(t)

	assert.Equal(t, Stats{
		Grades:        4,
		Books:         3,
		Units:         4,
		Lessons:       6,
		Contents:      1,
		QuizQuestions: 2,
		Vocabulary:    4,
		Games:         4,
	}, repo.Stats())

	b, err := repo.GetBook("b1")
	require.NoError(t, err)
	assert.Equal(t, "أنيسي", b.Title)

	var units []string
	for _, u := range repo.UnitsByBook("b1") {
		units = append(units, u.ID)
	}
	assert.Equal(t, []string{"u1", "u2"}, units)

	var lessons []string
	for _, l := range repo.LessonsByUnit("u1") {
		lessons = append(lessons, l.ID)
	}
	assert.Equal(t, []string{"l1", "l2", "l3", "l4"}, lessons)
	assert.Empty(t, repo.LessonsByUnit("u2"))

	l1, err := repo.GetLesson("l1")
	require.NoError(t, err)
	assert.True(t, l1.IsCompleted)
	assert.Equal(t, entities.LessonReading, l1.Type)
}

func TestContentRepository_DefaultsFallback(t *testing.T) {
	t.Parallel()

	repo := loadBundled(t)

	for _, id := range []string{"l1", "l6", "unknown"} {
		lc := repo.LessonContent(id)
		assert.Equal(t, "هذا أبي", lc.Title, id)
		assert.Len(t, lc.Paragraphs, 4, id)
		assert.Len(t, repo.QuizQuestions(id), 2, id)
		assert.Len(t, repo.Vocabulary(id), 4, id)
	}
}

func TestContentRepository_LessonSpecificContent(t *testing.T) {
	t.Parallel()

	repo, err := NewContentRepositoryFromYAML([]byte(minimalCatalog + `
  - lesson_id: l2
    title: هذه أمي
    paragraphs: [هَذِهِ أُمِّي.]
`))
	require.NoError(t, err)

	assert.Equal(t, "هذه أمي", repo.LessonContent("l2").Title)
	assert.Equal(t, "افتراضي", repo.LessonContent("l1").Title)
}

func TestContentRepository_NotFound(t *testing.T) {
	t.Parallel()

	repo := loadBundled(t)

	_, err := repo.GetBook("b9")
	assert.ErrorIs(t, err, ErrBookNotFound)
	_, err = repo.GetUnit("u9")
	assert.ErrorIs(t, err, ErrUnitNotFound)
	_, err = repo.GetLesson("l9")
	assert.ErrorIs(t, err, ErrLessonNotFound)
}

func TestNewContentRepository_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := NewContentRepository("testdata/does-not-exist.yaml")
	require.Error(t, err)
}

const minimalCatalog = `
grades:
  - {id: all, label: الكل}
  - {id: y1, label: السنة الأولى, level: سنة ١}
books:
  - {id: b1, title: أنيسي, level: سنة ١, cover_image: "https://example.com/b1.jpg"}
units:
  - {id: u1, book_id: b1, title: عائلتي}
lessons:
  - {id: l1, unit_id: u1, title: هذا أبي, type: reading}
  - {id: l2, unit_id: u1, title: هذه أمي, type: reading}
quiz_questions:
  - {id: q1, question: سؤال, options: [أ, ب], correct_answer: 1}
vocabulary:
  - {word: أب, image: "👨"}
lesson_contents:
  - title: افتراضي
    paragraphs: [نص.]
`

func TestCatalog_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		replace [2]string
		wantMsg string
	}{
		{
			name:    "unit with unknown book",
			replace: [2]string{"book_id: b1", "book_id: b7"},
			wantMsg: `unit "u1" references unknown book "b7"`,
		},
		{
			name:    "lesson with unknown unit",
			replace: [2]string{"{id: l2, unit_id: u1", "{id: l2, unit_id: u5"},
			wantMsg: `lesson "l2" references unknown unit "u5"`,
		},
		{
			name:    "correct answer out of range",
			replace: [2]string{"correct_answer: 1", "correct_answer: 2"},
			wantMsg: "correct answer 2 out of 2 options",
		},
		{
			name:    "book level without grade",
			replace: [2]string{"level: سنة ١, cover_image", "level: سنة ٥, cover_image"},
			wantMsg: "no grade declares",
		},
		{
			name:    "unknown lesson type",
			replace: [2]string{"type: reading}\n  - {id: l2", "type: video}\n  - {id: l2"},
			wantMsg: "oneof",
		},
		{
			name:    "duplicate lesson",
			replace: [2]string{"{id: l2,", "{id: l1,"},
			wantMsg: `duplicate lesson "l1"`,
		},
		{
			name:    "id with callback separator",
			replace: [2]string{"{id: b1,", "{id: \"b:1\","},
			wantMsg: "excludes",
		},
		{
			name:    "id too long for callback data",
			replace: [2]string{"{id: l2,", "{id: " + strings.Repeat("l", 49) + ","},
			wantMsg: "max",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data := strings.Replace(minimalCatalog, tt.replace[0], tt.replace[1], 1)
			require.NotEqual(t, minimalCatalog, data, "fixture replacement did not apply")

			_, err := NewContentRepositoryFromYAML([]byte(data))
			require.ErrorIs(t, err, ErrInvalidCatalog)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestCatalog_RequiresDefaults(t *testing.T) {
	t.Parallel()

	data := strings.Replace(minimalCatalog, "  - title: افتراضي", "  - lesson_id: l1\n    title: افتراضي", 1)

	_, err := NewContentRepositoryFromYAML([]byte(data))
	require.ErrorIs(t, err, ErrInvalidCatalog)
	assert.Contains(t, err.Error(), "no default lesson content")
}
