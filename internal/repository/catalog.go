package repository

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/aliskhannn/maktabati-bot/internal/domain/entities"
)

var ErrInvalidCatalog = errors.New("invalid content catalog")

var validate = validator.New()

// Catalog is the on-disk layout of assets/content.yaml.
type Catalog struct {
	Grades         []entities.Grade         `yaml:"grades" validate:"min=1,dive"`
	Books          []entities.Book          `yaml:"books" validate:"min=1,dive"`
	Units          []entities.Unit          `yaml:"units" validate:"dive"`
	Lessons        []entities.Lesson        `yaml:"lessons" validate:"dive"`
	LessonContents []entities.LessonContent `yaml:"lesson_contents" validate:"min=1,dive"`
	QuizQuestions  []entities.QuizQuestion  `yaml:"quiz_questions" validate:"min=1,dive"`
	Vocabulary     []entities.VocabEntry    `yaml:"vocabulary" validate:"min=1,dive"`
	Games          []entities.Game          `yaml:"games" validate:"dive"`
}

func parseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: decode yaml: %v", ErrInvalidCatalog, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks field constraints and that every reference in the catalog
// points at something that exists. All problems are reported at once.
func (c *Catalog) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	levels := make(map[string]bool)
	gradeIDs := make(map[string]bool)
	for _, g := range c.Grades {
		if gradeIDs[g.ID] {
			fail("duplicate grade %q", g.ID)
		}
		gradeIDs[g.ID] = true
		if g.ID != entities.GradeAll {
			if g.Level == "" {
				fail("grade %q has no level", g.ID)
			}
			levels[g.Level] = true
		}
	}

	bookIDs := make(map[string]bool)
	for _, b := range c.Books {
		if bookIDs[b.ID] {
			fail("duplicate book %q", b.ID)
		}
		bookIDs[b.ID] = true
		if !levels[b.Level] {
			fail("book %q has level %q that no grade declares", b.ID, b.Level)
		}
	}

	unitIDs := make(map[string]bool)
	for _, u := range c.Units {
		if unitIDs[u.ID] {
			fail("duplicate unit %q", u.ID)
		}
		unitIDs[u.ID] = true
		if !bookIDs[u.BookID] {
			fail("unit %q references unknown book %q", u.ID, u.BookID)
		}
	}

	lessonIDs := make(map[string]bool)
	for _, l := range c.Lessons {
		if lessonIDs[l.ID] {
			fail("duplicate lesson %q", l.ID)
		}
		lessonIDs[l.ID] = true
		if !unitIDs[l.UnitID] {
			fail("lesson %q references unknown unit %q", l.ID, l.UnitID)
		}
	}

	defaultContent := false
	contentFor := make(map[string]bool)
	for _, lc := range c.LessonContents {
		switch {
		case lc.LessonID == "":
			if defaultContent {
				fail("more than one default lesson content")
			}
			defaultContent = true
		case !lessonIDs[lc.LessonID]:
			fail("lesson content references unknown lesson %q", lc.LessonID)
		case contentFor[lc.LessonID]:
			fail("duplicate lesson content for %q", lc.LessonID)
		}
		contentFor[lc.LessonID] = true
	}
	if !defaultContent {
		fail("no default lesson content")
	}

	defaultQuiz := 0
	questionIDs := make(map[string]bool)
	for _, q := range c.QuizQuestions {
		if questionIDs[q.ID] {
			fail("duplicate quiz question %q", q.ID)
		}
		questionIDs[q.ID] = true
		if q.CorrectAnswer >= len(q.Options) {
			fail("quiz question %q: correct answer %d out of %d options", q.ID, q.CorrectAnswer, len(q.Options))
		}
		if q.LessonID == "" {
			defaultQuiz++
		} else if !lessonIDs[q.LessonID] {
			fail("quiz question %q references unknown lesson %q", q.ID, q.LessonID)
		}
	}
	if defaultQuiz == 0 {
		fail("no default quiz questions")
	}

	defaultVocab := 0
	for _, v := range c.Vocabulary {
		if v.LessonID == "" {
			defaultVocab++
		} else if !lessonIDs[v.LessonID] {
			fail("vocabulary %q references unknown lesson %q", v.Word, v.LessonID)
		}
	}
	if defaultVocab == 0 {
		fail("no default vocabulary")
	}

	gameIDs := make(map[string]bool)
	for _, g := range c.Games {
		if gameIDs[g.ID] {
			fail("duplicate game %q", g.ID)
		}
		gameIDs[g.ID] = true
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidCatalog, errors.Join(errs...))
	}
	return nil
}
