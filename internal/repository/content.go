package repository

import (
	"errors"
	"fmt"
	"os"

	"github.com/aliskhannn/maktabati-bot/internal/domain/entities"
)

var (
	ErrBookNotFound   = errors.New("book not found")
	ErrUnitNotFound   = errors.New("unit not found")
	ErrLessonNotFound = errors.New("lesson not found")
)

// ContentRepository provides read-only access to the library catalog.
// Everything is loaded and validated once; lookups never fail on a catalog
// that passed validation except for unknown ids.
type ContentRepository struct {
	catalog *Catalog

	books   map[string]entities.Book
	units   map[string]entities.Unit
	lessons map[string]entities.Lesson

	contentByLesson map[string]entities.LessonContent
	defaultContent  entities.LessonContent

	quizByLesson map[string][]entities.QuizQuestion
	defaultQuiz  []entities.QuizQuestion

	vocabByLesson map[string][]entities.VocabEntry
	defaultVocab  []entities.VocabEntry
}

// NewContentRepository loads the catalog from a YAML file.
func NewContentRepository(path string) (*ContentRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return NewContentRepositoryFromYAML(data)
}

// NewContentRepositoryFromYAML builds the repository from raw catalog bytes.
func NewContentRepositoryFromYAML(data []byte) (*ContentRepository, error) {
	c, err := parseCatalog(data)
	if err != nil {
		return nil, err
	}

	r := &ContentRepository{
		catalog:         c,
		books:           make(map[string]entities.Book, len(c.Books)),
		units:           make(map[string]entities.Unit, len(c.Units)),
		lessons:         make(map[string]entities.Lesson, len(c.Lessons)),
		contentByLesson: make(map[string]entities.LessonContent),
		quizByLesson:    make(map[string][]entities.QuizQuestion),
		vocabByLesson:   make(map[string][]entities.VocabEntry),
	}

	for _, b := range c.Books {
		r.books[b.ID] = b
	}
	for _, u := range c.Units {
		r.units[u.ID] = u
	}
	for _, l := range c.Lessons {
		r.lessons[l.ID] = l
	}
	for _, lc := range c.LessonContents {
		if lc.LessonID == "" {
			r.defaultContent = lc
			continue
		}
		r.contentByLesson[lc.LessonID] = lc
	}
	for _, q := range c.QuizQuestions {
		if q.LessonID == "" {
			r.defaultQuiz = append(r.defaultQuiz, q)
			continue
		}
		r.quizByLesson[q.LessonID] = append(r.quizByLesson[q.LessonID], q)
	}
	for _, v := range c.Vocabulary {
		if v.LessonID == "" {
			r.defaultVocab = append(r.defaultVocab, v)
			continue
		}
		r.vocabByLesson[v.LessonID] = append(r.vocabByLesson[v.LessonID], v)
	}

	return r, nil
}

func (r *ContentRepository) Grades() []entities.Grade {
	return r.catalog.Grades
}

func (r *ContentRepository) Books() []entities.Book {
	return r.catalog.Books
}

func (r *ContentRepository) Games() []entities.Game {
	return r.catalog.Games
}

// GetBook returns the book with the given id.
func (r *ContentRepository) GetBook(id string) (entities.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return entities.Book{}, fmt.Errorf("%w: %s", ErrBookNotFound, id)
	}
	return b, nil
}

func (r *ContentRepository) GetUnit(id string) (entities.Unit, error) {
	u, ok := r.units[id]
	if !ok {
		return entities.Unit{}, fmt.Errorf("%w: %s", ErrUnitNotFound, id)
	}
	return u, nil
}

func (r *ContentRepository) GetLesson(id string) (entities.Lesson, error) {
	l, ok := r.lessons[id]
	if !ok {
		return entities.Lesson{}, fmt.Errorf("%w: %s", ErrLessonNotFound, id)
	}
	return l, nil
}

// UnitsByBook returns the units of a book in catalog order.
func (r *ContentRepository) UnitsByBook(bookID string) []entities.Unit {
	var out []entities.Unit
	for _, u := range r.catalog.Units {
		if u.BookID == bookID {
			out = append(out, u)
		}
	}
	return out
}

// LessonsByUnit returns the lessons of a unit in catalog order.
func (r *ContentRepository) LessonsByUnit(unitID string) []entities.Lesson {
	var out []entities.Lesson
	for _, l := range r.catalog.Lessons {
		if l.UnitID == unitID {
			out = append(out, l)
		}
	}
	return out
}

// LessonContent returns the reading text of a lesson, or the catalog default
// when the lesson has none of its own.
func (r *ContentRepository) LessonContent(lessonID string) entities.LessonContent {
	if lc, ok := r.contentByLesson[lessonID]; ok {
		return lc
	}
	return r.defaultContent
}

// QuizQuestions returns the questions of a lesson, falling back to the
// default set.
func (r *ContentRepository) QuizQuestions(lessonID string) []entities.QuizQuestion {
	if qs, ok := r.quizByLesson[lessonID]; ok {
		return qs
	}
	return r.defaultQuiz
}

// Vocabulary returns the flashcards of a lesson, falling back to the default
// set.
func (r *ContentRepository) Vocabulary(lessonID string) []entities.VocabEntry {
	if vs, ok := r.vocabByLesson[lessonID]; ok {
		return vs
	}
	return r.defaultVocab
}

// Stats counts the loaded collections.
type Stats struct {
	Grades        int `json:"grades"`
	Books         int `json:"books"`
	Units         int `json:"units"`
	Lessons       int `json:"lessons"`
	Contents      int `json:"lesson_contents"`
	QuizQuestions int `json:"quiz_questions"`
	Vocabulary    int `json:"vocabulary"`
	Games         int `json:"games"`
}

func (r *ContentRepository) Stats() Stats {
	c := r.catalog
	return Stats{
		Grades:        len(c.Grades),
		Books:         len(c.Books),
		Units:         len(c.Units),
		Lessons:       len(c.Lessons),
		Contents:      len(c.LessonContents),
		QuizQuestions: len(c.QuizQuestions),
		Vocabulary:    len(c.Vocabulary),
		Games:         len(c.Games),
	}
}
