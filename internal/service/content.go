package service

import (
	"errors"
	"fmt"

	"github.com/aliskhannn/maktabati-bot/internal/domain/entities"
	"github.com/aliskhannn/maktabati-bot/internal/domain/screens"
	"github.com/aliskhannn/maktabati-bot/internal/repository"
)

var (
	ErrLessonNotInBook = errors.New("lesson does not belong to the selected book")
	ErrGradeNotFound   = errors.New("grade not found")
)

// UnitOverview is a unit with its lessons and how many of them are done.
type UnitOverview struct {
	Unit      entities.Unit
	Lessons   []entities.Lesson
	Completed int
}

// Progress returns the completed share in percent.
func (u UnitOverview) Progress() int {
	if len(u.Lessons) == 0 {
		return 0
	}
	return u.Completed * 100 / len(u.Lessons)
}

// ContentService answers the catalog questions the screens ask.
type ContentService struct {
	repository ContentRepository
}

func NewContentService(repository ContentRepository) *ContentService {
	return &ContentService{repository: repository}
}

func (s *ContentService) Grades() []entities.Grade {
	return s.repository.Grades()
}

// FilterBooks returns the books visible under the home screen filter.
func (s *ContentService) FilterBooks(f screens.GradeFilter) []entities.Book {
	return f.Apply(s.repository.Grades(), s.repository.Books())
}

// GetGrade looks a grade up by id.
func (s *ContentService) GetGrade(id string) (entities.Grade, error) {
	for _, g := range s.repository.Grades() {
		if g.ID == id {
			return g, nil
		}
	}
	return entities.Grade{}, fmt.Errorf("%w: %s", ErrGradeNotFound, id)
}

func (s *ContentService) GetBook(id string) (entities.Book, error) {
	return s.repository.GetBook(id)
}

func (s *ContentService) GetLesson(id string) (entities.Lesson, error) {
	return s.repository.GetLesson(id)
}

func (s *ContentService) Units(bookID string) []entities.Unit {
	return s.repository.UnitsByBook(bookID)
}

// UnitOverviews lists the units of a book with their lessons.
func (s *ContentService) UnitOverviews(bookID string) []UnitOverview {
	units := s.repository.UnitsByBook(bookID)
	out := make([]UnitOverview, 0, len(units))
	for _, u := range units {
		ov := UnitOverview{Unit: u, Lessons: s.repository.LessonsByUnit(u.ID)}
		for _, l := range ov.Lessons {
			if l.IsCompleted {
				ov.Completed++
			}
		}
		out = append(out, ov)
	}
	return out
}

// UnitInBook reports whether unitID is one of the book's units.
func (s *ContentService) UnitInBook(unitID, bookID string) error {
	u, err := s.repository.GetUnit(unitID)
	if err != nil {
		return err
	}
	if u.BookID != bookID {
		return fmt.Errorf("%w: unit %s, book %s", repository.ErrUnitNotFound, unitID, bookID)
	}
	return nil
}

// LessonInBook checks that a lesson exists and sits in one of the book's units.
func (s *ContentService) LessonInBook(lessonID, bookID string) error {
	l, err := s.repository.GetLesson(lessonID)
	if err != nil {
		return err
	}
	u, err := s.repository.GetUnit(l.UnitID)
	if err != nil {
		return err
	}
	if u.BookID != bookID {
		return fmt.Errorf("%w: lesson %s, book %s", ErrLessonNotInBook, lessonID, bookID)
	}
	return nil
}

func (s *ContentService) LessonContent(lessonID string) entities.LessonContent {
	return s.repository.LessonContent(lessonID)
}

func (s *ContentService) Vocabulary(lessonID string) []entities.VocabEntry {
	return s.repository.Vocabulary(lessonID)
}

func (s *ContentService) Games() []entities.Game {
	return s.repository.Games()
}
