// Package entities contains domain entities used across the application.
package entities

// GradeAll is the grade id that disables the home screen filter.
const GradeAll = "all"

// Ids of grades, books, units, lessons and games travel inside Telegram
// callback data, so they are short and never contain ':'.

// Grade is one entry of the home screen level filter.
type Grade struct {
	ID    string `yaml:"id" json:"id" validate:"required,max=48,excludes=:"` // filter id used in callbacks ("all", "y1", ...)
	Label string `yaml:"label" json:"label" validate:"required"`             // button caption
	Level string `yaml:"level" json:"level"`                                 // book level tag matched by the filter; empty for "all"
}

// Book is a school reader shown on the home screen.
type Book struct {
	ID         string `yaml:"id" json:"id" validate:"required,max=48,excludes=:"` // unique book id (b1, b2, ...)
	Title      string `yaml:"title" json:"title" validate:"required"`             // book title
	Level      string `yaml:"level" json:"level" validate:"required"`             // level tag, e.g. "سنة ١"
	CoverImage string `yaml:"cover_image" json:"cover_image" validate:"url"`      // remote cover image
	Color      string `yaml:"color" json:"color"`                                 // display color token
}

// Unit is a thematic group of lessons inside a book.
type Unit struct {
	ID          string `yaml:"id" json:"id" validate:"required,max=48,excludes=:"`
	BookID      string `yaml:"book_id" json:"book_id" validate:"required"` // owning book
	Title       string `yaml:"title" json:"title" validate:"required"`
	Icon        string `yaml:"icon" json:"icon"` // emoji glyph
	Description string `yaml:"description" json:"description"`
	Color       string `yaml:"color" json:"color"`
}

// LessonType is the kind of activity a lesson contains.
type LessonType string

const (
	LessonReading  LessonType = "reading"
	LessonSong     LessonType = "song"
	LessonExercise LessonType = "exercise"
)

// Label returns the caption shown under a lesson row.
func (t LessonType) Label() string {
	switch t {
	case LessonReading:
		return "قراءة"
	case LessonSong:
		return "نشيد"
	case LessonExercise:
		return "تمرين"
	}
	return string(t)
}

// Lesson is a single reading, song or exercise inside a unit.
// IsCompleted comes from the catalog and is never changed at runtime.
type Lesson struct {
	ID          string     `yaml:"id" json:"id" validate:"required,max=48,excludes=:"`
	UnitID      string     `yaml:"unit_id" json:"unit_id" validate:"required"` // owning unit
	Title       string     `yaml:"title" json:"title" validate:"required"`
	Type        LessonType `yaml:"type" json:"type" validate:"oneof=reading song exercise"`
	IsCompleted bool       `yaml:"is_completed" json:"is_completed"`
}
