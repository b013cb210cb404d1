package entities

// LessonContent is the reading text of a lesson. A record with an empty
// LessonID is the catalog default for lessons without their own text.
type LessonContent struct {
	LessonID   string   `yaml:"lesson_id" json:"lesson_id,omitempty"`
	Title      string   `yaml:"title" json:"title" validate:"required"`
	Image      string   `yaml:"image" json:"image" validate:"omitempty,url"`
	Paragraphs []string `yaml:"paragraphs" json:"paragraphs" validate:"min=1,dive,required"`
}

// QuizQuestion is one multiple-choice question. CorrectAnswer is an index
// into Options.
type QuizQuestion struct {
	ID            string   `yaml:"id" json:"id" validate:"required"`
	LessonID      string   `yaml:"lesson_id" json:"lesson_id,omitempty"` // empty for the default set
	Question      string   `yaml:"question" json:"question" validate:"required"`
	Options       []string `yaml:"options" json:"options" validate:"min=2,dive,required"`
	CorrectAnswer int      `yaml:"correct_answer" json:"correct_answer" validate:"gte=0"`
}

// IsCorrect reports whether option is the right answer.
func (q QuizQuestion) IsCorrect(option int) bool {
	return option == q.CorrectAnswer
}

// VocabEntry is a flashcard: a word and its picture glyph.
type VocabEntry struct {
	LessonID string `yaml:"lesson_id" json:"lesson_id,omitempty"` // empty for the default set
	Word     string `yaml:"word" json:"word" validate:"required"`
	Image    string `yaml:"image" json:"image" validate:"required"`
}

// Game is a card on the games menu. Games have no behaviour yet.
type Game struct {
	ID          string `yaml:"id" json:"id" validate:"required,max=48,excludes=:"`
	Title       string `yaml:"title" json:"title" validate:"required"`
	Description string `yaml:"description" json:"description"`
	Icon        string `yaml:"icon" json:"icon"`
}
