// Package quiz holds the multiple-choice quiz state machine shown after a
// lesson: answer, reveal, advance, finish.
package quiz

import (
	"errors"
	"math"

	"github.com/aliskhannn/maktabati-bot/internal/domain/entities"
)

var (
	ErrNoQuestions   = errors.New("quiz has no questions")
	ErrInvalidOption = errors.New("invalid quiz option")
	ErrQuizFinished  = errors.New("quiz already finished")
)

// MaxStars is the size of the rating shown on the result screen.
const MaxStars = 3

// Phase is where the engine is within the current question.
type Phase int

const (
	PhaseAnswering Phase = iota
	PhaseRevealed
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseAnswering:
		return "answering"
	case PhaseRevealed:
		return "revealed"
	case PhaseFinished:
		return "finished"
	}
	return "unknown"
}

// Token identifies one pending auto-advance. It goes stale as soon as the
// engine moves on, restarts or is discarded.
type Token uint64

// Answer describes the outcome of a selection.
type Answer struct {
	Accepted bool  // false when the question was already answered or the press was stale
	Correct  bool
	Token    Token // pass to Advance once the reveal delay has passed
}

// Engine is a single quiz attempt over a fixed list of questions.
// It is not safe for concurrent use; callers serialise access.
type Engine struct {
	questions  []entities.QuizQuestion
	index      int
	selected   int // -1 while answering
	score      int
	finished   bool
	generation Token
}

func NewEngine(questions []entities.QuizQuestion) (*Engine, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	qs := make([]entities.QuizQuestion, len(questions))
	copy(qs, questions)

	return &Engine{questions: qs, selected: -1}, nil
}

// Select records option for the question at index. Only the first selection
// per question counts; later presses and presses for another question are
// reported as not accepted.
func (e *Engine) Select(index, option int) (Answer, error) {
	if e.finished {
		return Answer{}, ErrQuizFinished
	}
	if index != e.index || e.selected >= 0 {
		return Answer{}, nil
	}

	q := e.questions[e.index]
	if option < 0 || option >= len(q.Options) {
		return Answer{}, ErrInvalidOption
	}

	e.selected = option
	correct := option == q.CorrectAnswer
	if correct {
		e.score++
	}
	e.generation++

	return Answer{Accepted: true, Correct: correct, Token: e.generation}, nil
}

// Advance moves past a revealed question. It does nothing and returns false
// when tok is stale.
func (e *Engine) Advance(tok Token) bool {
	if tok != e.generation || e.finished || e.selected < 0 {
		return false
	}
	e.generation++

	if e.index < len(e.questions)-1 {
		e.index++
		e.selected = -1
		return true
	}

	e.finished = true
	return true
}

// Restart resets the attempt in place and invalidates pending advances.
func (e *Engine) Restart() {
	e.index = 0
	e.selected = -1
	e.score = 0
	e.finished = false
	e.generation++
}

// Invalidate drops any pending advance without touching progress.
func (e *Engine) Invalidate() {
	e.generation++
}

func (e *Engine) Phase() Phase {
	switch {
	case e.finished:
		return PhaseFinished
	case e.selected >= 0:
		return PhaseRevealed
	}
	return PhaseAnswering
}

func (e *Engine) Index() int { return e.index }
func (e *Engine) Total() int { return len(e.questions) }
func (e *Engine) Score() int { return e.score }
func (e *Engine) Finished() bool { return e.finished }

// Selected returns the chosen option of the current question.
func (e *Engine) Selected() (int, bool) {
	return e.selected, e.selected >= 0
}

func (e *Engine) Question() entities.QuizQuestion {
	return e.questions[e.index]
}

func (e *Engine) Stars() int {
	return Stars(e.score, len(e.questions))
}

// Stars maps a score to a 0..MaxStars rating: round(score/total*MaxStars).
func Stars(score, total int) int {
	if total <= 0 || score <= 0 {
		return 0
	}
	stars := int(math.Round(float64(score) / float64(total) * MaxStars))
	if stars > MaxStars {
		return MaxStars
	}
	return stars
}
