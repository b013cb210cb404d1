package navigation

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition = errors.New("invalid navigation transition")
	ErrNoBookSelected    = errors.New("no book selected")
	ErrInconsistentState = errors.New("inconsistent navigation state")
)

// State is the navigator's value. It is never mutated in place: every
// transition returns a fresh copy.
type State struct {
	View     View   `json:"view"`
	BookID   string `json:"book_id,omitempty"`
	LessonID string `json:"lesson_id,omitempty"`
	Stack    []View `json:"stack"` // views entered by forward transitions, current view last
}

// Initial returns the state a new chat starts in.
func Initial() State {
	return State{View: ViewHome, Stack: []View{ViewHome}}
}

func (s State) HasBook() bool { return s.BookID != "" }
func (s State) HasLesson() bool { return s.LessonID != "" }

// Validate reports states that no screen can render: the units screen without
// a book, the lesson screen without a lesson, or a stack whose top is not the
// current view.
func (s State) Validate() error {
	if _, err := ParseView(string(s.View)); err != nil {
		return fmt.Errorf("%w: %v", ErrInconsistentState, err)
	}
	if s.View == ViewUnits && !s.HasBook() {
		return fmt.Errorf("%w: units view without a book", ErrInconsistentState)
	}
	if s.View == ViewLesson && !s.HasLesson() {
		return fmt.Errorf("%w: lesson view without a lesson", ErrInconsistentState)
	}
	if s.HasLesson() && !s.HasBook() {
		return fmt.Errorf("%w: lesson selected without a book", ErrInconsistentState)
	}
	if len(s.Stack) == 0 || s.Stack[len(s.Stack)-1] != s.View {
		return fmt.Errorf("%w: stack top does not match view %s", ErrInconsistentState, s.View)
	}
	return nil
}

func (s State) clone() State {
	out := s
	out.Stack = make([]View, len(s.Stack))
	copy(out.Stack, s.Stack)
	return out
}

// truncateTo cuts the stack just after the last frame for v. It reports false
// when the stack holds no such frame.
func (s *State) truncateTo(v View) bool {
	for i := len(s.Stack) - 1; i >= 0; i-- {
		if s.Stack[i] == v {
			s.Stack = s.Stack[:i+1]
			return true
		}
	}
	return false
}

func (s *State) push(v View) {
	s.Stack = append(s.Stack, v)
	s.View = v
}
