// Package navigation implements the screen navigator: a finite-state machine
// that moves a chat between the library screens and carries the selected
// book and lesson between them.
package navigation

import "fmt"

// View is one full-screen mode the chat can be in.
type View string

const (
	ViewHome   View = "home"
	ViewUnits  View = "units"
	ViewLesson View = "lesson"
	ViewQuiz   View = "quiz"
	ViewGames  View = "games"
	ViewVocab  View = "vocab"
)

var views = []View{ViewHome, ViewUnits, ViewLesson, ViewQuiz, ViewGames, ViewVocab}

// ParseView converts a stored string back into a View.
func ParseView(s string) (View, error) {
	for _, v := range views {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown view %q", s)
}

func (v View) String() string {
	return string(v)
}
