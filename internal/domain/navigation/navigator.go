package navigation

import "fmt"

// Apply returns the state that follows s after ev. On error s is returned
// unchanged together with the reason.
func Apply(s State, ev Event) (State, error) {
	next, err := apply(s.clone(), ev)
	if err != nil {
		return s, err
	}
	if err := next.Validate(); err != nil {
		return s, err
	}
	return next, nil
}

func apply(s State, ev Event) (State, error) {
	switch ev.Kind {
	case EventSelectBook:
		if s.View != ViewHome || ev.BookID == "" {
			return s, invalid(s, ev)
		}
		s.BookID = ev.BookID
		s.LessonID = ""
		s.push(ViewUnits)
		return s, nil

	case EventSelectLesson:
		if s.View != ViewUnits || ev.LessonID == "" {
			return s, invalid(s, ev)
		}
		s.LessonID = ev.LessonID
		s.push(ViewLesson)
		return s, nil

	case EventStartQuiz, EventStartGames, EventOpenVocab:
		if s.View != ViewLesson {
			return s, invalid(s, ev)
		}
		s.push(forwardTarget[ev.Kind])
		return s, nil

	case EventCompleteQuiz:
		if s.View != ViewQuiz {
			return s, invalid(s, ev)
		}
		if !s.HasLesson() {
			return back(s), nil
		}
		return arrive(s, ViewLesson), nil

	case EventBack:
		if s.View == ViewHome {
			return s, invalid(s, ev)
		}
		return back(s), nil

	case EventJumpHome:
		return Initial(), nil

	case EventJumpUnits:
		if !s.HasBook() {
			return s, ErrNoBookSelected
		}
		return arrive(s, ViewUnits), nil

	case EventJumpGames:
		if s.HasLesson() {
			s = arrive(s, ViewLesson)
		} else {
			s.Stack = []View{ViewHome}
		}
		s.push(ViewGames)
		return s, nil
	}

	return s, invalid(s, ev)
}

var forwardTarget = map[EventKind]View{
	EventStartQuiz:  ViewQuiz,
	EventStartGames: ViewGames,
	EventOpenVocab:  ViewVocab,
}

// back pops the current frame. A stack too short to answer falls back to the
// parent the screen layout implies.
func back(s State) State {
	if len(s.Stack) >= 2 {
		return arrive(s, s.Stack[len(s.Stack)-2])
	}
	return arrive(s, fallbackParent(s))
}

func fallbackParent(s State) View {
	switch s.View {
	case ViewUnits:
		return ViewHome
	case ViewLesson:
		return ViewUnits
	case ViewVocab:
		return ViewLesson
	case ViewQuiz:
		if s.HasLesson() {
			return ViewLesson
		}
		if s.HasBook() {
			return ViewUnits
		}
		return ViewHome
	case ViewGames:
		if s.HasLesson() {
			return ViewLesson
		}
		return ViewHome
	}
	return ViewHome
}

// arrive moves to v as if walking back down the stack, dropping the context
// the destination does not carry.
func arrive(s State, v View) State {
	switch v {
	case ViewHome:
		s.BookID = ""
		s.LessonID = ""
	case ViewUnits:
		s.LessonID = ""
	}

	if !s.truncateTo(v) {
		s.Stack = pathTo(v)
	}
	s.View = v
	return s
}

func pathTo(v View) []View {
	switch v {
	case ViewUnits:
		return []View{ViewHome, ViewUnits}
	case ViewLesson:
		return []View{ViewHome, ViewUnits, ViewLesson}
	case ViewHome:
		return []View{ViewHome}
	}
	return []View{ViewHome, v}
}

func invalid(s State, ev Event) error {
	return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, ev.Kind, s.View)
}
