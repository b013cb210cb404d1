package navigation

// EventKind names a navigation request coming from a screen.
type EventKind string

const (
	EventSelectBook   EventKind = "select_book"
	EventSelectLesson EventKind = "select_lesson"
	EventBack         EventKind = "back"
	EventStartQuiz    EventKind = "start_quiz" // "next" and "exercises" on the lesson screen
	EventStartGames   EventKind = "start_games"
	EventOpenVocab    EventKind = "open_vocab"
	EventCompleteQuiz EventKind = "complete_quiz"
	EventJumpHome     EventKind = "jump_home"
	EventJumpUnits    EventKind = "jump_units"
	EventJumpGames    EventKind = "jump_games"
)

// Event is a single navigation request. BookID and LessonID are only read by
// the select events.
type Event struct {
	Kind     EventKind
	BookID   string
	LessonID string
}

func SelectBook(bookID string) Event {
	return Event{Kind: EventSelectBook, BookID: bookID}
}

func SelectLesson(lessonID string) Event {
	return Event{Kind: EventSelectLesson, LessonID: lessonID}
}

func Back() Event { return Event{Kind: EventBack} }
func StartQuiz() Event { return Event{Kind: EventStartQuiz} }
func StartGames() Event { return Event{Kind: EventStartGames} }
func OpenVocab() Event { return Event{Kind: EventOpenVocab} }
func CompleteQuiz() Event { return Event{Kind: EventCompleteQuiz} }
func JumpHome() Event { return Event{Kind: EventJumpHome} }
func JumpUnits() Event { return Event{Kind: EventJumpUnits} }
func JumpGames() Event { return Event{Kind: EventJumpGames} }
