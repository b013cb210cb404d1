package telegram

import (
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionNav    = "nav"
	actionHome   = "home"
	actionUnit   = "unit"
	actionLesson = "lesson"
	actionVocab  = "vocab"
	actionQuiz   = "quiz"
	actionGame   = "game"
)

// Navigation sub-actions.
const (
	navBook     = "book"
	navLesson   = "lesson"
	navBack     = "back"
	navQuiz     = "quiz"
	navGames    = "games"
	navVocab    = "vocab"
	navComplete = "complete"
	navJump     = "jump"
)

// Jump targets of the navigation bar.
const (
	jumpHome  = "home"
	jumpUnits = "units"
	jumpGames = "games"
)

const (
	homeGrade   = "grade"
	unitToggle  = "toggle"
	lessonPlay  = "play"
	lessonPara  = "para"
	vocabNext   = "next"
	vocabPrev   = "prev"
	vocabListen = "listen"
	quizAnswer  = "answer"
	quizRestart = "restart"
)

// maxDataBytes is Telegram's limit on callback data.
const maxDataBytes = 64

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// param returns the i-th parameter or "".
func (cd callbackData) param(i int) string {
	if i < 0 || i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

// intParam parses the i-th parameter as a non-negative int.
func (cd callbackData) intParam(i int) (int, bool) {
	n, err := strconv.Atoi(cd.param(i))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func buildNavCallback(sub string, params ...string) string {
	return callbackData{
		Action: actionNav,
		Params: append([]string{sub}, params...),
	}.encode()
}

func buildSelectBookCallback(bookID string) string {
	return buildNavCallback(navBook, bookID)
}

func buildSelectLessonCallback(lessonID string) string {
	return buildNavCallback(navLesson, lessonID)
}

func buildJumpCallback(target string) string {
	return buildNavCallback(navJump, target)
}

func buildGradeCallback(gradeID string) string {
	return callbackData{Action: actionHome, Params: []string{homeGrade, gradeID}}.encode()
}

func buildUnitToggleCallback(unitID string) string {
	return callbackData{Action: actionUnit, Params: []string{unitToggle, unitID}}.encode()
}

func buildLessonPlayCallback() string {
	return callbackData{Action: actionLesson, Params: []string{lessonPlay}}.encode()
}

func buildParagraphCallback(i int) string {
	return callbackData{Action: actionLesson, Params: []string{lessonPara, strconv.Itoa(i)}}.encode()
}

func buildVocabCallback(sub string) string {
	return callbackData{Action: actionVocab, Params: []string{sub}}.encode()
}

// buildQuizAnswerCallback carries the question index so presses on an
// outdated keyboard can be recognised.
func buildQuizAnswerCallback(questionIndex, option int) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizAnswer, strconv.Itoa(questionIndex), strconv.Itoa(option)},
	}.encode()
}

func buildQuizRestartCallback() string {
	return callbackData{Action: actionQuiz, Params: []string{quizRestart}}.encode()
}

func buildGameCallback(gameID string) string {
	return callbackData{Action: actionGame, Params: []string{gameID}}.encode()
}
