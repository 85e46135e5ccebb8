package telegram

import (
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionQuiz = "quiz"
)

// Quiz sub-actions.
const (
	quizStart  = "start"
	quizOption = "opt"
	quizNext   = "next"
)

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

func buildQuizStartCallback() string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizStart},
	}.encode()
}

// buildQuizOptionCallback carries the question position so taps on an
// outdated keyboard can be told apart from the current one.
func buildQuizOptionCallback(position, option int) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizOption, strconv.Itoa(position), strconv.Itoa(option)},
	}.encode()
}

func buildQuizNextCallback(position int) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizNext, strconv.Itoa(position)},
	}.encode()
}

// quizCallback is a decoded quiz callback. Option is -1 unless Sub is quizOption.
type quizCallback struct {
	Sub      string
	Position int
	Option   int
}

func parseQuizCallback(cd callbackData) (quizCallback, bool) {
	if cd.Action != actionQuiz || len(cd.Params) == 0 {
		return quizCallback{}, false
	}

	qc := quizCallback{Sub: cd.Params[0], Option: -1}

	switch qc.Sub {
	case quizStart:
		if len(cd.Params) != 1 {
			return quizCallback{}, false
		}
		return qc, true

	case quizNext:
		if len(cd.Params) != 2 {
			return quizCallback{}, false
		}
		pos, err := strconv.Atoi(cd.Params[1])
		if err != nil || pos < 0 {
			return quizCallback{}, false
		}
		qc.Position = pos
		return qc, true

	case quizOption:
		if len(cd.Params) != 3 {
			return quizCallback{}, false
		}
		pos, err1 := strconv.Atoi(cd.Params[1])
		opt, err2 := strconv.Atoi(cd.Params[2])
		if err1 != nil || err2 != nil || pos < 0 || opt < 0 {
			return quizCallback{}, false
		}
		qc.Position, qc.Option = pos, opt
		return qc, true
	}

	return quizCallback{}, false
}
