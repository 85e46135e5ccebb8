package service

import "github.com/aliskhannn/quizrunner/internal/domain/entities"

// View is a read-only snapshot of a session for rendering.
type View struct {
	State    State
	Position int // zero-based index of the current question, Total when complete
	Total    int

	Question      *entities.Question // current question, nil unless active
	Selected      *string            // selection for the current question
	Revealed      bool
	CorrectAnswer string // set once the current question is revealed

	LocalScore  int
	ServerScore *int

	LoadErr   error
	SubmitErr error
}

// Complete reports whether the sequence is finished.
func (v View) Complete() bool {
	return v.State == StateComplete
}

// IsLast reports whether the current question is the last one.
func (v View) IsLast() bool {
	return v.State == StateActive && v.Position == v.Total-1
}

// DisplayScore is the server score when present, the local score otherwise.
func (v View) DisplayScore() int {
	if v.ServerScore != nil {
		return *v.ServerScore
	}
	return v.LocalScore
}

// Confirmed reports whether the displayed score came from the server.
func (v View) Confirmed() bool {
	return v.ServerScore != nil
}
