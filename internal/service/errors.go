package service

import "errors"

var (
	// ErrLoad means the question source returned nothing usable. The session
	// never becomes active after it.
	ErrLoad = errors.New("quiz load failed")
	// ErrSubmission means the final answers were not accepted by the server.
	// The session is still complete and falls back to its local score.
	ErrSubmission = errors.New("quiz submission failed")

	ErrNoActiveQuestion = errors.New("no active question")
	ErrBusy             = errors.New("quiz session is busy")
	ErrSessionComplete  = errors.New("quiz session is complete")
	ErrAlreadyLoaded    = errors.New("quiz session is already loaded")

	ErrInvalidScoring = errors.New("invalid scoring mode")
)
