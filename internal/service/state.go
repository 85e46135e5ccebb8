package service

import "fmt"

// State is the position of a session in its lifecycle.
type State int

const (
	StateIdle       State = iota // created, nothing loaded yet
	StateLoading                 // question fetch in flight
	StateFailed                  // load failed, no question was shown
	StateActive                  // a question is current
	StateSubmitting              // past the last question, submission in flight
	StateComplete                // terminal
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateFailed:
		return "failed"
	case StateActive:
		return "active"
	case StateSubmitting:
		return "submitting"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// ScoringMode controls how correct selections count towards the local score.
type ScoringMode int

const (
	// ScoringPerQuestion counts each question at most once. Re-selecting a
	// wrong option after a correct one withdraws the question's point.
	ScoringPerQuestion ScoringMode = iota
	// ScoringLegacy increments the score on every correct selection, including
	// repeated clicks on the same option.
	ScoringLegacy
)

// ParseScoringMode maps a configuration value to a ScoringMode. An empty
// value selects ScoringPerQuestion.
func ParseScoringMode(s string) (ScoringMode, error) {
	switch s {
	case "", "per_question":
		return ScoringPerQuestion, nil
	case "legacy":
		return ScoringLegacy, nil
	default:
		return ScoringPerQuestion, fmt.Errorf("%w: %q", ErrInvalidScoring, s)
	}
}
