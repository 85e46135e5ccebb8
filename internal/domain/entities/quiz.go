package entities

import (
	"errors"
	"time"
)

var ErrSubmissionNotFound = errors.New("submission not found")

// Answer is one entry of a submission: the question id and the selected option,
// nil when the question was left unanswered.
type Answer struct {
	QuestionID     QuestionID `json:"questionId"`
	SelectedOption *string    `json:"selectedOption"`
}

// NewAnswer creates an answer for the question with the given selection.
func NewAnswer(id QuestionID, selected *string) Answer {
	a := Answer{QuestionID: id}
	if selected != nil {
		s := *selected
		a.SelectedOption = &s
	}
	return a
}

// IsAnswered reports whether an option was selected.
func (a Answer) IsAnswered() bool {
	return a.SelectedOption != nil
}

// Submission is a scored set of answers recorded by the quiz server.
type Submission struct {
	ID          string    // unique submission ID
	Answers     []Answer  // answers in question order
	Score       int       // number of correct answers
	Total       int       // number of questions in the bank at submission time
	SubmittedAt time.Time // timestamp when the submission was scored
}

// NewSubmission creates a submission for the given answers.
func NewSubmission(id string, answers []Answer, total int) *Submission {
	return &Submission{
		ID:          id,
		Answers:     answers,
		Total:       total,
		SubmittedAt: time.Now(),
	}
}

// Grade scores the submission against the question set keyed by question id.
// Unanswered questions and unknown ids score nothing.
func (s *Submission) Grade(questions map[QuestionID]Question) {
	s.Score = 0
	for _, a := range s.Answers {
		if !a.IsAnswered() {
			continue
		}
		q, ok := questions[a.QuestionID]
		if !ok {
			continue
		}
		if q.IsCorrect(*a.SelectedOption) {
			s.Score++
		}
	}
}
