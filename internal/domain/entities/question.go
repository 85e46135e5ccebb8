package entities

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrMalformedQuestion = errors.New("malformed question")
	ErrInvalidQuestionID = errors.New("question id must be a JSON string or number")
)

// QuestionID is a question identifier in its wire form. Question banks use
// either JSON strings or JSON numbers, so the raw token is kept and echoed back
// unchanged on submission.
type QuestionID string

// StringID returns a QuestionID that encodes s as a JSON string.
func StringID(s string) QuestionID {
	b, _ := json.Marshal(s)
	return QuestionID(b)
}

// NumericID returns a QuestionID that encodes n as a JSON number.
func NumericID(n int64) QuestionID {
	return QuestionID(fmt.Sprintf("%d", n))
}

func (id QuestionID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	return []byte(id), nil
}

func (id *QuestionID) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}

	switch v.(type) {
	case string, json.Number:
	default:
		return ErrInvalidQuestionID
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return err
	}
	*id = QuestionID(buf.String())
	return nil
}

// String returns the identifier as text: strings are unquoted, numbers are
// returned as written.
func (id QuestionID) String() string {
	var s string
	if err := json.Unmarshal([]byte(id), &s); err == nil {
		return s
	}
	return string(id)
}

// Question is a single multiple-choice question. Options are matched by value.
type Question struct {
	ID            QuestionID `json:"id"`
	Text          string     `json:"text"`
	Options       []string   `json:"options"`
	CorrectAnswer string     `json:"correctAnswer"`
}

// Validate reports whether the question is well-formed: it has an id, at least
// one option, and its correct answer equals exactly one option.
func (q Question) Validate() error {
	if q.ID == "" {
		return fmt.Errorf("%w: missing id", ErrMalformedQuestion)
	}
	if len(q.Options) == 0 {
		return fmt.Errorf("%w: question %s has no options", ErrMalformedQuestion, q.ID)
	}

	matches := 0
	for _, opt := range q.Options {
		if opt == q.CorrectAnswer {
			matches++
		}
	}
	if matches != 1 {
		return fmt.Errorf("%w: question %s: correct answer matches %d options",
			ErrMalformedQuestion, q.ID, matches)
	}

	return nil
}

// IsCorrect reports whether option equals the correct answer.
func (q Question) IsCorrect(option string) bool {
	return option == q.CorrectAnswer
}

// HasOption reports whether option is one of the question's options.
func (q Question) HasOption(option string) bool {
	for _, opt := range q.Options {
		if opt == option {
			return true
		}
	}
	return false
}
