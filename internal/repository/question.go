package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/aliskhannn/quizrunner/internal/domain/entities"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrEmptyBank        = errors.New("question bank is empty")
)

// QuestionBank provides access to the quiz questions.
// This implementation keeps the questions loaded from a JSON file in memory.
type QuestionBank struct {
	questions []entities.Question
	byID      map[entities.QuestionID]entities.Question
}

// NewQuestionBank loads the question bank from a JSON file.
func NewQuestionBank(path string) (*QuestionBank, error) {
	questions, err := readQuestions(path)
	if err != nil {
		return nil, err
	}

	return NewQuestionBankFrom(questions)
}

// NewQuestionBankFrom builds a bank from questions already in memory.
func NewQuestionBankFrom(questions []entities.Question) (*QuestionBank, error) {
	if len(questions) == 0 {
		return nil, ErrEmptyBank
	}

	byID := make(map[entities.QuestionID]entities.Question, len(questions))
	for _, q := range questions {
		if err := q.Validate(); err != nil {
			return nil, err
		}
		if _, dup := byID[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %s", q.ID)
		}
		byID[q.ID] = q
	}

	return &QuestionBank{
		questions: questions,
		byID:      byID,
	}, nil
}

// GetAll returns all questions in bank order.
func (r *QuestionBank) GetAll(_ context.Context) ([]entities.Question, error) {
	out := make([]entities.Question, len(r.questions))
	copy(out, r.questions)
	return out, nil
}

// GetByID returns the question with the given id.
func (r *QuestionBank) GetByID(_ context.Context, id entities.QuestionID) (entities.Question, error) {
	q, ok := r.byID[id]
	if !ok {
		return entities.Question{}, ErrQuestionNotFound
	}
	return q, nil
}

// Index returns the questions keyed by id.
func (r *QuestionBank) Index() map[entities.QuestionID]entities.Question {
	return r.byID
}

// Len returns the number of questions.
func (r *QuestionBank) Len() int {
	return len(r.questions)
}

func readQuestions(path string) ([]entities.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		Questions []entities.Question `json:"questions"`
	}
	if err = json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal questions JSON: %w", err)
	}

	return wrapper.Questions, nil
}
