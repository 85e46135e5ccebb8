package httpapi

import (
	"context"

	"github.com/aliskhannn/quizrunner/internal/domain/entities"
)

// QuestionBank is the source of quiz questions.
type QuestionBank interface {
	GetAll(ctx context.Context) ([]entities.Question, error)
	Index() map[entities.QuestionID]entities.Question
	Len() int
}

// SubmissionStore records scored submissions.
type SubmissionStore interface {
	Save(ctx context.Context, sub *entities.Submission) error
	Get(ctx context.Context, id string) (*entities.Submission, error)
}
