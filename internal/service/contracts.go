package service

import (
	"context"

	"github.com/aliskhannn/quizrunner/internal/domain/entities"
)

// Gateway is the remote quiz API: the question source at the start of a
// session and the submission endpoint at its end.
type Gateway interface {
	FetchQuestions(ctx context.Context) ([]entities.Question, error)
	SubmitAnswers(ctx context.Context, answers []entities.Answer) (int, error)
}
