package cli

import (
	"context"

	"github.com/aliskhannn/quizrunner/internal/service"
)

// QuizSession is the session controller driven by the terminal.
type QuizSession interface {
	Start(ctx context.Context) error
	SelectOption(option string) error
	Advance(ctx context.Context) error
	View() service.View
}
