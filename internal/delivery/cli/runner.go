package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/aliskhannn/quizrunner/internal/service"
)

var ErrAborted = errors.New("quiz aborted")

// Runner plays one quiz session in a terminal.
type Runner struct {
	session QuizSession
	in      *bufio.Reader
	out     io.Writer
	logger  *zap.Logger
}

func NewRunner(session QuizSession, in io.Reader, out io.Writer, logger *zap.Logger) *Runner {
	return &Runner{
		session: session,
		in:      bufio.NewReader(in),
		out:     out,
		logger:  logger,
	}
}

// Run loads the quiz, walks through every question and prints the result.
// A load failure ends the run before any question is shown. A failed
// submission still ends with the result screen, showing the local score.
func (r *Runner) Run(ctx context.Context) error {
	fmt.Fprintln(r.out, "Loading...")

	if err := r.session.Start(ctx); err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return err
	}

	for {
		v := r.session.View()
		if v.Complete() {
			break
		}

		r.printQuestion(v)

		line, err := r.readLine()
		if err != nil {
			return err
		}

		if err := r.handleInput(ctx, v, line); err != nil {
			return err
		}
	}

	r.printResult(r.session.View())
	return nil
}

func (r *Runner) handleInput(ctx context.Context, v service.View, line string) error {
	switch strings.ToLower(line) {
	case "n", "next", "s", "submit":
		err := r.session.Advance(ctx)
		if errors.Is(err, service.ErrSubmission) {
			r.logger.Warn("submission failed", zap.Error(err))
			return nil
		}
		return err
	case "q", "quit":
		return ErrAborted
	}

	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > len(v.Question.Options) {
		fmt.Fprintf(r.out, "Enter a number from 1 to %d, or %q to continue.\n", len(v.Question.Options), nextKey(v))
		return nil
	}

	return r.session.SelectOption(v.Question.Options[n-1])
}

func (r *Runner) readLine() (string, error) {
	line, err := r.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && strings.TrimSpace(line) != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrAborted
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (r *Runner) printQuestion(v service.View) {
	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "Question %d/%d\n", v.Position+1, v.Total)
	fmt.Fprintf(r.out, "Q. %s\n", v.Question.Text)

	for i, opt := range v.Question.Options {
		marker := " "
		if v.Selected != nil && *v.Selected == opt {
			marker = "x"
		}
		fmt.Fprintf(r.out, "  [%s] %d) %s\n", marker, i+1, opt)
	}

	if v.Revealed {
		fmt.Fprintf(r.out, "Correct answer: %s\n", v.CorrectAnswer)
	}

	label := "Next"
	if v.IsLast() {
		label = "Submit"
	}
	fmt.Fprintf(r.out, "Choose 1-%d, %q for %s, \"q\" to quit: ", len(v.Question.Options), nextKey(v), label)
}

func (r *Runner) printResult(v service.View) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "Quiz Completed!")

	score := fmt.Sprintf("Your score: %d out of %d", v.DisplayScore(), v.Total)
	if !v.Confirmed() {
		score += " (unconfirmed)"
	}
	fmt.Fprintln(r.out, score)
}

func nextKey(v service.View) string {
	if v.IsLast() {
		return "s"
	}
	return "n"
}
