package cli_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/quizrunner/internal/delivery/cli"
	"github.com/aliskhannn/quizrunner/internal/domain/entities"
	"github.com/aliskhannn/quizrunner/internal/gateway"
	"github.com/aliskhannn/quizrunner/internal/service"
)

type stubGateway struct {
	questions []entities.Question
	fetchErr  error
	score     int
	submitErr error
	answers   []entities.Answer
}

func (g *stubGateway) FetchQuestions(context.Context) ([]entities.Question, error) {
	return g.questions, g.fetchErr
}

func (g *stubGateway) SubmitAnswers(_ context.Context, answers []entities.Answer) (int, error) {
	g.answers = answers
	return g.score, g.submitErr
}

func questions() []entities.Question {
	return []entities.Question{
		{ID: entities.NumericID(1), Text: "Capital of France?", Options: []string{"Rome", "Paris"}, CorrectAnswer: "Paris"},
		{ID: entities.NumericID(2), Text: "2+2?", Options: []string{"4", "5"}, CorrectAnswer: "4"},
	}
}

func run(t *testing.T, gw *stubGateway, input string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	s := service.NewSession(gw, zap.NewNop())
	err := cli.NewRunner(s, strings.NewReader(input), &out, zap.NewNop()).Run(context.Background())
	return out.String(), err
}

func TestRunFullQuiz(t *testing.T) {
	gw := &stubGateway{questions: questions(), score: 2}

	out, err := run(t, gw, "2\nn\n1\ns\n")
	require.NoError(t, err)

	assert.Contains(t, out, "Question 1/2")
	assert.Contains(t, out, "Q. Capital of France?")
	assert.Contains(t, out, "Correct answer: Paris")
	assert.Contains(t, out, "Question 2/2")
	assert.Contains(t, out, "Quiz Completed!")
	assert.Contains(t, out, "Your score: 2 out of 2\n")
	assert.NotContains(t, out, "unconfirmed")

	require.Len(t, gw.answers, 2)
	assert.Equal(t, "Paris", *gw.answers[0].SelectedOption)
	assert.Equal(t, "4", *gw.answers[1].SelectedOption)
}

func TestRunShowsUnconfirmedScore(t *testing.T) {
	gw := &stubGateway{questions: questions(), submitErr: gateway.ErrTransport}

	out, err := run(t, gw, "2\nn\n2\ns\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Your score: 1 out of 2 (unconfirmed)")
}

func TestRunLoadFailure(t *testing.T) {
	gw := &stubGateway{fetchErr: gateway.ErrTransport}

	out, err := run(t, gw, "")
	require.ErrorIs(t, err, service.ErrLoad)
	assert.Contains(t, out, "Error:")
	assert.NotContains(t, out, "Question")
}

func TestRunInvalidInputAndAbort(t *testing.T) {
	gw := &stubGateway{questions: questions()}

	out, err := run(t, gw, "7\nabc\nq\n")
	require.ErrorIs(t, err, cli.ErrAborted)
	assert.Contains(t, out, "Enter a number from 1 to 2")
	assert.Nil(t, gw.answers)
}

func TestRunEOFAborts(t *testing.T) {
	gw := &stubGateway{questions: questions()}

	_, err := run(t, gw, "1\n")
	require.ErrorIs(t, err, cli.ErrAborted)
}
