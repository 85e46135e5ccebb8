package httpapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/quizrunner/internal/delivery/httpapi"
	"github.com/aliskhannn/quizrunner/internal/domain/entities"
	"github.com/aliskhannn/quizrunner/internal/gateway"
	"github.com/aliskhannn/quizrunner/internal/metrics"
	"github.com/aliskhannn/quizrunner/internal/repository"
	"github.com/aliskhannn/quizrunner/internal/service"
	"github.com/aliskhannn/quizrunner/internal/storage"
)

type failingStore struct{}

func (failingStore) Save(context.Context, *entities.Submission) error {
	return errors.New("disk full")
}

func (failingStore) Get(context.Context, string) (*entities.Submission, error) {
	return nil, entities.ErrSubmissionNotFound
}

func newBank(t *testing.T) *repository.QuestionBank {
	t.Helper()
	bank, err := repository.NewQuestionBankFrom([]entities.Question{
		{ID: entities.NumericID(1), Text: "Capital of France?", Options: []string{"Paris", "Rome"}, CorrectAnswer: "Paris"},
		{ID: entities.NumericID(2), Text: "2+2?", Options: []string{"3", "4"}, CorrectAnswer: "4"},
		{ID: entities.StringID("q3"), Text: "Largest planet?", Options: []string{"Mars", "Jupiter"}, CorrectAnswer: "Jupiter"},
	})
	require.NoError(t, err)
	return bank
}

func newServer(t *testing.T, store httpapi.SubmissionStore) *httptest.Server {
	t.Helper()

	var seq atomic.Int64
	h := httpapi.NewHandler(
		zap.NewNop(),
		newBank(t),
		store,
		metrics.New(),
		[]string{"http://localhost:3000"},
		func() string { return fmt.Sprintf("sub-%d", seq.Add(1)) },
	)

	srv := httptest.NewServer(h.Routes())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	res, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer res.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	return res, out
}

func TestGetQuiz(t *testing.T) {
	srv := newServer(t, storage.NewSubmissionStorage())

	res, err := http.Get(srv.URL + "/api/quiz")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"correctAnswer":"Paris"`)
	assert.Contains(t, string(body), `"id":"q3"`)
	assert.Contains(t, string(body), `"id":1`)
}

func TestSubmitScoresAndRecords(t *testing.T) {
	store := storage.NewSubmissionStorage()
	srv := newServer(t, store)

	res, out := post(t, srv.URL+"/api/submit", `{"answers":[
		{"questionId":1,"selectedOption":"Paris"},
		{"questionId":2,"selectedOption":"3"},
		{"questionId":"q3","selectedOption":null}
	]}`)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, float64(1), out["score"])
	assert.Equal(t, float64(3), out["total"])
	assert.Equal(t, "sub-1", out["submissionId"])

	sub, err := store.Get(context.Background(), "sub-1")
	require.NoError(t, err)
	assert.Equal(t, 1, sub.Score)
	assert.Nil(t, sub.Answers[2].SelectedOption)

	res, err = http.Get(srv.URL + "/api/submissions/sub-1")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, err = http.Get(srv.URL + "/api/submissions/nope")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestSubmitRejectsBadPayloads(t *testing.T) {
	srv := newServer(t, storage.NewSubmissionStorage())

	bodies := map[string]string{
		"bad json":        `{`,
		"missing answers": `{}`,
		"too few":         `{"answers":[{"questionId":1,"selectedOption":"Paris"}]}`,
		"unknown id": `{"answers":[
			{"questionId":1,"selectedOption":"Paris"},
			{"questionId":2,"selectedOption":"4"},
			{"questionId":99,"selectedOption":"x"}]}`,
		"duplicate id": `{"answers":[
			{"questionId":1,"selectedOption":"Paris"},
			{"questionId":1,"selectedOption":"Paris"},
			{"questionId":"q3","selectedOption":"x"}]}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			res, out := post(t, srv.URL+"/api/submit", body)
			assert.Equal(t, http.StatusBadRequest, res.StatusCode)
			assert.NotEmpty(t, out["error"])
		})
	}
}

func TestSubmitStoreFailure(t *testing.T) {
	srv := newServer(t, failingStore{})

	res, _ := post(t, srv.URL+"/api/submit", `{"answers":[
		{"questionId":1,"selectedOption":"Paris"},
		{"questionId":2,"selectedOption":"4"},
		{"questionId":"q3","selectedOption":"Jupiter"}]}`)
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	srv := newServer(t, storage.NewSubmissionStorage())

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/submit", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, "http://localhost:3000", res.Header.Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newServer(t, storage.NewSubmissionStorage())

	res, err := http.Get(srv.URL + "/api/quiz")
	require.NoError(t, err)
	res.Body.Close()

	res, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `http_requests_total{endpoint="/api/quiz",method="GET",status="200"} 1`)
}

func TestSessionAgainstServer(t *testing.T) {
	srv := newServer(t, storage.NewSubmissionStorage())
	ctx := context.Background()

	client := gateway.New(gateway.Config{BaseURL: srv.URL, Timeout: 5 * time.Second}, zap.NewNop())
	s := service.NewSession(client, zap.NewNop())
	require.NoError(t, s.Start(ctx))

	for _, opt := range []string{"Paris", "4", "Mars"} {
		require.NoError(t, s.SelectOption(opt))
		require.NoError(t, s.Advance(ctx))
	}

	v := s.View()
	assert.True(t, v.Complete())
	assert.True(t, v.Confirmed())
	assert.Equal(t, 2, v.DisplayScore())
	assert.Equal(t, 2, v.LocalScore)
}

func TestSessionWithRejectedSubmission(t *testing.T) {
	srv := newServer(t, failingStore{})
	ctx := context.Background()

	client := gateway.New(gateway.Config{BaseURL: srv.URL, Timeout: 5 * time.Second}, zap.NewNop())
	s := service.NewSession(client, zap.NewNop())
	require.NoError(t, s.Start(ctx))

	require.NoError(t, s.SelectOption("Paris"))
	require.NoError(t, s.Advance(ctx))
	require.NoError(t, s.Advance(ctx))
	err := s.Advance(ctx)
	require.ErrorIs(t, err, service.ErrSubmission)
	require.ErrorIs(t, err, gateway.ErrTransport)

	v := s.View()
	assert.True(t, v.Complete())
	assert.False(t, v.Confirmed())
	assert.Equal(t, 1, v.DisplayScore())
}
