package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/quizrunner/internal/domain/entities"
)

const (
	quizPath   = "/api/quiz"
	submitPath = "/api/submit"

	maxBodySize = 4 << 20
)

// Config holds quiz API client settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the remote quiz API: it fetches the question list and
// submits the final answers.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// New creates a quiz API client.
func New(cfg Config, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

type questionsResponse struct {
	Questions *[]entities.Question `json:"questions"`
}

type submitRequest struct {
	Answers []entities.Answer `json:"answers"`
}

type submitResponse struct {
	Score *int `json:"score"`
}

// FetchQuestions loads the ordered question list.
func (c *Client) FetchQuestions(ctx context.Context) ([]entities.Question, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+quizPath, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	var out questionsResponse
	if err := c.do(req, &out); err != nil {
		return nil, fmt.Errorf("fetch questions: %w", err)
	}
	if out.Questions == nil {
		return nil, fmt.Errorf("fetch questions: %w: missing questions field", ErrFormat)
	}

	c.logger.Debug("questions fetched", zap.Int("count", len(*out.Questions)))

	return *out.Questions, nil
}

// SubmitAnswers posts the answers and returns the authoritative score.
func (c *Client) SubmitAnswers(ctx context.Context, answers []entities.Answer) (int, error) {
	if answers == nil {
		answers = []entities.Answer{}
	}

	body, err := json.Marshal(submitRequest{Answers: answers})
	if err != nil {
		return 0, fmt.Errorf("submit answers: %w: encode body: %v", ErrFormat, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+submitPath, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("submit answers: %w: build request: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	var out submitResponse
	if err := c.do(req, &out); err != nil {
		return 0, fmt.Errorf("submit answers: %w", err)
	}
	if out.Score == nil {
		return 0, fmt.Errorf("submit answers: %w: missing score field", ErrFormat)
	}

	c.logger.Debug("answers submitted",
		zap.Int("answers", len(answers)),
		zap.Int("score", *out.Score),
	)

	return *out.Score, nil
}

func (c *Client) do(req *http.Request, out any) error {
	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrTransport, req.Method, req.URL.Path, err)
	}
	defer res.Body.Close()

	if res.StatusCode/100 != 2 {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, maxBodySize))
		return fmt.Errorf("%w: %s %s: %s", ErrTransport, req.Method, req.URL.Path, res.Status)
	}

	data, err := io.ReadAll(io.LimitReader(res.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrTransport, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode body: %v", ErrFormat, err)
	}

	return nil
}
