package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/quizrunner/internal/domain/entities"
	"github.com/aliskhannn/quizrunner/internal/metrics"
)

const maxSubmitBody = 1 << 20

var (
	errAnswerCount    = errors.New("answers must contain one entry per question")
	errUnknownID      = errors.New("unknown question id")
	errDuplicateID    = errors.New("duplicate question id")
	errMissingAnswers = errors.New("answers field is required")
)

type quizResponse struct {
	Questions []entities.Question `json:"questions"`
}

type submitRequest struct {
	Answers *[]entities.Answer `json:"answers"`
}

type submitResponse struct {
	Score        int    `json:"score"`
	Total        int    `json:"total"`
	SubmissionID string `json:"submissionId"`
}

type submissionResponse struct {
	ID          string            `json:"id"`
	Score       int               `json:"score"`
	Total       int               `json:"total"`
	Answers     []entities.Answer `json:"answers"`
	SubmittedAt string            `json:"submittedAt"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) getQuiz(w http.ResponseWriter, r *http.Request) {
	questions, err := h.bank.GetAll(r.Context())
	if err != nil {
		h.logger.Error("failed to load questions", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "questions unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, quizResponse{Questions: questions})
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSubmitBody)).Decode(&req); err != nil {
		h.reject(w, fmt.Errorf("bad json: %w", err))
		return
	}
	if req.Answers == nil {
		h.reject(w, errMissingAnswers)
		return
	}

	answers := *req.Answers
	if err := h.validateAnswers(answers); err != nil {
		h.reject(w, err)
		return
	}

	sub := entities.NewSubmission(h.newID(), answers, h.bank.Len())
	sub.Grade(h.bank.Index())

	if err := h.store.Save(r.Context(), sub); err != nil {
		h.metrics.Submissions.WithLabelValues(metrics.OutcomeFailed).Inc()
		h.logger.Error("failed to save submission",
			zap.String("submission_id", sub.ID),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "submission could not be recorded"})
		return
	}

	h.metrics.ObserveScore(sub.Score, sub.Total)
	h.logger.Info("submission scored",
		zap.String("submission_id", sub.ID),
		zap.Int("score", sub.Score),
		zap.Int("total", sub.Total),
	)

	writeJSON(w, http.StatusOK, submitResponse{
		Score:        sub.Score,
		Total:        sub.Total,
		SubmissionID: sub.ID,
	})
}

func (h *Handler) getSubmission(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "submissionID")

	sub, err := h.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, entities.ErrSubmissionNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
			return
		}
		h.logger.Error("failed to get submission",
			zap.String("submission_id", id),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "submission unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, submissionResponse{
		ID:          sub.ID,
		Score:       sub.Score,
		Total:       sub.Total,
		Answers:     sub.Answers,
		SubmittedAt: sub.SubmittedAt.UTC().Format(time.RFC3339),
	})
}

// validateAnswers checks that there is exactly one answer per bank question.
func (h *Handler) validateAnswers(answers []entities.Answer) error {
	if len(answers) != h.bank.Len() {
		return fmt.Errorf("%w: got %d, want %d", errAnswerCount, len(answers), h.bank.Len())
	}

	index := h.bank.Index()
	seen := make(map[entities.QuestionID]struct{}, len(answers))
	for _, a := range answers {
		if _, ok := index[a.QuestionID]; !ok {
			return fmt.Errorf("%w: %s", errUnknownID, a.QuestionID)
		}
		if _, dup := seen[a.QuestionID]; dup {
			return fmt.Errorf("%w: %s", errDuplicateID, a.QuestionID)
		}
		seen[a.QuestionID] = struct{}{}
	}

	return nil
}

func (h *Handler) reject(w http.ResponseWriter, err error) {
	h.metrics.Submissions.WithLabelValues(metrics.OutcomeRejected).Inc()
	h.logger.Debug("submission rejected", zap.Error(err))
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
