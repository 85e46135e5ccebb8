package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/aliskhannn/quizrunner/internal/metrics"
)

// Handler serves the question bank and scores submissions.
type Handler struct {
	logger      *zap.Logger
	bank        QuestionBank
	store       SubmissionStore
	metrics     *metrics.Metrics
	corsOrigins []string
	newID       func() string
}

func NewHandler(
	logger *zap.Logger,
	bank QuestionBank,
	store SubmissionStore,
	m *metrics.Metrics,
	corsOrigins []string,
	newID func() string,
) *Handler {
	return &Handler{
		logger:      logger,
		bank:        bank,
		store:       store,
		metrics:     m,
		corsOrigins: corsOrigins,
		newID:       newID,
	}
}

// Routes builds the router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(h.metrics.Middleware)
	r.Use(h.logRequests)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.corsOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Method(http.MethodGet, "/metrics", h.metrics.Handler())

	r.Route("/api", func(ar chi.Router) {
		ar.Get("/quiz", h.getQuiz)
		ar.Post("/submit", h.submit)
		ar.Get("/submissions/{submissionID}", h.getSubmission)
	})

	return r
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		h.logger.Debug("request served",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
