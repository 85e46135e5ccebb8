package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/aliskhannn/quizrunner/internal/domain/entities"
)

// Session is one attempt at the quiz, from load to completion. It owns the
// question list, the cursor, the per-question selections and both scores.
// A Session is not reusable: a new attempt needs a new Session.
//
// Mutating calls are serialized. Load and submit are the only calls that wait
// on the network; while one of them is in flight every other mutating call
// fails with ErrBusy.
type Session struct {
	gateway Gateway
	logger  *zap.Logger
	scoring ScoringMode

	mu          sync.Mutex
	state       State
	questions   []entities.Question
	index       int       // 0..len(questions); len(questions) means complete
	selections  []*string // nil entry means unanswered
	counted     []bool    // question currently contributes to localScore
	revealed    bool
	localScore  int
	serverScore *int
	loadErr     error
	submitErr   error
}

// Option configures a Session.
type Option func(*Session)

// WithScoring sets how the local score is computed.
func WithScoring(mode ScoringMode) Option {
	return func(s *Session) {
		s.scoring = mode
	}
}

// NewSession creates an empty session bound to a gateway.
func NewSession(gateway Gateway, logger *zap.Logger, opts ...Option) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Session{
		gateway: gateway,
		logger:  logger,
		scoring: ScoringPerQuestion,
		state:   StateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start fetches the questions from the gateway and loads them. Any fetch
// error is returned wrapped in ErrLoad and leaves the session failed.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if err := s.checkLoadable(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.state = StateLoading
	s.mu.Unlock()

	questions, err := s.gateway.FetchQuestions(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		return s.failLoad(fmt.Errorf("%w: %w", ErrLoad, err))
	}

	return s.load(questions)
}

// Load populates the session with questions and resets all progress. The
// list must be non-empty, every question well-formed and ids unique.
func (s *Session) Load(questions []entities.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkLoadable(); err != nil {
		return err
	}

	return s.load(questions)
}

// SelectOption records option as the answer to the current question and
// reveals its correctness. It may be called repeatedly before Advance; the
// last call wins.
func (s *Session) SelectOption(option string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkActive(); err != nil {
		return err
	}

	q := s.questions[s.index]
	if !q.HasOption(option) {
		s.logger.Debug("selected value is not an option",
			zap.Stringer("question_id", q.ID),
			zap.String("option", option),
		)
	}

	selected := option
	s.selections[s.index] = &selected

	correct := q.IsCorrect(option)
	switch s.scoring {
	case ScoringLegacy:
		if correct {
			s.localScore++
		}
	default:
		if correct && !s.counted[s.index] {
			s.localScore++
			s.counted[s.index] = true
		} else if !correct && s.counted[s.index] {
			s.localScore--
			s.counted[s.index] = false
		}
	}

	s.revealed = true

	return nil
}

// Advance moves to the next question. Advancing past the last question
// completes the sequence and submits the answers; it returns only after the
// submission finished. A failed submission is returned wrapped in
// ErrSubmission, but the session is complete either way.
func (s *Session) Advance(ctx context.Context) error {
	s.mu.Lock()

	if err := s.checkActive(); err != nil {
		s.mu.Unlock()
		return err
	}

	if s.index < len(s.questions)-1 {
		s.revealed = false
		s.index++
		s.mu.Unlock()
		return nil
	}

	s.index = len(s.questions)
	s.state = StateSubmitting
	answers := s.answers()
	s.mu.Unlock()

	score, err := s.gateway.SubmitAnswers(ctx, answers)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateComplete

	if err != nil {
		s.submitErr = err
		s.logger.Warn("quiz submission failed, falling back to local score",
			zap.Int("local_score", s.localScore),
			zap.Int("total", len(s.questions)),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %w", ErrSubmission, err)
	}

	s.serverScore = &score
	s.revealed = true

	s.logger.Info("quiz completed",
		zap.Int("server_score", score),
		zap.Int("local_score", s.localScore),
		zap.Int("total", len(s.questions)),
	)

	return nil
}

// Answers returns one entry per question in question order with the recorded
// selections.
func (s *Session) Answers() []entities.Answer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answers()
}

// Selections returns a copy of the recorded selections.
func (s *Session) Selections() []*string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*string, len(s.selections))
	for i, sel := range s.selections {
		if sel != nil {
			v := *sel
			out[i] = &v
		}
	}
	return out
}

// View returns the render-ready state of the session.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		State:       s.state,
		Position:    s.index,
		Total:       len(s.questions),
		Revealed:    s.revealed,
		LocalScore:  s.localScore,
		LoadErr:     s.loadErr,
		SubmitErr:   s.submitErr,
		ServerScore: copyInt(s.serverScore),
	}

	if s.state == StateActive {
		q := s.questions[s.index]
		q.Options = append([]string(nil), q.Options...)
		v.Question = &q
		if sel := s.selections[s.index]; sel != nil {
			selected := *sel
			v.Selected = &selected
		}
		if s.revealed {
			v.CorrectAnswer = q.CorrectAnswer
		}
	}

	return v
}

func (s *Session) load(questions []entities.Question) error {
	if len(questions) == 0 {
		return s.failLoad(fmt.Errorf("%w: no questions", ErrLoad))
	}

	seen := make(map[entities.QuestionID]struct{}, len(questions))
	loaded := make([]entities.Question, 0, len(questions))
	for _, q := range questions {
		if err := q.Validate(); err != nil {
			return s.failLoad(fmt.Errorf("%w: %w", ErrLoad, err))
		}
		if _, dup := seen[q.ID]; dup {
			return s.failLoad(fmt.Errorf("%w: duplicate question id %s", ErrLoad, q.ID))
		}
		seen[q.ID] = struct{}{}

		q.Options = append([]string(nil), q.Options...)
		loaded = append(loaded, q)
	}

	s.questions = loaded
	s.index = 0
	s.selections = make([]*string, len(loaded))
	s.counted = make([]bool, len(loaded))
	s.revealed = false
	s.localScore = 0
	s.serverScore = nil
	s.loadErr = nil
	s.submitErr = nil
	s.state = StateActive

	s.logger.Info("quiz loaded", zap.Int("questions", len(loaded)))

	return nil
}

func (s *Session) failLoad(err error) error {
	s.state = StateFailed
	s.loadErr = err
	s.logger.Error("quiz load failed", zap.Error(err))
	return err
}

func (s *Session) answers() []entities.Answer {
	out := make([]entities.Answer, len(s.questions))
	for i, q := range s.questions {
		out[i] = entities.NewAnswer(q.ID, s.selections[i])
	}
	return out
}

func (s *Session) checkLoadable() error {
	switch s.state {
	case StateIdle, StateFailed:
		return nil
	case StateLoading, StateSubmitting:
		return ErrBusy
	case StateComplete:
		return ErrSessionComplete
	default:
		return ErrAlreadyLoaded
	}
}

func (s *Session) checkActive() error {
	switch s.state {
	case StateActive:
		return nil
	case StateLoading, StateSubmitting:
		return ErrBusy
	case StateComplete:
		return ErrSessionComplete
	default:
		return ErrNoActiveQuestion
	}
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
