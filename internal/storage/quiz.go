package storage

import (
	"context"
	"sync"

	"github.com/aliskhannn/quizrunner/internal/domain/entities"
)

var ErrSubmissionNotFound = entities.ErrSubmissionNotFound

// SubmissionStorage provides in-memory storage for scored submissions.
type SubmissionStorage struct {
	mu          sync.RWMutex
	submissions map[string]*entities.Submission
}

// NewSubmissionStorage creates a new SubmissionStorage.
func NewSubmissionStorage() *SubmissionStorage {
	return &SubmissionStorage{
		submissions: make(map[string]*entities.Submission),
	}
}

// Save stores a copy of the submission.
func (s *SubmissionStorage) Save(_ context.Context, sub *entities.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions[sub.ID] = cloneSubmission(sub)
	return nil
}

// Get retrieves a submission by id.
func (s *SubmissionStorage) Get(_ context.Context, id string) (*entities.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.submissions[id]
	if !ok {
		return nil, ErrSubmissionNotFound
	}
	return cloneSubmission(sub), nil
}

// Delete removes a submission.
func (s *SubmissionStorage) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.submissions, id)
	return nil
}

func cloneSubmission(sub *entities.Submission) *entities.Submission {
	c := *sub
	c.Answers = make([]entities.Answer, len(sub.Answers))
	for i, a := range sub.Answers {
		c.Answers[i] = entities.NewAnswer(a.QuestionID, a.SelectedOption)
	}
	return &c
}
