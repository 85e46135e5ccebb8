package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/quizrunner/internal/domain/entities"
	"github.com/aliskhannn/quizrunner/internal/infra/postgres"
)

var ErrSubmissionNotFound = entities.ErrSubmissionNotFound

// TxRunner runs fn inside a database transaction.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}

// SubmissionRepository stores scored quiz submissions in PostgreSQL.
type SubmissionRepository struct {
	db postgres.DBTX
	tx TxRunner
}

// NewSubmissionRepository creates a new SubmissionRepository.
func NewSubmissionRepository(db postgres.DBTX, tx TxRunner) *SubmissionRepository {
	return &SubmissionRepository{db: db, tx: tx}
}

// Save inserts the submission and its answers in one transaction.
func (r *SubmissionRepository) Save(ctx context.Context, sub *entities.Submission) error {
	return r.tx.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO submissions (id, score, total, submitted_at)
			VALUES ($1, $2, $3, $4)
		`, sub.ID, sub.Score, sub.Total, sub.SubmittedAt)
		if err != nil {
			return fmt.Errorf("insert submission: %w", err)
		}

		batch := &pgx.Batch{}
		for i, a := range sub.Answers {
			batch.Queue(`
				INSERT INTO submission_answers (submission_id, position, question_id, selected_option)
				VALUES ($1, $2, $3, $4)
			`, sub.ID, i, string(a.QuestionID), a.SelectedOption)
		}

		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert submission answers: %w", err)
		}

		return nil
	})
}

// Get loads a submission with its answers in original order.
// Ids that are not UUIDs cannot exist and are reported as not found.
func (r *SubmissionRepository) Get(ctx context.Context, id string) (*entities.Submission, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSubmissionNotFound
	}

	var sub entities.Submission
	err := r.db.QueryRow(ctx, `
		SELECT id::text, score, total, submitted_at
		FROM submissions
		WHERE id = $1
	`, id).Scan(&sub.ID, &sub.Score, &sub.Total, &sub.SubmittedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("get submission: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT question_id, selected_option
		FROM submission_answers
		WHERE submission_id = $1
		ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("get submission answers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			questionID string
			selected   *string
		)
		if err := rows.Scan(&questionID, &selected); err != nil {
			return nil, fmt.Errorf("scan submission answer: %w", err)
		}
		sub.Answers = append(sub.Answers, entities.NewAnswer(entities.QuestionID(questionID), selected))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submission answers: %w", err)
	}

	return &sub, nil
}
