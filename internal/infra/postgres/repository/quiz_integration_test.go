//go:build integration

package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/quizrunner/internal/domain/entities"
	"github.com/aliskhannn/quizrunner/internal/infra/postgres"
	"github.com/aliskhannn/quizrunner/internal/infra/postgres/repository"
)

func TestSubmissionRepositoryIntegration(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{MaxConns: 2})
	require.NoError(t, err)
	defer pool.Close()

	require.NoError(t, postgres.EnsureSchema(ctx, pool))

	repo := repository.NewSubmissionRepository(pool, postgres.NewTransactor(pool))

	a := "Paris"
	sub := entities.NewSubmission(uuid.NewString(), []entities.Answer{
		entities.NewAnswer(entities.NumericID(1), &a),
		entities.NewAnswer(entities.StringID("q2"), nil),
	}, 2)
	sub.Score = 1
	require.NoError(t, repo.Save(ctx, sub))

	got, err := repo.Get(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Score)
	assert.Equal(t, 2, got.Total)
	require.Len(t, got.Answers, 2)
	assert.Equal(t, entities.NumericID(1), got.Answers[0].QuestionID)
	assert.Equal(t, "Paris", *got.Answers[0].SelectedOption)
	assert.Equal(t, entities.StringID("q2"), got.Answers[1].QuestionID)
	assert.Nil(t, got.Answers[1].SelectedOption)

	_, err = repo.Get(ctx, uuid.NewString())
	assert.ErrorIs(t, err, entities.ErrSubmissionNotFound)

	_, err = repo.Get(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, entities.ErrSubmissionNotFound)
}
