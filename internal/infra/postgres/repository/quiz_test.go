package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aliskhannn/quizrunner/internal/domain/entities"
	"github.com/aliskhannn/quizrunner/internal/infra/postgres/repository"
)

func TestGetRejectsMalformedID(t *testing.T) {
	// No database is needed: the id is rejected before any query.
	repo := repository.NewSubmissionRepository(nil, nil)

	for _, id := range []string{"not-a-uuid", "", "sub-1"} {
		sub, err := repo.Get(context.Background(), id)
		assert.ErrorIs(t, err, entities.ErrSubmissionNotFound, id)
		assert.Nil(t, sub)
	}
}
