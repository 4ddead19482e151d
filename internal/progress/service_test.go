package progress

import (
	"context"
	"testing"
	"time"

	"github.com/saulo-duarte/lingua-lambda/internal/apperr"
	"github.com/saulo-duarte/lingua-lambda/internal/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceGet(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))
	s := NewService(repo)

	_, err := s.Get(ctx, "u1", "French")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = s.Get(ctx, "u1", "  ")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	require.NoError(t, repo.RecordMessage(ctx, "u1", "French", level.B2, time.Now().UTC()))
	rec, err := s.Get(ctx, "u1", "French")
	require.NoError(t, err)
	assert.EqualValues(t, XPMessage, rec.XPPoints)
}

func TestServiceList(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))
	s := NewService(repo)

	now := time.Now().UTC()
	require.NoError(t, repo.RecordMessage(ctx, "u1", "French", level.A2, now))
	require.NoError(t, repo.RecordMessage(ctx, "u1", "Italian", level.A1, now))
	require.NoError(t, repo.RecordMessage(ctx, "u2", "French", level.A2, now))

	records, err := s.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
