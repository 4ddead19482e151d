package conversation

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/lingua-lambda/internal/apperr"
	"github.com/saulo-duarte/lingua-lambda/internal/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Conversation{}, &Turn{}))
	return db
}

func newConversation(owner string) *Conversation {
	now := time.Now().UTC().Truncate(time.Second)
	c := &Conversation{
		ID:        uuid.New(),
		OwnerID:   owner,
		Language:  "French",
		Level:     level.A2,
		Title:     "French Learning Session: Bonjour",
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	c.Append(
		NewTurn(RoleUser, "Bonjour", "French", now),
		NewTurn(RoleAssistant, "Bonjour ! Comment vas-tu ?", "French", now.Add(time.Second)),
	)
	return c
}

func TestAppendAssignsPositions(t *testing.T) {
	c := newConversation("u1")
	require.Len(t, c.Turns, 2)
	assert.Equal(t, 0, c.Turns[0].Position)
	assert.Equal(t, 1, c.Turns[1].Position)
	assert.Equal(t, c.ID, c.Turns[1].ConversationID)
	assert.Equal(t, c.Turns[1].Timestamp, c.UpdatedAt)

	last, ok := c.LastTurn()
	require.True(t, ok)
	assert.Equal(t, RoleAssistant, last.Role)
}

func TestRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))

	c := newConversation("u1")
	require.NoError(t, repo.Create(ctx, c))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Turns, 2)
	assert.Equal(t, "Bonjour", got.Turns[0].Content)
	assert.Equal(t, RoleAssistant, got.Turns[1].Role)
	assert.True(t, got.Active)

	later := time.Now().UTC().Add(time.Minute).Truncate(time.Second)
	appended := got.Append(
		NewTurn(RoleUser, "Merci", "French", later),
		NewTurn(RoleAssistant, "De rien", "French", later),
	)
	require.NoError(t, repo.AppendTurns(ctx, got.ID, appended, later))

	reloaded, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Turns, 4)
	for i, turn := range reloaded.Turns {
		assert.Equal(t, i, turn.Position)
	}
	assert.Equal(t, "De rien", reloaded.Turns[3].Content)
	assert.True(t, reloaded.UpdatedAt.Equal(later))
}

func TestRepositoryGetMissing(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	got, err := repo.GetByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRepositoryListByOwner(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))

	require.NoError(t, repo.Create(ctx, newConversation("u1")))
	require.NoError(t, repo.Create(ctx, newConversation("u1")))
	require.NoError(t, repo.Create(ctx, newConversation("u2")))

	list, err := repo.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 2, list[0].TurnCount)
}

func TestRepositorySetActive(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))

	c := newConversation("u1")
	require.NoError(t, repo.Create(ctx, c))
	require.NoError(t, repo.SetActive(ctx, c.ID, false))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
}

func TestAppendTurnsRejectsStaleSnapshot(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))

	c := newConversation("u1")
	now := c.CreatedAt
	c.Append(NewTurn(RoleUser, "Bonjour", "French", now), NewTurn(RoleAssistant, "Salut", "French", now))
	require.NoError(t, repo.Create(ctx, c))

	first, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)

	later := now.Add(time.Minute)
	turns := first.Append(NewTurn(RoleUser, "Ça va ?", "French", later), NewTurn(RoleAssistant, "Oui", "French", later))
	require.NoError(t, repo.AppendTurns(ctx, c.ID, turns, later))

	stale := second.Append(NewTurn(RoleUser, "Merci", "French", later), NewTurn(RoleAssistant, "De rien", "French", later))
	err = repo.AppendTurns(ctx, c.ID, stale, later)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	stored, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, stored.Turns, 4)
	assert.Equal(t, "Ça va ?", stored.Turns[2].Content)
	assert.Equal(t, "Oui", stored.Turns[3].Content)
}
