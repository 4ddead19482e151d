package conversation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/lingua-lambda/internal/apperr"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, c *Conversation) error
	GetByID(ctx context.Context, id uuid.UUID) (*Conversation, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Summary, error)
	AppendTurns(ctx context.Context, id uuid.UUID, turns []Turn, updatedAt time.Time) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Conversation) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// GetByID returns (nil, nil) when the conversation does not exist.
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Conversation, error) {
	var c Conversation
	err := r.db.WithContext(ctx).
		Preload("Turns", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&c, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) ListByOwner(ctx context.Context, ownerID string) ([]Summary, error) {
	var summaries []Summary
	err := r.db.WithContext(ctx).
		Model(&Conversation{}).
		Select("conversations.id, conversations.language, conversations.level, conversations.title, " +
			"conversations.active, conversations.created_at, conversations.updated_at, " +
			"(SELECT COUNT(*) FROM turns WHERE turns.conversation_id = conversations.id) AS turn_count").
		Where("conversations.owner_id = ?", ownerID).
		Order("conversations.updated_at DESC").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *repository) AppendTurns(ctx context.Context, id uuid.UUID, turns []Turn, updatedAt time.Time) error {
	if len(turns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&turns).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("conversation %s changed concurrently: %w", id, apperr.ErrConflict)
			}
			return err
		}
		return tx.Model(&Conversation{}).
			Where("id = ?", id).
			Update("updated_at", updatedAt).Error
	})
}

func (r *repository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return r.db.WithContext(ctx).
		Model(&Conversation{}).
		Where("id = ?", id).
		Update("active", active).Error
}
