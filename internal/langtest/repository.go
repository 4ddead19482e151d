package langtest

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, t *Test) error
	GetByID(ctx context.Context, id uuid.UUID) (*Test, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Summary, error)
	// SaveResults stores results once. It reports false when the test was already completed.
	SaveResults(ctx context.Context, id uuid.UUID, results map[string]interface{}, completedAt time.Time) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, t *Test) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// GetByID returns (nil, nil) when the test does not exist.
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Test, error) {
	var t Test
	err := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		First(&t, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *repository) ListByOwner(ctx context.Context, ownerID string) ([]Summary, error) {
	var summaries []Summary
	err := r.db.WithContext(ctx).
		Model(&Test{}).
		Select("id, conversation_id, language, level, created_at, completed_at").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *repository) SaveResults(ctx context.Context, id uuid.UUID, results map[string]interface{}, completedAt time.Time) (bool, error) {
	if results == nil {
		results = map[string]interface{}{}
	}
	res := r.db.WithContext(ctx).
		Model(&Test{}).
		Where("id = ? AND completed_at IS NULL", id).
		Updates(map[string]interface{}{
			"results":      datatypes.JSONMap(results),
			"completed_at": completedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
