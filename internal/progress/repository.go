package progress

import (
	"context"
	"errors"
	"time"

	"github.com/saulo-duarte/lingua-lambda/internal/level"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Get(ctx context.Context, ownerID, language string) (*Record, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Record, error)
	// RecordMessage creates the record on first use and counts one message.
	RecordMessage(ctx context.Context, ownerID, language string, lvl level.Level, at time.Time) error
	// AwardXP only touches an existing record and reports whether one was found.
	AwardXP(ctx context.Context, ownerID, language string, points int64) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Get returns (nil, nil) when no record exists for the pair.
func (r *repository) Get(ctx context.Context, ownerID, language string) (*Record, error) {
	var rec Record
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND language = ?", ownerID, language).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *repository) ListByOwner(ctx context.Context, ownerID string) ([]Record, error) {
	var records []Record
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("xp_points DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) RecordMessage(ctx context.Context, ownerID, language string, lvl level.Level, at time.Time) error {
	rec := Record{
		OwnerID:         ownerID,
		Language:        language,
		Level:           lvl,
		XPPoints:        XPMessage,
		MessagesSent:    1,
		LastInteraction: at,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "owner_id"}, {Name: "language"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"xp_points":        gorm.Expr("progress_records.xp_points + ?", XPMessage),
				"messages_sent":    gorm.Expr("progress_records.messages_sent + ?", 1),
				"level":            lvl,
				"last_interaction": at,
				"updated_at":       at,
			}),
		}).
		Create(&rec).Error
}

func (r *repository) AwardXP(ctx context.Context, ownerID, language string, points int64) (bool, error) {
	if points < 0 {
		return false, errors.New("xp award must not be negative")
	}
	res := r.db.WithContext(ctx).
		Model(&Record{}).
		Where("owner_id = ? AND language = ?", ownerID, language).
		Update("xp_points", gorm.Expr("xp_points + ?", points))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
