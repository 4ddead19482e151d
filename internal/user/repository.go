package user

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByFirebaseUID(ctx context.Context, uid string) (*User, error)
	Update(ctx context.Context, u *User) error
	DeleteByFirebaseUID(ctx context.Context, uid string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

// GetByFirebaseUID returns (nil, nil) when no user has the uid.
func (r *userRepository) GetByFirebaseUID(ctx context.Context, uid string) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, "firebase_uid = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Update(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *userRepository) DeleteByFirebaseUID(ctx context.Context, uid string) error {
	return r.db.WithContext(ctx).Delete(&User{}, "firebase_uid = ?", uid).Error
}
