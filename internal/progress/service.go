package progress

import (
	"context"
	"strings"

	"github.com/saulo-duarte/lingua-lambda/internal/apperr"
	"github.com/saulo-duarte/lingua-lambda/internal/config"
)

type Service interface {
	Get(ctx context.Context, ownerID, language string) (*Record, error)
	List(ctx context.Context, ownerID string) ([]Record, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Get(ctx context.Context, ownerID, language string) (*Record, error) {
	language = strings.TrimSpace(language)
	if language == "" {
		return nil, apperr.Validation("language is required")
	}

	rec, err := s.repo.Get(ctx, ownerID, language)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to load progress")
		return nil, err
	}
	if rec == nil {
		return nil, apperr.NotFound("progress", language)
	}
	return rec, nil
}

func (s *service) List(ctx context.Context, ownerID string) ([]Record, error) {
	records, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list progress")
		return nil, err
	}
	return records, nil
}
