package user

import (
	"context"
	"strings"
	"time"

	"github.com/saulo-duarte/lingua-lambda/internal/apperr"
	"github.com/saulo-duarte/lingua-lambda/internal/config"
	"github.com/saulo-duarte/lingua-lambda/internal/validation"
)

type UserService interface {
	// Register creates the user on first login and stamps last_login on every call.
	Register(ctx context.Context, uid string, dto RegisterDTO) (*User, bool, error)
	Get(ctx context.Context, uid string) (*User, error)
	Update(ctx context.Context, uid string, dto UpdateDTO) (*User, error)
	Delete(ctx context.Context, uid string) error
}

type userService struct {
	repo UserRepository
	now  func() time.Time
}

func NewService(repo UserRepository) UserService {
	return &userService{repo: repo, now: time.Now}
}

func (s *userService) Register(ctx context.Context, uid string, dto RegisterDTO) (*User, bool, error) {
	log := config.WithContext(ctx)

	existing, err := s.repo.GetByFirebaseUID(ctx, uid)
	if err != nil {
		log.WithError(err).Error("Failed to look up user")
		return nil, false, err
	}

	now := s.now().UTC()
	if existing != nil {
		existing.LastLogin = &now
		if err := s.repo.Update(ctx, existing); err != nil {
			log.WithError(err).Error("Failed to stamp last login")
			return nil, false, err
		}
		return existing, false, nil
	}

	dto = dto.normalized()
	if err := validation.Struct(dto); err != nil {
		return nil, false, err
	}

	u := &User{
		FirebaseUID: uid,
		Email:       dto.Email,
		Username:    dto.Username,
		Languages:   normalizeLanguages(dto.Languages),
		Active:      true,
		CreatedAt:   now,
		LastLogin:   &now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		log.WithError(err).Error("Failed to create user")
		return nil, false, err
	}

	log.WithField("user_id", u.ID).Info("User registered")
	return u, true, nil
}

func (s *userService) Get(ctx context.Context, uid string) (*User, error) {
	u, err := s.repo.GetByFirebaseUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("user", uid)
	}
	return u, nil
}

func (s *userService) Update(ctx context.Context, uid string, dto UpdateDTO) (*User, error) {
	dto = dto.normalized()
	if dto.Username != nil && *dto.Username == "" {
		return nil, apperr.Validation("username must not be blank")
	}
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	u, err := s.Get(ctx, uid)
	if err != nil {
		return nil, err
	}

	if dto.Username != nil {
		u.Username = *dto.Username
	}
	if dto.Languages != nil {
		u.Languages = dto.Languages
	}

	if err := s.repo.Update(ctx, u); err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to update user")
		return nil, err
	}
	return u, nil
}

func (s *userService) Delete(ctx context.Context, uid string) error {
	if _, err := s.Get(ctx, uid); err != nil {
		return err
	}
	return s.repo.DeleteByFirebaseUID(ctx, uid)
}

func normalizeLanguages(in []string) []string {
	out := make([]string, 0, len(in))
	seen := map[string]bool{}
	for _, l := range in {
		l = strings.TrimSpace(l)
		key := strings.ToLower(l)
		if l == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, l)
	}
	return out
}
