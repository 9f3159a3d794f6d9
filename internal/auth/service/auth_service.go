package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ChristianMLux/cml25-backend/internal/auth/domain"
	"github.com/ChristianMLux/cml25-backend/internal/auth/repository"
)

// AllowList reports whether an email is configured as admin.
// config.AuthConfig implements it.
type AllowList interface {
	IsAdminEmail(email string) bool
}

type AuthService struct {
	userRepo *repository.UserRepository
	admins   AllowList
	now      func() time.Time
}

func NewAuthService(userRepo *repository.UserRepository, admins AllowList) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		admins:   admins,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// GetProfile retrieves a profile by Firebase UID
func (s *AuthService) GetProfile(ctx context.Context, uid string) (*domain.UserProfile, error) {
	return s.userRepo.GetByUID(ctx, uid)
}

// SyncUser creates the profile on first sign-in and refreshes it on every
// later one. The role is re-derived each time: the allow-list grants
// admin regardless of the stored value, otherwise the stored role stays.
func (s *AuthService) SyncUser(ctx context.Context, req domain.SyncUserRequest) (*domain.UserProfile, error) {
	now := s.now()
	allowed := s.admins.IsAdminEmail(req.Email)

	existing, err := s.userRepo.GetByUID(ctx, req.UID)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	if existing != nil {
		role := existing.Role
		if allowed {
			role = domain.RoleAdmin
		} else if role == "" {
			role = domain.RoleUser
		}

		if err := s.userRepo.Merge(ctx, req.UID, map[string]any{
			"role":        role,
			"lastLoginAt": now,
		}); err != nil {
			return nil, err
		}
		existing.Role = role
		existing.LastLoginAt = &now
		return existing, nil
	}

	role := domain.RoleUser
	if allowed {
		role = domain.RoleAdmin
	}
	user := &domain.UserProfile{
		UID:         req.UID,
		Email:       req.Email,
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
		Role:        role,
		CreatedAt:   now,
		LastLoginAt: &now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile changes display name and photo
func (s *AuthService) UpdateProfile(ctx context.Context, uid string, req domain.UpdateProfileRequest) (*domain.UserProfile, error) {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.DisplayName != nil {
		user.DisplayName = req.DisplayName
		fields["displayName"] = *req.DisplayName
	}
	if req.PhotoURL != nil {
		user.PhotoURL = req.PhotoURL
		fields["photoURL"] = *req.PhotoURL
	}
	if len(fields) == 0 {
		return user, nil
	}

	if err := s.userRepo.Merge(ctx, uid, fields); err != nil {
		return nil, err
	}
	return user, nil
}

// IsAdmin grants access to allow-listed emails and to stored admins.
func (s *AuthService) IsAdmin(ctx context.Context, uid, email string) bool {
	if s.admins.IsAdminEmail(strings.TrimSpace(email)) {
		return true
	}
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return false
	}
	return user.Role == domain.RoleAdmin
}
