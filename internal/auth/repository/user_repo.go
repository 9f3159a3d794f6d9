package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ChristianMLux/cml25-backend/internal/auth/domain"
	"github.com/ChristianMLux/cml25-backend/internal/docstore"
)

const Collection = "users"

type UserRepository struct {
	store docstore.Store
}

func NewUserRepository(store docstore.Store) *UserRepository {
	return &UserRepository{store: store}
}

// GetByUID retrieves a profile by Firebase UID
func (r *UserRepository) GetByUID(ctx context.Context, uid string) (*domain.UserProfile, error) {
	doc, err := r.store.Get(ctx, Collection, uid)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	var user domain.UserProfile
	if err := docstore.Decode(doc.Data, &user); err != nil {
		return nil, err
	}
	if user.UID == "" {
		user.UID = doc.ID
	}
	return &user, nil
}

// Create writes a full profile
func (r *UserRepository) Create(ctx context.Context, user *domain.UserProfile) error {
	data, err := docstore.Encode(user)
	if err != nil {
		return err
	}
	if err := r.store.Set(ctx, Collection, user.UID, data, false); err != nil {
		return fmt.Errorf("create user %s: %w", user.UID, err)
	}
	return nil
}

// Merge writes only the given fields of an existing profile
func (r *UserRepository) Merge(ctx context.Context, uid string, fields map[string]any) error {
	if err := r.store.Set(ctx, Collection, uid, fields, true); err != nil {
		return fmt.Errorf("update user %s: %w", uid, err)
	}
	return nil
}
