package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChristianMLux/cml25-backend/config"
	"github.com/ChristianMLux/cml25-backend/internal/auth/domain"
	"github.com/ChristianMLux/cml25-backend/internal/auth/repository"
	"github.com/ChristianMLux/cml25-backend/internal/docstore"
)

func newService(t *testing.T, admins ...string) (*AuthService, *docstore.Memory) {
	t.Helper()
	store := docstore.NewMemory()
	svc := NewAuthService(repository.NewUserRepository(store), config.AuthConfig{AdminEmails: admins})
	fixed := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	return svc, store
}

func TestSyncUser_CreatesProfile(t *testing.T) {
	svc, store := newService(t, "boss@example.com")
	ctx := context.Background()
	name := "Ann"

	user, err := svc.SyncUser(ctx, domain.SyncUserRequest{UID: "u1", Email: "ann@example.com", DisplayName: &name})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.Equal(t, "Ann", *user.DisplayName)

	doc, err := store.Get(ctx, repository.Collection, "u1")
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", doc.Data["email"])
	assert.Equal(t, "user", doc.Data["role"])
	assert.Contains(t, doc.Data, "createdAt")
	assert.Contains(t, doc.Data, "lastLoginAt")
}

func TestSyncUser_AllowListCreatesAdmin(t *testing.T) {
	svc, _ := newService(t, "boss@example.com")

	user, err := svc.SyncUser(context.Background(), domain.SyncUserRequest{UID: "u1", Email: "Boss@Example.com"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)
}

func TestSyncUser_AllowListOverridesStoredRole(t *testing.T) {
	svc, store := newService(t, "boss@example.com")
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, repository.Collection, "u1", map[string]any{
		"uid": "u1", "email": "boss@example.com", "role": "user", "displayName": "Boss",
	}, false))

	user, err := svc.SyncUser(ctx, domain.SyncUserRequest{UID: "u1", Email: "boss@example.com"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)

	doc, err := store.Get(ctx, repository.Collection, "u1")
	require.NoError(t, err)
	assert.Equal(t, "admin", doc.Data["role"])
	assert.Equal(t, "Boss", doc.Data["displayName"])
}

func TestSyncUser_KeepsStoredAdminRole(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, repository.Collection, "u1", map[string]any{"uid": "u1", "role": "admin"}, false))

	user, err := svc.SyncUser(ctx, domain.SyncUserRequest{UID: "u1", Email: "someone@example.com"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	require.NotNil(t, user.LastLoginAt)
}

func TestSyncUser_MissingRoleBecomesUser(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, repository.Collection, "u1", map[string]any{"uid": "u1"}, false))

	user, err := svc.SyncUser(ctx, domain.SyncUserRequest{UID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
}

func TestIsAdmin(t *testing.T) {
	svc, store := newService(t, "boss@example.com")
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, repository.Collection, "stored", map[string]any{"role": "admin"}, false))
	require.NoError(t, store.Set(ctx, repository.Collection, "plain", map[string]any{"role": "user"}, false))

	assert.True(t, svc.IsAdmin(ctx, "anyone", "boss@example.com"))
	assert.True(t, svc.IsAdmin(ctx, "stored", "x@example.com"))
	assert.False(t, svc.IsAdmin(ctx, "plain", "x@example.com"))
	assert.False(t, svc.IsAdmin(ctx, "ghost", ""))
}

func TestUpdateProfile(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	_, err := svc.UpdateProfile(ctx, "ghost", domain.UpdateProfileRequest{})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	require.NoError(t, store.Set(ctx, repository.Collection, "u1", map[string]any{"uid": "u1", "role": "user"}, false))
	name := "New"
	user, err := svc.UpdateProfile(ctx, "u1", domain.UpdateProfileRequest{DisplayName: &name})
	require.NoError(t, err)
	assert.Equal(t, "New", *user.DisplayName)

	doc, err := store.Get(ctx, repository.Collection, "u1")
	require.NoError(t, err)
	assert.Equal(t, "New", doc.Data["displayName"])
	assert.Equal(t, "user", doc.Data["role"])
}
