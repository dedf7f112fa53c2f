package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/pkg/apperrors"
)

type fakeUsers map[int64]bool

func (f fakeUsers) UserExists(_ context.Context, id int64) (bool, error) {
	if id == 500 {
		return false, errors.New("connection reset")
	}
	return f[id], nil
}

func TestAuthorize(t *testing.T) {
	guard := NewAccessGuard(fakeUsers{})
	student := &models.Identity{UserID: 1, Roles: nil}
	admin := &models.Identity{UserID: 2, Roles: []models.RoleName{models.RoleAdmin}}

	assert.ErrorIs(t, guard.Authorize(nil, AccessSelf), apperrors.ErrUnauthenticated)
	assert.NoError(t, guard.Authorize(student, AccessSelf))
	assert.ErrorIs(t, guard.Authorize(student, AccessAdminMirror), apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, guard.Authorize(student, AccessAdminGlobal), apperrors.ErrPermissionDenied)
	assert.NoError(t, guard.Authorize(admin, AccessAdminMirror))
	assert.NoError(t, guard.Authorize(admin, AccessAdminGlobal))
}

func TestResolveScope(t *testing.T) {
	ctx := context.Background()
	guard := NewAccessGuard(fakeUsers{1: true, 2: true, 3: true})
	student := &models.Identity{UserID: 1}
	admin := &models.Identity{UserID: 2, Roles: []models.RoleName{models.RoleAdmin, models.RoleUser}}

	t.Run("self ignores the supplied target", func(t *testing.T) {
		owner, err := guard.ResolveScope(ctx, student, AccessSelf, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(1), owner)
	})

	t.Run("admin self stays on own rows", func(t *testing.T) {
		owner, err := guard.ResolveScope(ctx, admin, AccessSelf, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(2), owner)
	})

	t.Run("mirror uses the target", func(t *testing.T) {
		owner, err := guard.ResolveScope(ctx, admin, AccessAdminMirror, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(3), owner)
	})

	t.Run("mirror requires a target", func(t *testing.T) {
		_, err := guard.ResolveScope(ctx, admin, AccessAdminMirror, 0)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("mirror target must exist", func(t *testing.T) {
		_, err := guard.ResolveScope(ctx, admin, AccessAdminMirror, 42)
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("store failure is not a not found", func(t *testing.T) {
		_, err := guard.ResolveScope(ctx, admin, AccessAdminMirror, 500)
		require.Error(t, err)
		assert.NotErrorIs(t, err, apperrors.ErrResourceNotFound)
	})

	t.Run("mirror refuses non admins before looking at the target", func(t *testing.T) {
		_, err := guard.ResolveScope(ctx, student, AccessAdminMirror, 42)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("global has no owner", func(t *testing.T) {
		owner, err := guard.ResolveScope(ctx, admin, AccessAdminGlobal, 3)
		require.NoError(t, err)
		assert.Zero(t, owner)
	})
}
