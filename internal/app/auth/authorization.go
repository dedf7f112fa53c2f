package auth

import (
	"context"
	"fmt"

	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/pkg/apperrors"
	"github.com/yigit/admissions/internal/pkg/logger"
)

// AccessMode selects whose rows an endpoint operates on and which role it needs
type AccessMode int

const (
	// AccessSelf scopes rows to the caller; any authenticated identity passes
	AccessSelf AccessMode = iota
	// AccessAdminMirror scopes rows to a caller-supplied target user; admin only
	AccessAdminMirror
	// AccessAdminGlobal operates on catalog rows with no user scope; admin only
	AccessAdminGlobal
)

func (m AccessMode) String() string {
	switch m {
	case AccessSelf:
		return "self"
	case AccessAdminMirror:
		return "admin-mirror"
	case AccessAdminGlobal:
		return "admin-global"
	default:
		return fmt.Sprintf("AccessMode(%d)", int(m))
	}
}

// RequiresAdmin reports whether the mode is gated on the admin role
func (m AccessMode) RequiresAdmin() bool {
	return m == AccessAdminMirror || m == AccessAdminGlobal
}

var errAdminRequired = apperrors.NewForbiddenError("admin role required")

// UserLookup is the part of the user store the guard needs
type UserLookup interface {
	UserExists(ctx context.Context, id int64) (bool, error)
}

// AccessGuard authorizes callers and resolves the owner a request operates on
type AccessGuard struct {
	users UserLookup
}

// NewAccessGuard creates a new AccessGuard
func NewAccessGuard(users UserLookup) *AccessGuard {
	return &AccessGuard{users: users}
}

// Authorize checks that caller may use an endpoint of the given mode
func (g *AccessGuard) Authorize(caller *models.Identity, mode AccessMode) error {
	if caller == nil {
		return apperrors.ErrUnauthenticated
	}
	if mode.RequiresAdmin() && !caller.IsAdmin() {
		logger.Warn().Int64("userID", caller.UserID).Str("mode", mode.String()).Msg("Admin endpoint refused")
		return errAdminRequired
	}
	return nil
}

// ResolveScope authorizes caller and returns the owner id rows are scoped to.
// Self mode always yields the caller, whatever target says. Admin mirror mode
// yields target, which must name an existing user. Global mode has no owner
// and yields 0.
func (g *AccessGuard) ResolveScope(ctx context.Context, caller *models.Identity, mode AccessMode, target int64) (int64, error) {
	if err := g.Authorize(caller, mode); err != nil {
		return 0, err
	}

	switch mode {
	case AccessSelf:
		return caller.UserID, nil
	case AccessAdminGlobal:
		return 0, nil
	}

	if target <= 0 {
		return 0, apperrors.NewValidationError("user_id is required")
	}
	exists, err := g.users.UserExists(ctx, target)
	if err != nil {
		logger.Error().Err(err).Int64("targetUserID", target).Msg("Error checking target user")
		return 0, fmt.Errorf("failed to check target user: %w", err)
	}
	if !exists {
		return 0, apperrors.ErrUserNotFound
	}
	return target, nil
}
