// Package cache keeps resolved identities close to the request path so token
// resolution does not hit the user store on every call.
package cache

import (
	"context"
	"fmt"

	"github.com/yigit/admissions/internal/app/models"
)

// IdentityCache stores identities by user id. Implementations treat backend
// failures as misses; the store stays the source of truth.
//
// Set always overwrites. Fill stores only when no entry is cached, so a fill
// computed from a stale read never replaces an entry written by Set.
type IdentityCache interface {
	Get(ctx context.Context, userID int64) (*models.Identity, bool)
	Set(ctx context.Context, identity *models.Identity)
	Fill(ctx context.Context, identity *models.Identity)
	Invalidate(ctx context.Context, userID int64)
	Backend() string
}

// Noop never stores anything
type Noop struct{}

func (Noop) Get(context.Context, int64) (*models.Identity, bool) { return nil, false }
func (Noop) Set(context.Context, *models.Identity) {}
func (Noop) Fill(context.Context, *models.Identity) {}
func (Noop) Invalidate(context.Context, int64) {}
func (Noop) Backend() string { return "none" }

func identityKey(userID int64) string {
	return fmt.Sprintf("admissions:identity:%d", userID)
}
