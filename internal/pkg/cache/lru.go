package cache

import (
	"context"
	"slices"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/yigit/admissions/internal/app/models"
)

// LRUIdentityCache is an in-process cache with size bound and TTL
type LRUIdentityCache struct {
	// mu makes the check and add of Fill atomic with respect to Set
	mu    sync.Mutex
	cache *lru.LRU[int64, models.Identity]
}

// NewLRUIdentityCache creates a cache holding at most size identities for ttl
func NewLRUIdentityCache(size int, ttl time.Duration) *LRUIdentityCache {
	if size <= 0 {
		size = 1024
	}
	return &LRUIdentityCache{
		cache: lru.NewLRU[int64, models.Identity](size, nil, ttl),
	}
}

func (c *LRUIdentityCache) Get(_ context.Context, userID int64) (*models.Identity, bool) {
	identity, ok := c.cache.Get(userID)
	if !ok {
		return nil, false
	}
	identity.Roles = slices.Clone(identity.Roles)
	return &identity, true
}

func (c *LRUIdentityCache) Set(_ context.Context, identity *models.Identity) {
	if identity == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Add(identity.UserID, clone(identity))
}

func (c *LRUIdentityCache) Fill(_ context.Context, identity *models.Identity) {
	if identity == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cache.Contains(identity.UserID) {
		return
	}
	c.cache.Add(identity.UserID, clone(identity))
}

func (c *LRUIdentityCache) Invalidate(_ context.Context, userID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Remove(userID)
}

func (c *LRUIdentityCache) Backend() string { return "memory" }

// Len returns the number of cached identities
func (c *LRUIdentityCache) Len() int {
	return c.cache.Len()
}

func clone(identity *models.Identity) models.Identity {
	stored := *identity
	stored.Roles = slices.Clone(identity.Roles)
	return stored
}
