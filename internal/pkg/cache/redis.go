package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/yigit/admissions/internal/app/models"
)

// RedisIdentityCache shares identities between service instances
type RedisIdentityCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedisIdentityCache connects to redisURL and verifies the connection
func NewRedisIdentityCache(ctx context.Context, redisURL string, ttl time.Duration, logger zerolog.Logger) (*RedisIdentityCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisIdentityCache{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "identity_cache").Logger(),
	}, nil
}

func (c *RedisIdentityCache) Get(ctx context.Context, userID int64) (*models.Identity, bool) {
	data, err := c.client.Get(ctx, identityKey(userID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Int64("userID", userID).Msg("Identity cache read failed")
		}
		return nil, false
	}

	var identity models.Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		c.logger.Warn().Err(err).Int64("userID", userID).Msg("Discarding undecodable identity cache entry")
		c.Invalidate(ctx, userID)
		return nil, false
	}
	return &identity, true
}

func (c *RedisIdentityCache) Set(ctx context.Context, identity *models.Identity) {
	data, ok := c.encode(identity)
	if !ok {
		return
	}
	if err := c.client.Set(ctx, identityKey(identity.UserID), data, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Int64("userID", identity.UserID).Msg("Identity cache write failed")
	}
}

func (c *RedisIdentityCache) Fill(ctx context.Context, identity *models.Identity) {
	data, ok := c.encode(identity)
	if !ok {
		return
	}
	if err := c.client.SetNX(ctx, identityKey(identity.UserID), data, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Int64("userID", identity.UserID).Msg("Identity cache fill failed")
	}
}

func (c *RedisIdentityCache) encode(identity *models.Identity) ([]byte, bool) {
	if identity == nil {
		return nil, false
	}
	data, err := json.Marshal(identity)
	if err != nil {
		c.logger.Warn().Err(err).Int64("userID", identity.UserID).Msg("Failed to encode identity for cache")
		return nil, false
	}
	return data, true
}

func (c *RedisIdentityCache) Invalidate(ctx context.Context, userID int64) {
	if err := c.client.Del(ctx, identityKey(userID)).Err(); err != nil {
		c.logger.Warn().Err(err).Int64("userID", userID).Msg("Identity cache invalidation failed")
	}
}

func (c *RedisIdentityCache) Backend() string { return "redis" }

// Close releases the redis connection pool
func (c *RedisIdentityCache) Close() error {
	return c.client.Close()
}
