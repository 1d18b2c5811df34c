package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	domain "github.com/palhamel/mongo-auth-code/internal/domain/user"
)

// UserCache defines the interface for caching users by access token.
type UserCache interface {
	// Get retrieves a user from cache by access token.
	// Returns nil if the token is not cached.
	Get(ctx context.Context, token string) (*domain.User, error)

	// Set stores a user in cache under their access token with the
	// configured TTL.
	Set(ctx context.Context, user *domain.User) error
}

// cachedUser is the serialized cache payload. The password hash is
// deliberately absent: cache entries only need to answer token lookups.
type cachedUser struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	AccessToken string `json:"accessToken"`
}

// RedisUserCache implements UserCache using Redis as the backing store.
type RedisUserCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisUserCache creates a new Redis-backed user cache.
func NewRedisUserCache(client *redis.Client, ttl time.Duration, log *zap.Logger) UserCache {
	return &RedisUserCache{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

// cacheKey generates a Redis key for an access token. The raw token never
// appears in the keyspace.
func (c *RedisUserCache) cacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "session:" + hex.EncodeToString(sum[:])
}

// Get retrieves a user from Redis cache.
func (c *RedisUserCache) Get(ctx context.Context, token string) (*domain.User, error) {
	key := c.cacheKey(token)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		// Cache miss - not an error
		c.log.Debug("token cache miss")
		return nil, nil
	}
	if err != nil {
		c.log.Error("failed to get from cache", zap.Error(err))
		return nil, err
	}

	var cached cachedUser
	if err := json.Unmarshal(data, &cached); err != nil {
		c.log.Error("failed to unmarshal cached user", zap.Error(err))
		return nil, err
	}

	c.log.Debug("token cache hit", zap.Int64("user_id", cached.ID))
	return &domain.User{
		ID:          cached.ID,
		Name:        cached.Name,
		Email:       cached.Email,
		AccessToken: cached.AccessToken,
	}, nil
}

// Set stores a user in Redis cache with TTL.
func (c *RedisUserCache) Set(ctx context.Context, user *domain.User) error {
	if user == nil {
		return fmt.Errorf("cannot cache nil user")
	}

	key := c.cacheKey(user.AccessToken)

	data, err := json.Marshal(cachedUser{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		AccessToken: user.AccessToken,
	})
	if err != nil {
		c.log.Error("failed to marshal user for cache", zap.Int64("user_id", user.ID), zap.Error(err))
		return err
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Error("failed to set cache", zap.Int64("user_id", user.ID), zap.Error(err))
		return err
	}

	c.log.Debug("cached user token", zap.Int64("user_id", user.ID), zap.Duration("ttl", c.ttl))
	return nil
}
