package infrastructure

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/palhamel/mongo-auth-code/internal/config"
	redisclient "github.com/palhamel/mongo-auth-code/pkg/redis"
)

// NewRedisClient creates a new Redis client when caching is configured.
// Returns nil without error when REDIS_ADDR is unset, which disables the
// token cache entirely.
func NewRedisClient(cfg *config.Config, l *zap.Logger) (*redisclient.Client, error) {
	if cfg.Redis.Addr == "" {
		l.Info("token cache disabled, REDIS_ADDR not configured")
		return nil, nil
	}

	rdb, err := redisclient.NewClient(redisclient.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, l)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return rdb, nil
}
