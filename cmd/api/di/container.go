package di

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/palhamel/mongo-auth-code/cmd/api/infrastructure"
	"github.com/palhamel/mongo-auth-code/internal/adapter/cache"
	"github.com/palhamel/mongo-auth-code/internal/adapter/db/postgres"
	ginhandler "github.com/palhamel/mongo-auth-code/internal/adapter/gin/handler"
	"github.com/palhamel/mongo-auth-code/internal/adapter/repository/cached"
	"github.com/palhamel/mongo-auth-code/internal/config"
	"github.com/palhamel/mongo-auth-code/internal/usecase/auth"
	redisclient "github.com/palhamel/mongo-auth-code/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	DB          *gorm.DB
	RedisClient *redisclient.Client
	AuthUC      auth.Usecase
	AuthHandler *ginhandler.AuthHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(cfg *config.Config, l *zap.Logger) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	db, err := infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	rdb, err := infrastructure.NewRedisClient(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}

	// The store handle is constructed here and injected downward; nothing
	// below this point reaches for ambient connections.
	var repo auth.Repository = postgres.NewUserRepoPG(db, l)

	if rdb != nil {
		userCache := cache.NewRedisUserCache(
			rdb.Client,
			time.Duration(cfg.Redis.CacheTTLSeconds)*time.Second,
			l,
		)
		repo = cached.NewUserRepository(repo, userCache, l)
	}

	authUC := auth.New(repo, l)
	authHandler := ginhandler.NewAuthHandler(authUC, l)

	return &Container{
		Config:      cfg,
		Logger:      l,
		DB:          db,
		RedisClient: rdb,
		AuthUC:      authUC,
		AuthHandler: authHandler,
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("container close errors: %v", errs)
	}

	return nil
}
