package cached

import (
	"context"

	"go.uber.org/zap"

	"github.com/palhamel/mongo-auth-code/internal/adapter/cache"
	domain "github.com/palhamel/mongo-auth-code/internal/domain/user"
	"github.com/palhamel/mongo-auth-code/internal/usecase/auth"
)

// UserRepository decorates a Repository with a cache-aside lookup on the
// access-token path. Registration and login always go to the store; only
// the per-request token verification is hot enough to cache.
type UserRepository struct {
	repo  auth.Repository
	cache cache.UserCache
	log   *zap.Logger
}

// NewUserRepository creates a caching decorator over repo.
func NewUserRepository(repo auth.Repository, c cache.UserCache, log *zap.Logger) *UserRepository {
	return &UserRepository{repo: repo, cache: c, log: log}
}

// Create passes through to the underlying store.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	return r.repo.Create(ctx, u)
}

// GetByEmail passes through to the underlying store. Login needs the
// password hash, which cache entries never carry.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.repo.GetByEmail(ctx, email)
}

// GetByAccessToken serves token lookups cache-aside. Cache failures fall
// through to the store.
func (r *UserRepository) GetByAccessToken(ctx context.Context, token string) (*domain.User, error) {
	cachedUser, err := r.cache.Get(ctx, token)
	if err != nil {
		r.log.Warn("cache get error, falling back to store", zap.Error(err))
	} else if cachedUser != nil {
		return cachedUser, nil
	}

	u, err := r.repo.GetByAccessToken(ctx, token)
	if err != nil || u == nil {
		return u, err
	}

	if err := r.cache.Set(ctx, u); err != nil {
		r.log.Warn("failed to cache user", zap.Int64("user_id", u.ID), zap.Error(err))
	}

	return u, nil
}
