package postgres

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/palhamel/mongo-auth-code/internal/domain/user"
	pkgerrors "github.com/palhamel/mongo-auth-code/pkg/errors"
	"github.com/palhamel/mongo-auth-code/pkg/security"
)

// UserRepoPG implements the Repository interface using PostgreSQL and GORM.
type UserRepoPG struct {
	db  *gorm.DB    // GORM database connection
	log *zap.Logger // Structured logger for database operations
}

// NewUserRepoPG creates a new instance of UserRepoPG.
func NewUserRepoPG(db *gorm.DB, log *zap.Logger) *UserRepoPG {
	return &UserRepoPG{db: db, log: log}
}

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"` // Unique identifier with auto-increment
	Name         string `gorm:"not null;unique"`          // User's display name (required, unique)
	Email        string `gorm:"not null;unique"`          // User's email address (required, unique)
	PasswordHash string `gorm:"not null"`                 // Bcrypt hash of the user's password
	AccessToken  string `gorm:"not null;unique;size:256"` // Opaque bearer token, assigned at creation
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

// toDomain converts a schema row into the domain entity.
func (m *UserSchema) toDomain() *user.User {
	return &user.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		AccessToken:  m.AccessToken,
	}
}

// Create inserts a new user into the database. The access token is
// generated here, immediately before the insert, so the uniqueness check
// and the token assignment happen in a single atomic write.
func (r *UserRepoPG) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if u == nil {
		return nil, errors.New("user cannot be nil")
	}

	token, err := security.GenerateAccessToken()
	if err != nil {
		r.log.Error("failed to generate access token", zap.Error(err))
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	model := UserSchema{
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		AccessToken:  token,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			r.log.Warn("user already exists", zap.String("email", u.Email), zap.String("name", u.Name))
			return nil, pkgerrors.NewAlreadyExistsError("user", "name or email already in use")
		}
		r.log.Error("failed to create user in db", zap.Error(err), zap.String("email", u.Email))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	r.log.Info("user created in db", zap.Int64("id", model.ID))
	return model.toDomain(), nil
}

// GetByEmail retrieves a user from the database by their email address.
// Returns nil without error when no user matches.
func (r *UserRepoPG) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found by email", zap.String("email", email))
			return nil, nil
		}
		r.log.Error("failed to get user by email from db", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return model.toDomain(), nil
}

// GetByAccessToken retrieves a user from the database by their access token.
// Returns nil without error when no user matches.
func (r *UserRepoPG) GetByAccessToken(ctx context.Context, token string) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).Where("access_token = ?", token).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found by access token")
			return nil, nil
		}
		r.log.Error("failed to get user by access token from db", zap.Error(err))
		return nil, fmt.Errorf("failed to get user by access token: %w", err)
	}

	return model.toDomain(), nil
}
