package auth

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	domain "github.com/palhamel/mongo-auth-code/internal/domain/user"
	pkgerrors "github.com/palhamel/mongo-auth-code/pkg/errors"
	"github.com/palhamel/mongo-auth-code/pkg/security"

	"github.com/go-playground/validator/v10"
)

// Repository defines the interface for user data access operations.
// It abstracts the data layer, allowing different implementations
// to be used interchangeably. The store owns token generation and
// uniqueness enforcement; Create is atomic with respect to both.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)         // Create a new user, assigning ID and access token
	GetByEmail(ctx context.Context, email string) (*domain.User, error)       // Retrieve user by email; nil when absent
	GetByAccessToken(ctx context.Context, token string) (*domain.User, error) // Retrieve user by access token; nil when absent
}

// Service implements the authentication business logic: registration,
// login, and bearer-token verification against the user store.
type Service struct {
	repo     Repository          // Repository for data access
	log      *zap.Logger         // Logger for structured logging
	validate *validator.Validate // Validator for request validation
}

// New creates a new Service with the provided repository and logger.
func New(r Repository, log *zap.Logger) *Service {
	return &Service{repo: r, log: log, validate: validator.New()}
}

// formatValidationError converts validator.ValidationErrors into a human-readable error.
func formatValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrors {
			switch e.Tag() {
			case "required":
				messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
			default:
				messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
			}
		}
		return pkgerrors.NewValidationError("", strings.Join(messages, ", "))
	}
	return err
}

// Register creates a new user. The password is hashed with bcrypt before
// it is handed to the store; the plaintext never leaves this function.
// The store assigns the ID and the access token.
func (s *Service) Register(ctx context.Context, in RegisterRequest) (*RegisterResponse, error) {
	s.log.Info("registering user", zap.String("name", in.Name), zap.String("email", in.Email))

	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		s.log.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
	})
	if err != nil {
		s.log.Warn("failed to create user", zap.String("email", in.Email), zap.Error(err))
		return nil, err
	}

	return &RegisterResponse{
		ID:          created.ID,
		AccessToken: created.AccessToken,
	}, nil
}

// Login checks the submitted credentials against the store. An unknown
// email and a wrong password both yield the same CredentialError so a
// caller cannot probe which emails are registered.
func (s *Service) Login(ctx context.Context, in LoginRequest) (*LoginResponse, error) {
	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	u, err := s.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		s.log.Error("failed to look up user by email", zap.String("email", in.Email), zap.Error(err))
		return nil, err
	}

	if u == nil || !security.CheckPassword(in.Password, u.PasswordHash) {
		s.log.Info("login failed", zap.String("email", in.Email))
		return nil, pkgerrors.NewCredentialError()
	}

	s.log.Info("login succeeded", zap.Int64("user_id", u.ID))
	return &LoginResponse{
		UserID:      u.ID,
		AccessToken: u.AccessToken,
	}, nil
}

// Authenticate resolves a bearer token to a user. A missing or unknown
// token yields an UnauthenticatedError.
func (s *Service) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, pkgerrors.NewUnauthenticatedError()
	}

	u, err := s.repo.GetByAccessToken(ctx, token)
	if err != nil {
		s.log.Error("failed to look up user by access token", zap.Error(err))
		return nil, err
	}
	if u == nil {
		s.log.Debug("unknown access token presented")
		return nil, pkgerrors.NewUnauthenticatedError()
	}

	return u, nil
}
