package auth

import (
	"context"

	domain "github.com/palhamel/mongo-auth-code/internal/domain/user"
)

// Usecase defines the interface for authentication business logic.
type Usecase interface {
	Register(ctx context.Context, in RegisterRequest) (*RegisterResponse, error)
	Login(ctx context.Context, in LoginRequest) (*LoginResponse, error)
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}
