package auth

// RegisterRequest represents the request payload for registering a user.
// The email field is treated as an opaque identifier, not checked for
// RFC conformance.
type RegisterRequest struct {
	Name     string `validate:"required"`
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// RegisterResponse represents the response payload after registration.
type RegisterResponse struct {
	ID          int64
	AccessToken string
}

// LoginRequest represents the request payload for logging in.
type LoginRequest struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// LoginResponse represents the response payload after a successful login.
type LoginResponse struct {
	UserID      int64
	AccessToken string
}
