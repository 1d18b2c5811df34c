package user

// User represents a registered user.
type User struct {
	ID           int64  // ID is the unique identifier assigned by the store
	Name         string // Name is the user's display name, unique across all users
	Email        string // Email is the user's unique email address
	PasswordHash string // PasswordHash is the bcrypt hash of the password; plaintext is never stored
	AccessToken  string // AccessToken is the opaque bearer token assigned once at creation
}
