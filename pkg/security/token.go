package security

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// AccessTokenBytes is the number of random bytes in an access token.
// Hex encoding doubles it, so tokens are 256 characters on the wire.
const AccessTokenBytes = 128

// GenerateAccessToken returns a new high-entropy access token as a
// fixed-length hex string.
func GenerateAccessToken() (string, error) {
	buf := make([]byte, AccessTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
