package auth

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// bcryptMarkers are the version prefixes a bcrypt hash can carry. A stored
// credential without one of these markers is treated as legacy plaintext.
var bcryptMarkers = []string{"$2a$", "$2b$", "$2y$"}

// EncodePassword hashes a plaintext password with bcrypt. Every new or changed
// credential goes through here; nothing ever stores plaintext back.
func EncodePassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("encode password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether the submitted plaintext matches the stored
// credential. Hashed credentials (bcrypt marker prefix) are compared with
// bcrypt; anything else falls back to exact string equality so accounts
// created before hashing was introduced keep authenticating. Do not remove
// the plaintext branch: it is a deliberate migration shim.
func VerifyPassword(submitted, stored string) bool {
	if IsHashed(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(submitted)) == nil
	}
	return stored == submitted
}

// IsHashed reports whether a stored credential carries a bcrypt marker.
func IsHashed(stored string) bool {
	for _, marker := range bcryptMarkers {
		if strings.HasPrefix(stored, marker) {
			return true
		}
	}
	return false
}
