package cryptox

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHashCost is the bcrypt work factor. Raising it transparently
// strengthens new hashes; existing hashes keep the cost they were minted
// with and still verify.
const PasswordHashCost = 12

// HashPassword derives a salted bcrypt hash from a plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordHashCost)
	if err != nil {
		return "", fmt.Errorf("cryptox: hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the bcrypt hash. The
// comparison is constant-time inside bcrypt; malformed hashes simply
// report false instead of an error so callers can't distinguish them
// from a wrong password.
func CheckPassword(password, encodedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)) == nil
}
