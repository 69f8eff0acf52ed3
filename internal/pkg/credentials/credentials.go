// FILE: internal/pkg/credentials/credentials.go
package credentials

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"regexp"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost matches what existing rows were hashed with. Changing it only
// affects new hashes; verification reads the cost from the hash itself.
const BcryptCost = 12

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// NewResetToken returns the raw token handed to the user and the sha256 hex
// digest that gets persisted. Only the digest ever touches the database.
func NewResetToken() (raw string, hash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	raw = hex.EncodeToString(buf)
	return raw, HashToken(raw), nil
}

func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

var requestIdPattern = regexp.MustCompile(`^[a-zA-Z0-9._:-]{6,80}$`)

// SafeRequestId echoes a caller-supplied request id only when it is short
// and from a harmless alphabet; anything else is replaced with a fresh uuid
// so hostile values never reach the logs verbatim.
func SafeRequestId(candidate string) string {
	if requestIdPattern.MatchString(candidate) {
		return candidate
	}
	return uuid.NewString()
}
