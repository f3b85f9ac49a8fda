package utils

import (
	"crypto/rand"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt work factor for stored passwords.
const hashCost = 10

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

const codeChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateRandomCode returns a random alphanumeric string, used for
// one-shot temporary passwords.
func GenerateRandomCode(n int) string {
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeChars))))
		if err != nil {
			// crypto/rand failing means the platform is broken; fall back
			// to a fixed char rather than panic in a request path.
			b[i] = codeChars[0]
			continue
		}
		b[i] = codeChars[idx.Int64()]
	}
	return string(b)
}
