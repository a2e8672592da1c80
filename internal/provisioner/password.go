package provisioner

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// PasswordAlphabet is the set of runes generated passwords are drawn from.
const PasswordAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*()-_=+"

// GeneratePassword returns a random password of length n drawn uniformly from
// PasswordAlphabet.
func GeneratePassword(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("invalid password length %d", n)
	}

	limit := big.NewInt(int64(len(PasswordAlphabet)))
	buf := make([]byte, n)
	for i := range buf {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("could not read random source: %w", err)
		}
		buf[i] = PasswordAlphabet[idx.Int64()]
	}

	return string(buf), nil
}
