package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateCode returns a random hex token of the given byte length, used for
// password reset links.
func GenerateCode(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
