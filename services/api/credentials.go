package api

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"math/rand/v2"
)

const (
	tokenIDLength     = 20
	cartIDLength      = 20
	orderSuffixLength = 10

	randomAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// hashPassword returns the hex HMAC-SHA256 digest of password under the
// process-wide hashing secret.
func (a *API) hashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password is empty")
	}
	mac := hmac.New(sha256.New, []byte(a.config.HashingSecret))
	mac.Write([]byte(password))
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// randomString returns a uniformly random lowercase-alphanumeric string of
// length n. These ids gate nothing security-sensitive on their own; tokens are
// still checked against the owning email and their expiry.
func randomString(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("length must be positive")
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = randomAlphabet[rand.IntN(len(randomAlphabet))]
	}
	return string(b), nil
}
