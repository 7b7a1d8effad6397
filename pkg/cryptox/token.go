package cryptox

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
)

// TokenBytes is the entropy of a bearer token before encoding. 20 bytes
// (160 bits) renders as a 40-character lowercase hex string.
const TokenBytes = 20

// TokenLength is the length of an encoded token string.
const TokenLength = TokenBytes * 2

var tokenPattern = regexp.MustCompile(`^[0-9a-f]{40}$`)

// GenerateToken creates a cryptographically secure random bearer token,
// encoded as fixed-width lowercase hexadecimal. Returns an error only if the
// system random source fails.
func GenerateToken() (string, error) {
	buf := make([]byte, TokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// MustGenerateToken is like GenerateToken but panics on error.
// Use this only in contexts where failure is unrecoverable.
func MustGenerateToken() string {
	token, err := GenerateToken()
	if err != nil {
		panic(fmt.Sprintf("cryptox: failed to generate token: %v", err))
	}
	return token
}

// ValidTokenFormat reports whether s looks like a token produced by
// GenerateToken. It says nothing about whether the token is live.
func ValidTokenFormat(s string) bool {
	return tokenPattern.MatchString(s)
}
