package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// hashToken creates a SHA256 hash of a token
func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// tokenMatches compares the hashes of two tokens in constant time.
func tokenMatches(presented, expectedHash string) bool {
	return subtle.ConstantTimeCompare([]byte(hashToken(presented)), []byte(expectedHash)) == 1
}
