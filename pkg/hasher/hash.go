package hasher

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns the hex-encoded SHA-256 of the input string. Used for
// storing refresh tokens so the raw token never touches the database.
func Hash(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

func Verify(token, hash string) bool {
	return Hash(token) == hash
}
