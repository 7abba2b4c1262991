package sarf

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashText computes the SHA-256 hash of the trimmed text.
func HashText(text string) string {
	trimmed := strings.TrimSpace(text)
	hash := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(hash[:])
}

// CacheKey generates an analysis cache key from a text hash and input kind.
func CacheKey(hash string, kind InputKind) string {
	return hash + ":" + string(kind)
}
