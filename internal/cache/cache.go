package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache defines the interface for the in-process cache layer
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a deterministic cache key from a query and language code.
// Identical (query, language) inputs always yield the same key.
func Key(query, language string) string {
	normalized := Normalize(query) + "\n" + strings.ToLower(strings.TrimSpace(language))
	hash := sha256.Sum256([]byte(normalized))
	return "veridex:v1:" + hex.EncodeToString(hash[:])
}

// Normalize lower-cases and collapses whitespace so trivially different
// spellings of the same query share a cache entry
func Normalize(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}
