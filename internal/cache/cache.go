package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores rendered pipeline responses. Rendering is pure given its
// inputs, so replaying a cached response for an identical query is sound.
type Cache interface {
	// GetAnswer retrieves a cached response by key. Returns nil on miss.
	GetAnswer(ctx context.Context, key string) ([]byte, error)

	// SetAnswer stores a serialized response with TTL.
	SetAnswer(ctx context.Context, key string, response []byte, ttl time.Duration) error

	// Close closes the cache connection.
	Close() error
}

// Key derives a stable cache key from the raw query.
func Key(query string) string {
	sum := sha256.Sum256([]byte(query))
	return hex.EncodeToString(sum[:])
}
