package cache

import (
	"context"
	"time"
)

// Store is a key-value cache with per-entry expiration, used for
// question-answer memoization.
type Store interface {
	// Get retrieves a value by key; the bool reports whether a live entry exists
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores a key-value pair with expiration
	Set(ctx context.Context, key, value string, expiration time.Duration) error

	// Delete removes a key
	Delete(ctx context.Context, key string) error
}
