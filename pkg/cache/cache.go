// Package cache provides pluggable result caching for pipeline runs.
//
// Three backends are available:
//   - FileCache: entries on disk, for CLI usage
//   - RedisCache: shared entries in Redis, for the HTTP server
//   - NullCache: no-op, for tests and --no-cache runs
//
// Keys are derived from the input document hash and an options
// fingerprint, so a run is a cache hit only when both the document and
// every stage threshold match.
package cache

import (
	"context"
	"time"
)

// TTLResult is how long cached pipeline results stay valid. Results
// are pure functions of their key, so the TTL only bounds disk growth.
const TTLResult = 24 * time.Hour

// Cache stores serialized pipeline results keyed by content hash.
type Cache interface {
	// Get retrieves a value. The second return reports a hit; a miss is
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys. Implementations must be deterministic:
// identical inputs yield identical keys across processes.
type Keyer interface {
	// ResultKey keys a full pipeline result by document hash and an
	// options fingerprint.
	ResultKey(docHash, optsHash string) string
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ResultKey generates a key for a pipeline result.
func (k *DefaultKeyer) ResultKey(docHash, optsHash string) string {
	return hashKey("result", docHash, optsHash)
}
