// Package store persists pipeline results for later retrieval by run
// id. The server uses the Mongo-backed store; tests and the CLI use the
// in-memory one.
package store

import (
	"context"
	"errors"

	"github.com/argmaplab/argmap/pkg/payload"
)

// ErrNotFound is returned when no result exists for a run id.
var ErrNotFound = errors.New("run not found")

// Store is the interface for result storage backends.
type Store interface {
	// SaveResult stores a result, replacing any previous result with
	// the same run id.
	SaveResult(ctx context.Context, res payload.Result) error

	// GetResult retrieves a result by run id.
	// Returns ErrNotFound if no such run exists.
	GetResult(ctx context.Context, runID string) (*payload.Result, error)

	// DeleteResult removes a result. Deleting a missing run is not an
	// error.
	DeleteResult(ctx context.Context, runID string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
