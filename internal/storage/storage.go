package storage

// Package storage contains the checkpoint persistence primitive: a keyed
// save/load of opaque blobs. The service treats whichever backend is
// configured as at-least-eventually-durable and never builds its own
// write-ahead log on top.

import (
	"context"
	"errors"
)

// ErrNotExist is returned by Load when no blob has been saved under the key
// yet (e.g. first start of a fresh deployment).
var ErrNotExist = errors.New("checkpoint does not exist")

// Snapshotter persists and retrieves checkpoint blobs by key. Implementations
// must be safe for concurrent use.
type Snapshotter interface {
	// Save durably stores the blob under key, overwriting any previous value.
	Save(ctx context.Context, key string, data []byte) error

	// Load returns the blob stored under key, or ErrNotExist.
	Load(ctx context.Context, key string) ([]byte, error)

	// Ping verifies the backend is reachable and writable.
	Ping(ctx context.Context) error
}
