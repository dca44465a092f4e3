// Package localstore persists the small amount of client-side state the
// application keeps between restarts: the data-source mode flag, the demo
// identity snapshot and the remote session token. Values are plain strings,
// usually holding JSON.
package localstore

import "context"

// Store is a string key/value store.
type Store interface {
	// Get returns the value stored under key. ok is false when the key is
	// absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
