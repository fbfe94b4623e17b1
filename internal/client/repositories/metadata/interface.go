// Package metadata persists small key/value pairs of client state, such as
// the session credential and the id of the signed-in user.
package metadata

import (
	"context"
)

// Repository is a string-keyed byte store.
type Repository interface {
	// Get returns the value under key and whether it exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set inserts or replaces the value under key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Clear removes every key.
	Clear(ctx context.Context) error
}
