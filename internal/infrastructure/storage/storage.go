// Package storage provides the persisted-state collaborator: a flat
// key-value space of JSON blobs with get/set/clear semantics. The app
// credential, the last search criteria, and filter defaults survive process
// restarts through it. There is no schema migration.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has no stored value.
var ErrNotFound = errors.New("key not found")

// Well-known persistence keys.
const (
	// KeyAppToken stores the app-level credential.
	KeyAppToken = "auth:app_token"

	// KeyLastCriteria stores the snapshot of the last issued search.
	KeyLastCriteria = "search:last_criteria"

	// KeyFilterDefaults stores the filter state last derived from bounds.
	KeyFilterDefaults = "search:filter_defaults"
)

// Store is the persisted key-value contract.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any prior value.
	Set(ctx context.Context, key string, value []byte) error

	// Clear removes the value stored under key. Clearing a missing key
	// is not an error.
	Clear(ctx context.Context, key string) error
}
