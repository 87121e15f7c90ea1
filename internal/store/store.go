// Package store provides the key-value persistence interface, its SQLite and
// in-memory implementations, and typed record lists on top of them.
package store

import (
	"context"
	"fmt"

	"github.com/rcliao/ghost/internal/model"
)

// KV is string-valued key-value persistence, shaped like browser local storage.
type KV interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error

	// Keys lists keys starting with prefix, sorted.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Close closes the backend.
	Close() error
}

// KeyPrefix namespaces every key ghost writes.
const KeyPrefix = "ghost:"

// RecordKey is the KV key holding the list for kind.
func RecordKey(kind model.Kind) string {
	return KeyPrefix + "records:" + string(kind)
}

// SettingKey is the KV key for a named setting such as "voice".
func SettingKey(name string) string {
	return KeyPrefix + "settings:" + name
}

// StorageError reports that the backend could not be read or written.
// A record that failed to persist must not be assumed saved.
type StorageError struct {
	Op   string
	Kind model.Kind
	Err  error
}

func (e *StorageError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Kind, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IndexError reports a 1-based index outside the list.
type IndexError struct {
	Kind  model.Kind
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("invalid %s index %d (have %d)", e.Kind, e.Index, e.Len)
}
