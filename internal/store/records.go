package store

import (
	"context"
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rcliao/ghost/internal/model"
)

// Records keeps ordered record lists in a KV, one JSON array per kind.
// Insertion order is display order; indices passed in are 1-based and a
// removal shifts every later item down by one.
type Records struct {
	kv KV

	mu      sync.Mutex
	entropy *rand.Rand

	// Now stamps new items. Tests replace it.
	Now func() time.Time
}

// NewRecords wraps kv.
func NewRecords(kv KV) *Records {
	return &Records{
		kv:      kv,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
		Now:     time.Now,
	}
}

// NewMeta returns a fresh ID and creation time for an item about to be appended.
func (r *Records) NewMeta() model.Meta {
	now := r.Now()
	r.mu.Lock()
	id := ulid.MustNew(ulid.Timestamp(now), r.entropy).String()
	r.mu.Unlock()
	return model.Meta{ID: id, CreatedAt: now.UTC().Truncate(time.Second)}
}

// Load returns every item of kind in insertion order. A missing key is an empty list.
func Load[T any](ctx context.Context, r *Records, kind model.Kind) ([]T, error) {
	raw, ok, err := r.kv.Get(ctx, RecordKey(kind))
	if err != nil {
		return nil, &StorageError{Op: "load", Kind: kind, Err: err}
	}
	if !ok || raw == "" {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, &StorageError{Op: "decode", Kind: kind, Err: err}
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Save replaces the whole list for kind.
func Save[T any](ctx context.Context, r *Records, kind model.Kind, items []T) error {
	if items == nil {
		items = []T{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return &StorageError{Op: "encode", Kind: kind, Err: err}
	}
	if err := r.kv.Set(ctx, RecordKey(kind), string(b)); err != nil {
		return &StorageError{Op: "save", Kind: kind, Err: err}
	}
	return nil
}

// Append adds item at the end and returns its 1-based index.
func Append[T any](ctx context.Context, r *Records, kind model.Kind, item T) (int, error) {
	items, err := Load[T](ctx, r, kind)
	if err != nil {
		return 0, err
	}
	items = append(items, item)
	if err := Save(ctx, r, kind, items); err != nil {
		return 0, err
	}
	return len(items), nil
}

// AppendCapped appends item and drops the oldest items beyond limit.
// A limit <= 0 means no cap.
func AppendCapped[T any](ctx context.Context, r *Records, kind model.Kind, item T, limit int) error {
	items, err := Load[T](ctx, r, kind)
	if err != nil {
		return err
	}
	items = append(items, item)
	if limit > 0 && len(items) > limit {
		items = items[len(items)-limit:]
	}
	return Save(ctx, r, kind, items)
}

// RemoveAt deletes the item at the 1-based index and returns it.
// An out-of-range index returns *IndexError and leaves the list unchanged.
func RemoveAt[T any](ctx context.Context, r *Records, kind model.Kind, index int) (T, error) {
	var zero T
	items, err := Load[T](ctx, r, kind)
	if err != nil {
		return zero, err
	}
	if index < 1 || index > len(items) {
		return zero, &IndexError{Kind: kind, Index: index, Len: len(items)}
	}
	removed := items[index-1]
	items = append(items[:index-1], items[index:]...)
	if err := Save(ctx, r, kind, items); err != nil {
		return zero, err
	}
	return removed, nil
}

// UpdateAt applies fn to the item at the 1-based index and saves the list.
// If fn returns an error nothing is written.
func UpdateAt[T any](ctx context.Context, r *Records, kind model.Kind, index int, fn func(*T) error) (T, error) {
	var zero T
	items, err := Load[T](ctx, r, kind)
	if err != nil {
		return zero, err
	}
	if index < 1 || index > len(items) {
		return zero, &IndexError{Kind: kind, Index: index, Len: len(items)}
	}
	if err := fn(&items[index-1]); err != nil {
		return zero, err
	}
	if err := Save(ctx, r, kind, items); err != nil {
		return zero, err
	}
	return items[index-1], nil
}

// Count returns the number of items of kind without decoding their payloads.
func (r *Records) Count(ctx context.Context, kind model.Kind) (int, error) {
	items, err := Load[json.RawMessage](ctx, r, kind)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// Clear removes every item of kind.
func (r *Records) Clear(ctx context.Context, kind model.Kind) error {
	if err := r.kv.Remove(ctx, RecordKey(kind)); err != nil {
		return &StorageError{Op: "clear", Kind: kind, Err: err}
	}
	return nil
}

// ClearAll removes every record list and setting ghost has written.
func (r *Records) ClearAll(ctx context.Context) error {
	keys, err := r.kv.Keys(ctx, KeyPrefix)
	if err != nil {
		return &StorageError{Op: "clear", Err: err}
	}
	for _, k := range keys {
		if err := r.kv.Remove(ctx, k); err != nil {
			return &StorageError{Op: "clear", Err: err}
		}
	}
	return nil
}

// Setting reads a named setting. ok is false when it was never written.
func (r *Records) Setting(ctx context.Context, name string) (string, bool, error) {
	v, ok, err := r.kv.Get(ctx, SettingKey(name))
	if err != nil {
		return "", false, &StorageError{Op: "load", Err: err}
	}
	return v, ok, nil
}

// SetSetting writes a named setting.
func (r *Records) SetSetting(ctx context.Context, name, value string) error {
	if err := r.kv.Set(ctx, SettingKey(name), value); err != nil {
		return &StorageError{Op: "save", Err: err}
	}
	return nil
}
