package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func newTestKV(t *testing.T) *SQLiteKV {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLiteKV(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSetAndGet(t *testing.T) {
	ctx := context.Background()
	s := newTestKV(t)

	if err := s.Set(ctx, "ghost:a", "one"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok, err := s.Get(ctx, "ghost:a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || got != "one" {
		t.Errorf("expected 'one', got %q (ok=%v)", got, ok)
	}

	// Overwrite, last write wins
	s.Set(ctx, "ghost:a", "two")
	got, _, _ = s.Get(ctx, "ghost:a")
	if got != "two" {
		t.Errorf("expected 'two', got %q", got)
	}
}

func TestGetMissing(t *testing.T) {
	s := newTestKV(t)

	_, ok, err := s.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Error("expected missing key")
	}
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	s := newTestKV(t)

	s.Set(ctx, "k", "v")
	if err := s.Remove(ctx, "k"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Error("expected key to be gone")
	}
	if err := s.Remove(ctx, "k"); err != nil {
		t.Errorf("removing a missing key should not fail: %v", err)
	}
}

func TestKeysPrefix(t *testing.T) {
	ctx := context.Background()
	s := newTestKV(t)

	s.Set(ctx, "ghost:b", "1")
	s.Set(ctx, "ghost:a", "1")
	s.Set(ctx, "other:c", "1")

	keys, err := s.Keys(ctx, "ghost:")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 2 || keys[0] != "ghost:a" || keys[1] != "ghost:b" {
		t.Errorf("expected [ghost:a ghost:b], got %v", keys)
	}
}

func TestSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ghost.db")

	s, err := NewSQLiteKV(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s.Set(ctx, "ghost:k", "kept")
	s.Close()

	s2, err := NewSQLiteKV(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	got, ok, _ := s2.Get(ctx, "ghost:k")
	if !ok || got != "kept" {
		t.Errorf("expected 'kept' after reopen, got %q", got)
	}
}

func TestDBPathCreation(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "sub", "dir", "test.db")
	s, err := NewSQLiteKV(dbPath)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	s.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("expected db file to be created")
	}
}
