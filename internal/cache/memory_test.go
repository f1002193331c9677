package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	if err := store.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, ok, _ := store.Get(ctx, "k"); !ok || string(got) != "v" {
		t.Fatalf("expected hit, got %q %v", got, ok)
	}

	now = now.Add(time.Minute)
	if _, ok, _ := store.Get(ctx, "k"); ok {
		t.Fatal("expected entry to expire")
	}
	if len(store.entries) != 0 {
		t.Fatal("expected expired entry to be dropped")
	}
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	buf := []byte("abc")
	_ = store.Set(ctx, "k", buf, 0)
	buf[0] = 'x'

	got, ok, _ := store.Get(ctx, "k")
	if !ok || string(got) != "abc" {
		t.Fatalf("expected stored copy, got %q", got)
	}
}

func TestMemoryStoreSweepsExpiredOnSet(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	for _, k := range []string{"yahoo:history:A", "yahoo:history:B", "yahoo:history:C"} {
		_ = store.Set(ctx, k, []byte("v"), time.Minute)
	}
	_ = store.Set(ctx, "pinned", []byte("v"), 0)

	now = now.Add(2 * time.Minute)
	_ = store.Set(ctx, "fresh", []byte("v"), time.Hour)

	if len(store.entries) != 2 {
		t.Fatalf("expected expired entries to be swept, got %d entries", len(store.entries))
	}
	if _, ok, _ := store.Get(ctx, "pinned"); !ok {
		t.Fatal("expected entry without ttl to survive the sweep")
	}
}

func TestMemoryStoreSweepIsThrottled(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	_ = store.Set(ctx, "a", []byte("v"), time.Second)
	now = now.Add(2 * time.Second)
	_ = store.Set(ctx, "b", []byte("v"), time.Hour)

	// The first Set swept at 12:00:00, so the next scan is not due yet.
	if len(store.entries) != 2 {
		t.Fatalf("expected no sweep within the interval, got %d entries", len(store.entries))
	}
}
