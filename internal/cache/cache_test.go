package cache_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"jamcal/internal/cache"
)

func openStore(t *testing.T) *cache.Store {
	t.Helper()
	store, err := cache.Open(filepath.Join(t.TempDir(), "jamcal.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPutGetRoundTrip(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	body := []byte(`{"type": "FeatureCollection", "features": []}`)
	if err := store.Put(ctx, "?genre=Blues", body); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, fetchedAt, err := store.Get(ctx, "?genre=Blues")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != string(body) {
		t.Errorf("Get() body = %s, want %s", got, body)
	}
	if time.Since(fetchedAt) > time.Minute {
		t.Errorf("fetchedAt = %v, expected recent", fetchedAt)
	}
}

func TestGetMissing(t *testing.T) {
	store := openStore(t)

	_, _, err := store.Get(context.Background(), "?genre=Funk")
	if !errors.Is(err, cache.ErrNoSnapshot) {
		t.Errorf("Get() error = %v, want ErrNoSnapshot", err)
	}
}

func TestPutReplacesSnapshot(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, "", []byte("old")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := store.Put(ctx, "", []byte("new")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, _, err := store.Get(ctx, "")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "new" {
		t.Errorf("Get() = %s, want new", got)
	}
}

func TestSnapshotsKeyedByQuery(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, "?genre=Blues", []byte("blues")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := store.Put(ctx, "?genre=Funk", []byte("funk")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, _, err := store.Get(ctx, "?genre=Blues")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "blues" {
		t.Errorf("Get() = %s, want blues", got)
	}
}
