package sqlite

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/julianstephens/elevate/internal/storage"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "elevate.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPutGetRoundTrip(t *testing.T) {
	store := setupTestStore(t)

	if err := store.Put("elevate_habits", []byte(`[{"id":"a"}]`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	got, err := store.Get("elevate_habits")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `[{"id":"a"}]` {
		t.Errorf("unexpected payload %q", got)
	}

	// overwrite keeps a single row
	if err := store.Put("elevate_habits", []byte(`[]`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	got, _ = store.Get("elevate_habits")
	if string(got) != `[]` {
		t.Errorf("expected overwritten payload, got %q", got)
	}
	keys, _ := store.Keys()
	if len(keys) != 1 {
		t.Errorf("expected 1 key, got %v", keys)
	}
}

func TestGetMissingKey(t *testing.T) {
	store := setupTestStore(t)

	if _, err := store.Get("nope"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteAndKeys(t *testing.T) {
	store := setupTestStore(t)

	for _, k := range []string{"b", "a", "c"} {
		if err := store.Put(k, []byte(`{}`)); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}
	if err := store.Delete("b"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete("missing"); err != nil {
		t.Errorf("Delete of missing key should succeed, got %v", err)
	}

	keys, err := store.Keys()
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "c" {
		t.Errorf("unexpected keys %v", keys)
	}
}

func TestLoadExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "elevate.db")
	first := NewStore(path)
	if err := first.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := first.Put("k", []byte(`"v"`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	first.Close()

	second := NewStore(path)
	if err := second.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer second.Close()

	got, err := second.Get("k")
	if err != nil || string(got) != `"v"` {
		t.Errorf("expected persisted payload, got %q (%v)", got, err)
	}

	current, latest, err := second.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if current != latest || current < 1 {
		t.Errorf("expected schema at latest, got %d/%d", current, latest)
	}
}

func TestLoadUninitialized(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Error("expected error loading uninitialized store")
	}
}

func TestOperationsBeforeLoad(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "elevate.db"))
	if _, err := store.Get("k"); !errors.Is(err, storage.ErrNotLoaded) {
		t.Errorf("expected ErrNotLoaded, got %v", err)
	}
	if err := store.Put("k", nil); !errors.Is(err, storage.ErrNotLoaded) {
		t.Errorf("expected ErrNotLoaded, got %v", err)
	}
}
