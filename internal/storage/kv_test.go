// ABOUTME: Contract tests run against every KV backend.
// ABOUTME: Covers get/set/delete/keys and not-found behavior for memory, sqlite and badger.
package storage

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func setupTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()

	db, err := OpenSQLite(filepath.Join(t.TempDir(), "healthtrack.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func setupTestBadger(t *testing.T) *BadgerStore {
	t.Helper()

	db, err := OpenBadger("")
	if err != nil {
		t.Fatalf("Failed to open badger: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func backends(t *testing.T) map[string]KV {
	t.Helper()
	return map[string]KV{
		"memory": NewMemoryStore(),
		"sqlite": setupTestSQLite(t),
		"badger": setupTestBadger(t),
	}
}

func TestKVContract(t *testing.T) {
	ctx := context.Background()

	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := kv.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("Get missing: got %v, want ErrNotFound", err)
			}

			if err := kv.Set(ctx, "a", []byte(`[1,2]`)); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			if err := kv.Set(ctx, "b", []byte(`{}`)); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			if err := kv.Set(ctx, "a", []byte(`[3]`)); err != nil {
				t.Fatalf("overwrite failed: %v", err)
			}

			got, err := kv.Get(ctx, "a")
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if !bytes.Equal(got, []byte(`[3]`)) {
				t.Errorf("Get = %s, want [3]", got)
			}

			keys, err := kv.Keys(ctx)
			if err != nil {
				t.Fatalf("Keys failed: %v", err)
			}
			if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
				t.Errorf("Keys = %v, want [a b]", keys)
			}

			if err := kv.Delete(ctx, "a"); err != nil {
				t.Fatalf("Delete failed: %v", err)
			}
			if _, err := kv.Get(ctx, "a"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get after delete: got %v, want ErrNotFound", err)
			}
			if err := kv.Delete(ctx, "never-set"); err != nil {
				t.Errorf("Delete of missing key failed: %v", err)
			}
		})
	}
}

func TestSQLiteReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "healthtrack.db")

	db, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	if err := db.Set(ctx, KeyWater, []byte(`[]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	_ = db.Close()

	db, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer db.Close()

	if db.Path() != path {
		t.Errorf("Path = %s, want %s", db.Path(), path)
	}
	if _, err := db.Get(ctx, KeyWater); err != nil {
		t.Errorf("Get after reopen failed: %v", err)
	}
}

func TestBadgerOnDisk(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "badger")

	db, err := OpenBadger(dir)
	if err != nil {
		t.Fatalf("OpenBadger failed: %v", err)
	}
	if err := db.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	_ = db.Close()

	db, err = OpenBadger(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer db.Close()

	got, err := db.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Errorf("Get after reopen = %q, %v", got, err)
	}
}

func TestPersistenceErrorUnwraps(t *testing.T) {
	err := error(&PersistenceError{Op: "set", Key: KeyWater, Err: ErrNotFound})
	if !errors.Is(err, ErrNotFound) {
		t.Error("PersistenceError should unwrap to its cause")
	}
	var pe *PersistenceError
	if !errors.As(err, &pe) || pe.Key != KeyWater {
		t.Errorf("errors.As failed: %v", pe)
	}
	if err.Error() != "set @health_tracker_water_intake: not found" {
		t.Errorf("Error() = %q", err.Error())
	}
}
