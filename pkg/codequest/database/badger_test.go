package database

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr"
)

func TestDBGetSet(t *testing.T) {
	db, err := NewTestDB(t)
	if err != nil {
		t.Fatalf("failed to create test DB: %v", err)
	}

	if err := db.Set("events/0001/a", []byte("payload")); err != nil {
		t.Fatalf("failed to set value: %v", err)
	}

	val, err := db.Get("events/0001/a")
	if err != nil {
		t.Fatalf("failed to get value: %v", err)
	}
	if string(val) != "payload" {
		t.Errorf("expected payload, got %s", string(val))
	}
}

func TestDBGetNotFound(t *testing.T) {
	db, err := NewTestDB(t)
	if err != nil {
		t.Fatalf("failed to create test DB: %v", err)
	}

	_, err = db.Get("events/missing")
	if err == nil || !errors.Is(err, ErrNotFound) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestDBDelete(t *testing.T) {
	db, err := NewTestDB(t)
	if err != nil {
		t.Fatalf("failed to create test DB: %v", err)
	}

	if err := db.Set("k", []byte("v")); err != nil {
		t.Fatalf("failed to set value: %v", err)
	}
	if err := db.Delete("k"); err != nil {
		t.Fatalf("failed to delete value: %v", err)
	}

	if _, err := db.Get("k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected not found error after delete, got %v", err)
	}
}

func TestDBList(t *testing.T) {
	db, err := NewTestDB(t)
	if err != nil {
		t.Fatalf("failed to create test DB: %v", err)
	}

	items := map[string][]byte{
		"events/1": []byte("one"),
		"events/2": []byte("two"),
		"other/1":  []byte("skip"),
	}
	for k, v := range items {
		if err := db.Set(k, v); err != nil {
			t.Fatalf("failed to set %s: %v", k, err)
		}
	}

	got, err := db.List("events/")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("List() returned %d items, want 2", len(got))
	}
	if string(got["events/2"]) != "two" {
		t.Errorf("List()[events/2] = %q, want two", got["events/2"])
	}
}

func TestDBBatchSetAndDelete(t *testing.T) {
	db, err := NewTestDB(t)
	if err != nil {
		t.Fatalf("failed to create test DB: %v", err)
	}

	if err := db.BatchSet(map[string][]byte{"a": []byte("1"), "b": []byte("2"), "c": []byte("3")}); err != nil {
		t.Fatalf("BatchSet() error = %v", err)
	}
	if err := db.BatchDelete([]string{"a", "b"}); err != nil {
		t.Fatalf("BatchDelete() error = %v", err)
	}

	all, err := db.List("")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected 1 remaining key, got %d", len(all))
	}
	if _, ok := all["c"]; !ok {
		t.Error("expected key c to survive batch delete")
	}
}

func TestNewDB_OnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "badger")
	db, err := NewDB(path, logr.Discard())
	if err != nil {
		t.Fatalf("NewDB() error = %v", err)
	}
	defer db.Close()

	if err := db.Set("k", []byte("v")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
}
