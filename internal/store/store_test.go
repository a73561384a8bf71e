package store

import (
	"context"
	"path/filepath"
	"testing"
)

// kvContract exercises the behavior every KV implementation must share.
func kvContract(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	if _, found, err := kv.Get(ctx, "missing"); err != nil || found {
		t.Fatalf("Get(missing) = found=%v err=%v, want absent", found, err)
	}

	if err := kv.Set(ctx, "k", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, found, err := kv.Get(ctx, "k")
	if err != nil || !found || string(v) != `{"a":1}` {
		t.Fatalf("Get(k) = %q found=%v err=%v", v, found, err)
	}

	// Overwrite wins.
	if err := kv.Set(ctx, "k", []byte(`{"a":2}`)); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	v, _, _ = kv.Get(ctx, "k")
	if string(v) != `{"a":2}` {
		t.Fatalf("overwrite lost: %q", v)
	}

	if err := kv.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found, _ := kv.Get(ctx, "k"); found {
		t.Fatal("key survived Delete")
	}
	// Deleting a missing key is not an error.
	if err := kv.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete(missing): %v", err)
	}
}

func TestMemoryKV(t *testing.T) {
	kvContract(t, NewMemory())
}

func TestMemoryKVCopiesValues(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	buf := []byte("hello")
	_ = kv.Set(ctx, "k", buf)
	buf[0] = 'X'

	v, _, _ := kv.Get(ctx, "k")
	if string(v) != "hello" {
		t.Errorf("stored value aliases caller buffer: %q", v)
	}
	v[0] = 'Y'
	v2, _, _ := kv.Get(ctx, "k")
	if string(v2) != "hello" {
		t.Errorf("returned value aliases stored buffer: %q", v2)
	}
}

func TestSQLiteKV(t *testing.T) {
	kv, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	kvContract(t, kv)
}
