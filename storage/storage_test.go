package storage

import (
	"errors"
	"testing"

	"github.com/fractionestate/decentralized-did/internal/testutil"
)

func TestMemoryPutGetRoundTrip(t *testing.T) {
	m := NewMemory()
	uri, hash, err := m.Put("finger-1", []byte("helper bytes"))
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if hash == "" {
		t.Fatalf("expected non-empty hash")
	}
	got, err := m.Get(uri)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "helper bytes" {
		t.Fatalf("got %q", got)
	}
}

func TestMemoryGetMissing(t *testing.T) {
	m := NewMemory()
	if _, err := m.Get("mem://nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFilesystemPutGetRoundTrip(t *testing.T) {
	sandbox, err := testutil.NewSandbox()
	if err != nil {
		t.Fatalf("sandbox: %v", err)
	}
	defer sandbox.Cleanup()

	fs, err := NewFilesystem(sandbox.Root)
	if err != nil {
		t.Fatalf("new filesystem: %v", err)
	}
	uri, _, err := fs.Put("finger-1", []byte("helper bytes"))
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := fs.Get(uri)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "helper bytes" {
		t.Fatalf("got %q", got)
	}
}

func TestFilesystemGetMissing(t *testing.T) {
	sandbox, err := testutil.NewSandbox()
	if err != nil {
		t.Fatalf("sandbox: %v", err)
	}
	defer sandbox.Cleanup()

	fs, err := NewFilesystem(sandbox.Root)
	if err != nil {
		t.Fatalf("new filesystem: %v", err)
	}
	if _, err := fs.Get("file://" + sandbox.Path("missing")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
