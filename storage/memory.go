package storage

import (
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/fractionestate/decentralized-did/bhash"
)

// Memory is an in-memory HelperStorage, primarily useful in tests and in
// short-lived CLI invocations that don't need durability.
type Memory struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{objects: make(map[string][]byte)}
}

// Put stores data under the key "mem://<id>", replacing any object
// previously stored for id, and returns that URI alongside the hex-encoded
// BLAKE3 hash of data.
func (m *Memory) Put(id string, data []byte) (string, string, error) {
	digest := bhash.Sum256(data)
	hash := hex.EncodeToString(digest[:])
	uri := fmt.Sprintf("mem://%s", id)

	m.mu.Lock()
	m.objects[uri] = append([]byte(nil), data...)
	m.mu.Unlock()

	return uri, hash, nil
}

// Get retrieves the bytes stored at uri.
func (m *Memory) Get(uri string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[uri]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, uri)
	}
	return append([]byte(nil), data...), nil
}
