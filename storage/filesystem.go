package storage

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fractionestate/decentralized-did/bhash"
)

// Filesystem is a HelperStorage rooted at a directory on disk, one file
// per stored object named by its id.
type Filesystem struct {
	root string
}

// NewFilesystem returns a Filesystem rooted at dir, creating it if
// necessary.
func NewFilesystem(dir string) (*Filesystem, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("storage: creating root %s: %w", dir, err)
	}
	return &Filesystem{root: dir}, nil
}

// Put writes data to a file named id under the store's root, returning a
// "file://" URI and the hex-encoded BLAKE3 hash of data.
func (f *Filesystem) Put(id string, data []byte) (string, string, error) {
	path := filepath.Join(f.root, id)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", "", fmt.Errorf("storage: writing %s: %w", path, err)
	}
	digest := bhash.Sum256(data)
	return "file://" + path, hex.EncodeToString(digest[:]), nil
}

// Get reads the bytes previously written at uri (a "file://" URI
// produced by Put).
func (f *Filesystem) Get(uri string) ([]byte, error) {
	const prefix = "file://"
	if len(uri) <= len(prefix) || uri[:len(prefix)] != prefix {
		return nil, fmt.Errorf("storage: not a file:// uri: %s", uri)
	}
	path := uri[len(prefix):]
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, uri)
		}
		return nil, fmt.Errorf("storage: reading %s: %w", path, err)
	}
	return data, nil
}
