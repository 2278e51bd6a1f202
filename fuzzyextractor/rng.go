package fuzzyextractor

import "crypto/rand"

// RNG is the injected randomness capability Gen uses to sample a fresh
// salt. Taking it as an interface rather than calling crypto/rand directly
// keeps Gen a pure function of its explicit arguments and lets tests
// substitute a deterministic source, per the system's concurrency and
// resource model.
type RNG interface {
	// Read fills buf with random bytes, returning the number written and
	// any error, matching io.Reader.
	Read(buf []byte) (int, error)
}

// CryptoRNG is the default RNG backed by the operating system's
// cryptographically secure random source.
type CryptoRNG struct{}

// Read implements RNG using crypto/rand.
func (CryptoRNG) Read(buf []byte) (int, error) {
	return rand.Read(buf)
}
