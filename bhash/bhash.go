// Package bhash pins the single hash family used across the fuzzy
// extractor and the DID/metadata builder: BLAKE3, in both its unkeyed and
// keyed-MAC modes, plus its dedicated key-derivation mode for domain
// separation. The design notes accompanying this system's specification
// leave the exact hash algorithm unspecified but require a single choice
// per version; BLAKE3 is that choice, and this package is the only place
// that imports the underlying library so the choice stays centralized.
package bhash

import "lukechampine.com/blake3"

// Size is the output width, in bytes, of every hash and key this package
// produces: a 256-bit digest.
const Size = 32

// Sum256 computes an unkeyed BLAKE3-256 digest of data.
func Sum256(data []byte) [Size]byte {
	return blake3.Sum256(data)
}

// DeriveKey derives a 32-byte key from context and material using BLAKE3's
// key-derivation mode. context should be a fixed, application-specific
// domain label; material is the caller-supplied input being bound to it.
func DeriveKey(context string, material []byte) [Size]byte {
	out := make([]byte, Size)
	blake3.DeriveKey(out, context, material)
	var fixed [Size]byte
	copy(fixed[:], out)
	return fixed
}

// MAC computes a 32-byte keyed hash of data under a 32-byte key. key must
// be exactly Size bytes.
func MAC(key, data []byte) [Size]byte {
	h := blake3.New(Size, key)
	h.Write(data)
	var out [Size]byte
	copy(out[:], h.Sum(nil))
	return out
}
