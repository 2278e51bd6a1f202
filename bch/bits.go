package bch

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Bits is a fixed-length, MSB-first bit vector. Bit 0 is the first bit
// transmitted/stored (the most significant), matching the byte layout
// mandated for BiometricVector, BchCodeword and the helper blob's packed
// codeword field.
type Bits struct {
	set *bitset.BitSet
	n   uint
}

// NewBits allocates an all-zero vector of n bits.
func NewBits(n uint) *Bits {
	return &Bits{set: bitset.New(n), n: n}
}

// BitsFromBytes unpacks the first n bits (MSB-first within each byte) from
// data. It returns an error if data is too short to hold n bits.
func BitsFromBytes(data []byte, n uint) (*Bits, error) {
	need := (n + 7) / 8
	if uint(len(data)) < need {
		return nil, fmt.Errorf("bch: need %d bytes for %d bits, got %d", need, n, len(data))
	}
	b := NewBits(n)
	for i := uint(0); i < n; i++ {
		byteIdx := i / 8
		bitIdx := 7 - (i % 8)
		if data[byteIdx]&(1<<bitIdx) != 0 {
			b.Set(i, true)
		}
	}
	return b, nil
}

// Len returns the number of bits in the vector.
func (b *Bits) Len() uint { return b.n }

// Get returns bit i (0 = first/most significant).
func (b *Bits) Get(i uint) bool { return b.set.Test(i) }

// Set assigns bit i.
func (b *Bits) Set(i uint, v bool) {
	if v {
		b.set.Set(i)
	} else {
		b.set.Clear(i)
	}
}

// Flip toggles bit i.
func (b *Bits) Flip(i uint) { b.set.Flip(i) }

// Clone returns an independent copy.
func (b *Bits) Clone() *Bits {
	c := NewBits(b.n)
	c.set = b.set.Clone()
	return c
}

// Bytes packs the vector MSB-first into ceil(n/8) bytes, zero-padding any
// trailing bits in the final byte.
func (b *Bits) Bytes() []byte {
	out := make([]byte, (b.n+7)/8)
	for i := uint(0); i < b.n; i++ {
		if b.Get(i) {
			out[i/8] |= 1 << (7 - (i % 8))
		}
	}
	return out
}

// Xor returns a new vector that is the bitwise XOR of b and other. Both
// vectors must have equal length.
func (b *Bits) Xor(other *Bits) (*Bits, error) {
	if b.n != other.n {
		return nil, fmt.Errorf("bch: xor length mismatch %d != %d", b.n, other.n)
	}
	out := &Bits{set: b.set.SymmetricDifference(other.set), n: b.n}
	return out, nil
}

// HammingWeight returns the number of set bits.
func (b *Bits) HammingWeight() uint {
	return b.set.Count()
}

// Slice extracts bits [lo, hi) as an independent vector of length hi-lo.
func (b *Bits) Slice(lo, hi uint) *Bits {
	out := NewBits(hi - lo)
	for i := lo; i < hi; i++ {
		out.Set(i-lo, b.Get(i))
	}
	return out
}

// WriteAt copies other into b starting at bit offset off, overwriting
// len(other) bits. The caller must ensure off+other.Len() <= b.Len().
func (b *Bits) WriteAt(off uint, other *Bits) {
	for i := uint(0); i < other.n; i++ {
		b.Set(off+i, other.Get(i))
	}
}

// Concat returns a new vector holding a followed by b.
func Concat(a, b *Bits) *Bits {
	out := NewBits(a.n + b.n)
	out.WriteAt(0, a)
	out.WriteAt(a.n, b)
	return out
}

// toPoly interprets the vector as a polynomial over GF(2) of degree < n,
// where bit i (MSB-first) is the coefficient of x^(n-1-i). gf2poly holds 64
// coefficients, so the result is exact only for n <= 64. This is the
// convention used throughout the codec: earlier-transmitted bits carry
// higher-degree terms.
func (b *Bits) toPoly() gf2poly {
	var p gf2poly
	for i := uint(0); i < b.n; i++ {
		if b.Get(i) {
			p |= 1 << (b.n - 1 - i)
		}
	}
	return p
}

// bitsFromPoly is the inverse of toPoly for a vector of length n.
func bitsFromPoly(p gf2poly, n uint) *Bits {
	b := NewBits(n)
	for i := uint(0); i < n; i++ {
		if (p>>(n-1-i))&1 == 1 {
			b.Set(i, true)
		}
	}
	return b
}
