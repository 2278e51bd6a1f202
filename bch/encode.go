package bch

// genLow holds the generator polynomial with its implicit leading
// coefficient (x^ParityBits) stripped, leaving the ParityBits low-order
// taps used by the feedback shift register below. It is set by the package
// init in generator.go, right after generator is built.
var genLow gf2poly

// Encode performs systematic encoding of a 64-bit message into a 127-bit
// codeword: the message occupies the high-order positions unchanged, and
// the low-order ParityBits positions hold the remainder of
// x^ParityBits*m(x) modulo the generator polynomial. It is computed with a
// bit-serial feedback shift register rather than building the degree-126
// shifted polynomial explicitly, which keeps every intermediate value
// within ParityBits bits.
//
// Encode is a pure function of its input. Any 64-bit vector is a valid
// message; the only error is ErrInvalidLength for a vector of any other
// length.
func Encode(message *Bits) (*Bits, error) {
	if message.Len() != K {
		return nil, ErrInvalidLength
	}

	var reg gf2poly
	const r = ParityBits
	mask := gf2poly(1<<uint(r)) - 1

	for i := uint(0); i < K; i++ {
		top := (reg >> uint(r-1)) & 1
		var bit gf2poly
		if message.Get(i) {
			bit = 1
		}
		feedback := top ^ bit
		reg = (reg << 1) & mask
		if feedback == 1 {
			reg ^= genLow
		}
	}

	codeword := NewBits(N)
	for i := uint(0); i < K; i++ {
		codeword.Set(i, message.Get(i))
	}
	parity := bitsFromPoly(reg, r)
	for i := uint(0); i < r; i++ {
		codeword.Set(K+i, parity.Get(i))
	}
	return codeword, nil
}
