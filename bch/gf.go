// Package bch implements the systematic binary BCH(127,64,10) codec used by
// the fuzzy extractor's secure sketch. Arithmetic is carried out over
// GF(2^7), the splitting field of x^127-1, using a fixed primitive
// polynomial. See generator.go for how the generator polynomial is derived
// and encode.go/decode.go for the codec operations themselves.
package bch

// Field parameters. n = 2^fieldBits - 1 is both the multiplicative order of
// GF(2^fieldBits)* and the BCH block length.
const (
	fieldBits = 7
	fieldSize = 1 << fieldBits // 128
	fieldMask = fieldSize - 1  // 127, also N (block length)

	// primitivePoly is x^7+x^3+1, a primitive polynomial over GF(2) used to
	// build GF(128). Bit i set means a coefficient on x^i, including the
	// leading x^7 term (bit 7, value 0x80) so the reduction step below can
	// cancel it with a single XOR.
	primitivePoly = 0x89 // 0b1000_1001 = x^7 + x^3 + 1

	// N is the BCH codeword length in bits.
	N = fieldMask
	// K is the BCH message length in bits.
	K = 64
	// T is the number of correctable errors.
	T = 10
	// ParityBits is N-K, the number of redundancy bits appended by encode.
	ParityBits = N - K
)

// expTable[i] = alpha^i for i in [0, 2*fieldMask) (doubled to avoid a modulo
// in gfMul). logTable[v] = i such that alpha^i = v, for v in [1, fieldMask].
var (
	expTable [2 * fieldMask]int
	logTable [fieldSize]int
)

// buildTables is called by the package init in generator.go. It populates
// expTable/logTable by multiplying by the primitive
// element (x, represented as integer 2) repeatedly and reducing modulo the
// primitive polynomial whenever the result overflows fieldBits bits.
func buildTables() {
	x := 1
	for i := 0; i < fieldMask; i++ {
		expTable[i] = x
		logTable[x] = i
		x <<= 1
		if x&fieldSize != 0 {
			x ^= primitivePoly
		}
	}
	for i := fieldMask; i < 2*fieldMask; i++ {
		expTable[i] = expTable[i-fieldMask]
	}
}

// gfAdd is addition in GF(2^7), which is XOR since the field has
// characteristic 2.
func gfAdd(a, b int) int { return a ^ b }

// gfMul multiplies two field elements using the log/antilog tables.
func gfMul(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return expTable[logTable[a]+logTable[b]]
}

// gfPow raises a to the n-th power, n >= 0.
func gfPow(a, n int) int {
	if a == 0 {
		if n == 0 {
			return 1
		}
		return 0
	}
	e := (logTable[a] * n) % fieldMask
	if e < 0 {
		e += fieldMask
	}
	return expTable[e]
}

// gfInv returns the multiplicative inverse of a nonzero field element.
func gfInv(a int) int {
	return expTable[fieldMask-logTable[a]]
}

// gfDiv divides a by b (b must be nonzero).
func gfDiv(a, b int) int {
	return gfMul(a, gfInv(b))
}

// alphaPow returns alpha^i for any integer i, negative or otherwise out of
// range, by normalising into [0, fieldMask).
func alphaPow(i int) int {
	e := i % fieldMask
	if e < 0 {
		e += fieldMask
	}
	return expTable[e]
}
