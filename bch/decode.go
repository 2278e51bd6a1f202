package bch

// Decode corrects up to T bit errors in a received 127-bit word and returns
// the recovered 64-bit message along with the number of errors corrected.
// It computes 2T syndromes, runs Berlekamp-Massey to find the error-locator
// polynomial, and Chien-searches its roots to locate the error positions.
//
// Decode never "corrects" beyond the code's guarantee: if the located error
// count does not match the locator polynomial's degree, or either exceeds
// T, it returns ErrTooManyErrors without modifying the caller's bits.
func Decode(received *Bits) (*Bits, int, error) {
	if received.Len() != N {
		return nil, 0, ErrInvalidLength
	}

	S := syndromes(received)
	if allZero(S) {
		return extractMessage(received), 0, nil
	}

	sigma := berlekampMassey(S)
	L := sigma.degree()
	if L <= 0 || L > T {
		return nil, 0, ErrTooManyErrors
	}

	positions := chienSearch(sigma)
	if len(positions) != L {
		return nil, 0, ErrTooManyErrors
	}

	corrected := received.Clone()
	for _, exp := range positions {
		pos := N - 1 - exp
		corrected.Flip(uint(pos))
	}

	// Re-verify: a valid correction must leave the word with zero
	// syndromes. A nonzero residual means the locator polynomial found
	// spurious roots for a pattern that actually exceeds T errors.
	if !allZero(syndromes(corrected)) {
		return nil, 0, ErrTooManyErrors
	}

	return extractMessage(corrected), L, nil
}

func extractMessage(codeword *Bits) *Bits {
	msg := NewBits(K)
	for i := uint(0); i < K; i++ {
		msg.Set(i, codeword.Get(i))
	}
	return msg
}

func allZero(s []int) bool {
	for _, v := range s {
		if v != 0 {
			return false
		}
	}
	return true
}

// syndromes computes S_1..S_2T where S_j = r(alpha^j), treating bit p
// (MSB-first) of received as the coefficient of x^(N-1-p).
func syndromes(received *Bits) []int {
	S := make([]int, 2*T)
	for j := 1; j <= 2*T; j++ {
		s := 0
		for p := uint(0); p < N; p++ {
			if received.Get(p) {
				exp := j * (N - 1 - int(p))
				s = gfAdd(s, alphaPow(exp))
			}
		}
		S[j-1] = s
	}
	return S
}

// berlekampMassey finds the shortest linear-feedback polynomial consistent
// with the syndrome sequence S[0..len(S)-1] (S[0] = S_1 in BCH notation).
func berlekampMassey(S []int) fpoly {
	C := fpoly{1}
	B := fpoly{1}
	L := 0
	m := 1
	b := 1

	for n := 0; n < len(S); n++ {
		delta := S[n]
		for i := 1; i <= L; i++ {
			delta = gfAdd(delta, gfMul(C.at(i), S[n-i]))
		}
		switch {
		case delta == 0:
			m++
		case 2*L <= n:
			prevC := make(fpoly, len(C))
			copy(prevC, C)
			C = C.add(B.shift(m).scale(gfDiv(delta, b)))
			L = n + 1 - L
			B = prevC
			b = delta
			m = 1
		default:
			C = C.add(B.shift(m).scale(gfDiv(delta, b)))
			m++
		}
	}
	return C
}

// chienSearch returns the set of exponents i in [0, N) such that
// sigma(alpha^-i) == 0, i.e. the error locations expressed as coefficient
// positions of the codeword polynomial (x^i terms).
func chienSearch(sigma fpoly) []int {
	var positions []int
	for i := 0; i < N; i++ {
		x := alphaPow(-i)
		if sigma.eval(x) == 0 {
			positions = append(positions, i)
		}
	}
	return positions
}
