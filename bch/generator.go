package bch

// generator holds g(x), the degree-(N-K) generator polynomial used by both
// encode and decode. It is computed once at package init time as the least
// common multiple of the minimal polynomials of alpha^1, alpha^3, ...,
// alpha^(2T-1), exactly as described for a designed-distance-2T+1 binary
// BCH code. Computing it from the field tables (rather than hardcoding a
// magic constant) keeps the codec's correctness tied to the documented
// construction.
var generator gf2poly

// Init functions run in file-name order, so the field tables are built here,
// before the generator that depends on them, and genLow is derived only once
// generator holds its final value.
func init() {
	buildTables()
	generator = buildGenerator()
	genLow = generator &^ (1 << uint(ParityBits))
	if generator.degree() != ParityBits {
		panic("bch: generator polynomial has unexpected degree")
	}
}

// buildGenerator computes lcm(minimalPoly(alpha), minimalPoly(alpha^3), ...,
// minimalPoly(alpha^(2T-1))). Conjugate roots (alpha^i and alpha^(2i mod N))
// share a minimal polynomial, so duplicates are skipped rather than
// recomputed, which is what collapses the ten odd powers down to the nine
// distinct degree-7 factors that multiply out to degree 63.
func buildGenerator() gf2poly {
	g := gf2poly(1)
	for i := 1; i < 2*T; i += 2 {
		m := minimalPolynomial(i)
		if !m.divides(g) {
			g = mulGF2(g, m)
		}
	}
	return g
}

// minimalPolynomial computes the minimal polynomial over GF(2) of alpha^i,
// i.e. the product of (x + alpha^c) over every conjugate c in the cyclotomic
// coset of i under repeated squaring modulo N.
func minimalPolynomial(i int) gf2poly {
	coset := cyclotomicCoset(i)
	p := gf128poly{1} // the constant polynomial "1"
	for _, c := range coset {
		p = p.mulLinear(alphaPow(c))
	}
	return p.toGF2()
}

// cyclotomicCoset returns {i, 2i, 4i, ...} mod N, stopping once it cycles
// back to i.
func cyclotomicCoset(i int) []int {
	coset := []int{i}
	c := (2 * i) % N
	for c != i {
		coset = append(coset, c)
		c = (2 * c) % N
	}
	return coset
}
