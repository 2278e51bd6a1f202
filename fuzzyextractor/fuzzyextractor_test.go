package fuzzyextractor

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/fractionestate/decentralized-did/bch"
)

// seededRNG is a deterministic stand-in for CryptoRNG, letting tests assert
// on literal expected bytes the way a fixed-seed scenario demands.
type seededRNG struct{ r *rand.Rand }

func newSeededRNG(seed int64) *seededRNG {
	return &seededRNG{r: rand.New(rand.NewSource(seed))}
}

func (s *seededRNG) Read(buf []byte) (int, error) {
	return s.r.Read(buf)
}

// vectorS1 builds the S1/S2/S3 fixture: 64 leading zero bits followed by
// 63 one bits.
func vectorS1() *bch.Bits {
	v := bch.NewBits(127)
	for i := uint(64); i < 127; i++ {
		v.Set(i, true)
	}
	return v
}

func flip(v *bch.Bits, positions ...uint) *bch.Bits {
	c := v.Clone()
	for _, p := range positions {
		c.Flip(p)
	}
	return c
}

func TestS1SingleFingerHappyPath(t *testing.T) {
	b := vectorS1()
	key, helper, err := Gen(b, []byte("addr1example"), newSeededRNG(0))
	if err != nil {
		t.Fatalf("gen: %v", err)
	}
	if len(key) != 32 {
		t.Fatalf("key length = %d, want 32", len(key))
	}
	got, _, err := Rep(b, helper)
	if err != nil {
		t.Fatalf("rep: %v", err)
	}
	if !bytes.Equal(got, key) {
		t.Fatalf("rep key does not match gen key")
	}
	blob, err := helper.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if len(blob) != 105 {
		t.Fatalf("helper blob length = %d, want 105", len(blob))
	}
}

func TestS2NoiseWithinCapacity(t *testing.T) {
	b := vectorS1()
	key, helper, err := Gen(b, []byte("addr1example"), newSeededRNG(0))
	if err != nil {
		t.Fatalf("gen: %v", err)
	}
	noisy := flip(b, 3, 17, 29, 41, 53, 67, 79, 91, 103, 115)
	got, corrected, err := Rep(noisy, helper)
	if err != nil {
		t.Fatalf("rep with 10-bit noise: %v", err)
	}
	if !bytes.Equal(got, key) {
		t.Fatalf("rep key does not match gen key under within-capacity noise")
	}
	if corrected != 10 {
		t.Fatalf("expected 10 corrected errors, got %d", corrected)
	}
}

func TestS3NoiseBeyondCapacity(t *testing.T) {
	b := vectorS1()
	_, helper, err := Gen(b, []byte("addr1example"), newSeededRNG(0))
	if err != nil {
		t.Fatalf("gen: %v", err)
	}
	noisy := flip(b, 3, 17, 29, 41, 53, 67, 79, 91, 103, 115, 120)
	_, _, err = Rep(noisy, helper)
	if err != ErrBchFailure {
		t.Fatalf("expected ErrBchFailure for 11-bit noise, got %v", err)
	}
}

func TestS4IntegrityViolation(t *testing.T) {
	b := vectorS1()
	_, helper, err := Gen(b, []byte("addr1example"), newSeededRNG(0))
	if err != nil {
		t.Fatalf("gen: %v", err)
	}
	helper.Tag[0] ^= 0x01
	if _, _, err := Rep(b, helper); err != ErrIntegrity {
		t.Fatalf("expected ErrIntegrity, got %v", err)
	}
}

func TestDeterminismOnExactInput(t *testing.T) {
	b := vectorS1()
	key, helper, err := Gen(b, []byte("tag"), newSeededRNG(7))
	if err != nil {
		t.Fatalf("gen: %v", err)
	}
	got, _, err := Rep(b, helper)
	if err != nil {
		t.Fatalf("rep: %v", err)
	}
	if !bytes.Equal(got, key) {
		t.Fatalf("Rep(b, Gen(b,u).helper) != Gen(b,u).key")
	}
}

func TestTwoEnrollmentsHaveDistinctSalts(t *testing.T) {
	b := vectorS1()
	_, h1, err := Gen(b, []byte("tag"), newSeededRNG(1))
	if err != nil {
		t.Fatalf("gen 1: %v", err)
	}
	_, h2, err := Gen(b, []byte("tag"), newSeededRNG(2))
	if err != nil {
		t.Fatalf("gen 2: %v", err)
	}
	if h1.Salt == h2.Salt {
		t.Fatalf("two enrollments produced identical salts")
	}
}

func TestIntegrityCheckedBeforeBchDecode(t *testing.T) {
	b := vectorS1()
	_, helper, err := Gen(b, []byte("tag"), newSeededRNG(3))
	if err != nil {
		t.Fatalf("gen: %v", err)
	}
	helper.Tag[0] ^= 0xFF
	// Corrupt the sketch too, with T+1 flipped bits, so that if the decoder
	// ran first it would fail with ErrBchFailure instead of ErrIntegrity.
	for i := uint(0); i <= bch.T; i++ {
		helper.Codeword.Flip(i)
	}
	if _, _, err := Rep(b, helper); err != ErrIntegrity {
		t.Fatalf("expected integrity check to fire before BCH decode, got %v", err)
	}
}

func TestHelperBlobRoundTrip(t *testing.T) {
	b := vectorS1()
	_, helper, err := Gen(b, []byte("tag"), newSeededRNG(9))
	if err != nil {
		t.Fatalf("gen: %v", err)
	}
	data, err := helper.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	parsed, err := UnmarshalHelperBlob(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if parsed.Salt != helper.Salt || parsed.Personalization != helper.Personalization || parsed.Tag != helper.Tag {
		t.Fatalf("round trip changed fixed-size fields")
	}
	if _, _, err := Rep(b, parsed); err != nil {
		t.Fatalf("rep on round-tripped helper blob: %v", err)
	}
}

func TestRejectsWrongVectorLength(t *testing.T) {
	if _, _, err := Gen(bch.NewBits(10), []byte("tag"), newSeededRNG(0)); err == nil {
		t.Fatalf("expected error for short biometric vector")
	}
}
