package didmeta

import (
	"errors"
	"strings"
	"testing"
)

func masterKeyFixture() []byte {
	k := make([]byte, 32)
	for i := range k {
		k[i] = byte(i)
	}
	return k
}

func TestDeriveDidFragmentLength(t *testing.T) {
	did, err := DeriveDid(NetworkMainnet, "addr1examplewallet", masterKeyFixture())
	if err != nil {
		t.Fatalf("derive did: %v", err)
	}
	if len(did.Fragment) != FragmentLength {
		t.Fatalf("fragment length = %d, want %d", len(did.Fragment), FragmentLength)
	}
	if !strings.HasPrefix(did.String(), "did:cardano:addr1examplewallet#") {
		t.Fatalf("unexpected did string: %s", did.String())
	}
}

func TestDeriveDidRejectsBadAddress(t *testing.T) {
	if _, err := DeriveDid(NetworkMainnet, "bogus", masterKeyFixture()); !errors.Is(err, ErrInvalidAddress) {
		t.Fatalf("expected ErrInvalidAddress, got %v", err)
	}
}

func inlineEntries(n int) []HelperEntry {
	entries := make([]HelperEntry, n)
	for i := range entries {
		entries[i] = NewHelperEntry(
			"finger",
			1,
			make([]byte, 32),
			make([]byte, 32),
			make([]byte, 16),
			make([]byte, 32),
		)
	}
	return entries
}

func TestS8InlineMetadataUnderBudget(t *testing.T) {
	b := NewBuilder(DefaultLabel, "addr1examplewallet", IdHash(masterKeyFixture()))
	b.WithInlineHelpers(inlineEntries(2)).WithAggregation(2, "N/N")
	res, err := b.Build("did:cardano:addr1examplewallet#fragment")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if res.SizeBytes >= SoftSizeLimit {
		t.Fatalf("size %d, want < %d", res.SizeBytes, SoftSizeLimit)
	}
	if res.SoftWarning {
		t.Fatalf("unexpected soft warning at size %d", res.SizeBytes)
	}
}

func TestS9ExternalMetadata(t *testing.T) {
	b := NewBuilder(DefaultLabel, "addr1examplewallet", IdHash(masterKeyFixture()))
	b.WithExternalHelper("ipfs://QmT78zSuBmuS4z925WZfrqQ1qHaJ56DQaTfyMUF7F8ff5o", strings.Repeat("ab", 32)).
		WithAggregation(4, "N/N")
	res, err := b.Build("did:cardano:addr1examplewallet#fragment")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if res.SizeBytes >= 1024 {
		t.Fatalf("size %d, want < 1024", res.SizeBytes)
	}
}

func TestS10SizeLimitViolation(t *testing.T) {
	b := NewBuilder(DefaultLabel, "addr1examplewallet", IdHash(masterKeyFixture()))
	// 10 inline entries with generously padded fields to push well past
	// the 16 KiB hard limit.
	entries := make([]HelperEntry, 10)
	pad := strings.Repeat("x", 4096)
	for i := range entries {
		e := NewHelperEntry("finger", 1, make([]byte, 32), make([]byte, 32), make([]byte, 16), make([]byte, 32))
		e.Codeword = pad
		entries[i] = e
	}
	b.WithInlineHelpers(entries).WithAggregation(10, "N/N")
	_, err := b.Build("did:cardano:addr1examplewallet#fragment")
	if !errors.Is(err, ErrSizeLimitExceeded) {
		t.Fatalf("expected ErrSizeLimitExceeded, got %v", err)
	}
}

func TestProperty10InlineExternalExclusivity(t *testing.T) {
	b := NewBuilder(DefaultLabel, "addr1examplewallet", IdHash(masterKeyFixture()))
	b.WithInlineHelpers(inlineEntries(2))
	b.helperUri = "https://example.com/helper"
	b.helperHash = strings.Repeat("ab", 32)
	b.WithAggregation(2, "N/N")
	if _, err := b.Build("did:x"); !errors.Is(err, ErrExclusivityViolation) {
		t.Fatalf("expected ErrExclusivityViolation for both present, got %v", err)
	}

	neither := NewBuilder(DefaultLabel, "addr1examplewallet", IdHash(masterKeyFixture()))
	neither.WithAggregation(2, "N/N")
	if _, err := neither.Build("did:x"); !errors.Is(err, ErrExclusivityViolation) {
		t.Fatalf("expected ErrExclusivityViolation for neither present, got %v", err)
	}
}

func TestProperty9WalletFormRoundTrip(t *testing.T) {
	b := NewBuilder(DefaultLabel, "addr1examplewallet", IdHash(masterKeyFixture()))
	b.WithInlineHelpers(inlineEntries(3)).WithAggregation(3, "3/4")
	res, err := b.Build("did:cardano:addr1examplewallet#fragment")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	data, err := EncodeWalletForm(res.WalletForm)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeWalletForm(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	got, ok := decoded[DefaultLabel]
	if !ok {
		t.Fatalf("missing label %d after round trip", DefaultLabel)
	}
	if got.WalletAddress != res.Payload.WalletAddress || got.Biometric.FingerprintCount != res.Payload.Biometric.FingerprintCount {
		t.Fatalf("round trip changed payload fields")
	}
}

func TestRejectsDisallowedUriScheme(t *testing.T) {
	b := NewBuilder(DefaultLabel, "addr1examplewallet", IdHash(masterKeyFixture()))
	b.WithExternalHelper("file:///etc/passwd", strings.Repeat("ab", 32)).WithAggregation(2, "N/N")
	if _, err := b.Build("did:x"); !errors.Is(err, ErrInvalidUri) {
		t.Fatalf("expected ErrInvalidUri, got %v", err)
	}
}

func TestValidateAggregationModeRequiresFourFingersForPartialModes(t *testing.T) {
	b := NewBuilder(DefaultLabel, "addr1examplewallet", IdHash(masterKeyFixture()))
	b.WithInlineHelpers(inlineEntries(2)).WithAggregation(2, "3/4")
	if _, err := b.Build("did:x"); !errors.Is(err, ErrAggregationModeMismatch) {
		t.Fatalf("expected ErrAggregationModeMismatch for 3/4 with finger count 2, got %v", err)
	}

	c := NewBuilder(DefaultLabel, "addr1examplewallet", IdHash(masterKeyFixture()))
	c.WithInlineHelpers(inlineEntries(4)).WithAggregation(4, "3/4")
	if _, err := c.Build("did:x"); err != nil {
		t.Fatalf("expected 3/4 with finger count 4 to be valid, got %v", err)
	}

	d := NewBuilder(DefaultLabel, "addr1examplewallet", IdHash(masterKeyFixture()))
	d.WithInlineHelpers(inlineEntries(2)).WithAggregation(2, "N/N")
	if _, err := d.Build("did:x"); err != nil {
		t.Fatalf("expected N/N to be valid regardless of finger count, got %v", err)
	}
}

func TestAggregationModeString(t *testing.T) {
	if got := AggregationModeString(4, 4); got != "N/N" {
		t.Fatalf("got %q, want N/N", got)
	}
	if got := AggregationModeString(3, 4); got != "3/4" {
		t.Fatalf("got %q, want 3/4", got)
	}
}
