package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/fractionestate/decentralized-did/bch"
	"github.com/fractionestate/decentralized-did/fuzzyextractor"
)

// readBiometric loads a hex-encoded, exactly bch.N-bit biometric vector
// from a file. The upstream quantizer that produces this vector from raw
// minutiae is out of this repository's scope; the CLI only consumes its
// output.
func readBiometric(path string) (*bch.Bits, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading biometric vector %s: %w", path, err)
	}
	data, err := hex.DecodeString(trimNewline(raw))
	if err != nil {
		return nil, fmt.Errorf("decoding biometric vector %s: %w", path, err)
	}
	return bch.BitsFromBytes(data, bch.N)
}

func trimNewline(b []byte) string {
	for len(b) > 0 && (b[len(b)-1] == '\n' || b[len(b)-1] == '\r') {
		b = b[:len(b)-1]
	}
	return string(b)
}

// writeHelperBlob serializes a HelperBlob and writes it hex-encoded to
// path.
func writeHelperBlob(path string, helper *fuzzyextractor.HelperBlob) error {
	data, err := helper.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshaling helper blob: %w", err)
	}
	return os.WriteFile(path, []byte(hex.EncodeToString(data)+"\n"), 0o600)
}

// readHelperBlob loads a hex-encoded HelperBlob from path.
func readHelperBlob(path string) (*fuzzyextractor.HelperBlob, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading helper blob %s: %w", path, err)
	}
	data, err := hex.DecodeString(trimNewline(raw))
	if err != nil {
		return nil, fmt.Errorf("decoding helper blob %s: %w", path, err)
	}
	return fuzzyextractor.UnmarshalHelperBlob(data)
}
