package main

import (
	"encoding/hex"
	"fmt"

	"github.com/fractionestate/decentralized-did/aggregator"
	"github.com/fractionestate/decentralized-did/fuzzyextractor"
)

func decodeHelpers(raw map[string]string) (map[string]*fuzzyextractor.HelperBlob, error) {
	out := make(map[string]*fuzzyextractor.HelperBlob, len(raw))
	for fingerID, hexBlob := range raw {
		data, err := hex.DecodeString(hexBlob)
		if err != nil {
			return nil, fmt.Errorf("decoding helper blob for %q: %w", fingerID, err)
		}
		helper, err := fuzzyextractor.UnmarshalHelperBlob(data)
		if err != nil {
			return nil, fmt.Errorf("parsing helper blob for %q: %w", fingerID, err)
		}
		out[fingerID] = helper
	}
	return out, nil
}

func decodeRotateKeys(req rotateRequest) (oldMaster, oldKey, newKey [aggregator.KeySize]byte, err error) {
	if oldMaster, err = decodeFixedKey(req.OldMaster); err != nil {
		return
	}
	if oldKey, err = decodeFixedKey(req.OldFingerKey); err != nil {
		return
	}
	newKey, err = decodeFixedKey(req.NewFingerKey)
	return
}

func decodeFixedKey(s string) ([aggregator.KeySize]byte, error) {
	var out [aggregator.KeySize]byte
	raw, err := hex.DecodeString(s)
	if err != nil {
		return out, err
	}
	if len(raw) != aggregator.KeySize {
		return out, fmt.Errorf("expected %d bytes, got %d", aggregator.KeySize, len(raw))
	}
	copy(out[:], raw)
	return out, nil
}

func errInvalidRemainingKey(index int) error {
	return fmt.Errorf("remainingKeys[%d] must be a hex-encoded %d-byte key", index, aggregator.KeySize)
}
