package fuzzyextractor

import (
	"crypto/subtle"

	"github.com/fractionestate/decentralized-did/bch"
)

// Rep reproduces the key Gen derived for the same enrolled biometric,
// given a fresh (possibly noisy) capture and the HelperBlob Gen produced.
// It also returns the number of bit errors the BCH decoder corrected,
// so a caller can track how close a capture is running to the t=10
// correction ceiling.
//
// The integrity tag is always checked first; a tampered HelperBlob is
// rejected before the BCH decoder ever sees the sketch, so failure never
// branches on biometric data ahead of that check.
func Rep(biometric *bch.Bits, helper *HelperBlob) ([]byte, int, error) {
	if helper.Version != Version {
		return nil, 0, ErrVersionUnsupported
	}
	if biometric.Len() != biometricBits {
		return nil, 0, wrap(ErrInvalidInput, "biometric vector must be %d bits, got %d", biometricBits, biometric.Len())
	}

	tagKey := deriveTagKey(helper.Salt[:])
	expected := tagOf(tagKey[:], helper.header())
	if subtle.ConstantTimeCompare(expected[:], helper.Tag[:]) != 1 {
		return nil, 0, ErrIntegrity
	}

	head := biometric.Slice(0, bch.K)
	tail := biometric.Slice(bch.K, biometricBits)
	parity, err := tail.Xor(helper.Codeword)
	if err != nil {
		return nil, 0, err
	}
	received := bch.Concat(head, parity)

	m, errorsCorrected, err := bch.Decode(received)
	if err != nil {
		return nil, 0, ErrBchFailure
	}

	key := deriveKey(m.Bytes(), helper.Salt[:], helper.Personalization[:])
	return key[:], errorsCorrected, nil
}
