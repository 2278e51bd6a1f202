package fuzzyextractor

import (
	"github.com/fractionestate/decentralized-did/bch"
)

// biometricBits is the fixed length of every BiometricVector this package
// accepts.
const biometricBits = bch.N

// Gen derives a reproducible 256-bit key from a 127-bit biometric vector
// and an opaque user tag, returning the key alongside the public
// HelperBlob needed to reproduce it via Rep.
//
// The first bch.K bits of biometric are treated as the message; a secure
// sketch of the remaining bch.ParityBits bits is stored so that Rep can
// correct up to bch.T bit errors across the whole vector. See the doc
// comment on HelperBlob for the exact construction.
func Gen(biometric *bch.Bits, userTag []byte, rng RNG) ([]byte, *HelperBlob, error) {
	if biometric.Len() != biometricBits {
		return nil, nil, wrap(ErrInvalidInput, "biometric vector must be %d bits, got %d", biometricBits, biometric.Len())
	}

	var salt [32]byte
	if _, err := rng.Read(salt[:]); err != nil {
		return nil, nil, wrap(ErrInvalidInput, "reading random salt: %v", err)
	}

	personalization := derivePersonalization(userTag)

	m := biometric.Slice(0, bch.K)
	codeword, err := bch.Encode(m)
	if err != nil {
		return nil, nil, wrap(ErrInvalidInput, "encoding message: %v", err)
	}

	vectorTail := biometric.Slice(bch.K, biometricBits)
	codewordParity := codeword.Slice(bch.K, bch.N)
	sketch, err := codewordParity.Xor(vectorTail)
	if err != nil {
		return nil, nil, err
	}

	key := deriveKey(m.Bytes(), salt[:], personalization[:])

	tagKey := deriveTagKey(salt[:])
	helper := &HelperBlob{
		Version:         Version,
		Salt:            salt,
		Personalization: personalization,
		Codeword:        sketch,
	}
	helper.Tag = tagOf(tagKey[:], helper.header())

	return key[:], helper, nil
}
