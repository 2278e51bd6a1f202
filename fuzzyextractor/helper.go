package fuzzyextractor

import (
	"fmt"

	"github.com/fractionestate/decentralized-did/bch"
)

// Version is the only HelperBlob wire format this package understands.
const Version uint8 = 1

// sketchBits is the width of the secure-sketch field: the ParityBits of
// the underlying BCH code.
const sketchBits = bch.ParityBits

// sketchBytes is the packed byte width of the secure-sketch field.
const sketchBytes = (sketchBits + 7) / 8

// HelperBlob is the public output of Gen and the input (besides a fresh
// biometric capture) to Rep. It leaks at most ParityBits of information
// about the enrolled biometric vector and is tamper-evident via Tag.
//
// Codeword holds the BCH secure-sketch offset: codeword(m)'s parity bits,
// where m is the vector's first bch.K bits, XORed with the enrolled
// vector's own trailing ParityBits bits. Despite the name (kept for wire
// compatibility with the documented byte layout), it is not a raw BCH
// codeword; recombining it with a fresh capture's trailing bits reproduces
// the original noise pattern, which is what lets Decode correct it.
type HelperBlob struct {
	Version         uint8
	Salt            [32]byte
	Personalization [32]byte
	Codeword        *bch.Bits // length sketchBits
	Tag             [32]byte
}

// Size is the exact serialized length of every HelperBlob this package
// produces: 1 + 32 + 32 + sketchBytes + 32.
const Size = 1 + 32 + 32 + sketchBytes + 32

// header returns the bytes covered by the integrity tag: every field
// except the tag itself.
func (h *HelperBlob) header() []byte {
	out := make([]byte, 0, Size-32)
	out = append(out, h.Version)
	out = append(out, h.Salt[:]...)
	out = append(out, h.Personalization[:]...)
	out = append(out, h.Codeword.Bytes()...)
	return out
}

// MarshalBinary serializes the HelperBlob to its exact wire layout:
// version(1) || salt(32) || personalization(32) || codeword(sketchBytes)
// || tag(32).
func (h *HelperBlob) MarshalBinary() ([]byte, error) {
	out := h.header()
	out = append(out, h.Tag[:]...)
	return out, nil
}

// UnmarshalHelperBlob parses the exact wire layout produced by
// MarshalBinary. It does not validate the integrity tag; callers must call
// Rep (which performs that check before touching the BCH decoder) rather
// than trusting an unmarshaled blob directly.
func UnmarshalHelperBlob(data []byte) (*HelperBlob, error) {
	if len(data) != Size {
		return nil, fmt.Errorf("%w: helper blob is %d bytes, want %d", ErrInvalidInput, len(data), Size)
	}
	h := &HelperBlob{Version: data[0]}
	copy(h.Salt[:], data[1:33])
	copy(h.Personalization[:], data[33:65])
	cwBytes := data[65 : 65+sketchBytes]
	cw, err := bch.BitsFromBytes(cwBytes, sketchBits)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	h.Codeword = cw
	copy(h.Tag[:], data[65+sketchBytes:])
	if h.Version != Version {
		return h, ErrVersionUnsupported
	}
	return h, nil
}
