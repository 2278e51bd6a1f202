package didmeta

import "encoding/base64"

// HelperEntry is the base64url-encoded representation of one HelperBlob,
// suitable for inline embedding in a MetadataPayload.
type HelperEntry struct {
	FingerID        string `json:"fingerId" cbor:"1,keyasint"`
	Version         string `json:"version" cbor:"2,keyasint"`
	Salt            string `json:"salt" cbor:"3,keyasint"`
	Personalization string `json:"personalization" cbor:"4,keyasint"`
	Codeword        string `json:"codeword" cbor:"5,keyasint"`
	Tag             string `json:"tag" cbor:"6,keyasint"`
}

// NewHelperEntry base64url-encodes the fields of a serialized HelperBlob
// for inline storage. version, salt, personalization, codeword, and tag
// are the raw field bytes exactly as produced by the fuzzy extractor's
// HelperBlob.
func NewHelperEntry(fingerID string, version byte, salt, personalization, codeword, tag []byte) HelperEntry {
	enc := base64.RawURLEncoding
	return HelperEntry{
		FingerID:        fingerID,
		Version:         enc.EncodeToString([]byte{version}),
		Salt:            enc.EncodeToString(salt),
		Personalization: enc.EncodeToString(personalization),
		Codeword:        enc.EncodeToString(codeword),
		Tag:             enc.EncodeToString(tag),
	}
}
