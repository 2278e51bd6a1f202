package fuzzyextractor

import "github.com/fractionestate/decentralized-did/bhash"

// domainLabel domain-separates every key this package derives from any
// other use of bhash within the embedding application.
const domainLabel = "biometric-did-cardano"

// keySize is the output width, in bytes, of every derived key, tag and
// hash produced here: a 256-bit key.
const keySize = bhash.Size

// derivePersonalization computes personalization = H(domainLabel || userTag)
// truncated to 32 bytes, via bhash's key-derivation mode so the result is
// cryptographically bound to both the domain and the caller's opaque tag.
func derivePersonalization(userTag []byte) [keySize]byte {
	return bhash.DeriveKey(domainLabel, userTag)
}

// deriveKey implements KDF(input, salt, personalization): a 256-bit keyed
// hash over input, domain-separated by salt and personalization. The salt
// and personalization are first folded into a single 32-byte key (BLAKE3's
// keyed mode only accepts one 32-byte key), then input is absorbed under
// that key.
func deriveKey(input, salt, personalization []byte) [keySize]byte {
	combined := append(append([]byte{}, salt...), personalization...)
	combinedKey := bhash.Sum256(combined)
	return bhash.MAC(combinedKey[:], input)
}

// deriveTagKey computes tag_key = H(salt || "helper-data-hmac") truncated
// to 32 bytes.
func deriveTagKey(salt []byte) [keySize]byte {
	return bhash.Sum256(append(append([]byte{}, salt...), []byte("helper-data-hmac")...))
}

// tagOf computes the 32-byte integrity tag over a HelperBlob's header
// fields, keyed by tagKey.
func tagOf(tagKey, header []byte) [keySize]byte {
	return bhash.MAC(tagKey, header)
}
