package didmeta

import (
	"encoding/base64"
	"regexp"

	"github.com/fractionestate/decentralized-did/bhash"
)

// addressPattern matches a Cardano mainnet or testnet bech32 wallet
// address: the allowed prefixes followed by lowercase alphanumerics (a
// superset of the bech32 data-part alphabet).
var addressPattern = regexp.MustCompile(`^(addr1|addr_test1)[0-9a-z]+$`)

// DidIdentifier is the decentralized identifier anchoring an aggregated
// biometric master key to a wallet address on the ledger.
type DidIdentifier struct {
	Method        string
	Network       string
	WalletAddress string
	Fragment      string
}

// FragmentLength is the fixed character length of a DID fragment.
const FragmentLength = 43

// ValidateWalletAddress checks a wallet address against the bech32
// address allow-list used throughout this package.
func ValidateWalletAddress(addr string) error {
	if !addressPattern.MatchString(addr) {
		return wrap(ErrInvalidAddress, "%q", addr)
	}
	return nil
}

// Network name constants accepted by DeriveDid.
const (
	NetworkMainnet = "mainnet"
	NetworkPreprod = "preprod"
	NetworkPreview = "preview"
)

// DeriveDid computes the DID identifier for a given wallet address and
// aggregated master key: did:cardano:<walletAddress>#<fragment>, where
// fragment is the first FragmentLength characters of the unpadded
// base64url encoding of H(masterKey).
func DeriveDid(network, walletAddress string, masterKey []byte) (DidIdentifier, error) {
	if err := ValidateWalletAddress(walletAddress); err != nil {
		return DidIdentifier{}, err
	}
	switch network {
	case NetworkMainnet, NetworkPreprod, NetworkPreview:
	default:
		return DidIdentifier{}, wrap(ErrInvalidAddress, "unknown network %q", network)
	}

	fragment := IdHashFragment(masterKey)

	return DidIdentifier{
		Method:        "cardano",
		Network:       network,
		WalletAddress: walletAddress,
		Fragment:      fragment,
	}, nil
}

// IdHashFragment returns the full base64url(H(masterKey)) string,
// truncated to FragmentLength characters, used as a DID's fragment.
func IdHashFragment(masterKey []byte) string {
	digest := bhash.Sum256(masterKey)
	full := base64.RawURLEncoding.EncodeToString(digest[:])
	if len(full) > FragmentLength {
		return full[:FragmentLength]
	}
	return full
}

// IdHash returns the full base64url(H(masterKey)) string (untruncated),
// used as the payload's biometric.idHash field.
func IdHash(masterKey []byte) string {
	digest := bhash.Sum256(masterKey)
	return base64.RawURLEncoding.EncodeToString(digest[:])
}

// String renders the DID in its canonical textual form.
func (d DidIdentifier) String() string {
	return "did:" + d.Method + ":" + d.WalletAddress + "#" + d.Fragment
}
