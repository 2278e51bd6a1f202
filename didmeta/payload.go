package didmeta

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/ipfs/go-cid"
)

// DefaultLabel is the ledger transaction-metadata integer label this
// payload is filed under unless the caller overrides it.
const DefaultLabel = 1990

// SchemaVersion is the only MetadataPayload wire schema this package
// produces.
const SchemaVersion uint16 = 1

// HardSizeLimit is the maximum serialized payload size, in bytes, that
// Build will accept.
const HardSizeLimit = 16 * 1024

// SoftSizeLimit is the threshold above which Build sets SoftWarning in its
// BuildResult without failing.
const SoftSizeLimit = 8 * 1024

// allowedSchemes is the allow-list of URI schemes accepted for external
// helper storage. mem backs the in-repo storage.Memory reference adapter
// used in tests and short-lived CLI runs; http(s) and ipfs cover
// production CAS/pinning backends. file is deliberately excluded: a
// ledger-visible URI must not resolve to an arbitrary local path.
var allowedSchemes = map[string]bool{"http": true, "https": true, "ipfs": true, "mem": true}

// HelperStorage identifies where helper data for a payload lives.
type HelperStorage string

const (
	StorageInline   HelperStorage = "inline"
	StorageExternal HelperStorage = "external"
)

// BiometricSection is the nested "biometric.*" portion of MetadataPayload.
type BiometricSection struct {
	IdHash           string        `json:"idHash" cbor:"1,keyasint"`
	HelperStorage    HelperStorage `json:"helperStorage" cbor:"2,keyasint"`
	HelperData       []HelperEntry `json:"helperData,omitempty" cbor:"3,keyasint,omitempty"`
	HelperUri        string        `json:"helperUri,omitempty" cbor:"4,keyasint,omitempty"`
	HelperHash       string        `json:"helperHash,omitempty" cbor:"5,keyasint,omitempty"`
	FingerprintCount int           `json:"fingerprintCount" cbor:"6,keyasint"`
	AggregationMode  string        `json:"aggregationMode" cbor:"7,keyasint"`
}

// MetadataPayload is the full payload filed under DefaultLabel (or a
// caller-chosen label) as ledger transaction metadata.
type MetadataPayload struct {
	Version       uint16           `json:"version" cbor:"1,keyasint"`
	WalletAddress string           `json:"walletAddress" cbor:"2,keyasint"`
	Biometric     BiometricSection `json:"biometric" cbor:"3,keyasint"`
}

// AggregationModeString maps a verified/enrolled finger-count pair to the
// wire aggregation-mode string used in MetadataPayload: "N/N" when the two
// are equal, otherwise "<fingersUsed>/<enrolled>".
func AggregationModeString(fingersUsed, enrolled int) string {
	if fingersUsed == enrolled {
		return "N/N"
	}
	return fmt.Sprintf("%d/%d", fingersUsed, enrolled)
}

// Builder assembles a MetadataPayload incrementally, enforcing the
// validation rules and size budget before the caller submits it.
type Builder struct {
	label         int
	walletAddress string
	idHash        string
	storage       HelperStorage
	helperEntries []HelperEntry
	helperUri     string
	helperHash    string
	fingerCount   int
	mode          string
}

// NewBuilder starts a payload build for the given wallet address and
// master-key-derived id hash. Use DefaultLabel unless the embedder has a
// reason to file under a different integer tag.
func NewBuilder(label int, walletAddress, idHash string) *Builder {
	return &Builder{label: label, walletAddress: walletAddress, idHash: idHash}
}

// WithInlineHelpers sets the payload to inline storage with the given
// per-finger HelperEntry list.
func (b *Builder) WithInlineHelpers(entries []HelperEntry) *Builder {
	b.storage = StorageInline
	b.helperEntries = entries
	return b
}

// WithExternalHelper sets the payload to external storage, referencing a
// CAS object by URI and content hash.
func (b *Builder) WithExternalHelper(uri, hash string) *Builder {
	b.storage = StorageExternal
	b.helperUri = uri
	b.helperHash = hash
	return b
}

// WithAggregation records the finger count and aggregation mode string
// for the payload.
func (b *Builder) WithAggregation(fingerCount int, mode string) *Builder {
	b.fingerCount = fingerCount
	b.mode = mode
	return b
}

// BuildResult is the outcome of a successful Build: the payload, its two
// serializations, and a size estimate.
type BuildResult struct {
	Payload     MetadataPayload
	WalletForm  map[int]MetadataPayload
	ApiForm     WalletApiForm
	SizeBytes   int
	SoftWarning bool
}

// WalletApiForm is the JSON-oriented export for programmatic wallet
// consumers: an explicit did/metadata pair rather than the integer-keyed
// ledger encoding.
type WalletApiForm struct {
	Did      string          `json:"did"`
	Metadata MetadataPayload `json:"metadata"`
}

// Build validates the accumulated fields, estimates the serialized size,
// and returns both wire forms. It fails closed: any validation failure or
// a size above HardSizeLimit returns an error and no BuildResult.
func (b *Builder) Build(did string) (BuildResult, error) {
	if err := ValidateWalletAddress(b.walletAddress); err != nil {
		return BuildResult{}, err
	}

	if err := validateExclusivity(b.storage, b.helperEntries, b.helperUri, b.helperHash); err != nil {
		return BuildResult{}, err
	}

	if b.storage == StorageExternal {
		if err := validateHelperUri(b.helperUri); err != nil {
			return BuildResult{}, err
		}
	}

	if b.fingerCount < 2 || b.fingerCount > 10 {
		return BuildResult{}, wrap(ErrFingerCountMismatch, "finger count %d out of range [2,10]", b.fingerCount)
	}
	if b.storage == StorageInline && len(b.helperEntries) != b.fingerCount {
		return BuildResult{}, wrap(ErrFingerCountMismatch, "finger count %d does not match %d inline helper entries", b.fingerCount, len(b.helperEntries))
	}

	if err := validateAggregationMode(b.mode, b.fingerCount); err != nil {
		return BuildResult{}, err
	}

	payload := MetadataPayload{
		Version:       SchemaVersion,
		WalletAddress: b.walletAddress,
		Biometric: BiometricSection{
			IdHash:           b.idHash,
			HelperStorage:    b.storage,
			HelperData:       b.helperEntries,
			HelperUri:        b.helperUri,
			HelperHash:       b.helperHash,
			FingerprintCount: b.fingerCount,
			AggregationMode:  b.mode,
		},
	}

	walletForm := map[int]MetadataPayload{b.label: payload}
	cborBytes, err := cbor.Marshal(walletForm)
	if err != nil {
		return BuildResult{}, fmt.Errorf("didmeta: encoding wallet form: %w", err)
	}

	size := len(cborBytes)
	if size > HardSizeLimit {
		return BuildResult{}, wrap(ErrSizeLimitExceeded, "%d bytes > %d byte limit", size, HardSizeLimit)
	}

	return BuildResult{
		Payload:     payload,
		WalletForm:  walletForm,
		ApiForm:     WalletApiForm{Did: did, Metadata: payload},
		SizeBytes:   size,
		SoftWarning: size > SoftSizeLimit,
	}, nil
}

// EncodeWalletForm serializes a wallet form to the ledger's canonical CBOR
// transaction-metadata encoding.
func EncodeWalletForm(form map[int]MetadataPayload) ([]byte, error) {
	return cbor.Marshal(form)
}

// DecodeWalletForm parses a CBOR-encoded wallet form back into its
// integer-keyed payload map.
func DecodeWalletForm(data []byte) (map[int]MetadataPayload, error) {
	var out map[int]MetadataPayload
	if err := cbor.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("didmeta: decoding wallet form: %w", err)
	}
	return out, nil
}

// EncodeApiForm serializes a WalletApiForm to JSON.
func EncodeApiForm(form WalletApiForm) ([]byte, error) {
	return json.Marshal(form)
}

// DecodeApiForm parses a JSON-encoded WalletApiForm.
func DecodeApiForm(data []byte) (WalletApiForm, error) {
	var out WalletApiForm
	if err := json.Unmarshal(data, &out); err != nil {
		return WalletApiForm{}, fmt.Errorf("didmeta: decoding wallet-API form: %w", err)
	}
	return out, nil
}

func validateExclusivity(storage HelperStorage, entries []HelperEntry, uri, hash string) error {
	hasInline := len(entries) > 0
	hasExternal := uri != "" || hash != ""
	switch {
	case hasInline && hasExternal:
		return wrap(ErrExclusivityViolation, "payload has both inline helper data and an external URI")
	case !hasInline && !hasExternal:
		return wrap(ErrExclusivityViolation, "payload has neither inline helper data nor an external URI")
	case storage == StorageInline && !hasInline:
		return wrap(ErrExclusivityViolation, "storage marked inline but no helper entries were provided")
	case storage == StorageExternal && !hasExternal:
		return wrap(ErrExclusivityViolation, "storage marked external but no helper URI was provided")
	}
	return nil
}

func validateHelperUri(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return wrap(ErrInvalidUri, "%q: %v", raw, err)
	}
	if !allowedSchemes[u.Scheme] {
		return wrap(ErrInvalidUri, "scheme %q is not in the allow-list", u.Scheme)
	}
	if u.Scheme == "ipfs" {
		path := strings.TrimPrefix(raw, "ipfs://")
		if _, err := cid.Decode(path); err != nil {
			return wrap(ErrInvalidUri, "invalid ipfs CID %q: %v", path, err)
		}
	}
	return nil
}

func validateAggregationMode(mode string, fingerCount int) error {
	switch mode {
	case "N/N":
		return nil
	case "3/4", "2/4":
		if fingerCount != 4 {
			return wrap(ErrAggregationModeMismatch, "mode %q requires finger count 4, got %d", mode, fingerCount)
		}
		return nil
	default:
		return wrap(ErrAggregationModeMismatch, "unrecognized aggregation mode %q", mode)
	}
}
