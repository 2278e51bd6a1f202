package didmeta

import (
	"errors"
	"fmt"
)

// ErrInvalidAddress is returned when a wallet address does not match the
// allowed bech32 prefixes for mainnet or testnet Cardano addresses. DeriveDid
// also returns it for a network name other than mainnet, preprod or preview.
var ErrInvalidAddress = errors.New("didmeta: wallet address is not a valid addr1/addr_test1 bech32 string")

// ErrInvalidUri is returned when a helper URI's scheme is outside the
// allow-list, or the URI is otherwise malformed.
var ErrInvalidUri = errors.New("didmeta: helper URI scheme is not allowed")

// ErrExclusivityViolation is returned when a payload carries both inline
// helper entries and an external URI, or neither.
var ErrExclusivityViolation = errors.New("didmeta: exactly one of inline helper data or external helper URI must be present")

// ErrFingerCountMismatch is returned when the declared finger count does
// not match the number of inline helper entries, or is outside [2, 10].
var ErrFingerCountMismatch = errors.New("didmeta: finger count does not match helper entries or is out of range")

// ErrAggregationModeMismatch is returned when the aggregation mode string
// is inconsistent with the declared finger count.
var ErrAggregationModeMismatch = errors.New("didmeta: aggregation mode is inconsistent with finger count")

// ErrSizeLimitExceeded is returned when a built payload's serialized size
// exceeds the 16 KiB hard limit.
var ErrSizeLimitExceeded = errors.New("didmeta: serialized metadata payload exceeds the 16 KiB hard limit")

func wrap(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}
