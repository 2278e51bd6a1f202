package aggregator

import (
	"errors"
	"fmt"
)

// ErrInvalidKeyLength is returned when a FingerKey's Key is not exactly
// KeySize bytes.
var ErrInvalidKeyLength = errors.New("aggregator: finger key must be exactly 32 bytes")

// ErrInsufficientFingers is the hard-reject case: fewer than two verified
// fingers were presented, regardless of quality.
var ErrInsufficientFingers = errors.New("aggregator: fewer than two fingers verified")

// ErrQualityThreshold is returned when a fallback scenario's verified count
// is consistent with a known partial mode, but its average quality (or a
// required backup factor) does not meet that mode's bar. It is also
// returned for any enrolled/verified combination that has no fallback mode.
var ErrQualityThreshold = errors.New("aggregator: verified fingers do not meet the quality bar for this fallback mode")

// ErrStrictModeViolation is returned when the caller set Strict and the
// verified count is below the enrolled count.
var ErrStrictModeViolation = errors.New("aggregator: strict mode requires all enrolled fingers to verify")

// ErrTooFewRemaining is returned by Revoke when fewer than two keys would
// remain after revocation.
var ErrTooFewRemaining = errors.New("aggregator: revocation would leave fewer than two remaining fingers")

func wrap(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}
