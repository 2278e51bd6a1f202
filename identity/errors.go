package identity

import (
	"errors"
	"fmt"
)

// ErrNoFingers is returned when an enrollment or verification call is
// given zero finger captures.
var ErrNoFingers = errors.New("identity: at least one finger capture is required")

// ErrStorageFailure wraps any error returned by the injected
// storage.HelperStorage while persisting or retrieving helper blobs. It is
// also returned when helper data cannot be marshaled for external storage,
// and by VerifyWallet when no helper blob is supplied for a capture's finger.
var ErrStorageFailure = errors.New("identity: helper storage operation failed")

func wrap(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}
