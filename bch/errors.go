package bch

import "errors"

// ErrTooManyErrors is returned by Decode when the received word cannot be
// corrected within the code's t=10 error-correction capacity. The decoder
// must return this rather than guess; a silent false correction would
// violate the no-secret-branching requirement downstream in Rep.
var ErrTooManyErrors = errors.New("bch: more than 10 errors, cannot correct")

// ErrInvalidLength is returned when a caller supplies a bit vector of the
// wrong length for the operation requested.
var ErrInvalidLength = errors.New("bch: invalid bit vector length")
