package equivalence

import (
	"errors"
	"fmt"

	"github.com/geometryxyz/commitment-equivalence/backend"
)

// ErrRejected is the sentinel wrapped by RejectionError; test it with
// errors.Is to tell a negative verification outcome from a fault.
var ErrRejected = errors.New("commitment equivalence rejected")

// OpenError reports that one backend's open failed during proving. No
// partial proof exists when it is returned.
type OpenError struct {
	// Backend is the 1-based position of the failing backend in the pair
	Backend int
	Scheme  backend.ID
	Err     error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("backend %d (%s): open: %v", e.Backend, e.Scheme, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// CheckError reports that one backend's check could not be evaluated. It is
// a fault, not a verdict: the proof was neither accepted nor rejected.
type CheckError struct {
	Backend int
	Scheme  backend.ID
	Err     error
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("backend %d (%s): check: %v", e.Backend, e.Scheme, e.Err)
}

func (e *CheckError) Unwrap() error { return e.Err }

// RejectionError is the expected negative outcome of Verify: the named
// backend evaluated the opening proof and found it invalid.
type RejectionError struct {
	Backend int
	Scheme  backend.ID
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("backend %d (%s): %v", e.Backend, e.Scheme, ErrRejected)
}

func (e *RejectionError) Unwrap() error { return ErrRejected }
