package chart

import (
	"errors"
	"fmt"

	"github.com/jrs026/joshua/constraint"
)

// ErrNoDerivation, ErrMalformedConstraint, and ErrLatticeInconsistency are
// the three sentinel error kinds Parse can return. Each is wrapped by a
// concrete struct carrying the failure's specifics; callers compare
// against the sentinel with errors.Is and, where the detail is useful,
// recover it with errors.As.
var (
	ErrNoDerivation         = errors.New("chart: no derivation")
	ErrMalformedConstraint  = errors.New("chart: malformed constraint")
	ErrLatticeInconsistency = errors.New("chart: lattice inconsistency")
)

// NoDerivationError reports that the goal bin held no node for the goal
// symbol passed to Parse once parsing finished.
type NoDerivationError struct {
	SentID  int
	SentLen uint64
}

func (e *NoDerivationError) Error() string {
	return fmt.Sprintf("%v: sentence %d (length %d): no grammar rule covers the full span, or pruning discarded every covering derivation", ErrNoDerivation, e.SentID, e.SentLen)
}

func (e *NoDerivationError) Unwrap() error { return ErrNoDerivation }

// MalformedConstraintError reports a ConstraintSpan whose RULE entry
// could not be turned into a valid axiom (e.g. a feature vector of the
// wrong length).
type MalformedConstraintError struct {
	Span   constraint.Span
	Reason string
}

func (e *MalformedConstraintError) Error() string {
	return fmt.Sprintf("%v: span %v: %s", ErrMalformedConstraint, e.Span, e.Reason)
}

func (e *MalformedConstraintError) Unwrap() error { return ErrMalformedConstraint }

// LatticeInconsistencyError wraps a lattice.Validate failure surfaced at
// the start of Parse.
type LatticeInconsistencyError struct {
	Err error
}

func (e *LatticeInconsistencyError) Error() string {
	return fmt.Sprintf("%v: %v", ErrLatticeInconsistency, e.Err)
}

func (e *LatticeInconsistencyError) Unwrap() error { return ErrLatticeInconsistency }
