package grid

import (
	"errors"
	"fmt"
)

// ErrInvariantViolation is matched by every *InvariantError.
var ErrInvariantViolation = errors.New("grid: invariant violation")

// InvariantError reports a commit or check that would break the resting
// grid invariant. It signals a programming error, never a user error.
type InvariantError struct {
	Cubie  CubieID
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("grid: invariant violation: cubie %d: %s", e.Cubie, e.Reason)
}

// Is makes errors.Is(err, ErrInvariantViolation) true.
func (e *InvariantError) Is(target error) bool {
	return target == ErrInvariantViolation
}
