package fit

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientData is returned when a computation needs more samples than provided.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrDegreeRange is returned for interpolation degrees outside [MinDegree, MaxDegree].
	ErrDegreeRange = errors.New("interpolation degree out of range")
	// ErrSingularSystem is returned when a linear system has no unique solution.
	ErrSingularSystem = errors.New("singular system")
	// ErrDimension is returned when a matrix and right-hand side do not form a square system.
	ErrDimension = errors.New("dimension mismatch")
	// ErrLengthMismatch is returned when paired sequences differ in length.
	ErrLengthMismatch = errors.New("length mismatch")
	// ErrNonFinite is returned when a sample holds NaN or ±Inf.
	ErrNonFinite = errors.New("non-finite value")
)

// SingularError reports where a solve broke down.
type SingularError struct {
	Op    string
	Pivot int
}

func (e *SingularError) Error() string {
	if e.Pivot >= 0 {
		return fmt.Sprintf("%s: singular system (zero pivot in column %d)", e.Op, e.Pivot)
	}
	return fmt.Sprintf("%s: singular system", e.Op)
}

// Is lets errors.Is(err, ErrSingularSystem) match.
func (e *SingularError) Is(target error) bool { return target == ErrSingularSystem }
