// Package fit implements the numerical core: Lagrange interpolation with
// leave-one-out cross-validation and linear/quadratic least-squares regression.
// Every operation is a pure function of an immutable SampleSet.
package fit

import (
	"fmt"
	"math"
)

// DuplicateTolerance is the distance below which two x coordinates are treated as coincident.
const DuplicateTolerance = 1e-12

// SampleSet is an ordered, immutable sequence of (x, y) pairs.
type SampleSet struct {
	x []float64
	y []float64
}

// NewSampleSet copies x and y into a SampleSet. Both must have the same length and hold finite values.
func NewSampleSet(x, y []float64) (SampleSet, error) {
	if len(x) != len(y) {
		return SampleSet{}, fmt.Errorf("new sample set: %d x values, %d y values: %w", len(x), len(y), ErrLengthMismatch)
	}
	for i := range x {
		if !isFinite(x[i]) || !isFinite(y[i]) {
			return SampleSet{}, fmt.Errorf("new sample set: index %d (x=%v, y=%v): %w", i, x[i], y[i], ErrNonFinite)
		}
	}
	s := SampleSet{x: make([]float64, len(x)), y: make([]float64, len(y))}
	copy(s.x, x)
	copy(s.y, y)
	return s, nil
}

// Len returns the number of samples.
func (s SampleSet) Len() int { return len(s.x) }

// X returns the i-th x coordinate.
func (s SampleSet) X(i int) float64 { return s.x[i] }

// Y returns the i-th y value.
func (s SampleSet) Y(i int) float64 { return s.y[i] }

// Xs returns a copy of the x coordinates.
func (s SampleSet) Xs() []float64 { return clone(s.x) }

// Ys returns a copy of the y values.
func (s SampleSet) Ys() []float64 { return clone(s.y) }

func clone(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
