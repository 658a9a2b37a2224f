package fit

import (
	"fmt"
	"math"
)

// SingularTolerance is the relative pivot magnitude below which a system is rejected as singular.
// It is scaled by the largest absolute entry of the matrix.
const SingularTolerance = 1e-12

// Solve solves a·x = b by Gaussian elimination with partial pivoting.
// Slot k of the result is the k-th unknown as laid out in the columns of a.
// Neither a nor b is modified.
func Solve(a [][]float64, b []float64) ([]float64, error) {
	n := len(b)
	if n == 0 || len(a) != n {
		return nil, fmt.Errorf("solve: %d rows for %d right-hand values: %w", len(a), n, ErrDimension)
	}
	// augmented working copy
	m := make([][]float64, n)
	scale := 0.0
	for i := range a {
		if len(a[i]) != n {
			return nil, fmt.Errorf("solve: row %d has %d columns, want %d: %w", i, len(a[i]), n, ErrDimension)
		}
		m[i] = make([]float64, n+1)
		copy(m[i], a[i])
		m[i][n] = b[i]
		for _, v := range a[i] {
			if av := math.Abs(v); av > scale {
				scale = av
			}
		}
	}
	if scale == 0 {
		return nil, &SingularError{Op: "solve", Pivot: 0}
	}
	eps := SingularTolerance * scale

	for col := 0; col < n; col++ {
		pivot := col
		maxAbs := math.Abs(m[col][col])
		for r := col + 1; r < n; r++ {
			if v := math.Abs(m[r][col]); v > maxAbs {
				maxAbs = v
				pivot = r
			}
		}
		if maxAbs < eps {
			return nil, &SingularError{Op: "solve", Pivot: col}
		}
		if pivot != col {
			m[col], m[pivot] = m[pivot], m[col]
		}
		for r := col + 1; r < n; r++ {
			factor := m[r][col] / m[col][col]
			for c := col; c <= n; c++ {
				m[r][c] -= factor * m[col][c]
			}
		}
	}

	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := m[i][n]
		for j := i + 1; j < n; j++ {
			sum -= m[i][j] * x[j]
		}
		x[i] = sum / m[i][i]
	}
	return x, nil
}
