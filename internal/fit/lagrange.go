package fit

import "math"

// Lagrange evaluates the polynomial through the given support points at queryX.
//
// If two support points share an x coordinate (closer than DuplicateTolerance) the basis is
// undefined; the evaluator then returns the y value of the support point being expanded.
func (s SampleSet) Lagrange(queryX float64, support []int) float64 {
	var sum float64
	for _, i := range support {
		term := s.y[i]
		for _, j := range support {
			if i == j {
				continue
			}
			den := s.x[i] - s.x[j]
			if math.Abs(den) < DuplicateTolerance {
				return s.y[i]
			}
			term *= (queryX - s.x[j]) / den
		}
		sum += term
	}
	return sum
}
