package fit

import "math"

// SelectSupport picks degree+1 indices to interpolate through, never including exclude.
//
// Indices are scanned in order and an index is accepted only when its x is at least
// DuplicateTolerance away from every x already accepted. Small sets (Len() <= degree+1)
// return every other index unfiltered. If deduplication cannot collect enough indices the
// selector falls back to indices 0..degree minus exclude, which may hold
// near-duplicate x values or be one short.
func (s SampleSet) SelectSupport(exclude, degree int) []int {
	need := degree + 1
	n := s.Len()
	if n <= need {
		out := make([]int, 0, n)
		for i := 0; i < n; i++ {
			if i != exclude {
				out = append(out, i)
			}
		}
		return out
	}

	picked := make([]int, 0, need)
	for i := 0; i < n && len(picked) < need; i++ {
		if i == exclude {
			continue
		}
		unique := true
		for _, j := range picked {
			if math.Abs(s.x[i]-s.x[j]) < DuplicateTolerance {
				unique = false
				break
			}
		}
		if unique {
			picked = append(picked, i)
		}
	}
	if len(picked) == need {
		return picked
	}

	picked = picked[:0]
	for i := 0; i < need && i < n; i++ {
		if i != exclude {
			picked = append(picked, i)
		}
	}
	return picked
}
