package fit

import (
	"fmt"
	"math"
)

const (
	// MinDegree and MaxDegree bound the interpolation degrees CrossValidate accepts.
	MinDegree = 1
	MaxDegree = 4

	// LegacyUnmeasurable is the percentage the legacy report format prints for entries
	// whose error could not be measured.
	LegacyUnmeasurable = 100.0

	zeroTolerance = 1e-12
)

// Reason explains why an error could not be measured.
type Reason int

const (
	// ReasonNone is the reason carried by measured outcomes.
	ReasonNone Reason = iota
	// ReasonInsufficientSupport means fewer than degree+1 support points were available.
	ReasonInsufficientSupport
	// ReasonZeroActual means the actual value is ~0 while the prediction is not.
	ReasonZeroActual
)

func (r Reason) String() string {
	switch r {
	case ReasonInsufficientSupport:
		return "insufficient support"
	case ReasonZeroActual:
		return "zero actual"
	default:
		return ""
	}
}

// ErrorOutcome is either a measured percentage or an unmeasurable marker.
type ErrorOutcome struct {
	percent  float64
	measured bool
	reason   Reason
}

// Measured wraps a genuine percent error.
func Measured(percent float64) ErrorOutcome { return ErrorOutcome{percent: percent, measured: true} }

// Unmeasurable marks an entry whose error has no meaningful percentage.
func Unmeasurable(reason Reason) ErrorOutcome { return ErrorOutcome{reason: reason} }

// Percent returns the measured percentage and whether it was measured.
func (o ErrorOutcome) Percent() (float64, bool) { return o.percent, o.measured }

// IsMeasured reports whether the outcome carries a percentage.
func (o ErrorOutcome) IsMeasured() bool { return o.measured }

// Reason returns why the outcome is unmeasurable, or ReasonNone.
func (o ErrorOutcome) Reason() Reason { return o.reason }

// Legacy renders the outcome in the legacy report format: unmeasurable becomes 100.
func (o ErrorOutcome) Legacy() float64 {
	if o.measured {
		return o.percent
	}
	return LegacyUnmeasurable
}

func (o ErrorOutcome) String() string {
	if o.measured {
		return fmt.Sprintf("%.4f%%", o.percent)
	}
	return "n/a (" + o.reason.String() + ")"
}

// CrossValidationEntry is the leave-one-out result for one sample.
type CrossValidationEntry struct {
	Index     int
	X         float64
	Actual    float64
	Predicted float64
	Error     ErrorOutcome
}

// CrossValidationReport holds one entry per sample, aligned by index.
type CrossValidationReport struct {
	Degree  int
	Entries []CrossValidationEntry
}

// MeanError averages the measured percentages; ok is false when nothing was measured.
func (r CrossValidationReport) MeanError() (mean float64, ok bool) {
	var sum float64
	var n int
	for _, e := range r.Entries {
		if p, m := e.Error.Percent(); m {
			sum += p
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// MaxError returns the largest measured percentage.
func (r CrossValidationReport) MaxError() (max float64, ok bool) {
	for _, e := range r.Entries {
		if p, m := e.Error.Percent(); m && (!ok || p > max) {
			max, ok = p, true
		}
	}
	return max, ok
}

// Unmeasurable counts entries without a measured error.
func (r CrossValidationReport) Unmeasurable() int {
	n := 0
	for _, e := range r.Entries {
		if !e.Error.IsMeasured() {
			n++
		}
	}
	return n
}

// Predictions returns the leave-one-out predictions aligned to the sample set.
func (r CrossValidationReport) Predictions() []float64 {
	out := make([]float64, len(r.Entries))
	for i, e := range r.Entries {
		out[i] = e.Predicted
	}
	return out
}

// Legacy returns the per-entry percentages with unmeasurable entries rendered as 100.
func (r CrossValidationReport) Legacy() []float64 {
	out := make([]float64, len(r.Entries))
	for i, e := range r.Entries {
		out[i] = e.Error.Legacy()
	}
	return out
}

// CrossValidate predicts every sample from an interpolating polynomial of the given degree
// built without that sample.
func (s SampleSet) CrossValidate(degree int) (CrossValidationReport, error) {
	if degree < MinDegree || degree > MaxDegree {
		return CrossValidationReport{}, fmt.Errorf("cross-validate degree %d (want %d..%d): %w", degree, MinDegree, MaxDegree, ErrDegreeRange)
	}
	rep := CrossValidationReport{Degree: degree, Entries: make([]CrossValidationEntry, s.Len())}
	for i := range s.x {
		e := CrossValidationEntry{Index: i, X: s.x[i], Actual: s.y[i]}
		support := s.SelectSupport(i, degree)
		if len(support) < degree+1 {
			e.Predicted = s.y[i]
			e.Error = Unmeasurable(ReasonInsufficientSupport)
			rep.Entries[i] = e
			continue
		}
		e.Predicted = s.Lagrange(s.x[i], support)
		e.Error = percentError(s.y[i], e.Predicted)
		rep.Entries[i] = e
	}
	return rep, nil
}

// CrossValidateAll runs CrossValidate for every degree from MinDegree to MaxDegree.
func (s SampleSet) CrossValidateAll() ([]CrossValidationReport, error) {
	out := make([]CrossValidationReport, 0, MaxDegree-MinDegree+1)
	for d := MinDegree; d <= MaxDegree; d++ {
		rep, err := s.CrossValidate(d)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, nil
}

func percentError(actual, predicted float64) ErrorOutcome {
	if math.Abs(actual) >= zeroTolerance {
		return Measured(math.Abs(actual-predicted) / math.Abs(actual) * 100)
	}
	if math.Abs(predicted) < zeroTolerance {
		return Measured(0)
	}
	return Unmeasurable(ReasonZeroActual)
}
