// Package report runs the regression and cross-validation suite over a sample set
// and renders the results for the console, Markdown documents or JSON.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/KaramelBytes/curvefit-cli/internal/fit"
	"github.com/KaramelBytes/curvefit-cli/internal/logging"
	"github.com/google/uuid"
)

// Options controls which computations Build runs.
type Options struct {
	// Degrees lists interpolation degrees to cross-validate; empty means 1..4.
	Degrees []int
	// HeadRows is how many leading samples the renderers echo.
	HeadRows int
	// Notes are free-form loader remarks (dropped rows and similar).
	Notes []string
}

// DefaultOptions cross-validates every degree and echoes five points.
func DefaultOptions() Options {
	return Options{Degrees: []int{1, 2, 3, 4}, HeadRows: 5}
}

// Analysis is the full result of one run. Regression failures are kept per model so the
// rest of the report still renders.
type Analysis struct {
	ID        string
	CreatedAt time.Time
	Name      string
	X, Y      []float64
	HeadRows  int
	Notes     []string

	Linear       *fit.LinearModel
	LinearErr    error
	Quadratic    *fit.QuadraticModel
	QuadraticErr error

	CrossValidation []fit.CrossValidationReport
}

// Comparison contrasts the two regression models.
type Comparison struct {
	DeltaR2       float64 `json:"delta_r2"`        // quadratic R² minus linear R²
	DeltaStdError float64 `json:"delta_std_error"` // linear standard error minus quadratic standard error
	Preferred     string  `json:"preferred"`       // "quadratic" or "linear"
}

// Build runs linear and quadratic regression plus cross-validation for each configured degree.
func Build(name string, set fit.SampleSet, opt Options) (*Analysis, error) {
	degrees := normalizeDegrees(opt.Degrees)
	for _, d := range degrees {
		if d < fit.MinDegree || d > fit.MaxDegree {
			return nil, fmt.Errorf("build analysis: degree %d: %w", d, fit.ErrDegreeRange)
		}
	}
	a := &Analysis{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Name:      name,
		X:         set.Xs(),
		Y:         set.Ys(),
		HeadRows:  opt.HeadRows,
		Notes:     opt.Notes,
	}
	log := logging.Global().With("run", a.ID, "file", name)

	if lm, err := set.FitLinear(); err != nil {
		a.LinearErr = err
		log.Warn("linear regression failed", "error", err)
	} else {
		a.Linear = &lm
	}
	if qm, err := set.FitQuadratic(); err != nil {
		a.QuadraticErr = err
		log.Warn("quadratic regression failed", "error", err)
	} else {
		a.Quadratic = &qm
	}
	for _, d := range degrees {
		rep, err := set.CrossValidate(d)
		if err != nil {
			return nil, fmt.Errorf("build analysis: %w", err)
		}
		if n := rep.Unmeasurable(); n > 0 {
			log.Debug("unmeasurable cross-validation entries", "degree", d, "count", n)
		}
		a.CrossValidation = append(a.CrossValidation, rep)
	}
	log.Debug("analysis complete", "samples", set.Len(), "degrees", degrees)
	return a, nil
}

func normalizeDegrees(in []int) []int {
	if len(in) == 0 {
		return []int{1, 2, 3, 4}
	}
	seen := map[int]struct{}{}
	out := make([]int, 0, len(in))
	for _, d := range in {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}

// Compare returns the model comparison, or false when either regression failed.
func (a *Analysis) Compare() (Comparison, bool) {
	if a.Linear == nil || a.Quadratic == nil {
		return Comparison{}, false
	}
	c := Comparison{
		DeltaR2:       a.Quadratic.Stats.Determination - a.Linear.Stats.Determination,
		DeltaStdError: a.Linear.Stats.StdError - a.Quadratic.Stats.StdError,
		Preferred:     "linear",
	}
	if a.Quadratic.Stats.Determination > a.Linear.Stats.Determination {
		c.Preferred = "quadratic"
	}
	return c, true
}

func (a *Analysis) head() int {
	n := a.HeadRows
	if n > len(a.X) {
		n = len(a.X)
	}
	if n < 0 {
		n = 0
	}
	return n
}
