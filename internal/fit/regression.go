package fit

import (
	"fmt"
	"math"
)

// MinRegressionSamples is the fewest samples FitLinear and FitQuadratic accept.
const MinRegressionSamples = 3

// LinearModel is y = A·x + B.
type LinearModel struct {
	A, B        float64
	Predictions []float64
	Stats       FitStatistics
}

// Predict evaluates the model at x.
func (m LinearModel) Predict(x float64) float64 { return m.A*x + m.B }

// Equation renders the model as text.
func (m LinearModel) Equation() string {
	return fmt.Sprintf("y = %.4fx %s", m.A, signed(m.B))
}

// QuadraticModel is y = A·x² + B·x + C.
type QuadraticModel struct {
	A, B, C     float64
	Predictions []float64
	Stats       FitStatistics

	// fitted form in the centered variable, used by Predict when set
	cx     centering
	scaled quadraticSolution
}

// Predict evaluates the model at x.
func (m QuadraticModel) Predict(x float64) float64 {
	if m.cx.half == 0 {
		return m.A*x*x + m.B*x + m.C
	}
	t := m.cx.apply(x)
	return (m.scaled.a*t+m.scaled.b)*t + m.scaled.c
}

// Equation renders the model as text.
func (m QuadraticModel) Equation() string {
	return fmt.Sprintf("y = %.4fx² %sx %s", m.A, signed(m.B), signed(m.C))
}

func signed(v float64) string {
	if v < 0 {
		return fmt.Sprintf("- %.4f", -v)
	}
	return fmt.Sprintf("+ %.4f", v)
}

// FitLinear fits y = a·x + b by closed-form least squares.
// It fails with ErrSingularSystem only when every x coincides.
func (s SampleSet) FitLinear() (LinearModel, error) {
	n := s.Len()
	if n < MinRegressionSamples {
		return LinearModel{}, fmt.Errorf("linear regression: %d samples, need %d: %w", n, MinRegressionSamples, ErrInsufficientData)
	}
	cx, ok := newCentering(s.x)
	if !ok {
		return LinearModel{}, &SingularError{Op: "linear regression", Pivot: -1}
	}
	var sumT, sumY, sumTY, sumT2 float64
	for i := range s.x {
		t := cx.apply(s.x[i])
		sumT += t
		sumY += s.y[i]
		sumTY += t * s.y[i]
		sumT2 += t * t
	}
	nf := float64(n)
	den := nf*sumT2 - sumT*sumT
	if den <= 0 {
		return LinearModel{}, &SingularError{Op: "linear regression", Pivot: -1}
	}
	// slope and intercept in t, then mapped back to x
	at := (nf*sumTY - sumT*sumY) / den
	bt := (sumY*sumT2 - sumT*sumTY) / den
	m := LinearModel{A: at / cx.half}
	m.B = bt - m.A*cx.mid
	m.Predictions = make([]float64, n)
	for i, x := range s.x {
		m.Predictions[i] = m.Predict(x)
	}
	st, err := ComputeStatistics(s.x, s.y, m.Predictions)
	if err != nil {
		return LinearModel{}, fmt.Errorf("linear regression: %w", err)
	}
	m.Stats = st
	return m, nil
}

// centering maps x onto t = (x-mid)/half, so the samples span [-1, 1]. Power sums
// built on t stay well scaled for data far from the origin.
type centering struct {
	mid, half float64
}

// newCentering returns false when the x range is indistinguishable from a single point.
func newCentering(xs []float64) (centering, bool) {
	lo, hi := xs[0], xs[0]
	for _, x := range xs[1:] {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	half := (hi - lo) / 2
	mag := math.Max(math.Abs(lo), math.Abs(hi))
	if half == 0 || half <= SingularTolerance*mag {
		return centering{}, false
	}
	return centering{mid: lo + half, half: half}, true
}

func (c centering) apply(x float64) float64 { return (x - c.mid) / c.half }

// quadraticSolution names the solver slots of the ascending-power normal equations.
type quadraticSolution struct {
	c, b, a float64
}

func newQuadraticSolution(slots []float64) quadraticSolution {
	return quadraticSolution{c: slots[0], b: slots[1], a: slots[2]}
}

// unscale expands a·t² + b·t + c with t = (x-mid)/half into coefficients of x.
func (q quadraticSolution) unscale(cx centering) QuadraticModel {
	h, mid := cx.half, cx.mid
	a := q.a / (h * h)
	return QuadraticModel{
		A:      a,
		B:      q.b/h - 2*a*mid,
		C:      a*mid*mid - q.b*mid/h + q.c,
		cx:     cx,
		scaled: q,
	}
}

// FitQuadratic fits y = a·x² + b·x + c by solving the 3x3 normal equations.
func (s SampleSet) FitQuadratic() (QuadraticModel, error) {
	n := s.Len()
	if n < MinRegressionSamples {
		return QuadraticModel{}, fmt.Errorf("quadratic regression: %d samples, need %d: %w", n, MinRegressionSamples, ErrInsufficientData)
	}
	cx, ok := newCentering(s.x)
	if !ok {
		return QuadraticModel{}, &SingularError{Op: "quadratic regression", Pivot: -1}
	}
	var st1, st2, st3, st4, sy, sty, st2y float64
	for i := range s.x {
		t, y := cx.apply(s.x[i]), s.y[i]
		t2 := t * t
		st1 += t
		st2 += t2
		st3 += t2 * t
		st4 += t2 * t2
		sy += y
		sty += t * y
		st2y += t2 * y
	}
	// unknowns in ascending power order: c, b, a
	a := [][]float64{
		{float64(n), st1, st2},
		{st1, st2, st3},
		{st2, st3, st4},
	}
	rhs := []float64{sy, sty, st2y}
	slots, err := Solve(a, rhs)
	if err != nil {
		return QuadraticModel{}, fmt.Errorf("quadratic regression: %w", err)
	}
	sol := newQuadraticSolution(slots)
	m := sol.unscale(cx)
	m.Predictions = make([]float64, n)
	for i, x := range s.x {
		m.Predictions[i] = m.Predict(x)
	}
	st, err := ComputeStatistics(s.x, s.y, m.Predictions)
	if err != nil {
		return QuadraticModel{}, fmt.Errorf("quadratic regression: %w", err)
	}
	m.Stats = st
	return m, nil
}
