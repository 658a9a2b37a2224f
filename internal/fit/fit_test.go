package fit

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSet(t *testing.T, x, y []float64) SampleSet {
	t.Helper()
	s, err := NewSampleSet(x, y)
	require.NoError(t, err)
	return s
}

func generate(xs []float64, f func(float64) float64) []float64 {
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = f(x)
	}
	return ys
}

func TestNewSampleSet(t *testing.T) {
	x := []float64{1, 2, 3}
	y := []float64{4, 5, 6}
	s := mustSet(t, x, y)
	x[0] = 99
	assert.Equal(t, 1.0, s.X(0), "sample set must not alias caller slices")
	assert.Equal(t, 3, s.Len())

	xs := s.Xs()
	xs[1] = 42
	assert.Equal(t, 2.0, s.X(1))

	_, err := NewSampleSet([]float64{1, 2}, []float64{1})
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = NewSampleSet([]float64{1, math.NaN()}, []float64{1, 2})
	assert.ErrorIs(t, err, ErrNonFinite)
	_, err = NewSampleSet([]float64{1, 2}, []float64{math.Inf(1), 2})
	assert.ErrorIs(t, err, ErrNonFinite)
}

func TestSolve(t *testing.T) {
	a := [][]float64{
		{2, 1, -1},
		{-3, -1, 2},
		{-2, 1, 2},
	}
	b := []float64{8, -11, -3}
	x, err := Solve(a, b)
	require.NoError(t, err)
	if diff := cmp.Diff([]float64{2, 3, -1}, x, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Fatalf("solution mismatch (-want +got):\n%s", diff)
	}
	// inputs untouched
	assert.Equal(t, []float64{8, -11, -3}, b)
	assert.Equal(t, []float64{2, 1, -1}, a[0])
}

func TestSolve_NeedsPivoting(t *testing.T) {
	// zero on the diagonal: fails without row exchange
	a := [][]float64{
		{0, 1},
		{1, 0},
	}
	x, err := Solve(a, []float64{3, 7})
	require.NoError(t, err)
	assert.InDelta(t, 7, x[0], 1e-15)
	assert.InDelta(t, 3, x[1], 1e-15)
}

func TestSolve_Errors(t *testing.T) {
	_, err := Solve([][]float64{{1, 1}, {2, 2}}, []float64{1, 2})
	require.ErrorIs(t, err, ErrSingularSystem)
	var se *SingularError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 1, se.Pivot)

	_, err = Solve([][]float64{{0, 0}, {0, 0}}, []float64{0, 0})
	assert.ErrorIs(t, err, ErrSingularSystem)

	_, err = Solve([][]float64{{1, 2}}, []float64{1, 2})
	assert.ErrorIs(t, err, ErrDimension)
	_, err = Solve([][]float64{{1, 2}, {3}}, []float64{1, 2})
	assert.ErrorIs(t, err, ErrDimension)
	_, err = Solve(nil, nil)
	assert.ErrorIs(t, err, ErrDimension)
}

func TestSelectSupport(t *testing.T) {
	s := mustSet(t, []float64{1, 2, 3, 4, 5}, []float64{1, 4, 9, 16, 25})

	got := s.SelectSupport(2, 1)
	assert.Equal(t, []int{0, 1}, got)

	got = s.SelectSupport(0, 2)
	assert.Equal(t, []int{1, 2, 3}, got)

	// small set: everything except the excluded index
	small := mustSet(t, []float64{1, 1, 2}, []float64{1, 2, 3})
	assert.Equal(t, []int{0, 2}, small.SelectSupport(1, 2))
}

func TestSelectSupport_SkipsDuplicates(t *testing.T) {
	s := mustSet(t, []float64{1, 1 + 1e-13, 2, 3, 4}, []float64{1, 1, 2, 3, 4})
	assert.Equal(t, []int{0, 2, 3}, s.SelectSupport(4, 2))
	assert.Equal(t, []int{1, 2, 3}, s.SelectSupport(0, 2))
}

func TestSelectSupport_Fallback(t *testing.T) {
	// only two distinct x values, so dedup cannot reach 3 points
	s := mustSet(t, []float64{1, 1, 1, 2, 2}, []float64{1, 2, 3, 4, 5})
	assert.Equal(t, []int{0, 1, 2}, s.SelectSupport(4, 2))
	// fallback takes the leading indices and may come up short
	assert.Equal(t, []int{0, 2}, s.SelectSupport(1, 2))
}

func TestLagrange(t *testing.T) {
	s := mustSet(t, []float64{0, 1, 2}, []float64{1, 3, 7}) // y = x² + x + 1
	assert.InDelta(t, 13.0, s.Lagrange(3, []int{0, 1, 2}), 1e-12)
	assert.InDelta(t, 2.0, s.Lagrange(0.5, []int{0, 1}), 1e-12)
}

func TestLagrange_CoincidentSupport(t *testing.T) {
	s := mustSet(t, []float64{2, 2 + 1e-13, 5}, []float64{10, 20, 30})
	assert.Equal(t, 10.0, s.Lagrange(4, []int{0, 1}))
	assert.Equal(t, 20.0, s.Lagrange(4, []int{1, 0, 2}))
}

func TestCrossValidate_ExactReconstruction(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	polys := map[int]func(float64) float64{
		1: func(x float64) float64 { return 3*x + 2 },
		2: func(x float64) float64 { return 0.5*x*x - x + 4 },
		3: func(x float64) float64 { return x*x*x - 2*x + 7 },
		4: func(x float64) float64 { return 0.1*x*x*x*x + x*x + 1 },
	}
	for d, f := range polys {
		s := mustSet(t, xs, generate(xs, f))
		rep, err := s.CrossValidate(d)
		require.NoError(t, err)
		require.Equal(t, d, rep.Degree)
		require.Len(t, rep.Entries, len(xs))
		for i, e := range rep.Entries {
			assert.Equal(t, i, e.Index)
			p, ok := e.Error.Percent()
			require.True(t, ok, "degree %d index %d unmeasured", d, i)
			assert.InDelta(t, 0, p, 1e-6, "degree %d index %d", d, i)
			assert.InDelta(t, s.Y(i), e.Predicted, 1e-6)
		}
		mean, ok := rep.MeanError()
		assert.True(t, ok)
		assert.InDelta(t, 0, mean, 1e-6)
	}
}

func TestCrossValidate_ErrorOutcomes(t *testing.T) {
	s := mustSet(t, []float64{1, 2, 3, 4}, []float64{2, 4, 0, 10})
	rep, err := s.CrossValidate(1)
	require.NoError(t, err)

	// index 0 predicted from (2,4),(3,0): line y = -4x + 12 → 8 at x=1
	assert.InDelta(t, 8, rep.Entries[0].Predicted, 1e-12)
	p, ok := rep.Entries[0].Error.Percent()
	require.True(t, ok)
	assert.InDelta(t, 300, p, 1e-9)

	// index 2 has y=0 and a non-zero prediction
	assert.False(t, rep.Entries[2].Error.IsMeasured())
	assert.Equal(t, ReasonZeroActual, rep.Entries[2].Error.Reason())
	assert.Equal(t, LegacyUnmeasurable, rep.Entries[2].Error.Legacy())
	assert.Equal(t, 1, rep.Unmeasurable())

	max, ok := rep.MaxError()
	require.True(t, ok)
	assert.InDelta(t, 300, max, 1e-9)
	assert.Len(t, rep.Legacy(), 4)
	assert.Len(t, rep.Predictions(), 4)
}

func TestCrossValidate_ZeroActualZeroPrediction(t *testing.T) {
	s := mustSet(t, []float64{-1, 0, 1, 2}, []float64{-1, 0, 1, 2})
	rep, err := s.CrossValidate(1)
	require.NoError(t, err)
	p, ok := rep.Entries[1].Error.Percent()
	require.True(t, ok)
	assert.Equal(t, 0.0, p)
}

func TestCrossValidate_InsufficientSupport(t *testing.T) {
	s := mustSet(t, []float64{1, 2, 3}, []float64{5, 6, 7})
	rep, err := s.CrossValidate(3)
	require.NoError(t, err)
	for i, e := range rep.Entries {
		assert.Equal(t, s.Y(i), e.Predicted, "identity fallback")
		assert.Equal(t, ReasonInsufficientSupport, e.Error.Reason())
	}
	_, ok := rep.MeanError()
	assert.False(t, ok)
	assert.Equal(t, 3, rep.Unmeasurable())
}

func TestCrossValidate_DegreeRange(t *testing.T) {
	s := mustSet(t, []float64{1, 2, 3}, []float64{5, 6, 7})
	_, err := s.CrossValidate(0)
	assert.ErrorIs(t, err, ErrDegreeRange)
	_, err = s.CrossValidate(5)
	assert.ErrorIs(t, err, ErrDegreeRange)

	all, err := s.CrossValidateAll()
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i, r := range all {
		assert.Equal(t, i+1, r.Degree)
	}
}

func TestFitLinear_ScenarioA(t *testing.T) {
	s := mustSet(t, []float64{1, 2, 3, 4, 5}, []float64{2, 4, 6, 8, 10})
	m, err := s.FitLinear()
	require.NoError(t, err)
	assert.InDelta(t, 2.0, m.A, 1e-12)
	assert.InDelta(t, 0.0, m.B, 1e-12)
	assert.InDelta(t, 1.0, m.Stats.Determination, 1e-12)
	assert.InDelta(t, 1.0, m.Stats.Correlation, 1e-12)
	assert.InDelta(t, 0.0, m.Stats.StdError, 1e-9)
	if diff := cmp.Diff([]float64{2, 4, 6, 8, 10}, m.Predictions, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Fatalf("predictions (-want +got):\n%s", diff)
	}
	assert.Equal(t, "y = 2.0000x + 0.0000", m.Equation())
}

func TestFitLinear_RecoversLine(t *testing.T) {
	xs := []float64{-3, -1.5, 0, 0.25, 2, 7, 11}
	s := mustSet(t, xs, generate(xs, func(x float64) float64 { return -1.75*x + 4.5 }))
	m, err := s.FitLinear()
	require.NoError(t, err)
	assert.InDelta(t, -1.75, m.A, 1e-9)
	assert.InDelta(t, 4.5, m.B, 1e-9)
	assert.InDelta(t, 1.0, m.Stats.Determination, 1e-9)
	assert.InDelta(t, -1.0, m.Stats.Correlation, 1e-9)
}

func TestFitQuadratic_RecoversParabola(t *testing.T) {
	xs := []float64{-2, -1, 0, 1, 2, 3, 4.5}
	s := mustSet(t, xs, generate(xs, func(x float64) float64 { return 2*x*x - 3*x + 1 }))
	m, err := s.FitQuadratic()
	require.NoError(t, err)
	assert.InDelta(t, 2, m.A, 1e-8)
	assert.InDelta(t, -3, m.B, 1e-8)
	assert.InDelta(t, 1, m.C, 1e-8)
	assert.InDelta(t, 1.0, m.Stats.Determination, 1e-9)
	assert.InDelta(t, m.Predict(3), 10, 1e-8)
	assert.Equal(t, "y = 2.0000x² - 3.0000x + 1.0000", m.Equation())
}

func TestRegression_ScenarioB_Singular(t *testing.T) {
	s := mustSet(t, []float64{1, 1, 1}, []float64{1, 2, 3})
	_, err := s.FitLinear()
	require.ErrorIs(t, err, ErrSingularSystem)
	_, err = s.FitQuadratic()
	require.ErrorIs(t, err, ErrSingularSystem)
}

func TestRegression_InsufficientData(t *testing.T) {
	s := mustSet(t, []float64{1, 2}, []float64{1, 2})
	_, err := s.FitLinear()
	assert.ErrorIs(t, err, ErrInsufficientData)
	_, err = s.FitQuadratic()
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestComputeStatistics(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6}
	y := []float64{1.2, 1.9, 3.2, 3.8, 5.3, 5.9}
	s := mustSet(t, x, y)
	m, err := s.FitLinear()
	require.NoError(t, err)

	wantStd, err := stats.StandardDeviationSample(y)
	require.NoError(t, err)
	wantR, err := stats.Correlation(x, y)
	require.NoError(t, err)

	st := m.Stats
	assert.InDelta(t, wantStd, st.TotalStdDev, 1e-12)
	assert.InDelta(t, wantR, st.Correlation, 1e-12)
	// for a least-squares line R² equals r²
	assert.InDelta(t, wantR*wantR, st.Determination, 1e-9)
	assert.GreaterOrEqual(t, st.Determination, 0.0)
	assert.LessOrEqual(t, st.Determination, 1.0)
	assert.GreaterOrEqual(t, st.Correlation, -1.0)
	assert.LessOrEqual(t, st.Correlation, 1.0)

	var sse float64
	for i := range y {
		r := y[i] - m.Predictions[i]
		sse += r * r
	}
	assert.InDelta(t, math.Sqrt(sse/4), st.StdError, 1e-12)
}

func TestComputeStatistics_Degenerate(t *testing.T) {
	st, err := ComputeStatistics([]float64{1, 2, 3}, []float64{4, 4, 4}, []float64{4, 4, 4})
	require.NoError(t, err)
	assert.Equal(t, 0.0, st.Correlation)
	assert.Equal(t, 0.0, st.Determination)
	assert.Equal(t, 0.0, st.TotalStdDev)

	st, err = ComputeStatistics([]float64{2, 2, 2}, []float64{1, 2, 3}, []float64{2, 2, 2})
	require.NoError(t, err)
	assert.Equal(t, 0.0, st.Correlation)

	_, err = ComputeStatistics([]float64{1, 2}, []float64{1, 2}, []float64{1, 2})
	assert.ErrorIs(t, err, ErrInsufficientData)
	_, err = ComputeStatistics([]float64{1, 2, 3}, []float64{1, 2, 3}, []float64{1, 2})
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestErrorOutcomeString(t *testing.T) {
	assert.Equal(t, "12.5000%", Measured(12.5).String())
	assert.Equal(t, "n/a (zero actual)", Unmeasurable(ReasonZeroActual).String())
	assert.Equal(t, "", ReasonNone.String())
}
