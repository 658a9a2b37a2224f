package fit

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

// FitStatistics summarizes how well predictions match the actual values.
type FitStatistics struct {
	// TotalStdDev is the sample standard deviation of the actual values (N-1 denominator).
	TotalStdDev float64 `json:"total_std_dev"`
	// StdError is the standard error of estimate, sqrt(SSE/(N-2)).
	StdError float64 `json:"std_error"`
	// Correlation is Pearson's r between x and the actual values.
	Correlation float64 `json:"correlation"`
	// Determination is R², explained over total sum of squares.
	Determination float64 `json:"determination"`
}

// ComputeStatistics derives FitStatistics from x, actual y and predicted y. It needs at least 3 samples.
// Zero variance in x or y yields a correlation of 0, and constant y yields R² of 0.
func ComputeStatistics(x, actual, predicted []float64) (FitStatistics, error) {
	n := len(actual)
	if len(x) != n || len(predicted) != n {
		return FitStatistics{}, fmt.Errorf("fit statistics: %d x, %d actual, %d predicted: %w", len(x), n, len(predicted), ErrLengthMismatch)
	}
	if n <= 2 {
		return FitStatistics{}, fmt.Errorf("fit statistics: %d samples, need at least 3: %w", n, ErrInsufficientData)
	}

	meanY, err := stats.Mean(actual)
	if err != nil {
		return FitStatistics{}, fmt.Errorf("fit statistics: mean: %w", err)
	}
	meanX, err := stats.Mean(x)
	if err != nil {
		return FitStatistics{}, fmt.Errorf("fit statistics: mean: %w", err)
	}
	totalStd, err := stats.StandardDeviationSample(actual)
	if err != nil {
		return FitStatistics{}, fmt.Errorf("fit statistics: standard deviation: %w", err)
	}

	var sse, ssr, sst, sxy, sxx float64
	for i := 0; i < n; i++ {
		dy := actual[i] - meanY
		dx := x[i] - meanX
		r := actual[i] - predicted[i]
		e := predicted[i] - meanY
		sse += r * r
		ssr += e * e
		sst += dy * dy
		sxy += dx * dy
		sxx += dx * dx
	}

	st := FitStatistics{
		TotalStdDev: totalStd,
		StdError:    math.Sqrt(sse / float64(n-2)),
	}
	if sxx != 0 && sst != 0 {
		st.Correlation = sxy / math.Sqrt(sxx*sst)
	}
	if sst != 0 {
		st.Determination = ssr / sst
	}
	return st, nil
}
