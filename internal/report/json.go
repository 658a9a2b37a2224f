package report

import (
	"time"

	"github.com/KaramelBytes/curvefit-cli/internal/fit"
	"github.com/KaramelBytes/curvefit-cli/internal/utils"
)

type jsonModel struct {
	Equation     string             `json:"equation,omitempty"`
	Coefficients map[string]float64 `json:"coefficients,omitempty"`
	Predictions  []float64          `json:"predictions,omitempty"`
	Stats        *fit.FitStatistics `json:"stats,omitempty"`
	Error        string             `json:"error,omitempty"`
}

type jsonEntry struct {
	Index     int      `json:"index"`
	X         float64  `json:"x"`
	Actual    float64  `json:"actual"`
	Predicted float64  `json:"predicted"`
	ErrorPct  *float64 `json:"error_percent"`
	Reason    string   `json:"unmeasurable_reason,omitempty"`
}

type jsonCV struct {
	Degree       int         `json:"degree"`
	MeanError    *float64    `json:"mean_error_percent"`
	MaxError     *float64    `json:"max_error_percent"`
	Unmeasurable int         `json:"unmeasurable"`
	Entries      []jsonEntry `json:"entries"`
}

type jsonReport struct {
	ID              string      `json:"id"`
	CreatedAt       time.Time   `json:"created_at"`
	Name            string      `json:"name,omitempty"`
	Points          int         `json:"points"`
	Linear          jsonModel   `json:"linear"`
	Quadratic       jsonModel   `json:"quadratic"`
	Comparison      *Comparison `json:"comparison,omitempty"`
	CrossValidation []jsonCV    `json:"cross_validation"`
	Notes           []string    `json:"notes,omitempty"`
}

// JSON renders the analysis as indented JSON. Unmeasurable errors are null rather than
// a sentinel percentage.
func (a *Analysis) JSON() ([]byte, error) {
	out := jsonReport{
		ID:        a.ID,
		CreatedAt: a.CreatedAt,
		Name:      a.Name,
		Points:    len(a.X),
		Notes:     a.Notes,
	}
	if a.Linear != nil {
		st := a.Linear.Stats
		out.Linear = jsonModel{
			Equation:     a.Linear.Equation(),
			Coefficients: map[string]float64{"a": a.Linear.A, "b": a.Linear.B},
			Predictions:  a.Linear.Predictions,
			Stats:        &st,
		}
	} else if a.LinearErr != nil {
		out.Linear.Error = a.LinearErr.Error()
	}
	if a.Quadratic != nil {
		st := a.Quadratic.Stats
		out.Quadratic = jsonModel{
			Equation:     a.Quadratic.Equation(),
			Coefficients: map[string]float64{"a": a.Quadratic.A, "b": a.Quadratic.B, "c": a.Quadratic.C},
			Predictions:  a.Quadratic.Predictions,
			Stats:        &st,
		}
	} else if a.QuadraticErr != nil {
		out.Quadratic.Error = a.QuadraticErr.Error()
	}
	if c, ok := a.Compare(); ok {
		out.Comparison = &c
	}
	out.CrossValidation = make([]jsonCV, 0, len(a.CrossValidation))
	for _, rep := range a.CrossValidation {
		cv := jsonCV{Degree: rep.Degree, Unmeasurable: rep.Unmeasurable()}
		if m, ok := rep.MeanError(); ok {
			cv.MeanError = &m
		}
		if m, ok := rep.MaxError(); ok {
			cv.MaxError = &m
		}
		for _, e := range rep.Entries {
			je := jsonEntry{Index: e.Index, X: e.X, Actual: e.Actual, Predicted: e.Predicted}
			if p, ok := e.Error.Percent(); ok {
				je.ErrorPct = &p
			} else {
				je.Reason = e.Error.Reason().String()
			}
			cv.Entries = append(cv.Entries, je)
		}
		out.CrossValidation = append(out.CrossValidation, cv)
	}
	return utils.PrettyJSON(out)
}
