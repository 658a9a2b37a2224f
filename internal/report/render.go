package report

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/curvefit-cli/internal/fit"
)

// Render returns the analysis in the named format: text, markdown or json.
func (a *Analysis) Render(format string) ([]byte, error) {
	switch format {
	case "", "text":
		return []byte(a.Text()), nil
	case "markdown", "md":
		return []byte(a.Markdown()), nil
	case "json":
		return a.JSON()
	default:
		return nil, fmt.Errorf("unsupported format: %s (use text, markdown or json)", format)
	}
}

// Ext returns the file extension used when writing format to disk.
func Ext(format string) string {
	switch format {
	case "markdown", "md":
		return ".md"
	case "json":
		return ".json"
	default:
		return ".txt"
	}
}

var (
	heavyRule = strings.Repeat("=", 70)
	lightRule = strings.Repeat("─", 70)
)

// Text renders the console report: loaded points, both regressions, the model
// comparison and one leave-one-out table per degree.
func (a *Analysis) Text() string {
	var b strings.Builder
	b.WriteString(heavyRule + "\n")
	b.WriteString(" CURVE FIT ANALYSIS: INTERPOLATION AND REGRESSION\n")
	b.WriteString(heavyRule + "\n")
	if a.Name != "" {
		fmt.Fprintf(&b, "File: %s\n", a.Name)
	}
	fmt.Fprintf(&b, "✓ Data loaded: %d points\n", len(a.X))
	if n := a.head(); n > 0 {
		fmt.Fprintf(&b, "\nFirst %d points:\n", n)
		for i := 0; i < n; i++ {
			fmt.Fprintf(&b, "  Point %d: x=%.2f, y=%.2f\n", i+1, a.X[i], a.Y[i])
		}
	}

	b.WriteString("\n" + heavyRule + "\n")
	b.WriteString("REGRESSION ANALYSIS\n")
	b.WriteString(heavyRule + "\n")

	section(&b, "LINEAR REGRESSION")
	if a.Linear != nil {
		fmt.Fprintf(&b, "Equation: %s\n", a.Linear.Equation())
		writeStats(&b, a.Linear.Stats)
	} else {
		fmt.Fprintf(&b, "✗ %v\n", a.LinearErr)
	}

	section(&b, "QUADRATIC REGRESSION")
	if a.Quadratic != nil {
		fmt.Fprintf(&b, "Equation: %s\n", a.Quadratic.Equation())
		writeStats(&b, a.Quadratic.Stats)
	} else {
		fmt.Fprintf(&b, "✗ %v\n", a.QuadraticErr)
	}

	if c, ok := a.Compare(); ok {
		section(&b, "MODEL COMPARISON")
		fmt.Fprintf(&b, "R² difference: %.4f\n", c.DeltaR2)
		fmt.Fprintf(&b, "Standard error difference: %.4f\n", c.DeltaStdError)
		if c.Preferred == "quadratic" {
			b.WriteString("➜ The quadratic model fits better (higher R²)\n")
		} else {
			b.WriteString("➜ The linear model fits better (higher R²)\n")
		}
	}

	if len(a.CrossValidation) > 0 {
		b.WriteString("\n" + heavyRule + "\n")
		b.WriteString("LAGRANGE INTERPOLATION (LEAVE-ONE-OUT)\n")
		b.WriteString(heavyRule + "\n")
	}
	for _, rep := range a.CrossValidation {
		section(&b, fmt.Sprintf("DEGREE %d", rep.Degree))
		fmt.Fprintf(&b, "%-10s %-12s %-12s %-12s\n", "x", "y_actual", "y_interp", "error %")
		b.WriteString(strings.Repeat("-", 50) + "\n")
		for _, e := range rep.Entries {
			fmt.Fprintf(&b, "%-10.4f %-12.4f %-12.4f %-12s\n", e.X, e.Actual, e.Predicted, errorCell(e.Error))
		}
		writeCVSummary(&b, rep)
	}

	if len(a.Notes) > 0 {
		b.WriteString("\nNotes:\n")
		for _, n := range a.Notes {
			fmt.Fprintf(&b, "- %s\n", n)
		}
	}
	return b.String()
}

func section(b *strings.Builder, title string) {
	fmt.Fprintf(b, "\n%s\n%s\n%s\n", lightRule, title, lightRule)
}

func writeStats(b *strings.Builder, st fit.FitStatistics) {
	fmt.Fprintf(b, "Total standard deviation: %.4f\n", st.TotalStdDev)
	fmt.Fprintf(b, "Standard error of estimate: %.4f\n", st.StdError)
	fmt.Fprintf(b, "Correlation coefficient: %.4f\n", st.Correlation)
	fmt.Fprintf(b, "Coefficient of determination (R²): %.4f\n", st.Determination)
}

func writeCVSummary(b *strings.Builder, rep fit.CrossValidationReport) {
	if mean, ok := rep.MeanError(); ok {
		max, _ := rep.MaxError()
		fmt.Fprintf(b, "Mean error: %.4f%%  Max error: %.4f%%", mean, max)
	} else {
		b.WriteString("Mean error: n/a")
	}
	if n := rep.Unmeasurable(); n > 0 {
		fmt.Fprintf(b, "  (%d unmeasurable)", n)
	}
	b.WriteString("\n")
}

func errorCell(o fit.ErrorOutcome) string {
	if p, ok := o.Percent(); ok {
		return fmt.Sprintf("%.4f", p)
	}
	return "n/a"
}

// Markdown renders a compact bracketed summary suitable for notes and documents.
func (a *Analysis) Markdown() string {
	var b strings.Builder
	b.WriteString("[CURVE FIT SUMMARY]\n")
	if a.Name != "" {
		fmt.Fprintf(&b, "File: %s\n", a.Name)
	}
	fmt.Fprintf(&b, "Run: %s\n", a.ID)
	fmt.Fprintf(&b, "Points: %d\n\n", len(a.X))

	b.WriteString("[REGRESSION]\n")
	b.WriteString("| Model | Equation | Total SD | Std error | r | R² |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- |\n")
	if a.Linear != nil {
		mdModelRow(&b, "linear", a.Linear.Equation(), a.Linear.Stats)
	} else {
		fmt.Fprintf(&b, "| linear | failed: %s | | | | |\n", safeVal(a.LinearErr.Error()))
	}
	if a.Quadratic != nil {
		mdModelRow(&b, "quadratic", a.Quadratic.Equation(), a.Quadratic.Stats)
	} else {
		fmt.Fprintf(&b, "| quadratic | failed: %s | | | | |\n", safeVal(a.QuadraticErr.Error()))
	}
	if c, ok := a.Compare(); ok {
		fmt.Fprintf(&b, "\nPreferred: %s (ΔR² %.4f, Δstd error %.4f)\n", c.Preferred, c.DeltaR2, c.DeltaStdError)
	}

	if len(a.CrossValidation) > 0 {
		b.WriteString("\n[CROSS-VALIDATION]\n")
		b.WriteString("| Degree | Mean error % | Max error % | Unmeasurable |\n")
		b.WriteString("| --- | --- | --- | --- |\n")
		for _, rep := range a.CrossValidation {
			mean, max := "n/a", "n/a"
			if m, ok := rep.MeanError(); ok {
				mean = fmt.Sprintf("%.4f", m)
			}
			if m, ok := rep.MaxError(); ok {
				max = fmt.Sprintf("%.4f", m)
			}
			fmt.Fprintf(&b, "| %d | %s | %s | %d |\n", rep.Degree, mean, max, rep.Unmeasurable())
		}
	}
	if n := a.head(); n > 0 {
		b.WriteString("\n[HEAD]\n")
		b.WriteString("| x | y |\n| --- | --- |\n")
		for i := 0; i < n; i++ {
			fmt.Fprintf(&b, "| %.4g | %.4g |\n", a.X[i], a.Y[i])
		}
	}
	if len(a.Notes) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, n := range a.Notes {
			b.WriteString("- ")
			b.WriteString(n)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func mdModelRow(b *strings.Builder, name, eq string, st fit.FitStatistics) {
	fmt.Fprintf(b, "| %s | %s | %.4f | %.4f | %.4f | %.4f |\n", name, eq, st.TotalStdDev, st.StdError, st.Correlation, st.Determination)
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
