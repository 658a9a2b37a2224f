package cmd

import (
	"errors"
	"fmt"
	"strings"

	cfgpkg "github.com/KaramelBytes/curvefit-cli/internal/config"
	"github.com/KaramelBytes/curvefit-cli/internal/dataset"
	"github.com/KaramelBytes/curvefit-cli/internal/fit"
	"github.com/KaramelBytes/curvefit-cli/internal/logging"
	"github.com/KaramelBytes/curvefit-cli/internal/report"
	"github.com/spf13/pflag"
)

// loaderFlags are the input and analysis flags shared by analyze and analyze-batch.
type loaderFlags struct {
	xCol       string
	yCol       string
	sheetName  string
	sheetIndex int
	delimiter  string
	decimal    string
	thousands  string
	degrees    []int
	head       int
}

func (lf *loaderFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&lf.xCol, "x-col", "", "header of the x column (default from config, usually 'x')")
	fs.StringVar(&lf.yCol, "y-col", "", "header of the y column (default from config, usually 'y')")
	fs.StringVar(&lf.sheetName, "sheet-name", "", "XLSX: sheet name to read")
	fs.IntVar(&lf.sheetIndex, "sheet-index", 0, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	fs.StringVar(&lf.delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (auto-detect if omitted)")
	fs.StringVar(&lf.decimal, "decimal", "", "decimal separator for numbers: '.'|'comma' (auto-detect if omitted)")
	fs.StringVar(&lf.thousands, "thousands", "", "thousands separator for numbers: ','|'.'|'space' (auto-detect if omitted)")
	fs.IntSliceVar(&lf.degrees, "degrees", nil, "interpolation degrees to cross-validate, 1..4 (default from config)")
	fs.IntVar(&lf.head, "head", -1, "number of leading points to echo (default from config)")
}

func (lf *loaderFlags) reset() {
	*lf = loaderFlags{head: -1}
}

// datasetOptions merges flags over the configuration.
func (lf *loaderFlags) datasetOptions(c *cfgpkg.Global) (dataset.Options, error) {
	opt := dataset.DefaultOptions()
	if c.XColumn != "" {
		opt.XColumn = c.XColumn
	}
	if c.YColumn != "" {
		opt.YColumn = c.YColumn
	}
	opt.SheetName = c.SheetName
	if c.SheetIndex > 0 {
		opt.SheetIndex = c.SheetIndex
	}
	if lf.xCol != "" {
		opt.XColumn = lf.xCol
	}
	if lf.yCol != "" {
		opt.YColumn = lf.yCol
	}
	if lf.sheetName != "" {
		opt.SheetName = lf.sheetName
	}
	if lf.sheetIndex > 0 {
		opt.SheetIndex = lf.sheetIndex
	}
	switch lf.delimiter {
	case "":
	case ",":
		opt.Delimiter = ','
	case "\t", "tab":
		opt.Delimiter = '\t'
	case ";":
		opt.Delimiter = ';'
	default:
		return opt, fmt.Errorf("unsupported --delimiter: %s", lf.delimiter)
	}
	switch strings.ToLower(strings.TrimSpace(lf.decimal)) {
	case ",", "comma":
		opt.DecimalSeparator = ','
	case ".", "dot":
		opt.DecimalSeparator = '.'
	case "":
	default:
		return opt, fmt.Errorf("unsupported --decimal: %s (use '.'|'comma')", lf.decimal)
	}
	switch strings.ToLower(strings.TrimSpace(lf.thousands)) {
	case ",":
		opt.ThousandsSeparator = ','
	case ".":
		opt.ThousandsSeparator = '.'
	case "space", " ":
		opt.ThousandsSeparator = ' '
	case "":
	default:
		return opt, fmt.Errorf("unsupported --thousands: %s (use ','|'.'|'space')", lf.thousands)
	}
	if opt.DecimalSeparator != 0 && opt.DecimalSeparator == opt.ThousandsSeparator {
		return opt, fmt.Errorf("--decimal and --thousands must differ")
	}
	return opt, nil
}

func (lf *loaderFlags) reportOptions(c *cfgpkg.Global) report.Options {
	opt := report.DefaultOptions()
	if len(c.Degrees) > 0 {
		opt.Degrees = c.Degrees
	}
	if c.HeadRows >= 0 {
		opt.HeadRows = c.HeadRows
	}
	if len(lf.degrees) > 0 {
		opt.Degrees = lf.degrees
	}
	if lf.head >= 0 {
		opt.HeadRows = lf.head
	}
	return opt
}

// errTooFewPoints is returned when a cleaned table cannot support any regression.
var errTooFewPoints = errors.New("need at least 3 points")

// analyzeFile loads path and runs the full analysis over it.
func analyzeFile(path string, dopt dataset.Options, ropt report.Options) (*report.Analysis, error) {
	tbl, err := dataset.Load(path, dopt)
	if err != nil {
		return nil, err
	}
	log := logging.Global().With("file", tbl.Name)
	log.Debug("data loaded", "rows", tbl.Rows, "points", tbl.Len(), "dropped", tbl.Dropped)
	if tbl.Len() < fit.MinRegressionSamples {
		return nil, fmt.Errorf("%s: %w (found %d): %w", tbl.Name, errTooFewPoints, tbl.Len(), fit.ErrInsufficientData)
	}
	if tbl.Dropped > 0 {
		note := fmt.Sprintf("%d of %d rows dropped (missing or non-numeric x/y)", tbl.Dropped, tbl.Rows)
		ropt.Notes = append(append([]string{}, ropt.Notes...), note)
		log.Warn("rows dropped during cleaning", "dropped", tbl.Dropped, "rows", tbl.Rows)
	}
	set, err := tbl.Samples()
	if err != nil {
		return nil, err
	}
	return report.Build(tbl.Name, set, ropt)
}

// outputFormat resolves the --format flag against the configuration.
func outputFormat(flag string, c *cfgpkg.Global) (string, error) {
	f := strings.ToLower(strings.TrimSpace(flag))
	if f == "" {
		f = c.OutputFormat
	}
	switch f {
	case "", "text":
		return "text", nil
	case "markdown", "md":
		return "markdown", nil
	case "json":
		return "json", nil
	}
	return "", fmt.Errorf("unsupported --format: %s (use text, markdown or json)", flag)
}
