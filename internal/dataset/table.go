// Package dataset loads paired (x, y) samples from spreadsheets and cleans them
// for the numerical core.
package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/curvefit-cli/internal/fit"
	"github.com/KaramelBytes/curvefit-cli/internal/utils"
)

// ErrUnsupportedFormat indicates a file extension the loader cannot read.
var ErrUnsupportedFormat = errors.New("unsupported data format")

// MissingColumnError reports a required column absent from the header row.
type MissingColumnError struct {
	Want  []string
	Found []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("file must contain columns %s; found: %s",
		strings.Join(quoteAll(e.Want), " and "), strings.Join(quoteAll(e.Found), ", "))
}

func quoteAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = "'" + s + "'"
	}
	return out
}

// Options controls how a data file is read.
type Options struct {
	// XColumn and YColumn name the header cells to read (case-insensitive).
	XColumn string
	YColumn string
	// SheetName selects an XLSX sheet; SheetIndex (1-based) is used when it is empty.
	SheetName  string
	SheetIndex int
	// Delimiter for CSV. If 0, auto-detects among ',', ';', '\t'.
	Delimiter rune
	// Numeric parsing locale. If DecimalSeparator is 0, auto-detect per value.
	DecimalSeparator   rune
	ThousandsSeparator rune
}

// DefaultOptions reads columns "x" and "y" from the first sheet.
func DefaultOptions() Options {
	return Options{XColumn: "x", YColumn: "y", SheetIndex: 1}
}

// Point is one cleaned sample with its 1-based spreadsheet row.
type Point struct {
	Row  int
	X, Y float64
}

// Table holds the cleaned samples of one file.
type Table struct {
	Name    string
	Path    string
	Points  []Point
	Rows    int // data rows read, before cleaning
	Dropped int // rows discarded for missing or non-numeric cells
}

// Load reads path (.xlsx, .csv or .tsv) and returns its cleaned x/y samples.
func Load(path string, opt Options) (*Table, error) {
	if opt.XColumn == "" {
		opt.XColumn = "x"
	}
	if opt.YColumn == "" {
		opt.YColumn = "y"
	}
	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = readXLSX(path, opt.SheetName, opt.SheetIndex)
	case ".csv", ".tsv", ".txt":
		rows, err = readCSV(path, opt.Delimiter)
	default:
		return nil, fmt.Errorf("%s: %w (use .xlsx, .csv or .tsv)", filepath.Base(path), ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, err
	}

	t := &Table{Name: filepath.Base(path), Path: path}
	if len(rows) == 0 {
		return nil, &MissingColumnError{Want: []string{opt.XColumn, opt.YColumn}}
	}
	header := rows[0]
	xi, yi := -1, -1
	found := make([]string, 0, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		found = append(found, name)
		switch {
		case xi < 0 && strings.EqualFold(name, opt.XColumn):
			xi = i
		case yi < 0 && strings.EqualFold(name, opt.YColumn):
			yi = i
		}
	}
	if xi < 0 || yi < 0 {
		return nil, &MissingColumnError{Want: []string{opt.XColumn, opt.YColumn}, Found: found}
	}

	for r, rec := range rows[1:] {
		if isBlank(rec) {
			continue
		}
		t.Rows++
		x, okx := cell(rec, xi, opt)
		y, oky := cell(rec, yi, opt)
		if !okx || !oky {
			t.Dropped++
			continue
		}
		t.Points = append(t.Points, Point{Row: r + 2, X: x, Y: y})
	}
	return t, nil
}

func cell(rec []string, i int, opt Options) (float64, bool) {
	if i >= len(rec) {
		return 0, false
	}
	return parseNumeric(rec[i], opt)
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Len returns the number of cleaned samples.
func (t *Table) Len() int { return len(t.Points) }

// Samples builds the immutable sample set consumed by the fit package.
func (t *Table) Samples() (fit.SampleSet, error) {
	x := make([]float64, len(t.Points))
	y := make([]float64, len(t.Points))
	for i, p := range t.Points {
		x[i], y[i] = p.X, p.Y
	}
	return fit.NewSampleSet(x, y)
}

// WriteXLSX writes an x/y template workbook to path.
func WriteXLSX(path string, xName, yName string, points []Point) error {
	rows := [][]string{{xName, yName}}
	for _, p := range points {
		rows = append(rows, []string{fmt.Sprint(p.X), fmt.Sprint(p.Y)})
	}
	var buf strings.Builder
	if err := encodeXLSX(&buf, "Sheet1", rows); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	return utils.SafeWriteFile(path, []byte(buf.String()))
}
