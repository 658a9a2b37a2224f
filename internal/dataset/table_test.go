package dataset

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func writeWorkbook(t *testing.T, dir, name string, rows [][]string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	f, err := os.Create(p)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := encodeXLSX(f, "Datos", rows); err != nil {
		t.Fatalf("encode xlsx: %v", err)
	}
	return p
}

func TestLoadCSVCleansRows(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "datos.csv", strings.Join([]string{
		"label,X,Y",
		"a,1,2",
		"b,2,",
		"c,NaN,4",
		"d,3,abc",
		",,",
		"e,4,8.5",
	}, "\n")+"\n")

	tab, err := Load(p, DefaultOptions())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tab.Len() != 2 {
		t.Fatalf("expected 2 clean points, got %d (%+v)", tab.Len(), tab.Points)
	}
	if tab.Rows != 5 || tab.Dropped != 3 {
		t.Fatalf("rows=%d dropped=%d", tab.Rows, tab.Dropped)
	}
	if tab.Points[1].X != 4 || tab.Points[1].Y != 8.5 || tab.Points[1].Row != 7 {
		t.Fatalf("unexpected last point: %+v", tab.Points[1])
	}
	s, err := tab.Samples()
	if err != nil {
		t.Fatalf("samples: %v", err)
	}
	if s.Len() != 2 || s.X(0) != 1 || s.Y(0) != 2 {
		t.Fatalf("unexpected sample set")
	}
}

func TestLoadCSVSemicolonLocale(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "eu.csv", "x;y\n1,5;1.000,25\n2,5;2.000,5\n")
	tab, err := Load(p, DefaultOptions())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tab.Len() != 2 {
		t.Fatalf("points: %+v", tab.Points)
	}
	if tab.Points[0].X != 1.5 || tab.Points[0].Y != 1000.25 {
		t.Fatalf("locale parse mismatch: %+v", tab.Points[0])
	}
}

func TestLoadMissingColumns(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "bad.csv", "a,b\n1,2\n")
	_, err := Load(p, DefaultOptions())
	var mc *MissingColumnError
	if !errors.As(err, &mc) {
		t.Fatalf("expected MissingColumnError, got %v", err)
	}
	if len(mc.Found) != 2 || mc.Found[0] != "a" {
		t.Fatalf("found columns: %v", mc.Found)
	}
	if !strings.Contains(err.Error(), "'x' and 'y'") {
		t.Fatalf("message: %s", err.Error())
	}
}

func TestLoadUnsupported(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "data.json", "{}")
	if _, err := Load(p, DefaultOptions()); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestLoadXLSX(t *testing.T) {
	dir := t.TempDir()
	p := writeWorkbook(t, dir, "datos.xlsx", [][]string{
		{"x", "y", "note"},
		{"1", "2.5", "first"},
		{"2", "", "missing"},
		{"3", "7.25", "third"},
	})
	tab, err := Load(p, DefaultOptions())
	if err != nil {
		t.Fatalf("load xlsx: %v", err)
	}
	if tab.Len() != 2 || tab.Dropped != 1 {
		t.Fatalf("points=%+v dropped=%d", tab.Points, tab.Dropped)
	}
	if tab.Points[1].X != 3 || tab.Points[1].Y != 7.25 {
		t.Fatalf("unexpected point: %+v", tab.Points[1])
	}

	opt := DefaultOptions()
	opt.SheetName = "datos"
	if _, err := Load(p, opt); err != nil {
		t.Fatalf("load by sheet name: %v", err)
	}
	opt.SheetName = "Other"
	_, err = Load(p, opt)
	if err == nil || !strings.Contains(err.Error(), "Available sheets: Datos") {
		t.Fatalf("expected sheet-not-found error, got %v", err)
	}
}

func TestLoadXLSXSharedStrings(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "shared.xlsx")
	f, err := os.Create(p)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	zw := zip.NewWriter(f)
	parts := map[string]string{
		"xl/workbook.xml":            `<workbook xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><sheets><sheet name="S" sheetId="1" r:id="rId7"/></sheets></workbook>`,
		"xl/_rels/workbook.xml.rels": `<Relationships><Relationship Id="rId7" Target="worksheets/data.xml"/></Relationships>`,
		"xl/sharedStrings.xml":       `<sst><si><t>X</t></si><si><r><t>Y</t></r></si></sst>`,
		"xl/worksheets/data.xml":     `<worksheet><sheetData><row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1" t="s"><v>1</v></c></row><row r="2"><c r="A2"><v>4</v></c><c r="B2"><v>16</v></c></row><row r="3"><c r="B3"><v>9</v></c></row></sheetData></worksheet>`,
	}
	for name, body := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create: %v", err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("zip write: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	f.Close()

	tab, err := Load(p, DefaultOptions())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tab.Len() != 1 || tab.Points[0].X != 4 || tab.Points[0].Y != 16 {
		t.Fatalf("points: %+v", tab.Points)
	}
	if tab.Dropped != 1 {
		t.Fatalf("expected row with empty x dropped, got %d", tab.Dropped)
	}
}

func TestWriteXLSXRoundTrip(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "out", "template.xlsx")
	pts := []Point{{X: 1, Y: 1}, {X: 2, Y: 4}, {X: 3, Y: 9}}
	if err := WriteXLSX(p, "x", "y", pts); err != nil {
		t.Fatalf("write: %v", err)
	}
	tab, err := Load(p, DefaultOptions())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tab.Len() != 3 || tab.Points[2].Y != 9 {
		t.Fatalf("points: %+v", tab.Points)
	}
}

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		in   string
		opt  Options
		want float64
		ok   bool
	}{
		{"3.5", Options{}, 3.5, true},
		{"3,5", Options{}, 3.5, true},
		{"1.234,5", Options{}, 1234.5, true},
		{"1,234.5", Options{}, 1234.5, true},
		{" 1e-3 ", Options{}, 0.001, true},
		{"1,000", Options{DecimalSeparator: '.', ThousandsSeparator: ','}, 1000, true},
		{"", Options{}, 0, false},
		{"NaN", Options{}, 0, false},
		{"Inf", Options{}, 0, false},
		{"n/a", Options{}, 0, false},
	}
	for _, tt := range tests {
		got, ok := parseNumeric(tt.in, tt.opt)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("parseNumeric(%q) = %v,%v want %v,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRefHelpers(t *testing.T) {
	if got := colIndexFromRef("C12"); got != 2 {
		t.Fatalf("C12 -> %d", got)
	}
	if got := colIndexFromRef("AA3"); got != 26 {
		t.Fatalf("AA3 -> %d", got)
	}
	if colName(0) != "A" || colName(25) != "Z" || colName(26) != "AA" {
		t.Fatalf("colName mismatch")
	}
	tests := []struct{ in, want string }{
		{"/xl/worksheets/sheet1.xml", "xl/worksheets/sheet1.xml"},
		{"worksheets/sheet1.xml", "xl/worksheets/sheet1.xml"},
		{"/worksheets/sheet1.xml", "xl/worksheets/sheet1.xml"},
	}
	for _, tt := range tests {
		if got := normalizeRelPath(tt.in); got != tt.want {
			t.Errorf("normalizeRelPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDiscover(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	docs := filepath.Join(home, "Documentos")
	if err := os.MkdirAll(docs, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	extra := t.TempDir()

	_, checked, err := Discover("muestras", []string{extra})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(checked) == 0 || !strings.HasPrefix(checked[0], extra) {
		t.Fatalf("search dirs must be checked first: %v", checked)
	}

	want := writeFile(t, docs, "muestras.csv", "x,y\n1,1\n")
	got, _, err := Discover("muestras", []string{extra})
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if got != want {
		t.Fatalf("got %s want %s", got, want)
	}

	named := Candidates("file.xlsx", nil)
	for _, c := range named {
		if !strings.HasSuffix(c, "file.xlsx") {
			t.Fatalf("explicit extension must be kept: %s", c)
		}
	}
	if !IsDataFile("a.TSV") || IsDataFile("a.json") {
		t.Fatalf("IsDataFile mismatch")
	}
}
