package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// readCSV returns all records of a delimited file. A zero delim sniffs the first line.
func readCSV(path string, delim rune) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	br := bufio.NewReader(f)
	if delim == 0 {
		delim = sniffDelimiter(path, br)
	}
	r := csv.NewReader(br)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comma = delim
	var rows [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, rec)
	}
}

// sniffDelimiter picks tab for .tsv files, otherwise the most frequent of ',', ';' and
// tab in the header line. Semicolons are common where ',' is the decimal mark.
func sniffDelimiter(path string, br *bufio.Reader) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	line, _ := br.Peek(4 << 10)
	if i := strings.IndexByte(string(line), '\n'); i >= 0 {
		line = line[:i]
	}
	best, bestN := ',', 0
	for _, c := range []rune{',', ';', '\t'} {
		if n := strings.Count(string(line), string(c)); n > bestN {
			best, bestN = c, n
		}
	}
	return best
}
