package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when no candidate data file exists.
var ErrNotFound = errors.New("data file not found")

var discoverExts = []string{".xlsx", ".csv", ".tsv"}

// Candidates lists, in lookup order, the paths Discover checks for name. dirs are
// searched first, then the working directory and the usual home folders
// (Documents/Documentos, Desktop/Escritorio). A name that already carries an
// extension is looked up as-is.
func Candidates(name string, dirs []string) []string {
	if name == "" {
		name = "datos"
	}
	exts := discoverExts
	if filepath.Ext(name) != "" {
		exts = []string{""}
	}
	roots := append([]string{}, dirs...)
	roots = append(roots, ".")
	if home, err := os.UserHomeDir(); err == nil {
		for _, sub := range []string{"Documents", "Documentos", "Desktop", "Escritorio"} {
			roots = append(roots, filepath.Join(home, sub))
		}
	}
	var out []string
	seen := map[string]struct{}{}
	for _, root := range roots {
		for _, ext := range exts {
			p := filepath.Join(root, name+ext)
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}

// Discover returns the first existing candidate for name. On failure it returns
// ErrNotFound together with every path it checked.
func Discover(name string, dirs []string) (string, []string, error) {
	checked := Candidates(name, dirs)
	for _, p := range checked {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, checked, nil
		}
	}
	return "", checked, ErrNotFound
}

// SuggestedDir is where the tool recommends placing the data file.
func SuggestedDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Documents")
}

// IsDataFile reports whether path has an extension Load understands.
func IsDataFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".csv", ".tsv", ".txt":
		return true
	}
	return false
}
