package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// SafeWriteFile writes data to a temp file and atomically renames it into place.
func SafeWriteFile(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}

// PrettyJSON marshals a value as indented JSON.
func PrettyJSON(v any) ([]byte, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	return b, nil
}

// UniquePath returns dir/base+ext, or dir/base__N+ext with the smallest N >= 2 that
// does not exist yet. Stat failures other than not-exist are returned.
func UniquePath(dir, base, ext string) (string, error) {
	for idx := 1; ; idx++ {
		cand := filepath.Join(dir, base+ext)
		if idx > 1 {
			cand = filepath.Join(dir, fmt.Sprintf("%s__%d%s", base, idx, ext))
		}
		_, err := os.Stat(cand)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return cand, nil
		case err != nil:
			return "", fmt.Errorf("check %s: %w", cand, err)
		}
	}
}

// SafeBase strips the extension from a file name and keeps only [a-z0-9-_].
func SafeBase(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	var b strings.Builder
	for _, r := range strings.ToLower(base) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '.':
			b.WriteRune('-')
		}
	}
	s := strings.Trim(b.String(), "-")
	if s == "" {
		return "data"
	}
	return s
}
