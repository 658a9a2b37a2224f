package dataset

import (
	"math"
	"strconv"
	"strings"
)

// parseNumeric parses a spreadsheet cell as a float, honouring locale separators.
// A zero DecimalSeparator auto-detects per value: when both ',' and '.' appear the
// rightmost one is the decimal mark. Empty, NaN and infinite cells are rejected.
func parseNumeric(s string, opt Options) (float64, bool) {
	raw := strings.ReplaceAll(s, "\u00A0", " ")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	dec, thou := opt.DecimalSeparator, opt.ThousandsSeparator
	if dec == 0 {
		cpos := strings.LastIndex(raw, ",")
		dpos := strings.LastIndex(raw, ".")
		switch {
		case cpos >= 0 && dpos >= 0 && cpos > dpos:
			dec, thou = ',', '.'
		case cpos >= 0 && dpos >= 0:
			dec, thou = '.', ','
		case cpos >= 0:
			dec = ','
		default:
			dec = '.'
		}
	}
	if thou == 0 {
		for _, sep := range []rune{',', '.', ' '} {
			if sep != dec {
				raw = strings.ReplaceAll(raw, string(sep), "")
			}
		}
	} else if thou != dec {
		raw = strings.ReplaceAll(raw, string(thou), "")
	}
	if dec != '.' {
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func looksNumeric(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}
