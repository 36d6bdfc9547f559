package matches

import (
	"fmt"
	"strconv"
	"strings"
)

// parseScore converts a score cell into a non-negative goal count.
// Whole-number floats ("3.0") are accepted since spreadsheet exports
// produce them.
func parseScore(s string) (int, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidScore)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		f, ferr := strconv.ParseFloat(v, 64)
		if ferr != nil {
			return 0, fmt.Errorf("%w: cannot convert %q to integer", ErrInvalidScore, s)
		}
		if f != float64(int(f)) {
			return 0, fmt.Errorf("%w: %q is not a whole number", ErrInvalidScore, s)
		}
		n = int(f)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %d is negative", ErrInvalidScore, n)
	}
	return n, nil
}

// parseFlag understands the boolean spellings found in CSV exports
func parseFlag(s string) (bool, error) {
	v := strings.TrimSpace(s)
	switch strings.ToLower(v) {
	case "yes", "y":
		return true, nil
	case "no", "n":
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%w: %q", ErrInvalidFlag, s)
	}
	return b, nil
}
