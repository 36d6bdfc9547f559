package matches

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrInvalidScore  = errors.New("invalid score")
	ErrInvalidFlag   = errors.New("invalid neutral flag")
	ErrInvalidRow    = errors.New("invalid row")
	ErrEmptyFile     = errors.New("no match rows")
)

// DataLoadError reports why an input file could not be loaded. Row is the
// 1-based line number in the file (0 when the failure is not tied to a row).
type DataLoadError struct {
	Path   string
	Row    int
	Column string
	Err    error
}

func (e *DataLoadError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "loading %s", e.Path)
	if e.Row > 0 {
		fmt.Fprintf(&b, " line %d", e.Row)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, " column %q", e.Column)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}
