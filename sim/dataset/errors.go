package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// Dataset-level failures. Any of these aborts a run before simulation.
var (
	ErrDataSourceNotFound = errors.New("section data source not found")
	ErrDataSourceRead     = errors.New("cannot read section data source")
	ErrEmptyDataset       = errors.New("no valid sections in data source")
)

// MissingFieldError reports required columns that are absent or empty in a row.
type MissingFieldError struct {
	Fields []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field(s): %s", strings.Join(e.Fields, ", "))
}

// UnknownDaySymbolError reports a day character that was dropped from a section.
// It is a warning: the row is still loaded.
type UnknownDaySymbolError struct {
	Symbol rune
}

func (e *UnknownDaySymbolError) Error() string {
	return fmt.Sprintf("unexpected day character %q dropped", e.Symbol)
}
