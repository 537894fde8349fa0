package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrStoreUnavailable is returned when the price store cannot be reached
	ErrStoreUnavailable = errors.New("price store unavailable")

	// ErrCleanerUnavailable is returned when the name-cleaning service is not configured
	ErrCleanerUnavailable = errors.New("name cleaner not configured")

	// ErrNoUsableMapping is returned when every cleaning attempt produced
	// output that could not be parsed or recovered into a name mapping
	ErrNoUsableMapping = errors.New("no usable name mapping in model output")
)

// ValidationError reports input-sheet problems that must abort the run
// before any external call is made.
type ValidationError struct {
	MissingColumns []string
	Reason         string
}

func (e *ValidationError) Error() string {
	if len(e.MissingColumns) > 0 {
		return fmt.Sprintf("missing required columns: %s. Please check your template",
			strings.Join(e.MissingColumns, ", "))
	}
	return e.Reason
}

// NewMissingColumnsError builds a ValidationError naming the absent columns.
func NewMissingColumnsError(cols []string) *ValidationError {
	return &ValidationError{MissingColumns: cols}
}
