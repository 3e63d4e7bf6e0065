package schema

import (
	"errors"
	"fmt"
)

// LoadCode classifies schema load failures.
type LoadCode string

const (
	// CodeBadRoot marks a document whose root is not a mapping.
	CodeBadRoot LoadCode = "BAD_ROOT"
	// CodeMissingApp marks a document without an app block.
	CodeMissingApp LoadCode = "MISSING_APP"
	// CodeMissingInitialScreen marks an app block without
	// initial_screen.
	CodeMissingInitialScreen LoadCode = "MISSING_INITIAL_SCREEN"
	// CodeNoScreens marks a document without screens.
	CodeNoScreens LoadCode = "NO_SCREENS"
	// CodeUnknownScreen marks an initial_screen that no screen
	// defines.
	CodeUnknownScreen LoadCode = "UNKNOWN_SCREEN"
	// CodeBadProps marks a component props entry that is not a
	// sequence.
	CodeBadProps LoadCode = "BAD_PROPS"
)

// LoadError reports a structurally invalid UI document.
type LoadError struct {
	Code   LoadCode
	Detail string
}

func (e *LoadError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("schema: %s", e.Code)
	}
	return fmt.Sprintf("schema: %s: %s", e.Code, e.Detail)
}

// IsLoadError reports whether err is a *LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}
