package state

import (
	"fmt"

	"github.com/roach88/yamui/internal/document"
)

// InvalidSeedError indicates a state seed block that is not a mapping
// of scalar entries.
type InvalidSeedError struct {
	Kind document.Kind
}

// Error implements the error interface.
func (e *InvalidSeedError) Error() string {
	return fmt.Sprintf("state seed block must be a mapping, got %s", e.Kind)
}
