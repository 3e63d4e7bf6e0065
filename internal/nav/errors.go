package nav

import (
	"errors"
	"fmt"
)

// InvalidStateError reports a render lifecycle call made in the wrong
// state, such as BeginRender while already rendering.
type InvalidStateError struct {
	Op string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("nav: %s called in invalid state", e.Op)
}

// IsInvalidState reports whether err is an *InvalidStateError.
func IsInvalidState(err error) bool {
	var ise *InvalidStateError
	return errors.As(err, &ise)
}
