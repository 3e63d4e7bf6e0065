package runtime

import (
	"errors"
	"fmt"
)

// NotFoundError reports a lookup for an unregistered function or
// listener.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("runtime: %s %q not registered", e.Kind, e.Name)
}

// IsNotFound reports whether err is a *NotFoundError.
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}
