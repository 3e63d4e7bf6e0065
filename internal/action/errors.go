package action

import (
	"errors"
	"fmt"
)

// ParseCode classifies action parse failures.
type ParseCode string

const (
	// CodeEmptyAction marks an action with no text.
	CodeEmptyAction ParseCode = "EMPTY_ACTION"
	// CodeUnknownVerb marks an unrecognized verb name.
	CodeUnknownVerb ParseCode = "UNKNOWN_VERB"
	// CodeBadNode marks an action list node that is neither a scalar
	// nor a sequence of scalars.
	CodeBadNode ParseCode = "BAD_NODE"
)

// ParseError reports a malformed action.
type ParseError struct {
	Code ParseCode
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("action: %s: %q", e.Code, e.Text)
}

// IsParseError reports whether err is a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// InvalidArgumentError reports an action whose arguments cannot be
// dispatched, either missing outright or resolved to an empty string
// where a name is required.
type InvalidArgumentError struct {
	Verb   Verb
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("action %s: %s", e.Verb.String(), e.Reason)
}

// IsInvalidArgument reports whether err is an *InvalidArgumentError.
func IsInvalidArgument(err error) bool {
	var ie *InvalidArgumentError
	return errors.As(err, &ie)
}

// NotSupportedError reports a runtime capability the host does not
// provide.
type NotSupportedError struct {
	Capability string
}

func (e *NotSupportedError) Error() string {
	return fmt.Sprintf("action: host does not support %s", e.Capability)
}
