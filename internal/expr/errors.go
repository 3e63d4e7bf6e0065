package expr

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes expression errors.
type ErrorCode string

const (
	// CodeInvalidSyntax indicates a lexical or grammar violation.
	CodeInvalidSyntax ErrorCode = "INVALID_SYNTAX"

	// CodeDivideByZero indicates division by zero during evaluation.
	CodeDivideByZero ErrorCode = "DIVIDE_BY_ZERO"
)

// Error describes why an expression failed. Pos is the byte offset in
// the expression text where the failure was detected.
type Error struct {
	Code    ErrorCode
	Pos     int
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", e.Code, e.Pos, e.Message)
}

// IsSyntaxError reports whether err is an expression syntax error.
func IsSyntaxError(err error) bool {
	var ee *Error
	if errors.As(err, &ee) {
		return ee.Code == CodeInvalidSyntax
	}
	return false
}
