package document

import (
	"errors"
	"fmt"
)

// SyntaxCode categorizes document syntax errors.
type SyntaxCode string

const (
	// CodeTabIndent indicates a tab in the leading whitespace of a line.
	CodeTabIndent SyntaxCode = "TAB_INDENT"

	// CodeMissingSeparator indicates a non-sequence line with no ':'.
	CodeMissingSeparator SyntaxCode = "MISSING_SEPARATOR"

	// CodeMixedContainer indicates sequence and mapping entries under the
	// same parent.
	CodeMixedContainer SyntaxCode = "MIXED_CONTAINER"

	// CodeTooDeep indicates nesting beyond MaxDepth.
	CodeTooDeep SyntaxCode = "TOO_DEEP"

	// CodeBadIndent indicates a line dedented past the document root.
	CodeBadIndent SyntaxCode = "BAD_INDENT"
)

// SyntaxError describes why a document failed to parse. Line is
// 1-based and refers to the raw input, counting blank and comment
// lines.
type SyntaxError struct {
	Line    int
	Code    SyntaxCode
	Message string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s: %s", e.Line, e.Code, e.Message)
}

// IsSyntaxError reports whether err is (or wraps) a *SyntaxError.
func IsSyntaxError(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se)
}
