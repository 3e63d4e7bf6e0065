package document

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// MaxDepth caps container nesting. Documents ship with firmware images
// and are small; anything deeper than this is adversarial input.
const MaxDepth = 32

// line is one significant input line after comment stripping and
// trimming.
type line struct {
	num        int
	indent     int
	isSequence bool
	hasColon   bool
	key        string
	value      string
}

// frame is one open container on the parse stack, tagged with the
// indent column it was opened at.
type frame struct {
	node   *Node
	indent int
}

// Parse turns markup text into a document tree rooted at a mapping.
// The input is NFC-normalized first so visually identical documents
// produce structurally equal trees.
func Parse(text string) (*Node, error) {
	text = norm.NFC.String(text)

	root := &Node{kind: KindMapping}
	stack := make([]frame, 1, MaxDepth)
	stack[0] = frame{node: root, indent: -1}

	rawLines := strings.Split(text, "\n")
	for i, raw := range rawLines {
		ln, ok, err := scanLine(strings.TrimSuffix(raw, "\r"), i+1)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		for len(stack) > 0 && ln.indent <= stack[len(stack)-1].indent {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			return nil, &SyntaxError{Line: ln.num, Code: CodeBadIndent, Message: "line dedented past document root"}
		}

		if ln.isSequence {
			stack, err = appendSequenceEntry(ln, stack)
		} else {
			stack, err = appendMappingEntry(ln, stack)
		}
		if err != nil {
			return nil, err
		}
	}

	return root, nil
}

// scanLine splits a raw line into indent, sequence marker, key, and
// value. ok is false for blank and comment-only lines.
func scanLine(raw string, num int) (line, bool, error) {
	indent := 0
	for indent < len(raw) {
		switch raw[indent] {
		case ' ':
			indent++
			continue
		case '\t':
			return line{}, false, &SyntaxError{Line: num, Code: CodeTabIndent, Message: "tabs are not allowed in indentation"}
		}
		break
	}
	content := stripComment(raw[indent:])
	content = trimScalar(content)
	if content == "" {
		return line{}, false, nil
	}

	ln := line{num: num, indent: indent}
	payload := content
	if payload[0] == '-' && (len(payload) == 1 || payload[1] == ' ' || payload[1] == '\t') {
		ln.isSequence = true
		payload = strings.TrimLeft(payload[1:], " \t")
	}

	if colon := unquotedColon(payload); colon >= 0 {
		ln.hasColon = true
		ln.key = trimScalar(payload[:colon])
		ln.value = trimScalar(payload[colon+1:])
	} else {
		if !ln.isSequence {
			return line{}, false, &SyntaxError{Line: num, Code: CodeMissingSeparator, Message: fmt.Sprintf("expected 'key: value' in %q", payload)}
		}
		ln.value = trimScalar(payload)
	}
	return ln, true, nil
}

// appendSequenceEntry attaches a '-' line to the open container,
// fixing the container as a sequence.
func appendSequenceEntry(ln line, stack []frame) ([]frame, error) {
	parent := stack[len(stack)-1].node
	if parent.kind == KindUnset {
		parent.kind = KindSequence
	}
	if parent.kind != KindSequence {
		return stack, &SyntaxError{Line: ln.num, Code: CodeMixedContainer, Message: "sequence entry under a mapping parent"}
	}

	entry := &Node{}
	parent.append(entry)

	if ln.hasColon {
		// '- key: value' opens an inline mapping whose further entries
		// indent under the dash.
		entry.kind = KindMapping
		child := &Node{key: ln.key}
		if ln.value != "" {
			child.kind = KindScalar
			child.scalar = ln.value
		}
		entry.append(child)
		return push(stack, entry, ln)
	}
	if ln.value != "" {
		entry.kind = KindScalar
		entry.scalar = ln.value
		return stack, nil
	}
	return push(stack, entry, ln)
}

// appendMappingEntry attaches a 'key: value' line to the open
// container, fixing the container as a mapping.
func appendMappingEntry(ln line, stack []frame) ([]frame, error) {
	parent := stack[len(stack)-1].node
	if parent.kind == KindUnset {
		parent.kind = KindMapping
	}
	if parent.kind != KindMapping {
		return stack, &SyntaxError{Line: ln.num, Code: CodeMixedContainer, Message: "mapping entry under a sequence parent"}
	}

	node := &Node{key: ln.key}
	if ln.value != "" {
		node.kind = KindScalar
		node.scalar = ln.value
	}
	parent.append(node)

	if node.kind != KindScalar {
		return push(stack, node, ln)
	}
	return stack, nil
}

func push(stack []frame, node *Node, ln line) ([]frame, error) {
	if len(stack) >= MaxDepth {
		return stack, &SyntaxError{Line: ln.num, Code: CodeTooDeep, Message: fmt.Sprintf("nesting exceeds %d levels", MaxDepth)}
	}
	return append(stack, frame{node: node, indent: ln.indent}), nil
}

// stripComment removes a trailing '#' comment, honoring single and
// double quotes so '#' inside a quoted scalar survives.
func stripComment(s string) string {
	inQuote := false
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case (c == '"' || c == '\'') && (i == 0 || s[i-1] != '\\'):
			if inQuote && c == quote {
				inQuote = false
			} else if !inQuote {
				inQuote = true
				quote = c
			}
		case c == '#' && !inQuote:
			return s[:i]
		}
	}
	return s
}

// unquotedColon returns the index of the first ':' outside quotes, or
// -1.
func unquotedColon(s string) int {
	inQuote := false
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case (c == '"' || c == '\'') && (i == 0 || s[i-1] != '\\'):
			if inQuote && c == quote {
				inQuote = false
			} else if !inQuote {
				inQuote = true
				quote = c
			}
		case c == ':' && !inQuote:
			return i
		}
	}
	return -1
}

// trimScalar trims surrounding whitespace and then one matching pair
// of surrounding quotes.
func trimScalar(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			s = s[1 : len(s)-1]
		}
	}
	return s
}
