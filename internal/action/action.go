// Package action implements the declarative command syntax bound to UI
// events.
//
// An action is a verb with up to three arguments — "set(count, 0)",
// "push(settings)", "pop" — written as a scalar, or several of them as
// a sequence. Arguments wrapped in {{ }} are not evaluated at parse
// time: they are kept verbatim and evaluated when the action is
// dispatched, against whatever state and scope exist at that moment.
package action

import (
	"log/slog"
	"strings"

	"github.com/roach88/yamui/internal/document"
)

// Verb identifies what an action does.
type Verb int

const (
	// VerbSet writes a state key.
	VerbSet Verb = iota
	// VerbGoto replaces the current screen.
	VerbGoto
	// VerbPush pushes a screen onto the navigation stack.
	VerbPush
	// VerbPop pops the navigation stack.
	VerbPop
	// VerbModal shows a component as a modal overlay.
	VerbModal
	// VerbCloseModal closes the topmost modal.
	VerbCloseModal
	// VerbCall invokes a host-registered native function.
	VerbCall
	// VerbEmit emits a named event to host listeners.
	VerbEmit
)

var verbNames = map[string]Verb{
	"set":         VerbSet,
	"goto":        VerbGoto,
	"push":        VerbPush,
	"pop":         VerbPop,
	"modal":       VerbModal,
	"close_modal": VerbCloseModal,
	"call":        VerbCall,
	"emit":        VerbEmit,
}

// String returns the verb's document spelling.
func (v Verb) String() string {
	for name, verb := range verbNames {
		if verb == v {
			return name
		}
	}
	return "unknown"
}

// VerbFromName matches a verb name case-insensitively.
func VerbFromName(name string) (Verb, bool) {
	v, ok := verbNames[strings.ToLower(name)]
	return v, ok
}

// MaxArgs is the argument limit per action. Extra arguments are logged
// and dropped, not rejected.
const MaxArgs = 3

// Action is one parsed command. Args hold literal text or verbatim
// {{ }} templates, already trimmed and quote-stripped.
type Action struct {
	Verb Verb
	Args []string
}

// Arg returns the i-th argument or "" when absent.
func (a Action) Arg(i int) string {
	if i < 0 || i >= len(a.Args) {
		return ""
	}
	return a.Args[i]
}

// Parse parses "verb" or "verb(arg0, arg1, arg2)" action text.
func Parse(text string) (Action, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Action{}, &ParseError{Code: CodeEmptyAction, Text: text}
	}

	name := trimmed
	argBlock := ""
	if open := strings.IndexByte(trimmed, '('); open >= 0 {
		name = strings.TrimSpace(trimmed[:open])
		argBlock = trimmed[open+1:]
		if close := strings.LastIndexByte(argBlock, ')'); close >= 0 {
			argBlock = argBlock[:close]
		}
	}

	verb, ok := VerbFromName(name)
	if !ok {
		return Action{}, &ParseError{Code: CodeUnknownVerb, Text: name}
	}
	return Action{Verb: verb, Args: splitArgs(argBlock)}, nil
}

// splitArgs splits an argument block on commas that sit outside quotes
// and outside {{ }} placeholders, trimming and quote-stripping each
// piece. Arguments beyond MaxArgs are logged and dropped.
func splitArgs(block string) []string {
	if strings.TrimSpace(block) == "" {
		return nil
	}

	var args []string
	inQuote := false
	var quote byte
	braceDepth := 0
	start := 0
	warned := false

	emit := func(raw string) {
		piece := cleanArg(raw)
		if piece == "" {
			return
		}
		if len(args) < MaxArgs {
			args = append(args, piece)
		} else if !warned {
			slog.Warn("dropping extra action argument", "arg", piece)
			warned = true
		}
	}

	for i := 0; i < len(block); i++ {
		c := block[i]
		switch {
		case (c == '"' || c == '\'') && (i == 0 || block[i-1] != '\\'):
			if inQuote && quote == c {
				inQuote = false
			} else if !inQuote {
				inQuote = true
				quote = c
			}
		case inQuote:
		case c == '{' && i+1 < len(block) && block[i+1] == '{':
			braceDepth++
		case c == '}' && i+1 < len(block) && block[i+1] == '}' && braceDepth > 0:
			braceDepth--
		case c == ',' && braceDepth == 0:
			emit(block[start:i])
			start = i + 1
		}
	}
	emit(block[start:])
	return args
}

// cleanArg trims whitespace and one matching pair of surrounding
// quotes.
func cleanArg(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			s = s[1 : len(s)-1]
		}
	}
	return s
}

// ListFromNode parses an action list out of a document node: a scalar
// is a single action, a sequence of scalars is a list. A nil node is
// an empty list.
func ListFromNode(node *document.Node) ([]Action, error) {
	if node == nil {
		return nil, nil
	}
	switch node.Kind() {
	case document.KindScalar:
		a, err := Parse(node.Scalar())
		if err != nil {
			return nil, err
		}
		return []Action{a}, nil
	case document.KindSequence:
		actions := make([]Action, 0, node.Len())
		for child := node.ChildAt(0); child != nil; child = child.Next() {
			if child.Kind() != document.KindScalar {
				return nil, &ParseError{Code: CodeBadNode, Text: child.Kind().String()}
			}
			a, err := Parse(child.Scalar())
			if err != nil {
				return nil, err
			}
			actions = append(actions, a)
		}
		return actions, nil
	default:
		return nil, &ParseError{Code: CodeBadNode, Text: node.Kind().String()}
	}
}
