package expr

import "strings"

// HasPlaceholder reports whether s contains at least one complete
// {{ }} placeholder.
func HasPlaceholder(s string) bool {
	open := strings.Index(s, "{{")
	if open < 0 {
		return false
	}
	return strings.Contains(s[open+2:], "}}")
}

// Format substitutes every {{ expression }} placeholder in a template
// with its evaluated, stringified result, passing literal text through
// untouched. A placeholder that fails to evaluate renders as empty
// text; rendering never fails. Text after an unterminated '{{' is kept
// literally.
func Format(template string, r Resolver) string {
	if !strings.Contains(template, "{{") {
		return template
	}
	var b strings.Builder
	b.Grow(len(template))
	rest := template
	for {
		open := strings.Index(rest, "{{")
		if open < 0 {
			b.WriteString(rest)
			return b.String()
		}
		close := strings.Index(rest[open+2:], "}}")
		if close < 0 {
			b.WriteString(rest)
			return b.String()
		}
		b.WriteString(rest[:open])
		inner := rest[open+2 : open+2+close]
		if text, err := EvalToString(inner, r); err == nil {
			b.WriteString(text)
		}
		rest = rest[open+2+close+2:]
	}
}

// CollectBindings returns the identifiers referenced by every
// placeholder of a template, deduplicated in first-appearance order.
// Placeholders that fail to lex contribute nothing: they will render
// as empty text and can never change.
func CollectBindings(template string) []string {
	var (
		deps []string
		seen map[string]struct{}
	)
	rest := template
	for {
		open := strings.Index(rest, "{{")
		if open < 0 {
			return deps
		}
		close := strings.Index(rest[open+2:], "}}")
		if close < 0 {
			return deps
		}
		inner := rest[open+2 : open+2+close]
		rest = rest[open+2+close+2:]
		ids, err := CollectIdentifiers(inner)
		if err != nil {
			continue
		}
		for _, id := range ids {
			if seen == nil {
				seen = make(map[string]struct{})
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			deps = append(deps, id)
		}
	}
}
