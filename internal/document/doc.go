// Package document implements the markup parser for yamui UI documents.
//
// The input format is a small indentation-sensitive subset of YAML:
// block mappings, block sequences, scalars, quoting, and comments. No
// anchors, no flow style, no multi-document streams, no implicit typing.
// Scalars are always strings; any interpretation (numbers, booleans,
// template placeholders, action syntax) happens in the layers above.
//
// Parsing is line oriented. Indentation must use spaces; a tab anywhere
// in the leading whitespace rejects the document. A container's kind
// (sequence vs. mapping) is fixed by its first child, and mixing entry
// kinds under one parent is a syntax error. Nesting depth is capped at
// MaxDepth so adversarial input cannot exhaust the container stack.
//
// Parse either returns a complete tree or a *SyntaxError carrying the
// offending line number. There is no partial output: a malformed
// document must fail loudly rather than render an ambiguous UI.
package document
