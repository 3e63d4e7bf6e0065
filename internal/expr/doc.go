// Package expr implements the template expression language embedded in
// yamui documents.
//
// Expressions appear inside {{ }} placeholders and support arithmetic,
// comparison, boolean logic, string concatenation, null coalescing, and
// the ternary conditional. The grammar is deliberately small and total:
// there are no function calls, no assignment, no loops. Identifiers are
// resolved through a caller-supplied Resolver; an identifier the
// resolver cannot answer evaluates to the empty string so a stale or
// misspelled binding degrades the rendered text instead of failing the
// screen.
//
// Precedence, innermost to outermost:
//
//	primary  →  ! -  →  * /  →  + -  →  > >= < <=  →  == !=
//	         →  &&  →  ||  →  ??  →  ?:
//
// Evaluation is single pass: the recursive-descent parser computes
// values as it consumes tokens. && and || short-circuit, ?? skips its
// right side when the left is present, and ?: evaluates only the taken
// branch; untaken branches are still parsed so syntax errors never
// depend on state.
//
// Any lexical or grammar error aborts the whole expression. There are
// no partial results.
package expr
