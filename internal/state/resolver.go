package state

import "github.com/roach88/yamui/internal/expr"

// Resolver adapts the store to the expression engine: identifiers are
// state keys, present keys resolve to their string value.
func (s *Store) Resolver() expr.Resolver {
	return expr.ResolverFunc(func(name string) (expr.Value, bool) {
		v, ok := s.Lookup(name)
		if !ok {
			return expr.Null(), false
		}
		return expr.String(v), true
	})
}
