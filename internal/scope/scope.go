// Package scope implements the chained prop-lookup context created for
// each component instantiation.
//
// A scope maps a component's prop names to the template strings the
// instantiating node supplied for them. Resolution walks the scope
// chain child-first, so a child prop shadows a parent prop of the same
// name, and falls back to the global state store for anything no scope
// answers.
//
// Scopes are shared by every widget rendered under the instantiation,
// so lifetime is managed with an explicit Retain/Release pair instead
// of a raw reference-count field; releasing the last reference
// releases the parent link. Scopes are mutated only on the UI
// goroutine and are not internally synchronized.
package scope

import (
	"github.com/roach88/yamui/internal/document"
	"github.com/roach88/yamui/internal/expr"
	"github.com/roach88/yamui/internal/state"
)

// Prop is one named slot of a scope: the template the instantiation
// supplied, the most recently resolved text, and the state keys the
// template depends on, discovered once at scope creation.
type Prop struct {
	name     string
	template string
	resolved string
	deps     []string
}

// Name returns the prop's name.
func (p *Prop) Name() string { return p.name }

// Template returns the raw template string.
func (p *Prop) Template() string { return p.template }

// Dependencies returns the state keys the template references.
func (p *Prop) Dependencies() []string { return p.deps }

// Resolved returns the most recently resolved text without
// re-evaluating the template. Empty before the first ResolveProp.
// Render backends read this between resolutions so unchanged props
// skip widget updates.
func (p *Prop) Resolved() string { return p.resolved }

// Scope is one link of a prop-lookup chain.
type Scope struct {
	parent *Scope
	props  []Prop
	refs   int
}

// New creates a scope holding one prop per name in propNames, with
// templates taken from the matching scalar children of instance (a
// missing or non-scalar child yields an empty template). The new
// scope retains parent and starts with one reference owned by the
// caller.
func New(parent *Scope, propNames []string, instance *document.Node) *Scope {
	s := &Scope{parent: parent, refs: 1}
	parent.Retain()
	if len(propNames) > 0 {
		s.props = make([]Prop, 0, len(propNames))
		for _, name := range propNames {
			if name == "" {
				continue
			}
			tmpl := instance.ChildScalar(name, "")
			s.props = append(s.props, Prop{
				name:     name,
				template: tmpl,
				deps:     expr.CollectBindings(tmpl),
			})
		}
	}
	return s
}

// Retain adds a reference. Nil-safe.
func (s *Scope) Retain() {
	if s != nil {
		s.refs++
	}
}

// Release drops a reference. At zero the scope releases its parent and
// its prop table; further use is a programming error. Nil-safe.
func (s *Scope) Release() {
	if s == nil || s.refs == 0 {
		return
	}
	s.refs--
	if s.refs > 0 {
		return
	}
	s.parent.Release()
	s.parent = nil
	s.props = nil
}

// Parent returns the enclosing scope, or nil.
func (s *Scope) Parent() *Scope {
	if s == nil {
		return nil
	}
	return s.parent
}

// find returns the first prop named name walking the chain child
// first, along with the scope that owns it.
func (s *Scope) find(name string) (*Prop, *Scope) {
	for cursor := s; cursor != nil; cursor = cursor.parent {
		for i := range cursor.props {
			if cursor.props[i].name == name {
				return &cursor.props[i], cursor
			}
		}
	}
	return nil, nil
}

// ResolveProp evaluates the template of the prop named name against
// the owning scope's parent (the scope the instantiating document node
// lived in) with fallback to store, caches the result, and returns it.
// A prop with an empty template answers from the cache without
// evaluating. ok is false when no scope in the chain defines the prop.
func (s *Scope) ResolveProp(name string, store *state.Store) (string, bool) {
	prop, owner := s.find(name)
	if prop == nil {
		return "", false
	}
	if prop.template == "" {
		return prop.resolved, true
	}
	prop.resolved = expr.Format(prop.template, owner.parent.Resolver(store))
	return prop.resolved, true
}

// Prop returns the prop named name, walking the chain child first, or
// nil when no scope defines it.
func (s *Scope) Prop(name string) *Prop {
	prop, _ := s.find(name)
	return prop
}

// Resolver adapts the scope chain to the expression engine: prop names
// win over state keys, and everything else falls through to store.
func (s *Scope) Resolver(store *state.Store) expr.Resolver {
	return expr.ResolverFunc(func(name string) (expr.Value, bool) {
		if v, ok := s.ResolveProp(name, store); ok {
			return expr.String(v), true
		}
		if store != nil {
			if v, ok := store.Lookup(name); ok {
				return expr.String(v), true
			}
		}
		return expr.Null(), false
	})
}

// Dependencies returns the union of the state keys this scope's own
// props depend on, deduplicated in prop order. Parent scopes register
// their own watches, so the chain is not walked.
func (s *Scope) Dependencies() []string {
	if s == nil || len(s.props) == 0 {
		return nil
	}
	seen := make(map[string]struct{})
	var deps []string
	for i := range s.props {
		for _, d := range s.props[i].deps {
			if _, dup := seen[d]; dup {
				continue
			}
			seen[d] = struct{}{}
			deps = append(deps, d)
		}
	}
	return deps
}
