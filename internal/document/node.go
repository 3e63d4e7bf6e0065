package document

// Kind identifies what a Node holds.
type Kind int

const (
	// KindUnset marks a node whose kind has not been fixed yet. A mapping
	// entry with no inline value stays Unset until its first child arrives;
	// an entry that never receives children remains Unset in the final tree.
	KindUnset Kind = iota
	// KindScalar is a string leaf.
	KindScalar
	// KindSequence is an ordered list of children.
	KindSequence
	// KindMapping is an ordered list of keyed children.
	KindMapping
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unset"
	}
}

// Node is one element of a parsed document tree.
//
// Nodes are immutable once Parse returns. Children are kept as a
// sibling-linked list in document order, so iteration needs no index
// bookkeeping:
//
//	for c := n.ChildAt(0); c != nil; c = c.Next() { ... }
type Node struct {
	kind   Kind
	key    string // set for mapping children
	scalar string

	parent     *Node
	next       *Node
	firstChild *Node
	lastChild  *Node
	childCount int
}

// Kind returns the node's kind.
func (n *Node) Kind() Kind {
	if n == nil {
		return KindUnset
	}
	return n.kind
}

// Key returns the mapping key this node was stored under, or "" for
// sequence entries and the root.
func (n *Node) Key() string {
	if n == nil {
		return ""
	}
	return n.key
}

// Scalar returns the node's string value. Non-scalar nodes return "".
func (n *Node) Scalar() string {
	if n == nil || n.kind != KindScalar {
		return ""
	}
	return n.scalar
}

// Parent returns the enclosing container, or nil for the root.
func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

// Next returns the following sibling, or nil.
func (n *Node) Next() *Node {
	if n == nil {
		return nil
	}
	return n.next
}

// Len returns the number of direct children.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	return n.childCount
}

// ChildAt returns the i-th child in document order, or nil when out of
// range.
func (n *Node) ChildAt(i int) *Node {
	if n == nil || i < 0 {
		return nil
	}
	c := n.firstChild
	for c != nil && i > 0 {
		c = c.next
		i--
	}
	return c
}

// Child returns the mapping child stored under key, or nil. Only
// mappings have keyed children.
func (n *Node) Child(key string) *Node {
	if n == nil || n.kind != KindMapping {
		return nil
	}
	for c := n.firstChild; c != nil; c = c.next {
		if c.key == key {
			return c
		}
	}
	return nil
}

// ChildScalar returns the scalar value of the mapping child stored
// under key, or def when the child is absent or not a scalar.
func (n *Node) ChildScalar(key, def string) string {
	c := n.Child(key)
	if c == nil || c.kind != KindScalar {
		return def
	}
	return c.scalar
}

// Walk visits n and every descendant in document order. Returning
// false from fn stops the walk.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for c := n.firstChild; c != nil; c = c.next {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// append links child as the last child of n. Parse-time only.
func (n *Node) append(child *Node) {
	child.parent = n
	child.next = nil
	if n.firstChild == nil {
		n.firstChild = child
	} else {
		n.lastChild.next = child
	}
	n.lastChild = child
	n.childCount++
}
