package htmldom

// Query is a lazy, double-ended cursor over the nodes matching a compiled
// selector. Candidates are visited in document order (pre-order,
// depth-first, arena order); NextBack consumes the same remaining window
// from the other end, so draining backwards yields the exact reverse of
// draining forwards. Each Select call returns a fresh cursor holding no
// shared mutable state.
type Query struct {
	tree   *Tree
	sel    *Selector
	ids    []NodeID // explicit candidate list; nil means whole-arena order
	lo, hi int      // remaining half-open window
}

// Select returns a query over every node in the tree. The synthetic root
// node is never a match, even if it would satisfy the selector.
func (t *Tree) Select(sel *Selector) *Query {
	return &Query{tree: t, sel: sel, hi: len(t.nodes)}
}

// Select returns a query over the node and its descendants.
func (n NodeRef) Select(sel *Selector) *Query {
	nodes := n.Descendants()
	ids := make([]NodeID, len(nodes))
	for i, d := range nodes {
		ids[i] = d.id
	}
	return &Query{tree: n.t, sel: sel, ids: ids, hi: len(ids)}
}

func (q *Query) at(i int) NodeID {
	if q.ids != nil {
		return q.ids[i]
	}
	return NodeID(i)
}

// eligible filters out the root: only nodes with an actual parent can
// match.
func (q *Query) eligible(id NodeID) (NodeRef, bool) {
	if q.tree.node(id).parent == none {
		return NodeRef{}, false
	}
	ref := NodeRef{t: q.tree, id: id}
	return ref, q.sel.Matches(ref)
}

// Next returns the next matching node in document order.
func (q *Query) Next() (NodeRef, bool) {
	for q.lo < q.hi {
		id := q.at(q.lo)
		q.lo++
		if ref, ok := q.eligible(id); ok {
			return ref, true
		}
	}
	return NodeRef{}, false
}

// NextBack returns the next matching node in reverse document order,
// consuming the remaining window from the back.
func (q *Query) NextBack() (NodeRef, bool) {
	for q.lo < q.hi {
		q.hi--
		if ref, ok := q.eligible(q.at(q.hi)); ok {
			return ref, true
		}
	}
	return NodeRef{}, false
}

// SizeHint returns bounds on the number of matches remaining. The lower
// bound is always 0 since filtering can eliminate every candidate; the
// upper bound is the unfiltered remaining-candidate count, deliberately an
// overestimate rather than an exact count.
func (q *Query) SizeHint() (lower, upper int) {
	return 0, q.hi - q.lo
}

// All drains the query forward and returns every match in document order.
func (q *Query) All() []NodeRef {
	var out []NodeRef
	for n, ok := q.Next(); ok; n, ok = q.Next() {
		out = append(out, n)
	}
	return out
}

// First returns the first match in document order, if any.
func (q *Query) First() (NodeRef, bool) {
	return q.Next()
}
