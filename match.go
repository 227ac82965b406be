package htmldom

import "strings"

// Matches reports whether the selector matches the given node in its tree
// context. Evaluation is total: it returns a boolean for any node, with no
// failure mode. Compound selectors are tested right-to-left with
// short-circuiting, walking up or sideways through the tree per combinator.
func (s *Selector) Matches(n NodeRef) bool {
	if n.t == nil || !n.IsElement() {
		return false
	}
	for i := range s.groups {
		if s.groups[i].matches(n) {
			return true
		}
	}
	return false
}

func (cs *complexSelector) matches(n NodeRef) bool {
	return cs.matchFrom(len(cs.compounds)-1, n)
}

// matchFrom tests compounds[i] against n, then recurses leftward through
// the combinator joining it to compounds[i-1]. Descendant and
// general-sibling combinators backtrack over all candidates.
func (cs *complexSelector) matchFrom(i int, n NodeRef) bool {
	if !cs.compounds[i].matches(n) {
		return false
	}
	if i == 0 {
		return true
	}
	switch cs.combinators[i-1] {
	case combChild:
		p, ok := n.Parent()
		return ok && cs.matchFrom(i-1, p)
	case combDescendant:
		for p, ok := n.Parent(); ok; p, ok = p.Parent() {
			if cs.matchFrom(i-1, p) {
				return true
			}
		}
		return false
	case combAdjacent:
		prev, ok := prevElementSibling(n)
		return ok && cs.matchFrom(i-1, prev)
	case combGeneral:
		for prev, ok := prevElementSibling(n); ok; prev, ok = prevElementSibling(prev) {
			if cs.matchFrom(i-1, prev) {
				return true
			}
		}
		return false
	}
	return false
}

func (c *compound) matches(n NodeRef) bool {
	e := n.Element()
	if e == nil {
		return false
	}
	if c.tag != "" {
		// Tag names match case-insensitively for HTML-namespace elements.
		if e.IsHTML() {
			if !strings.EqualFold(c.tag, e.Name) {
				return false
			}
		} else if c.tag != e.Name {
			return false
		}
	}
	if c.hasID && e.ID() != c.id {
		return false
	}
	for _, cls := range c.classes {
		if !e.HasClass(cls) {
			return false
		}
	}
	for _, a := range c.attrs {
		v, ok := e.Attr(a.name)
		if !ok {
			return false
		}
		if a.hasValue {
			if a.insensitive {
				if !strings.EqualFold(v, a.value) {
					return false
				}
			} else if v != a.value {
				return false
			}
		}
	}
	for _, ps := range c.pseudos {
		if !ps.matches(n) {
			return false
		}
	}
	return true
}

func (ps pseudoClass) matches(n NodeRef) bool {
	switch ps.kind {
	case pseudoFirstChild:
		_, ok := prevElementSibling(n)
		return !ok
	case pseudoLastChild:
		_, ok := nextElementSibling(n)
		return !ok
	case pseudoNthChild:
		return nthMatches(ps.a, ps.b, elementPosition(n))
	}
	return false
}

// nthMatches reports whether the 1-based position satisfies an+b for some
// n >= 0. a = 0 degenerates to an exact-position test.
func nthMatches(a, b, pos int) bool {
	if a == 0 {
		return pos == b
	}
	if (pos-b)%a != 0 {
		return false
	}
	return (pos-b)/a >= 0
}

// elementPosition returns the 1-based position of n among its element
// siblings.
func elementPosition(n NodeRef) int {
	pos := 1
	for prev, ok := prevElementSibling(n); ok; prev, ok = prevElementSibling(prev) {
		pos++
	}
	return pos
}

func prevElementSibling(n NodeRef) (NodeRef, bool) {
	for s, ok := n.PrevSibling(); ok; s, ok = s.PrevSibling() {
		if s.IsElement() {
			return s, true
		}
	}
	return NodeRef{}, false
}

func nextElementSibling(n NodeRef) (NodeRef, bool) {
	for s, ok := n.NextSibling(); ok; s, ok = s.NextSibling() {
		if s.IsElement() {
			return s, true
		}
	}
	return NodeRef{}, false
}
