package htmldom

import "strings"

// NodeID is a stable arena index identifying a node within its Tree.
// IDs are never reused; the root is always ID 0.
type NodeID int

const none NodeID = -1

// node is an arena slot. Links are plain indices, not owning references.
type node struct {
	parent, prev, next, first, last NodeID
	data                            Node
}

// Tree is an arena of nodes with a single Document or Fragment root.
//
// A Tree is populated through the TreeSink contract during one parse pass
// and is read-only afterwards: queries and serialization never mutate it, so
// concurrent readers need no coordination.
type Tree struct {
	nodes  []node
	quirks QuirksMode
	diags  []string
}

// NewDocument creates an empty tree with a Document root.
func NewDocument() *Tree {
	return newTree(KindDocument)
}

// NewFragment creates an empty tree with a Fragment root.
func NewFragment() *Tree {
	return newTree(KindFragment)
}

func newTree(rootKind NodeKind) *Tree {
	t := &Tree{}
	t.alloc(Node{Kind: rootKind})
	return t
}

// alloc appends a detached node to the arena and returns its ID.
func (t *Tree) alloc(data Node) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{
		parent: none, prev: none, next: none, first: none, last: none,
		data: data,
	})
	return id
}

func (t *Tree) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

func (t *Tree) node(id NodeID) *node {
	return &t.nodes[id]
}

// Len returns the number of nodes in the arena, including the root.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Root returns the Document or Fragment root node.
func (t *Tree) Root() NodeRef {
	return NodeRef{t: t, id: 0}
}

// Ref returns a borrow handle for the given arena index.
// Returns ENOTFOUND if the ID is out of range.
func (t *Tree) Ref(id NodeID) (NodeRef, error) {
	if !t.valid(id) {
		return NodeRef{}, Errorf(ENOTFOUND, "node %d not in tree", id)
	}
	return NodeRef{t: t, id: id}, nil
}

// RootElement returns the first element child of the root node. Doctype and
// comment siblings do not block the lookup. Returns ENOTFOUND if the tree
// has no element child at the top level, e.g. an empty fragment.
func (t *Tree) RootElement() (NodeRef, error) {
	for child, ok := t.Root().FirstChild(); ok; child, ok = child.NextSibling() {
		if child.IsElement() {
			return child, nil
		}
	}
	return NodeRef{}, Errorf(ENOTFOUND, "document has no root element")
}

// QuirksMode returns the quirks mode recorded during parsing.
func (t *Tree) QuirksMode() QuirksMode {
	return t.quirks
}

// Diagnostics returns the parse diagnostics in the order they were
// reported. The returned slice is shared; callers must not modify it.
func (t *Tree) Diagnostics() []string {
	return t.diags
}

// NodeRef is a borrow of a single node, valid for the lifetime of its Tree.
// The zero value is invalid; navigation methods report presence with a bool.
type NodeRef struct {
	t  *Tree
	id NodeID
}

// ID returns the node's arena index.
func (n NodeRef) ID() NodeID {
	return n.id
}

// Tree returns the owning tree.
func (n NodeRef) Tree() *Tree {
	return n.t
}

// Node returns the node's tagged payload.
func (n NodeRef) Node() *Node {
	return &n.t.node(n.id).data
}

// Kind returns the node's kind.
func (n NodeRef) Kind() NodeKind {
	return n.Node().Kind
}

// IsElement reports whether the node is an element.
func (n NodeRef) IsElement() bool {
	return n.Kind() == KindElement
}

// Element returns the element payload, or nil for non-element nodes.
func (n NodeRef) Element() *Element {
	return n.Node().Element
}

func (n NodeRef) link(id NodeID) (NodeRef, bool) {
	if id == none {
		return NodeRef{}, false
	}
	return NodeRef{t: n.t, id: id}, true
}

// Parent returns the node's parent, if any. Only the root has none.
func (n NodeRef) Parent() (NodeRef, bool) {
	return n.link(n.t.node(n.id).parent)
}

// FirstChild returns the node's first child, if any.
func (n NodeRef) FirstChild() (NodeRef, bool) {
	return n.link(n.t.node(n.id).first)
}

// LastChild returns the node's last child, if any.
func (n NodeRef) LastChild() (NodeRef, bool) {
	return n.link(n.t.node(n.id).last)
}

// NextSibling returns the node's next sibling, if any.
func (n NodeRef) NextSibling() (NodeRef, bool) {
	return n.link(n.t.node(n.id).next)
}

// PrevSibling returns the node's previous sibling, if any.
func (n NodeRef) PrevSibling() (NodeRef, bool) {
	return n.link(n.t.node(n.id).prev)
}

// Children returns the node's children in document order.
func (n NodeRef) Children() []NodeRef {
	var out []NodeRef
	for c, ok := n.FirstChild(); ok; c, ok = c.NextSibling() {
		out = append(out, c)
	}
	return out
}

// Descendants returns the node and all nodes below it in document order
// (pre-order, depth-first).
func (n NodeRef) Descendants() []NodeRef {
	return n.collect(nil)
}

func (n NodeRef) collect(out []NodeRef) []NodeRef {
	out = append(out, n)
	for c, ok := n.FirstChild(); ok; c, ok = c.NextSibling() {
		out = c.collect(out)
	}
	return out
}

// Text returns the concatenation of all descendant text nodes in document
// order.
func (n NodeRef) Text() string {
	var sb strings.Builder
	n.appendText(&sb)
	return sb.String()
}

func (n NodeRef) appendText(sb *strings.Builder) {
	if n.Kind() == KindText {
		sb.WriteString(n.Node().Data)
		return
	}
	for c, ok := n.FirstChild(); ok; c, ok = c.NextSibling() {
		c.appendText(sb)
	}
}
