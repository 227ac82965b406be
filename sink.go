package htmldom

import "io"

// TreeSink is the construction contract between an external HTML5
// tokenizer/parser and a Tree. It is the only ingestion path: the driver
// invokes these operations in document order during a single parse pass,
// and no operation ever aborts on malformed markup. Handle misuse (an ID
// that was never allocated) is a programming error and is reported as
// EINTERNAL rather than a panic.
type TreeSink interface {
	// Document returns the handle of the root node.
	Document() NodeID

	// SetQuirksMode records the document's quirks mode. The external
	// parser may legitimately revise its decision while scanning the
	// doctype, so the last call wins.
	SetQuirksMode(mode QuirksMode)

	// CreateElement allocates a detached element node.
	CreateElement(name, namespace string, attrs []Attribute) NodeID

	// AppendChild attaches child as the last child of parent, detaching
	// it first if it is already attached elsewhere.
	AppendChild(parent, child NodeID) error

	// AppendText attaches text as the last child of parent. If the
	// current last child is already a text node the new text is
	// coalesced into it instead of creating a sibling.
	AppendText(parent NodeID, text string) error

	// AppendComment attaches a comment node as the last child of parent.
	AppendComment(parent NodeID, text string) error

	// AppendProcessingInstruction attaches a processing-instruction node
	// as the last child of parent.
	AppendProcessingInstruction(parent NodeID, target, data string) error

	// AppendBeforeSibling inserts node immediately before sibling under
	// the same parent. Used for re-parenting fix-ups mandated by the
	// construction algorithm, such as foster-parented table content.
	AppendBeforeSibling(sibling, node NodeID) error

	// AppendDoctype attaches a doctype node to the document root.
	AppendDoctype(name, publicID, systemID string)

	// ParseError records a diagnostic. It never aborts construction.
	ParseError(msg string)

	// SameNode reports whether two handles identify the same node.
	SameNode(a, b NodeID) bool
}

// Parser turns serialized HTML into a Tree by driving the TreeSink
// contract. Implementations never fail on malformed markup; the only error
// source is the reader itself.
type Parser interface {
	// Parse reads a full HTML document.
	Parse(r io.Reader) (*Tree, error)

	// ParseFragment reads an HTML fragment in a body context.
	ParseFragment(r io.Reader) (*Tree, error)
}

// Ensure Tree implements the construction contract at compile time.
var _ TreeSink = (*Tree)(nil)

// Document returns the root handle.
func (t *Tree) Document() NodeID {
	return 0
}

// SetQuirksMode records the quirks mode. The last call wins.
func (t *Tree) SetQuirksMode(mode QuirksMode) {
	t.quirks = mode
}

// CreateElement allocates a detached element node.
func (t *Tree) CreateElement(name, namespace string, attrs []Attribute) NodeID {
	return t.alloc(Node{Kind: KindElement, Element: NewElement(name, namespace, attrs)})
}

// AppendChild attaches child as the last child of parent.
func (t *Tree) AppendChild(parent, child NodeID) error {
	if !t.valid(parent) || !t.valid(child) {
		return Errorf(EINTERNAL, "append child: invalid handle (parent=%d child=%d)", parent, child)
	}
	if child == 0 {
		return Errorf(EINTERNAL, "append child: cannot attach the root")
	}
	t.detach(child)
	t.appendAttached(parent, child)
	return nil
}

// AppendText attaches text as the last child of parent, coalescing with a
// trailing text sibling.
func (t *Tree) AppendText(parent NodeID, text string) error {
	if !t.valid(parent) {
		return Errorf(EINTERNAL, "append text: invalid parent handle %d", parent)
	}
	if last := t.node(parent).last; last != none && t.node(last).data.Kind == KindText {
		t.node(last).data.Data += text
		return nil
	}
	t.appendAttached(parent, t.alloc(Node{Kind: KindText, Data: text}))
	return nil
}

// AppendComment attaches a comment node as the last child of parent.
func (t *Tree) AppendComment(parent NodeID, text string) error {
	if !t.valid(parent) {
		return Errorf(EINTERNAL, "append comment: invalid parent handle %d", parent)
	}
	t.appendAttached(parent, t.alloc(Node{Kind: KindComment, Data: text}))
	return nil
}

// AppendProcessingInstruction attaches a processing-instruction node as the
// last child of parent.
func (t *Tree) AppendProcessingInstruction(parent NodeID, target, data string) error {
	if !t.valid(parent) {
		return Errorf(EINTERNAL, "append processing instruction: invalid parent handle %d", parent)
	}
	t.appendAttached(parent, t.alloc(Node{Kind: KindProcessingInstruction, PI: &ProcessingInstruction{Target: target, Data: data}}))
	return nil
}

// AppendBeforeSibling inserts node immediately before sibling.
func (t *Tree) AppendBeforeSibling(sibling, node NodeID) error {
	if !t.valid(sibling) || !t.valid(node) {
		return Errorf(EINTERNAL, "append before sibling: invalid handle (sibling=%d node=%d)", sibling, node)
	}
	parent := t.node(sibling).parent
	if parent == none {
		return Errorf(EINTERNAL, "append before sibling: node %d has no parent", sibling)
	}
	if node == 0 {
		return Errorf(EINTERNAL, "append before sibling: cannot attach the root")
	}
	t.detach(node)
	prev := t.node(sibling).prev
	t.node(node).parent = parent
	t.node(node).prev = prev
	t.node(node).next = sibling
	t.node(sibling).prev = node
	if prev == none {
		t.node(parent).first = node
	} else {
		t.node(prev).next = node
	}
	return nil
}

// AppendDoctype attaches a doctype node to the document root.
func (t *Tree) AppendDoctype(name, publicID, systemID string) {
	t.appendAttached(0, t.alloc(Node{
		Kind:    KindDoctype,
		Doctype: &Doctype{Name: name, PublicID: publicID, SystemID: systemID},
	}))
}

// ParseError appends a diagnostic. It never aborts construction.
func (t *Tree) ParseError(msg string) {
	t.diags = append(t.diags, msg)
}

// SameNode reports handle identity.
func (t *Tree) SameNode(a, b NodeID) bool {
	return a == b
}

// appendAttached links a detached node as the last child of parent.
func (t *Tree) appendAttached(parent, child NodeID) {
	last := t.node(parent).last
	t.node(child).parent = parent
	t.node(child).prev = last
	t.node(child).next = none
	if last == none {
		t.node(parent).first = child
	} else {
		t.node(last).next = child
	}
	t.node(parent).last = child
}

// detach unlinks a node from its parent and siblings, if attached.
func (t *Tree) detach(id NodeID) {
	n := t.node(id)
	if n.parent == none {
		return
	}
	parent := t.node(n.parent)
	if n.prev == none {
		parent.first = n.next
	} else {
		t.node(n.prev).next = n.next
	}
	if n.next == none {
		parent.last = n.prev
	} else {
		t.node(n.next).prev = n.prev
	}
	n.parent, n.prev, n.next = none, none, none
}
