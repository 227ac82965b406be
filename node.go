package htmldom

import "strings"

// NodeKind identifies the variant stored in a Node.
type NodeKind int

// Node kinds. Every switch over NodeKind handles all of them.
const (
	KindDocument NodeKind = iota
	KindFragment
	KindDoctype
	KindComment
	KindText
	KindElement
	KindProcessingInstruction
)

// String returns a human-readable name for the kind.
func (k NodeKind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindFragment:
		return "fragment"
	case KindDoctype:
		return "doctype"
	case KindComment:
		return "comment"
	case KindText:
		return "text"
	case KindElement:
		return "element"
	case KindProcessingInstruction:
		return "processing-instruction"
	}
	return "unknown"
}

// QuirksMode is the document-wide legacy-rendering compatibility flag
// determined from the doctype. The zero value is NoQuirks.
type QuirksMode int

// Quirks modes.
const (
	NoQuirks QuirksMode = iota
	LimitedQuirks
	Quirks
)

// String returns a human-readable name for the mode.
func (m QuirksMode) String() string {
	switch m {
	case NoQuirks:
		return "no-quirks"
	case LimitedQuirks:
		return "limited-quirks"
	case Quirks:
		return "quirks"
	}
	return "unknown"
}

// HTMLNamespace is the namespace URI of HTML elements. The empty namespace
// is treated as HTML throughout this package.
const HTMLNamespace = "http://www.w3.org/1999/xhtml"

// Attribute is a single element attribute. Insertion order is preserved by
// the containing Element.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Doctype holds the components of a document type declaration.
type Doctype struct {
	Name     string `json:"name"`
	PublicID string `json:"publicId"`
	SystemID string `json:"systemId"`
}

// ProcessingInstruction holds the target and data of a processing
// instruction node.
type ProcessingInstruction struct {
	Target string `json:"target"`
	Data   string `json:"data"`
}

// Element is the payload of an element node.
type Element struct {
	// Name is the qualified tag name as produced by the parser
	// (lowercase for HTML-namespace elements).
	Name string `json:"name"`

	// Namespace is the namespace URI; empty means HTML.
	Namespace string `json:"namespace,omitempty"`

	// Attrs preserves attribute insertion order.
	Attrs []Attribute `json:"attrs,omitempty"`

	// classes caches the split of the "class" attribute.
	classes []string
}

// NewElement creates an element payload and derives its class set from the
// "class" attribute.
func NewElement(name, namespace string, attrs []Attribute) *Element {
	e := &Element{Name: name, Namespace: namespace, Attrs: attrs}
	if v, ok := e.Attr("class"); ok {
		e.classes = strings.Fields(v)
	}
	return e
}

// IsHTML reports whether the element is in the HTML namespace.
func (e *Element) IsHTML() bool {
	return e.Namespace == "" || e.Namespace == HTMLNamespace
}

// Attr returns the value of the named attribute. Name matching is
// case-insensitive.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if strings.EqualFold(a.Key, name) {
			return a.Value, true
		}
	}
	return "", false
}

// ID returns the value of the "id" attribute, or the empty string.
func (e *Element) ID() string {
	v, _ := e.Attr("id")
	return v
}

// Classes returns the element's classes in document order. The returned
// slice is shared; callers must not modify it.
func (e *Element) Classes() []string {
	return e.classes
}

// HasClass reports whether the element's class set contains c.
// Matching is exact and case-sensitive.
func (e *Element) HasClass(c string) bool {
	for _, have := range e.classes {
		if have == c {
			return true
		}
	}
	return false
}

// Node is the tagged payload of a tree node. Exactly the fields implied by
// Kind are set: Data for comment/text, Doctype, Element, and PI for their
// respective kinds; document and fragment nodes carry no payload.
type Node struct {
	Kind    NodeKind
	Data    string
	Doctype *Doctype
	Element *Element
	PI      *ProcessingInstruction
}
