package htmldom

import (
	"io"
	"strings"
)

// Scope is the traversal scope of serialization: whether the node itself is
// rendered or only its children.
type Scope int

// Traversal scopes.
const (
	IncludeNode Scope = iota
	ChildrenOnly
)

// voidElements never emit a closing tag and any children are ignored.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// rawTextElements emit their text children verbatim, unescaped.
var rawTextElements = map[string]bool{
	"iframe": true, "noembed": true, "noframes": true, "noscript": true,
	"plaintext": true, "script": true, "style": true, "xmp": true,
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", " ", "&nbsp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", " ", "&nbsp;", `"`, "&quot;")
)

// Serialize renders the node as HTML to w. Rendering is a total function of
// the tree; the only failure mode is an I/O error from w, which is
// propagated verbatim.
func (n NodeRef) Serialize(w io.Writer, scope Scope) error {
	s := &serializer{w: w}
	if scope == IncludeNode {
		s.node(n, false)
	} else {
		s.children(n, n.rawText())
	}
	return s.err
}

// HTML renders the node as an HTML string. It never fails.
func (n NodeRef) HTML(scope Scope) string {
	var sb strings.Builder
	_ = n.Serialize(&sb, scope)
	return sb.String()
}

// OuterHTML renders the node and its descendants.
func (n NodeRef) OuterHTML() string {
	return n.HTML(IncludeNode)
}

// InnerHTML renders only the node's descendants.
func (n NodeRef) InnerHTML() string {
	return n.HTML(ChildrenOnly)
}

// rawText reports whether text children of n serialize unescaped.
func (n NodeRef) rawText() bool {
	e := n.Element()
	return e != nil && e.IsHTML() && rawTextElements[e.Name]
}

// serializer writes HTML, latching the first error and discarding
// everything after it.
type serializer struct {
	w   io.Writer
	err error
}

func (s *serializer) write(parts ...string) {
	for _, part := range parts {
		if s.err != nil {
			return
		}
		_, s.err = io.WriteString(s.w, part)
	}
}

func (s *serializer) node(n NodeRef, raw bool) {
	switch n.Kind() {
	case KindDocument, KindFragment:
		s.children(n, false)
	case KindText:
		if raw {
			s.write(n.Node().Data)
		} else {
			s.write(textEscaper.Replace(n.Node().Data))
		}
	case KindComment:
		s.write("<!--", n.Node().Data, "-->")
	case KindDoctype:
		s.doctype(n.Node().Doctype)
	case KindProcessingInstruction:
		pi := n.Node().PI
		s.write("<?", pi.Target, " ", pi.Data, ">")
	case KindElement:
		s.element(n)
	}
}

func (s *serializer) children(n NodeRef, raw bool) {
	for c, ok := n.FirstChild(); ok; c, ok = c.NextSibling() {
		s.node(c, raw)
	}
}

func (s *serializer) element(n NodeRef) {
	e := n.Element()
	s.write("<", e.Name)
	for _, a := range e.Attrs {
		s.write(" ", a.Key, `="`, attrEscaper.Replace(a.Value), `"`)
	}
	s.write(">")
	if e.IsHTML() && voidElements[e.Name] {
		return
	}
	s.children(n, n.rawText())
	s.write("</", e.Name, ">")
}

func (s *serializer) doctype(d *Doctype) {
	s.write("<!DOCTYPE ", d.Name)
	switch {
	case d.PublicID != "":
		s.write(` PUBLIC "`, d.PublicID, `"`)
		if d.SystemID != "" {
			s.write(` "`, d.SystemID, `"`)
		}
	case d.SystemID != "":
		s.write(` SYSTEM "`, d.SystemID, `"`)
	}
	s.write(">")
}
