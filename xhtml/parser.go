// Package xhtml parses HTML with the golang.org/x/net/html HTML5 parser and
// replays its output through the htmldom construction contract. It is the
// only ingestion path into a tree: every node the external parser produces
// reaches the sink as an ordered sequence of contract calls.
package xhtml

import (
	"io"
	"strings"

	"github.com/fwojciec/htmldom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Parser implements htmldom.Parser at compile time.
var _ htmldom.Parser = (*Parser)(nil)

// Parser builds htmldom trees from serialized HTML. Parsing never fails on
// malformed markup; the only error source is the reader itself.
type Parser struct{}

// New creates a new Parser.
func New() *Parser {
	return &Parser{}
}

// Parse reads a full HTML document.
func (p *Parser) Parse(r io.Reader) (*htmldom.Tree, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, htmldom.Errorf(htmldom.EINVALID, "parse document: %v", err)
	}
	t := htmldom.NewDocument()
	replay(t, t.Document(), root)
	if !hasDoctype(root) {
		// A document without a doctype is a full quirks document.
		t.SetQuirksMode(htmldom.Quirks)
	}
	return t, nil
}

func hasDoctype(root *html.Node) bool {
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.DoctypeNode {
			return true
		}
	}
	return false
}

// ParseFragment reads an HTML fragment in a body context.
func (p *Parser) ParseFragment(r io.Reader) (*htmldom.Tree, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(r, context)
	if err != nil {
		return nil, htmldom.Errorf(htmldom.EINVALID, "parse fragment: %v", err)
	}
	t := htmldom.NewFragment()
	for _, n := range nodes {
		replay(t, t.Document(), n)
	}
	return t, nil
}

// ParseString parses a document from a string.
func ParseString(s string) (*htmldom.Tree, error) {
	return New().Parse(strings.NewReader(s))
}

// ParseFragmentString parses a fragment from a string.
func ParseFragmentString(s string) (*htmldom.Tree, error) {
	return New().ParseFragment(strings.NewReader(s))
}

// replay feeds one parsed node and its subtree into the sink in document
// order. Contract errors are unreachable with handles the sink itself
// issued; if one surfaces anyway it becomes a diagnostic, never an abort.
func replay(sink htmldom.TreeSink, parent htmldom.NodeID, n *html.Node) {
	switch n.Type {
	case html.DocumentNode:
		replayChildren(sink, parent, n)
	case html.ElementNode:
		id := sink.CreateElement(n.Data, n.Namespace, attributes(n))
		if err := sink.AppendChild(parent, id); err != nil {
			sink.ParseError(err.Error())
			return
		}
		replayChildren(sink, id, n)
	case html.TextNode, html.RawNode:
		if err := sink.AppendText(parent, n.Data); err != nil {
			sink.ParseError(err.Error())
		}
	case html.CommentNode:
		if err := sink.AppendComment(parent, n.Data); err != nil {
			sink.ParseError(err.Error())
		}
	case html.DoctypeNode:
		name, publicID, systemID := doctypeParts(n)
		sink.AppendDoctype(name, publicID, systemID)
		sink.SetQuirksMode(quirksMode(name, publicID, systemID))
	case html.ErrorNode:
		sink.ParseError("error node in parsed tree")
	}
}

func replayChildren(sink htmldom.TreeSink, parent htmldom.NodeID, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		replay(sink, parent, c)
	}
}

func attributes(n *html.Node) []htmldom.Attribute {
	if len(n.Attr) == 0 {
		return nil
	}
	attrs := make([]htmldom.Attribute, 0, len(n.Attr))
	for _, a := range n.Attr {
		key := a.Key
		if a.Namespace != "" {
			key = a.Namespace + ":" + a.Key
		}
		attrs = append(attrs, htmldom.Attribute{Key: key, Value: a.Val})
	}
	return attrs
}

func doctypeParts(n *html.Node) (name, publicID, systemID string) {
	name = n.Data
	for _, a := range n.Attr {
		switch a.Key {
		case "public":
			publicID = a.Val
		case "system":
			systemID = a.Val
		}
	}
	return name, publicID, systemID
}
