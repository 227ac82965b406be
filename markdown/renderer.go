// Package markdown renders selected subtrees as Markdown using
// html-to-markdown.
package markdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/htmldom"
)

// Renderer converts tree nodes into Markdown text.
type Renderer struct {
	conv *converter.Converter
}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Renderer{conv: conv}
}

// Render serializes the node with the given traversal scope and converts
// the result to Markdown. Returns EINVALID if the scoped subtree serializes
// to nothing but whitespace.
func (r *Renderer) Render(n htmldom.NodeRef, scope htmldom.Scope) (string, error) {
	html := n.HTML(scope)
	if strings.TrimSpace(html) == "" {
		return "", htmldom.Errorf(htmldom.EINVALID, "empty subtree")
	}

	result, err := r.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	return result, nil
}
