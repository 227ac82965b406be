// Package mock provides test doubles for htmldom interfaces.
package mock

import (
	"io"

	"github.com/fwojciec/htmldom"
)

// Ensure Parser implements htmldom.Parser.
var _ htmldom.Parser = (*Parser)(nil)

// Parser is a mock implementation of htmldom.Parser.
type Parser struct {
	ParseFn         func(r io.Reader) (*htmldom.Tree, error)
	ParseFragmentFn func(r io.Reader) (*htmldom.Tree, error)
}

// Parse invokes the mock function.
func (p *Parser) Parse(r io.Reader) (*htmldom.Tree, error) {
	return p.ParseFn(r)
}

// ParseFragment invokes the mock function.
func (p *Parser) ParseFragment(r io.Reader) (*htmldom.Tree, error) {
	return p.ParseFragmentFn(r)
}
