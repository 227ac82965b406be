package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/htmldom"
	"github.com/fwojciec/htmldom/markdown"
)

// Dependencies holds the services and streams for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Parser htmldom.Parser
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Selector string `arg:"" help:"CSS selector to match"`
	File     string `arg:"" optional:"" help:"HTML file to read (defaults to stdin)"`

	Fragment bool   `short:"f" help:"Parse input as a body fragment"`
	Reverse  bool   `short:"r" help:"Emit matches in reverse document order"`
	First    bool   `short:"1" help:"Stop after the first match"`
	Format   string `enum:"html,inner,text,markdown" default:"html" help:"Output format: html, inner, text, or markdown"`
	Hash     bool   `help:"Prefix each match with an xxhash content hash"`
}

// Run parses the input, runs the query, and prints each match.
func (c *CLI) Run(deps *Dependencies) error {
	sel, err := htmldom.Compile(c.Selector)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", htmldom.ErrorMessage(err))
		return err
	}

	in := deps.Stdin
	if c.File != "" {
		f, err := os.Open(c.File)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	parse := deps.Parser.Parse
	if c.Fragment {
		parse = deps.Parser.ParseFragment
	}
	tree, err := parse(in)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", htmldom.ErrorMessage(err))
		return err
	}

	render := c.renderer()
	query := tree.Select(sel)
	next := query.Next
	if c.Reverse {
		next = query.NextBack
	}

	for n, ok := next(); ok; n, ok = next() {
		out, err := render(n)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", htmldom.ErrorMessage(err))
			return err
		}
		if c.Hash {
			fmt.Fprintf(deps.Stdout, "%s  %s\n", computeHash(out), out)
		} else {
			fmt.Fprintln(deps.Stdout, out)
		}
		if c.First {
			break
		}
	}
	return nil
}

// renderer returns the per-match formatting function for the chosen format.
func (c *CLI) renderer() func(htmldom.NodeRef) (string, error) {
	switch c.Format {
	case "inner":
		return func(n htmldom.NodeRef) (string, error) { return n.InnerHTML(), nil }
	case "text":
		return func(n htmldom.NodeRef) (string, error) { return n.Text(), nil }
	case "markdown":
		r := markdown.NewRenderer()
		return func(n htmldom.NodeRef) (string, error) { return r.Render(n, htmldom.IncludeNode) }
	default:
		return func(n htmldom.NodeRef) (string, error) { return n.OuterHTML(), nil }
	}
}

// computeHash computes a hash of the content using xxhash.
func computeHash(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}
