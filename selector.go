package htmldom

import (
	"fmt"
	"strconv"
	"strings"
)

// combinator relates two compound selectors through a tree relationship.
type combinator int

const (
	combDescendant combinator = iota // whitespace
	combChild                        // >
	combAdjacent                     // +
	combGeneral                      // ~
)

type pseudoKind int

const (
	pseudoFirstChild pseudoKind = iota
	pseudoLastChild
	pseudoNthChild
)

// pseudoClass is a structural pseudo-class test. For nth-child the a and b
// coefficients of the an+b expression are set.
type pseudoClass struct {
	kind pseudoKind
	a, b int
}

// attrSelector is an [attr] or [attr=value] test. Attribute names always
// match case-insensitively; insensitive additionally relaxes the value
// comparison ("[attr=value i]").
type attrSelector struct {
	name        string
	hasValue    bool
	value       string
	insensitive bool
}

// compound is a single combinator-free clause tested against one node.
type compound struct {
	tag     string // empty matches any element
	id      string
	hasID   bool
	classes []string
	attrs   []attrSelector
	pseudos []pseudoClass
}

// complexSelector is a chain of compounds joined by combinators;
// combinators[i] relates compounds[i] and compounds[i+1].
type complexSelector struct {
	compounds   []compound
	combinators []combinator
}

// Selector is a compiled CSS selector. It is immutable after Compile and
// safe for concurrent use; it has no tie to any particular Tree.
type Selector struct {
	text   string
	groups []complexSelector
}

// String returns the selector source text.
func (s *Selector) String() string {
	return s.text
}

// Compile parses a selector string into its reusable compiled form.
//
// The supported grammar covers type selectors, "*", ".class", "#id",
// "[attr]" and "[attr=value]" (with an optional trailing "i" flag for
// case-insensitive value matching), the structural pseudo-classes
// :first-child, :last-child and :nth-child(an+b), the combinators
// descendant (whitespace), ">", "+" and "~", and comma-separated groups.
//
// Malformed input fails with an EINVALID error naming the offending
// construct; no partial selector is ever returned.
func Compile(text string) (*Selector, error) {
	p := &selParser{input: text}
	var groups []complexSelector
	for {
		p.skipSpace()
		cs, err := p.parseComplex()
		if err != nil {
			return nil, err
		}
		groups = append(groups, cs)
		p.skipSpace()
		if p.eof() {
			break
		}
		if !p.consume(',') {
			return nil, p.errorf("expected ',' or end of selector")
		}
	}
	return &Selector{text: text, groups: groups}, nil
}

// MustCompile is like Compile but panics on error. It simplifies safe
// initialization of package-level selector variables.
func MustCompile(text string) *Selector {
	s, err := Compile(text)
	if err != nil {
		panic(err)
	}
	return s
}

// selParser is a cursor over the selector source text.
type selParser struct {
	input string
	pos   int
}

func (p *selParser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *selParser) peek() byte {
	return p.input[p.pos]
}

// peekAt returns the byte at offset i from the cursor, or 0 past the end.
func (p *selParser) peekAt(i int) byte {
	if p.pos+i >= len(p.input) {
		return 0
	}
	return p.input[p.pos+i]
}

func (p *selParser) consume(c byte) bool {
	if p.eof() || p.peek() != c {
		return false
	}
	p.pos++
	return true
}

// skipSpace advances over whitespace, reporting whether any was consumed.
func (p *selParser) skipSpace() bool {
	start := p.pos
	for !p.eof() {
		switch p.peek() {
		case ' ', '\t', '\n', '\r', '\f':
			p.pos++
		default:
			return p.pos > start
		}
	}
	return p.pos > start
}

func (p *selParser) errorf(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return Errorf(EINVALID, "selector %q: %s at position %d", p.input, msg, p.pos)
}

// ident consumes an identifier (letters, digits, '-', '_', and non-ASCII).
// A name must not begin with a digit, or with '-' followed by a digit.
func (p *selParser) ident() string {
	start := p.pos
	if c := p.peekAt(0); c >= '0' && c <= '9' {
		return ""
	} else if c == '-' {
		if d := p.peekAt(1); d >= '0' && d <= '9' {
			return ""
		}
	}
	for !p.eof() {
		c := p.peek()
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
			c == '-' || c == '_' || c >= 0x80 {
			p.pos++
			continue
		}
		break
	}
	return p.input[start:p.pos]
}

func (p *selParser) parseComplex() (complexSelector, error) {
	var cs complexSelector
	for {
		c, err := p.parseCompound()
		if err != nil {
			return cs, err
		}
		cs.compounds = append(cs.compounds, c)
		ws := p.skipSpace()
		if p.eof() || p.peek() == ',' {
			return cs, nil
		}
		switch p.peek() {
		case '>':
			p.pos++
			cs.combinators = append(cs.combinators, combChild)
		case '+':
			p.pos++
			cs.combinators = append(cs.combinators, combAdjacent)
		case '~':
			p.pos++
			cs.combinators = append(cs.combinators, combGeneral)
		default:
			if !ws {
				return cs, p.errorf("unexpected character %q", p.peek())
			}
			cs.combinators = append(cs.combinators, combDescendant)
		}
		p.skipSpace()
	}
}

func (p *selParser) parseCompound() (compound, error) {
	var c compound
	parts := 0
	if !p.eof() {
		if p.peek() == '*' {
			p.pos++
			parts++
		} else if tag := p.ident(); tag != "" {
			c.tag = tag
			parts++
		}
	}
	for !p.eof() {
		switch p.peek() {
		case '.':
			p.pos++
			cls := p.ident()
			if cls == "" {
				return c, p.errorf("expected class name after '.'")
			}
			c.classes = append(c.classes, cls)
		case '#':
			p.pos++
			id := p.ident()
			if id == "" {
				return c, p.errorf("expected id after '#'")
			}
			c.id = id
			c.hasID = true
		case '[':
			a, err := p.parseAttr()
			if err != nil {
				return c, err
			}
			c.attrs = append(c.attrs, a)
		case ':':
			ps, err := p.parsePseudo()
			if err != nil {
				return c, err
			}
			c.pseudos = append(c.pseudos, ps)
		default:
			if parts == 0 {
				return c, p.errorf("expected selector, found %q", p.peek())
			}
			return c, nil
		}
		parts++
	}
	if parts == 0 {
		return c, p.errorf("expected selector, found end of input")
	}
	return c, nil
}

func (p *selParser) parseAttr() (attrSelector, error) {
	var a attrSelector
	p.pos++ // '['
	p.skipSpace()
	a.name = p.ident()
	if a.name == "" {
		return a, p.errorf("expected attribute name")
	}
	p.skipSpace()
	if p.consume(']') {
		return a, nil
	}
	if !p.consume('=') {
		return a, p.errorf("expected '=' or ']' in attribute selector")
	}
	p.skipSpace()
	value, err := p.parseAttrValue()
	if err != nil {
		return a, err
	}
	a.hasValue = true
	a.value = value
	if p.skipSpace() && !p.eof() && (p.peek() == 'i' || p.peek() == 'I') {
		p.pos++
		a.insensitive = true
		p.skipSpace()
	}
	if !p.consume(']') {
		return a, p.errorf("unterminated attribute selector")
	}
	return a, nil
}

func (p *selParser) parseAttrValue() (string, error) {
	if p.eof() {
		return "", p.errorf("expected attribute value")
	}
	if q := p.peek(); q == '"' || q == '\'' {
		p.pos++
		start := p.pos
		for !p.eof() && p.peek() != q {
			p.pos++
		}
		if p.eof() {
			return "", p.errorf("unterminated string")
		}
		value := p.input[start:p.pos]
		p.pos++
		return value, nil
	}
	value := p.ident()
	if value == "" {
		return "", p.errorf("expected attribute value")
	}
	return value, nil
}

func (p *selParser) parsePseudo() (pseudoClass, error) {
	p.pos++ // ':'
	name := p.ident()
	switch strings.ToLower(name) {
	case "first-child":
		return pseudoClass{kind: pseudoFirstChild}, nil
	case "last-child":
		return pseudoClass{kind: pseudoLastChild}, nil
	case "nth-child":
		if !p.consume('(') {
			return pseudoClass{}, p.errorf("expected '(' after :nth-child")
		}
		end := strings.IndexByte(p.input[p.pos:], ')')
		if end < 0 {
			return pseudoClass{}, p.errorf("unterminated ':nth-child('")
		}
		arg := p.input[p.pos : p.pos+end]
		a, b, err := p.parseNth(arg)
		if err != nil {
			return pseudoClass{}, err
		}
		p.pos += end + 1
		return pseudoClass{kind: pseudoNthChild, a: a, b: b}, nil
	case "":
		return pseudoClass{}, p.errorf("expected pseudo-class name after ':'")
	default:
		return pseudoClass{}, p.errorf("unsupported pseudo-class %q", name)
	}
}

// parseNth parses the an+b argument of :nth-child, including the "odd" and
// "even" keywords and the degenerate bare-integer form (a = 0).
func (p *selParser) parseNth(arg string) (a, b int, err error) {
	s := strings.ToLower(strings.Join(strings.Fields(arg), ""))
	switch s {
	case "odd":
		return 2, 1, nil
	case "even":
		return 2, 0, nil
	case "":
		return 0, 0, p.errorf("expected an+b expression")
	}
	i := strings.IndexByte(s, 'n')
	if i < 0 {
		b, err = strconv.Atoi(s)
		if err != nil {
			return 0, 0, p.errorf("invalid nth-child argument %q", arg)
		}
		return 0, b, nil
	}
	switch coeff := s[:i]; coeff {
	case "", "+":
		a = 1
	case "-":
		a = -1
	default:
		a, err = strconv.Atoi(coeff)
		if err != nil {
			return 0, 0, p.errorf("invalid nth-child coefficient %q", coeff)
		}
	}
	if rest := s[i+1:]; rest != "" {
		if rest[0] != '+' && rest[0] != '-' {
			return 0, 0, p.errorf("invalid nth-child argument %q", arg)
		}
		b, err = strconv.Atoi(rest)
		if err != nil {
			return 0, 0, p.errorf("invalid nth-child offset %q", rest)
		}
	}
	return a, b, nil
}
