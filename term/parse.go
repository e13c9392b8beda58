package term

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// SyntaxError is returned by Parse. Offset is a byte offset into the input.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("term: offset %d: %s", e.Offset, e.Msg)
}

// Parse reads a term in the form String produces: decimal indices,
// "λx." abstractions and parenthesized applications. Whitespace between
// tokens is ignored, except that an application needs at least one space
// between its function and argument.
func Parse(s string) (Term, error) {
	p := &parser{src: s}
	t, err := p.term()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, p.errorf("unexpected %q after term", p.src[p.pos:])
	}
	return t, nil
}

// MustParse is like Parse but panics on error. It is meant for tests and
// package-level fixtures.
func MustParse(s string) Term {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

type parser struct {
	src string
	pos int
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		r, n := utf8.DecodeRuneInString(p.src[p.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		p.pos += n
	}
}

func (p *parser) expect(tok string) error {
	if !strings.HasPrefix(p.src[p.pos:], tok) {
		if p.pos == len(p.src) {
			return p.errorf("expected %q, got EOF", tok)
		}
		return p.errorf("expected %q", tok)
	}
	p.pos += len(tok)
	return nil
}

func (p *parser) term() (Term, error) {
	p.skipSpace()
	if p.pos == len(p.src) {
		return nil, p.errorf("unexpected EOF")
	}
	rest := p.src[p.pos:]
	switch {
	case strings.HasPrefix(rest, Binder):
		p.pos += len(Binder)
		p.skipSpace()
		if err := p.expect("."); err != nil {
			return nil, err
		}
		body, err := p.term()
		if err != nil {
			return nil, err
		}
		return Lam{body}, nil
	case rest[0] == '(':
		p.pos++
		fn, err := p.term()
		if err != nil {
			return nil, err
		}
		start := p.pos
		p.skipSpace()
		if p.pos == start {
			return nil, p.errorf("expected space between function and argument")
		}
		arg, err := p.term()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return App{fn, arg}, nil
	case rest[0] >= '0' && rest[0] <= '9':
		end := p.pos
		for end < len(p.src) && p.src[end] >= '0' && p.src[end] <= '9' {
			end++
		}
		i, err := strconv.Atoi(p.src[p.pos:end])
		if err != nil {
			return nil, p.errorf("bad index %q: %v", p.src[p.pos:end], err)
		}
		p.pos = end
		return Var(i), nil
	}
	r, _ := utf8.DecodeRuneInString(rest)
	return nil, p.errorf("unexpected %q", r)
}
