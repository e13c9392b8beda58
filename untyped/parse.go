package main

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"

	"github.com/smasher164/lamkernel/term"
)

// The surface syntax names its binders: λx. x, with \ accepted for λ.
// Application is left associative and an abstraction extends as far right
// as possible. Every variable must be bound.

func unexpected(s string) error {
	return fmt.Errorf("unexpected token %q", s)
}

func validateToken(s string) error {
	switch s {
	case "(", ")", "λ", ".":
		return nil
	}
	if strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '\''
	}) >= 0 || !unicode.IsLetter([]rune(s)[0]) {
		return unexpected(s)
	}
	return nil
}

func scan(s string) ([]string, error) {
	res := strings.Fields(strings.ReplaceAll(s, `\`, "λ"))
	sep := func(c string) []string {
		return lo.FlatMap(res, func(s string, _ int) (ret []string) {
			for {
				before, after, found := strings.Cut(s, c)
				if before != "" {
					ret = append(ret, before)
				}
				s = after
				if !found {
					break
				}
				ret = append(ret, c)
			}
			return ret
		})
	}
	res = sep("(")
	res = sep(")")
	res = sep(".")
	res = sep("λ")
	for _, s := range res {
		if err := validateToken(s); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func prepend[T any](v T, from []T) []T {
	return append([]T{v}, from...)
}

type parser struct {
	tokens []string
}

func (p *parser) peek() (string, bool) {
	if len(p.tokens) == 0 {
		return "", false
	}
	return p.tokens[0], true
}

func (p *parser) next() (string, bool) {
	tok, ok := p.peek()
	if ok {
		p.tokens = p.tokens[1:]
	}
	return tok, ok
}

func (p *parser) expect(tok string) error {
	hd, ok := p.next()
	if !ok {
		return fmt.Errorf("expected token %q, got \"EOF\"", tok)
	}
	if hd != tok {
		return fmt.Errorf("expected token %q, got %q", tok, hd)
	}
	return nil
}

func (p *parser) lambda(ctx []string) (term.Term, error) {
	tok, ok := p.next()
	if !ok {
		return nil, fmt.Errorf("expected identifier, got \"EOF\"")
	}
	switch tok {
	case "(", ")", ".", "λ":
		return nil, fmt.Errorf("expected identifier, got %q", tok)
	}
	if err := p.expect("."); err != nil {
		return nil, err
	}
	body, err := p.sequence(prepend(tok, ctx))
	if err != nil {
		return nil, err
	}
	return term.Lam{Body: body}, nil
}

func (p *parser) single(ctx []string) (term.Term, error) {
	tok, ok := p.next()
	if !ok {
		return nil, unexpected("EOF")
	}
	switch tok {
	case ")", ".":
		return nil, unexpected(tok)
	case "(":
		t, err := p.sequence(ctx)
		if err != nil {
			return nil, err
		}
		return t, p.expect(")")
	case "λ":
		return p.lambda(ctx)
	}
	i := slices.Index(ctx, tok)
	if i < 0 {
		return nil, fmt.Errorf("undefined variable %q", tok)
	}
	return term.Var(i), nil
}

func (p *parser) sequence(ctx []string) (term.Term, error) {
	t, err := p.single(ctx)
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.peek()
		if !ok || tok == ")" {
			return t, nil
		}
		arg, err := p.single(ctx)
		if err != nil {
			return nil, err
		}
		t = term.App{Fn: t, Arg: arg}
	}
}

// parseNamed lowers a program in the surface syntax to a kernel term.
func parseNamed(src string) (term.Term, error) {
	tokens, err := scan(src)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	t, err := p.sequence(nil)
	if err != nil {
		return nil, err
	}
	if tok, ok := p.peek(); ok {
		return nil, fmt.Errorf("expected token \"EOF\", got %q", tok)
	}
	return t, nil
}
