// Package term is the De Bruijn-indexed term model of the kernel.
//
// A Term is one of Var, Lam or App. Variables name their binder by distance,
// so alpha-equivalent terms are identical trees and Equal is alpha-equivalence.
package term

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Binder is the literal every Lam renders with, whatever its depth.
const Binder = "λx"

type Term interface {
	isTerm()
	String() string
}

type Var int

func (Var) isTerm() {}

func (v Var) String() string {
	return strconv.Itoa(int(v))
}

type Lam struct {
	Body Term
}

func (Lam) isTerm() {}

func (l Lam) String() string {
	var b strings.Builder
	write(&b, l)
	return b.String()
}

type App struct {
	Fn  Term
	Arg Term
}

func (App) isTerm() {}

func (a App) String() string {
	var b strings.Builder
	write(&b, a)
	return b.String()
}

func write(b *strings.Builder, t Term) {
	switch t := t.(type) {
	case Var:
		b.WriteString(strconv.Itoa(int(t)))
	case Lam:
		b.WriteString(Binder)
		b.WriteByte('.')
		write(b, t.Body)
	case App:
		b.WriteByte('(')
		write(b, t.Fn)
		b.WriteByte(' ')
		write(b, t.Arg)
		b.WriteByte(')')
	default:
		fmt.Fprintf(b, "<%T>", t)
	}
}

// V returns the variable with index i. It panics if i is negative.
func V(i int) Var {
	if i < 0 {
		panic(fmt.Sprintf("term: negative de Bruijn index %d", i))
	}
	return Var(i)
}

func L(body Term) Lam {
	return Lam{body}
}

func A(fn, arg Term) App {
	return App{fn, arg}
}

// Apply builds the left-nested application (((fn a0) a1) ...).
func Apply(fn Term, args ...Term) Term {
	return lo.Reduce(args, func(f Term, a Term, _ int) Term {
		return App{f, a}
	}, fn)
}

// Equal reports whether a and b are the same tree.
func Equal(a, b Term) bool {
	switch a := a.(type) {
	case Var:
		b, ok := b.(Var)
		return ok && a == b
	case Lam:
		b, ok := b.(Lam)
		return ok && Equal(a.Body, b.Body)
	case App:
		b, ok := b.(App)
		return ok && Equal(a.Fn, b.Fn) && Equal(a.Arg, b.Arg)
	case nil:
		return b == nil
	}
	return false
}

// Validate reports the first ill-formed subterm of t: a negative index, a nil
// subterm, or a Term implementation from outside this package.
func Validate(t Term) error {
	switch t := t.(type) {
	case Var:
		if t < 0 {
			return fmt.Errorf("negative de Bruijn index %d", int(t))
		}
		return nil
	case Lam:
		if err := Validate(t.Body); err != nil {
			return fmt.Errorf("in abstraction body: %w", err)
		}
		return nil
	case App:
		if err := Validate(t.Fn); err != nil {
			return fmt.Errorf("in function position: %w", err)
		}
		if err := Validate(t.Arg); err != nil {
			return fmt.Errorf("in argument position: %w", err)
		}
		return nil
	case nil:
		return fmt.Errorf("nil term")
	}
	return fmt.Errorf("unknown term %T", t)
}

// IsRedex reports whether t has the shape App(Lam(_), _).
func IsRedex(t Term) bool {
	app, ok := t.(App)
	if !ok {
		return false
	}
	_, ok = app.Fn.(Lam)
	return ok
}

// HasRedex reports whether any subterm of t is a redex.
func HasRedex(t Term) bool {
	switch t := t.(type) {
	case Lam:
		return HasRedex(t.Body)
	case App:
		return IsRedex(t) || HasRedex(t.Fn) || HasRedex(t.Arg)
	}
	return false
}

func Size(t Term) int {
	switch t := t.(type) {
	case Lam:
		return 1 + Size(t.Body)
	case App:
		return 1 + Size(t.Fn) + Size(t.Arg)
	}
	return 1
}

// FreeIndices returns the free variables of t, as seen from outside t, in
// order of first occurrence.
func FreeIndices(t Term) []int {
	var free []int
	seen := map[int]bool{}
	var walk func(t Term, depth int)
	walk = func(t Term, depth int) {
		switch t := t.(type) {
		case Var:
			if i := int(t) - depth; i >= 0 && !seen[i] {
				seen[i] = true
				free = append(free, i)
			}
		case Lam:
			walk(t.Body, depth+1)
		case App:
			walk(t.Fn, depth)
			walk(t.Arg, depth)
		}
	}
	walk(t, 0)
	return free
}

func Closed(t Term) bool {
	return len(FreeIndices(t)) == 0
}
