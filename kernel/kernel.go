// Package kernel reduces terms: one beta step at a time with BetaReduce, or
// to a fixpoint with Normalize.
//
// Neither function bounds the number of steps. Normalize does not return for
// a term whose reduction diverges; a host that needs a bound drives
// BetaReduce itself.
package kernel

import (
	"github.com/smasher164/lamkernel/term"
)

// BetaReduce contracts the outermost, leftmost redex of t whose contraction
// changes the term. It tries t itself, then the body of an abstraction, then
// the function and finally the argument of an application. A term with no
// such redex is returned unchanged.
func BetaReduce(t term.Term) term.Term {
	t1, _ := step(t)
	return t1
}

func step(t term.Term) (term.Term, bool) {
	switch t := t.(type) {
	case term.Lam:
		body, ok := step(t.Body)
		if !ok {
			return t, false
		}
		return term.Lam{Body: body}, true
	case term.App:
		if abs, ok := t.Fn.(term.Lam); ok {
			if t1 := term.SubstTop(abs.Body, t.Arg); !term.Equal(t1, t) {
				return t1, true
			}
		}
		if fn, ok := step(t.Fn); ok {
			return term.App{Fn: fn, Arg: t.Arg}, true
		}
		if arg, ok := step(t.Arg); ok {
			return term.App{Fn: t.Fn, Arg: arg}, true
		}
	}
	return t, false
}

// Normalize applies BetaReduce until the term stops changing.
func Normalize(t term.Term) term.Term {
	for {
		t1, ok := step(t)
		if !ok {
			return t
		}
		t = t1
	}
}
