package term

import "math"

// Shift adds amount to every variable of t whose index is at least cutoff.
// The cutoff grows by one under each Lam, so variables bound inside t keep
// their index. An index that would pass math.MaxInt stays at math.MaxInt.
func Shift(t Term, cutoff, amount int) Term {
	if amount == 0 {
		return t
	}
	return shift(t, cutoff, amount)
}

func shift(t Term, c, d int) Term {
	switch t := t.(type) {
	case Var:
		if int(t) < c {
			return t
		}
		if d > 0 && int(t) > math.MaxInt-d {
			return Var(math.MaxInt)
		}
		return t + Var(d)
	case Lam:
		return Lam{shift(t.Body, c+1, d)}
	case App:
		return App{shift(t.Fn, c, d), shift(t.Arg, c, d)}
	}
	panic("unreachable")
}

// Subst replaces every free occurrence of Var(j) in body with s. Entering a
// Lam increments j and shifts s up by one for the nested body.
//
// Unlike a full contraction, Subst does not decrement the indices above j;
// use SubstTop to eliminate a binder.
func Subst(body Term, j int, s Term) Term {
	switch t := body.(type) {
	case Var:
		if int(t) == j {
			return s
		}
		return t
	case Lam:
		return Lam{Subst(t.Body, j+1, shift(s, 0, 1))}
	case App:
		return App{Subst(t.Fn, j, s), Subst(t.Arg, j, s)}
	}
	panic("unreachable")
}

// SubstTop contracts the redex App(Lam(body), arg) in one pass: index 0 of
// body becomes arg shifted past the binders it lands under, and the free
// indices above it drop by one for the eliminated binder. arg is never
// shifted up and back down, so its indices survive unchanged at depth 0.
func SubstTop(body, arg Term) Term {
	return substTop(body, 0, arg)
}

func substTop(t Term, depth int, arg Term) Term {
	switch t := t.(type) {
	case Var:
		switch {
		case int(t) == depth:
			return Shift(arg, 0, depth)
		case int(t) > depth:
			return t - 1
		}
		return t
	case Lam:
		return Lam{substTop(t.Body, depth+1, arg)}
	case App:
		return App{substTop(t.Fn, depth, arg), substTop(t.Arg, depth, arg)}
	}
	panic("unreachable")
}
