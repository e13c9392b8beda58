// Package eval is a call-by-value evaluator for kernel terms.
//
// Evaluation never fails. Free variables and applications of something that
// is not a closure are stuck, and come back as a Value holding the partially
// evaluated term.
package eval

import (
	"github.com/smasher164/lamkernel/term"
)

// Result is either a Value or a Closure.
type Result interface {
	isResult()
	// Repr is the term that stands for the result when it is bound in an
	// environment or rebuilt into a stuck application.
	Repr() term.Term
	String() string
}

type Value struct {
	Term term.Term
}

func (Value) isResult() {}

func (v Value) Repr() term.Term { return v.Term }

func (v Value) String() string { return v.Term.String() }

// Closure is an abstraction paired with the environment it was evaluated in.
type Closure struct {
	Env  Env
	Body term.Term
}

func (Closure) isResult() {}

func (c Closure) Repr() term.Term { return term.Lam{Body: c.Body} }

func (c Closure) String() string {
	if c.Env.Empty() {
		return "closure(" + c.Repr().String() + ")"
	}
	return "closure(" + c.Repr().String() + "; " + c.Env.String() + ")"
}

func Eval(env Env, t term.Term) Result {
	switch t := t.(type) {
	case term.Var:
		if b, ok := env.Lookup(int(t)); ok {
			return Value{b}
		}
		return Value{t}
	case term.Lam:
		return Closure{Env: env, Body: t.Body}
	case term.App:
		f := Eval(env, t.Fn)
		a := Eval(env, t.Arg)
		if c, ok := f.(Closure); ok {
			return Eval(c.Env.Extend(a.Repr()), c.Body)
		}
		return Value{term.App{Fn: f.Repr(), Arg: a.Repr()}}
	}
	panic("unreachable")
}

func EvalEmpty(t term.Term) Result {
	return Eval(NewEnv(), t)
}

// IsNormalForm reports whether r is a closure or a value without redexes.
func IsNormalForm(r Result) bool {
	switch r := r.(type) {
	case Closure:
		return true
	case Value:
		return !term.HasRedex(r.Term)
	}
	return false
}

// Equal reports whether a and b are the same kind of result over equal terms
// and, for closures, equal environments.
func Equal(a, b Result) bool {
	switch a := a.(type) {
	case Value:
		b, ok := b.(Value)
		return ok && term.Equal(a.Term, b.Term)
	case Closure:
		b, ok := b.(Closure)
		return ok && term.Equal(a.Body, b.Body) && a.Env.Equal(b.Env)
	case nil:
		return b == nil
	}
	return false
}
