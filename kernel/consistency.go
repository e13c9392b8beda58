package kernel

import (
	"errors"
	"fmt"

	"github.com/smasher164/lamkernel/term"
)

var (
	identity = term.L(term.V(0))
	konst    = term.L(term.L(term.V(1)))
	sCombin  = term.L(term.L(term.L(term.Apply(term.V(2), term.V(0), term.A(term.V(1), term.V(0))))))
	omega    = term.L(term.A(term.V(0), term.V(0)))
)

// church returns the Church numeral n: λf.λx.f (f ... (f x)).
func church(n int) term.Term {
	var body term.Term = term.V(0)
	for i := 0; i < n; i++ {
		body = term.A(term.V(1), body)
	}
	return term.L(term.L(body))
}

// succ is λn.λf.λx.f (n f x).
var succ = term.L(term.L(term.L(term.A(term.V(1), term.Apply(term.V(2), term.V(1), term.V(0))))))

// plus is λm.λn.λf.λx.m f (n f x).
var plus = term.L(term.L(term.L(term.L(term.Apply(term.V(3), term.V(1), term.Apply(term.V(2), term.V(1), term.V(0)))))))

var samples = []term.Term{
	term.V(0),
	term.V(17),
	identity,
	konst,
	sCombin,
	omega,
	term.A(term.V(0), term.V(1)),
	term.A(identity, term.A(term.V(1), term.V(2))),
	term.A(konst, term.V(0)),
	term.Apply(sCombin, konst, konst),
	term.Apply(sCombin, konst, konst, term.V(3)),
	term.A(succ, church(2)),
	term.Apply(plus, church(2), church(3)),
}

type redexCase struct {
	name     string
	in, want term.Term
}

var redexes = []redexCase{
	{"identity", term.A(identity, term.A(term.V(1), term.V(2))), term.A(term.V(1), term.V(2))},
	{"capture", term.A(konst, term.V(0)), term.L(term.V(1))},
	{"free body var", term.A(term.L(term.V(1)), identity), term.V(0)},
	{"duplicate", term.A(omega, term.V(4)), term.A(term.V(4), term.V(4))},
	{"under binder", term.L(term.A(identity, term.V(0))), term.L(term.V(0))},
	{"leftmost first", term.A(term.A(identity, term.V(0)), term.A(identity, term.V(1))), term.A(term.V(0), term.A(identity, term.V(1)))},
}

var fixedPoints = []term.Term{
	term.V(0),
	term.V(1 << 20),
	identity,
	term.A(term.V(0), term.V(1)),
	term.L(term.A(term.V(0), term.L(term.V(1)))),
	term.A(omega, omega),
}

type normalCase struct {
	name     string
	in, want term.Term
}

var normals = []normalCase{
	{"skk", term.Apply(sCombin, konst, konst, term.V(3)), term.V(3)},
	{"succ 2", term.A(succ, church(2)), church(3)},
	{"2 + 3", term.Apply(plus, church(2), church(3)), church(5)},
}

// SelfCheck runs the kernel's consistency battery and returns every failed
// check joined into one error, or nil.
func SelfCheck() error {
	var errs []error
	for _, c := range redexes {
		if got := BetaReduce(c.in); !term.Equal(got, c.want) {
			errs = append(errs, fmt.Errorf("beta step %s: %v reduced to %v, want %v", c.name, c.in, got, c.want))
		}
	}
	for _, t := range fixedPoints {
		if got := BetaReduce(t); !term.Equal(got, t) {
			errs = append(errs, fmt.Errorf("beta step changed fixed point %v to %v", t, got))
		}
	}
	for _, c := range normals {
		if got := Normalize(c.in); !term.Equal(got, c.want) {
			errs = append(errs, fmt.Errorf("normalize %s: got %v, want %v", c.name, got, c.want))
		}
	}
	for _, t := range samples {
		n := Normalize(t)
		if nn := Normalize(n); !term.Equal(nn, n) {
			errs = append(errs, fmt.Errorf("normalize not idempotent on %v: %v then %v", t, n, nn))
		}
		if term.HasRedex(n) && !term.Equal(BetaReduce(n), n) {
			errs = append(errs, fmt.Errorf("normal form %v of %v still reduces", n, t))
		}
		if back := term.Shift(term.Shift(t, 0, 3), 0, -3); !term.Equal(back, t) {
			errs = append(errs, fmt.Errorf("shift round trip on %v gave %v", t, back))
		}
	}
	return errors.Join(errs...)
}

// ProveKernelConsistency reports whether SelfCheck passes. It reruns the
// battery on every call.
func ProveKernelConsistency() bool {
	return SelfCheck() == nil
}
