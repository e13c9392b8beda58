package kernel_test

import (
	"fmt"

	"github.com/smasher164/lamkernel/kernel"
	"github.com/smasher164/lamkernel/term"
)

// ExampleBetaReduce shows a single contraction step.
func ExampleBetaReduce() {
	id := term.L(term.V(0))
	t := term.A(id, term.A(term.V(1), term.V(2)))
	fmt.Println(t)
	fmt.Println(kernel.BetaReduce(t))
	// Output:
	// (λx.0 (1 2))
	// (1 2)
}

// ExampleNormalize shows that a free variable is not captured by an inner
// binder.
func ExampleNormalize() {
	k := term.L(term.L(term.V(1)))
	fmt.Println(kernel.Normalize(term.A(k, term.V(0))))
	// Output: λx.1
}
