package proof

import (
	"github.com/smasher164/lamkernel/eval"
	"github.com/smasher164/lamkernel/kernel"
	"github.com/smasher164/lamkernel/term"
)

// ProveAlphaEquivalence fails with a *NotAlphaEquivalentError, which matches
// ErrNotAlphaEquivalent, when e1 and e2 differ.
func ProveAlphaEquivalence(e1, e2 term.Term) (AlphaEquivalence, error) {
	if !term.Equal(e1, e2) {
		return AlphaEquivalence{}, &NotAlphaEquivalentError{Expr1: e1, Expr2: e2}
	}
	return AlphaEquivalence{Expr1: e1, Expr2: e2}, nil
}

func ProveBetaReduction(e term.Term) BetaReduction {
	return BetaReduction{Original: e, Reduced: kernel.BetaReduce(e)}
}

func ProveEvaluation(e term.Term) Evaluation {
	return Evaluation{Expr: e, Result: eval.EvalEmpty(e)}
}

// ProveNormalization does not return if e has no normal form.
func ProveNormalization(e term.Term) Normalization {
	return Normalization{Expr: e, Result: kernel.Normalize(e)}
}

// ProveConsistency does not run the self-check; Verify does.
func ProveConsistency() Consistency {
	return Consistency{}
}

func Compose(conclusion string, proofs ...Proof) Composite {
	return Composite{Proofs: proofs, Conclusion: conclusion}
}
