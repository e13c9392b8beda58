// Package proof records claims about kernel terms and checks them.
//
// A Proof is a witness: the inputs of a claim and the outcome that was
// observed. Verification recomputes the outcome from the term being checked
// and compares it with the witness, so a proof is only as trusted as the
// kernel that rechecks it. Checking a proof costs as much as producing it.
package proof

import (
	"errors"
	"fmt"

	"github.com/smasher164/lamkernel/eval"
	"github.com/smasher164/lamkernel/term"
)

type Kind string

const (
	KindAlphaEquivalence Kind = "alpha_equivalence"
	KindBetaReduction    Kind = "beta_reduction"
	KindEvaluation       Kind = "evaluation"
	KindNormalization    Kind = "normalization"
	KindConsistency      Kind = "consistency"
	KindComposite        Kind = "composite"
)

type Proof interface {
	isProof()
	Kind() Kind
}

// AlphaEquivalence claims that Expr1 and Expr2 are the same term up to
// renaming of bound variables.
type AlphaEquivalence struct {
	Expr1 term.Term
	Expr2 term.Term
}

// BetaReduction claims that one BetaReduce step takes Original to Reduced.
type BetaReduction struct {
	Original term.Term
	Reduced  term.Term
}

// Evaluation claims that evaluating Expr in the empty environment gives
// Result.
type Evaluation struct {
	Expr   term.Term
	Result eval.Result
}

// Normalization claims that Result is the normal form of Expr.
type Normalization struct {
	Expr   term.Term
	Result term.Term
}

// Consistency claims that the kernel passes its self-check.
type Consistency struct{}

// Composite holds when every one of Proofs holds. Conclusion is a label for
// readers and plays no part in checking.
type Composite struct {
	Proofs     []Proof
	Conclusion string
}

func (AlphaEquivalence) isProof() {}
func (BetaReduction) isProof()    {}
func (Evaluation) isProof()       {}
func (Normalization) isProof()    {}
func (Consistency) isProof()      {}
func (Composite) isProof()        {}

func (AlphaEquivalence) Kind() Kind { return KindAlphaEquivalence }
func (BetaReduction) Kind() Kind    { return KindBetaReduction }
func (Evaluation) Kind() Kind       { return KindEvaluation }
func (Normalization) Kind() Kind    { return KindNormalization }
func (Consistency) Kind() Kind      { return KindConsistency }
func (Composite) Kind() Kind        { return KindComposite }

// ErrNotAlphaEquivalent is matched by the error ProveAlphaEquivalence returns
// for terms that differ.
var ErrNotAlphaEquivalent = errors.New("terms are not alpha-equivalent")

type NotAlphaEquivalentError struct {
	Expr1 term.Term
	Expr2 term.Term
}

func (e *NotAlphaEquivalentError) Error() string {
	return fmt.Sprintf("%v and %v: %v", e.Expr1, e.Expr2, ErrNotAlphaEquivalent)
}

func (e *NotAlphaEquivalentError) Is(target error) bool {
	return target == ErrNotAlphaEquivalent
}

// ProvenExpr is a term carrying a proof about itself.
type ProvenExpr struct {
	Expr  term.Term
	Proof Proof
}

func Attach(expr term.Term, p Proof) ProvenExpr {
	return ProvenExpr{Expr: expr, Proof: p}
}

// Verify rechecks the attached proof against the attached term.
func (pe ProvenExpr) Verify() bool {
	return Verify(pe.Proof, pe.Expr)
}
