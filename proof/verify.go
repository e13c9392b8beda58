package proof

import (
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/smasher164/lamkernel/eval"
	"github.com/smasher164/lamkernel/kernel"
	"github.com/smasher164/lamkernel/term"
)

// Checker verifies proofs and logs why a proof was rejected.
type Checker struct {
	log *zap.Logger
}

// NewChecker returns a Checker that logs rejections to log at debug level.
// A nil log discards them.
func NewChecker(log *zap.Logger) *Checker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Checker{log: log}
}

var quiet = NewChecker(nil)

// Verify reports whether p holds for expr. It never fails: a malformed,
// stale or forged proof is simply false.
func Verify(p Proof, expr term.Term) bool {
	return quiet.Verify(p, expr)
}

func (c *Checker) Verify(p Proof, expr term.Term) bool {
	switch p := p.(type) {
	case AlphaEquivalence:
		if !term.Equal(p.Expr1, p.Expr2) {
			return c.reject(p, expr, show(p.Expr1), show(p.Expr2))
		}
		return true
	case BetaReduction:
		if !c.wellFormed(p, expr) {
			return false
		}
		if got := kernel.BetaReduce(expr); !term.Equal(got, p.Reduced) {
			return c.reject(p, expr, show(p.Reduced), show(got))
		}
		return true
	case Evaluation:
		if !c.wellFormed(p, expr) {
			return false
		}
		if got := eval.EvalEmpty(expr); !eval.Equal(got, p.Result) {
			return c.reject(p, expr, showResult(p.Result), got.String())
		}
		return true
	case Normalization:
		if !c.wellFormed(p, expr) {
			return false
		}
		if got := kernel.Normalize(expr); !term.Equal(got, p.Result) {
			return c.reject(p, expr, show(p.Result), show(got))
		}
		return true
	case Consistency:
		if err := kernel.SelfCheck(); err != nil {
			c.log.Debug("kernel self-check failed", zap.Error(err))
			return false
		}
		return true
	case Composite:
		return lo.EveryBy(p.Proofs, func(q Proof) bool {
			return c.Verify(q, expr)
		})
	}
	c.log.Debug("unknown proof", zap.Any("proof", p))
	return false
}

func (c *Checker) wellFormed(p Proof, expr term.Term) bool {
	if err := term.Validate(expr); err != nil {
		c.log.Debug("proof checked against ill-formed term",
			zap.String("kind", string(p.Kind())),
			zap.Error(err))
		return false
	}
	return true
}

func (c *Checker) reject(p Proof, expr term.Term, claimed, derived string) bool {
	c.log.Debug("proof rejected",
		zap.String("kind", string(p.Kind())),
		zap.String("expr", show(expr)),
		zap.String("claimed", claimed),
		zap.String("derived", derived))
	return false
}

func show(t term.Term) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

func showResult(r eval.Result) string {
	if r == nil {
		return "<nil>"
	}
	return r.String()
}
