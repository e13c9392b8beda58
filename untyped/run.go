package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/smasher164/lamkernel/eval"
	"github.com/smasher164/lamkernel/kernel"
	"github.com/smasher164/lamkernel/proof"
	"github.com/smasher164/lamkernel/term"
)

var errOutOfFuel = errors.New("step limit reached")

// reduce drives kernel.BetaReduce to a fixpoint. The kernel has no notion of
// fuel, so the step budget and cancellation live here.
func reduce(ctx context.Context, t term.Term, maxSteps int, onStep func(term.Term)) (term.Term, int, error) {
	for n := 0; ; n++ {
		if err := ctx.Err(); err != nil {
			return t, n, err
		}
		next := kernel.BetaReduce(t)
		if term.Equal(next, t) {
			return t, n, nil
		}
		if maxSteps > 0 && n == maxSteps {
			return t, n, fmt.Errorf("%w after %d steps", errOutOfFuel, n)
		}
		t = next
		if onStep != nil {
			onStep(t)
		}
	}
}

func (a *app) runContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if a.cfg.Timeout > 0 {
		return context.WithTimeout(ctx, a.cfg.Timeout)
	}
	return context.WithCancel(ctx)
}

func (a *app) load(path string) (term.Term, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if a.cfg.DeBruijn {
		return term.Parse(strings.TrimSpace(string(b)))
	}
	return parseNamed(string(b))
}

// each loads every file and runs f on its term, with at most cfg.Jobs files
// in flight. Outputs are written in argument order once all have finished.
func (a *app) each(cmd *cobra.Command, paths []string, f func(ctx context.Context, t term.Term) (string, error)) error {
	ctx, cancel := a.runContext(cmd)
	defer cancel()

	out := make([]string, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Jobs)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			t, err := a.load(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			a.log.Debug("loaded", zap.String("file", path), zap.Int("size", term.Size(t)))
			if free := term.FreeIndices(t); len(free) > 0 {
				a.log.Warn("open term", zap.String("file", path), zap.Ints("free", free))
			}
			s, err := f(ctx, t)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			out[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	for _, s := range out {
		fmt.Fprintln(w, s)
	}
	return nil
}

func (a *app) normalize(cmd *cobra.Command, paths []string) error {
	return a.each(cmd, paths, func(ctx context.Context, t term.Term) (string, error) {
		n, steps, err := reduce(ctx, t, a.cfg.MaxSteps, nil)
		if err != nil {
			return "", err
		}
		a.log.Debug("normalized", zap.Int("steps", steps), zap.Stringer("result", n))
		return n.String(), nil
	})
}

func (a *app) eval(cmd *cobra.Command, paths []string) error {
	return a.each(cmd, paths, func(ctx context.Context, t term.Term) (string, error) {
		r := eval.EvalEmpty(t)
		if !eval.IsNormalForm(r) {
			a.log.Debug("evaluation stuck on a redex", zap.Stringer("result", r))
		}
		return r.String(), nil
	})
}

func (a *app) normalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize file...",
		Short: "Reduce each program to normal form, one beta step at a time",
		Args:  cobra.MinimumNArgs(1),
		RunE:  a.normalize,
	}
}

func (a *app) evalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval file...",
		Short: "Evaluate each program call-by-value in the empty environment",
		Long: `Evaluate each program call-by-value in the empty environment.

Evaluation has no step limit: --max-steps does not apply, and a program
without a value does not terminate.`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.eval,
	}
}

func (a *app) traceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trace file",
		Short: "Print every beta step on the way to normal form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.load(args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			ctx, cancel := a.runContext(cmd)
			defer cancel()
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, t)
			_, _, err = reduce(ctx, t, a.cfg.MaxSteps, func(t term.Term) {
				fmt.Fprintln(w, t)
			})
			return err
		},
	}
}

var claims = []string{"alpha", "beta", "eval", "normalize", "consistency"}

func (a *app) proveCmd() *cobra.Command {
	var (
		claimNames []string
		against    string
		conclusion string
	)
	cmd := &cobra.Command{
		Use:   "prove file",
		Short: "Attach proofs to a program and print it as YAML",
		Long: `Attach proofs to a program and print the proven expression as YAML.

Claims: ` + strings.Join(claims, ", ") + `. More than one claim yields a
composite proof. The alpha claim compares the program with --against.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.load(args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			ctx, cancel := a.runContext(cmd)
			defer cancel()
			proofs := make([]proof.Proof, 0, len(claimNames))
			for _, c := range lo.Uniq(claimNames) {
				p, err := a.prove(ctx, c, t, against)
				if err != nil {
					return fmt.Errorf("%s: %s: %w", args[0], c, err)
				}
				proofs = append(proofs, p)
			}
			var p proof.Proof
			if len(proofs) == 1 {
				p = proofs[0]
			} else {
				p = proof.Compose(conclusion, proofs...)
			}
			b, err := proof.MarshalProven(proof.Attach(t, p))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
	cmd.Flags().StringSliceVarP(&claimNames, "claim", "c", []string{"normalize"}, "claims to prove: "+strings.Join(claims, "|"))
	cmd.Flags().StringVar(&against, "against", "", "file holding the program an alpha claim compares with")
	cmd.Flags().StringVar(&conclusion, "conclusion", "", "label for a composite proof")
	return cmd
}

func (a *app) prove(ctx context.Context, claim string, t term.Term, against string) (proof.Proof, error) {
	switch claim {
	case "alpha":
		if against == "" {
			return nil, fmt.Errorf("--against is required")
		}
		other, err := a.load(against)
		if err != nil {
			return nil, err
		}
		return proof.ProveAlphaEquivalence(t, other)
	case "beta":
		return proof.ProveBetaReduction(t), nil
	case "eval":
		return proof.ProveEvaluation(t), nil
	case "normalize":
		if _, _, err := reduce(ctx, t, a.cfg.MaxSteps, nil); err != nil {
			return nil, err
		}
		return proof.ProveNormalization(t), nil
	case "consistency":
		return proof.ProveConsistency(), nil
	}
	return nil, fmt.Errorf("unknown claim %q", claim)
}

var errInvalid = errors.New("proof does not hold")

func (a *app) verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify proof.yaml...",
		Short: "Recheck proven expressions written by prove",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.runContext(cmd)
			defer cancel()
			checker := proof.NewChecker(a.log)
			w := cmd.OutOrStdout()
			var errs []error
			for _, path := range args {
				ok, err := a.verify(ctx, checker, path)
				switch {
				case err != nil:
					errs = append(errs, fmt.Errorf("%s: %w", path, err))
					fmt.Fprintf(w, "%s: error\n", path)
				case ok:
					fmt.Fprintf(w, "%s: valid\n", path)
				default:
					errs = append(errs, fmt.Errorf("%s: %w", path, errInvalid))
					fmt.Fprintf(w, "%s: invalid\n", path)
				}
			}
			return errors.Join(errs...)
		},
	}
}

func (a *app) verify(ctx context.Context, checker *proof.Checker, path string) (bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	pe, err := proof.UnmarshalProven(b)
	if err != nil {
		return false, err
	}
	// Rechecking a normalization claim reduces the term to normal form, which
	// need not exist for a forged proof. Find out under the step budget first.
	if needsNormalForm(pe.Proof) {
		if _, _, err := reduce(ctx, pe.Expr, a.cfg.MaxSteps, nil); err != nil {
			return false, err
		}
	}
	return checker.Verify(pe.Proof, pe.Expr), nil
}

func needsNormalForm(p proof.Proof) bool {
	switch p := p.(type) {
	case proof.Normalization:
		return true
	case proof.Composite:
		return lo.SomeBy(p.Proofs, needsNormalForm)
	}
	return false
}

func (a *app) selfcheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "selfcheck",
		Short: "Run the kernel consistency battery",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := kernel.SelfCheck(); err != nil {
				return err
			}
			_, err := io.WriteString(cmd.OutOrStdout(), "kernel consistent\n")
			return err
		},
	}
}
