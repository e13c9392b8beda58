// Command untyped reads programs in the untyped lambda calculus, lowers them
// to de Bruijn kernel terms, and reduces, evaluates, proves or verifies them.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var errUsage = errors.New("usage: untyped ( --small-step | --big-step ) file")

type app struct {
	cfg        Config
	flags      Config
	configPath string
	smallStep  bool
	bigStep    bool
	log        *zap.Logger
	ownLog     bool
}

func newRootCmd(log *zap.Logger) *cobra.Command {
	a := &app{log: log}
	root := &cobra.Command{
		Use:   "untyped ( --small-step | --big-step ) file",
		Short: "untyped lambda calculus on a verified de Bruijn kernel",
		Long: `untyped is an implementation of the untyped lambda calculus (TAPL chapters 5-7).

Programs name their binders (λx. x, or \x. x); they are lowered to de Bruijn
terms and handed to the kernel. --small-step normalizes with single beta steps,
--big-step evaluates call-by-value to a value or closure.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.ownLog {
				_ = a.log.Sync()
			}
		},
		Args: cobra.ArbitraryArgs,
		RunE: a.runRoot,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML file with default settings")
	pf.BoolVarP(&a.flags.Verbose, "verbose", "v", false, "log at debug level")
	pf.BoolVar(&a.flags.DeBruijn, "debruijn", false, "read input in kernel display form (λx.0, (0 1)) instead of named syntax")
	pf.IntVar(&a.flags.MaxSteps, "max-steps", 0, "beta steps allowed per term, 0 for no limit (default from config: 100000)")
	pf.DurationVar(&a.flags.Timeout, "timeout", 0, "wall clock limit for a whole run, 0 for none")
	pf.IntVarP(&a.flags.Jobs, "jobs", "j", 0, "files processed in parallel (default GOMAXPROCS)")

	root.Flags().BoolVar(&a.smallStep, "small-step", false, "run small-step evaluator")
	root.Flags().BoolVar(&a.bigStep, "big-step", false, "run big-step evaluator")

	root.AddCommand(
		a.normalizeCmd(),
		a.evalCmd(),
		a.traceCmd(),
		a.proveCmd(),
		a.verifyCmd(),
		a.selfcheckCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	a.cfg = defaultConfig()
	if a.configPath != "" {
		if err := loadConfig(a.configPath, &a.cfg); err != nil {
			return err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("verbose") {
		a.cfg.Verbose = a.flags.Verbose
	}
	if flags.Changed("debruijn") {
		a.cfg.DeBruijn = a.flags.DeBruijn
	}
	if flags.Changed("max-steps") {
		a.cfg.MaxSteps = a.flags.MaxSteps
	}
	if flags.Changed("timeout") {
		a.cfg.Timeout = a.flags.Timeout
	}
	if flags.Changed("jobs") {
		a.cfg.Jobs = a.flags.Jobs
	}
	if err := a.cfg.validate(); err != nil {
		return err
	}

	if a.log == nil {
		config := zap.NewProductionConfig()
		if a.cfg.Verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		log, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		a.log = log
		a.ownLog = true
	}
	a.log.Debug("configured",
		zap.Int("max_steps", a.cfg.MaxSteps),
		zap.Duration("timeout", a.cfg.Timeout),
		zap.Int("jobs", a.cfg.Jobs),
		zap.Bool("debruijn", a.cfg.DeBruijn))
	return nil
}

func (a *app) runRoot(cmd *cobra.Command, args []string) error {
	if a.smallStep == a.bigStep || len(args) != 1 {
		_ = cmd.Usage()
		return errUsage
	}
	if a.smallStep {
		return a.normalize(cmd, args)
	}
	return a.eval(cmd, args)
}

func main() {
	err := newRootCmd(nil).Execute()
	if errors.Is(err, errUsage) {
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
