// Package cmd provides the root command and CLI setup for gooze-repair.
package cmd

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/gooze-repair/internal/adapter"
	"github.com/mouse-blink/gooze-repair/internal/config"
	"github.com/mouse-blink/gooze-repair/internal/controller"
	"github.com/mouse-blink/gooze-repair/internal/domain"
	"github.com/mouse-blink/gooze-repair/internal/logging"
	"github.com/mouse-blink/gooze-repair/internal/oracle"
)

// Persistent flags shared by every subcommand that touches the oracle,
// matching the teacher's package-level flag vars wired in cmd/root.go.
var (
	compilerPathFlag string
	holeLevelFlag    int
	depthFlag        int
	debugFlag        bool
	checkTimeoutFlag int64
	seedFlag         uint64
)

var ui controller.UI

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gooze-repair",
		Short: "Typed-hole program repair and synthesis",
		Long: `gooze-repair searches for well-typed, property-satisfying fixes and
completions of a typed-hole program, using an external compiler as an
oracle for typing and hole-fit enumeration.

Subcommands:
  repair   search for a fix to a broken program
  synth    synthesize a completion for a typed hole, no GA
  list     estimate search cost without running property checks
  view     replay a previously saved report
  version  print the build version`,
	}

	cmd.PersistentFlags().StringVar(&compilerPathFlag, "compiler", "", "path to the external compiler oracle binary (overridable by GOOZE_REPAIR_COMPILER_PATH)")
	cmd.PersistentFlags().IntVar(&holeLevelFlag, "fholes", 2, "top-level hole nesting depth")
	cmd.PersistentFlags().IntVar(&depthFlag, "fdepth", 1, "candidate-generator recursion depth")
	cmd.PersistentFlags().BoolVar(&debugFlag, "fdebug", false, "verbose trace logging")
	cmd.PersistentFlags().Int64Var(&checkTimeoutFlag, "check-timeout-ms", 1000, "per-check wall-clock budget in milliseconds")
	cmd.PersistentFlags().Uint64Var(&seedFlag, "seed", 0, "PRNG seed (0 picks an arbitrary fixed seed)")

	return cmd
}

func init() {
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	rootCmd.AddCommand(newRepairCmd())
	rootCmd.AddCommand(newSynthCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newViewCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// baseConfig resolves the persistent flags plus environment overrides into
// a validated config.Config, shared by repair/synth/list.
func baseConfig() (config.Config, error) {
	cfg := config.Default()
	cfg.CompilerPath = compilerPathFlag
	cfg.HoleLevel = holeLevelFlag
	cfg.Depth = depthFlag
	cfg.Debug = debugFlag
	cfg.Seed = seedFlag

	if checkTimeoutFlag > 0 {
		cfg.CheckTimeout = msToDuration(checkTimeoutFlag)
	}

	cfg = cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

// buildDriver wires an oracle, check runner, and logger into a fresh
// domain.Driver, matching the teacher's cmd/root.go init() pattern of
// constructing every adapter once and handing them to the domain layer -
// generalized here to run per-invocation (after flags are parsed) instead
// of at package init, since the driver's config depends on parsed flags.
func buildDriver(cfg config.Config) *domain.Driver {
	log := logging.New(slog.LevelInfo, cfg.Debug)

	oc := oracle.NewProcessOracle()
	runner := adapter.NewSandboxedCheckRunner()

	ocfg := oracle.Config{
		CompilerPath: cfg.CompilerPath,
		HoleLevel:    cfg.HoleLevel,
		CheckTimeout: cfg.CheckTimeout,
		Debug:        cfg.Debug,
	}

	return domain.NewDriver(oc, ocfg, runner, cfg.Seed, log)
}

func msToDuration(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
