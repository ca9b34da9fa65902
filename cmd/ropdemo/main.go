package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ib-77/outcome/internal/config"
	"github.com/ib-77/outcome/internal/demo"
	"github.com/ib-77/outcome/internal/logging"
	"github.com/ib-77/outcome/pkg/rop/scratch"
)

var (
	configPath string
	verbose    bool
	workers    int
	scratchDir string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ropdemo",
	Short: "Walk the success and failure tracks of the outcome library",
	Long: `ropdemo runs small scenarios over Option and Outcome values: lookups,
fallible arithmetic, error-domain conversion, isolated panics, filesystem
steps, ownership-checked views and a concurrent pipeline.

Every scenario reports both tracks and checks them against the expected
result; a mismatch makes the command fail.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("workers") {
			cfg.Workers = workers
		}
		if cmd.Flags().Changed("scratch-dir") {
			cfg.ScratchDir = scratchDir
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, err = logging.New(cfg.Logging, verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available scenarios",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, s := range demo.All() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", s.Name, s.Summary)
		}
	},
}

var runCmd = &cobra.Command{
	Use:   "run [scenario...]",
	Short: "Run scenarios, the configured ones when none are named",
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return demo.Names(), cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return runScenarios(ctx, cmd, args)
	},
}

func runScenarios(ctx context.Context, cmd *cobra.Command, names []string) error {
	fs := scratch.Memory()
	if cfg.ScratchDir != "" {
		fs = scratch.OS(cfg.ScratchDir)
	}
	if len(names) == 0 {
		names = cfg.Scenarios
	}

	env := demo.NewEnv(logger, fs, cmd.OutOrStdout())
	env.Workers = cfg.Workers
	env.Lines = cfg.Pipeline.Lines
	env.ProcessRemaining = cfg.Pipeline.ProcessRemaining

	logger.Info("Running scenarios",
		zap.Strings("scenarios", names),
		zap.Int("workers", cfg.Workers),
		zap.String("scratch", fs.Dir()))

	if err := demo.Run(ctx, env, names...); err != nil {
		return fmt.Errorf("scenarios failed:\n  %s", strings.ReplaceAll(err.Error(), "; ", "\n  "))
	}
	logger.Info("All scenarios passed")
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "ropdemo.yaml", "Config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().IntVarP(&workers, "workers", "w", 0, "Max concurrent units (overrides config)")
	rootCmd.PersistentFlags().StringVar(&scratchDir, "scratch-dir", "", "Directory for file scenarios (default: in-memory)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
