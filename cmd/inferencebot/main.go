// Package main implements the InferenceBot CLI.
//
// InferenceBot scrapes biography pages from a wikipast-style wiki,
// feeds the extracted events through a forward-chaining inference
// engine armed with temporal-consistency rules, and reports the
// contradictions it finds (a death before a birth, an election after a
// death, two conflicting birth dates...).
//
// Command implementations are split across files:
//   - main.go       - entry point, rootCmd, global flags
//   - cmd_check.go  - checkCmd: scrape, infer, report
//   - cmd_rules.go  - rulesCmd: list the registered rule slices
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"inferencebot/internal/config"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Loaded in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "inferencebot",
	Short: "InferenceBot - temporal consistency checker for biographical wikis",
	Long: `InferenceBot scrapes wiki pages describing historical persons,
converts the biographical events into logical facts and runs a
forward-chaining inference engine over a temporal-consistency
rulebase. Every rule that fires is a real-world contradiction, written
back to the wiki as a summary report.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		zapCfg := zap.NewProductionConfig()
		if cfg.Logging.Format == "console" {
			zapCfg = zap.NewDevelopmentConfig()
		}
		level := cfg.Logging.Level
		if verbose {
			level = "debug"
		}
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", level, err)
		}
		zapCfg.Level = zap.NewAtomicLevelAt(parsed)

		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "inferencebot.yaml", "path to the configuration file")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(rulesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
