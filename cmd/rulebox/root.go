package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vitaliisemenov/rulebox/internal/rbconfig"
	"github.com/vitaliisemenov/rulebox/internal/rblog"
)

var (
	version = "dev"

	cfgFile   string
	rulesPath string
	logger    *slog.Logger
	cfg       *rbconfig.Config
)

var rootCmd = &cobra.Command{
	Use:   "rulebox",
	Short: "Rule-driven text classifier",
	Long: `rulebox evaluates boolean combinations of regular expressions over a
named label catalog, either for a single piece of text or for a batch of
inputs read from a file.`,
	Version:           version,
	PersistentPreRunE: loadRuntimeConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&rulesPath, "rules", "", "path to the JSON rule catalog (overrides config file)")

	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(validateCmd)
}

func loadRuntimeConfig(cmd *cobra.Command, args []string) error {
	loaded, err := rbconfig.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if rulesPath != "" {
		loaded.Rules.Path = rulesPath
	}
	cfg = loaded

	logger = rblog.New(rblog.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		Filename:   cfg.Log.Filename,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})
	return nil
}
