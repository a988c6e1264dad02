package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vitaliisemenov/rulebox/rulebox"
)

var classifyOutput string

func init() {
	classifyCmd.Flags().StringVarP(&classifyOutput, "output", "o", "text", "output format: text or json")
}

var classifyCmd = &cobra.Command{
	Use:   "classify [text]",
	Short: "Assign labels to a single piece of text",
	Args:  cobra.ExactArgs(1),
	RunE:  runClassify,
}

func runClassify(cmd *cobra.Command, args []string) error {
	if cfg.Rules.Path == "" {
		return fmt.Errorf("no rule catalog: pass --rules or set rules.path in --config")
	}

	cat, err := rulebox.FromPath(cfg.Rules.Path)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	labels := cat.AssignLabels(args[0])
	logger.Debug("classified", "input_len", len(args[0]), "labels", labels)

	switch classifyOutput {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(labels)
	default:
		if len(labels) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "(no labels)")
			return nil
		}
		for _, l := range labels {
			fmt.Fprintln(cmd.OutOrStdout(), l)
		}
		return nil
	}
}
