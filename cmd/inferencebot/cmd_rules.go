package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"inferencebot/internal/checker"
	"inferencebot/internal/logic"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the registered consistency rule slices",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := checker.NewRegistry(logic.DefaultChainerConfig(), logger)
		for _, c := range registry {
			fmt.Fprintf(cmd.OutOrStdout(), "%-28s %d rule(s)\n", c.Name, c.RuleCount())
		}
		return nil
	},
}
