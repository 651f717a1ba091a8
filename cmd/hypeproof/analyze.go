package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var analyzeInputFile string

var analyzeCmd = &cobra.Command{
	Use:   "analyze [request]",
	Short: "Analyze research data into themes, insights, and recommendations",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.checkProvider(); err != nil {
			return err
		}

		task := strings.Join(args, " ")

		data := make(map[string]any)
		if err := loadDataFile(data, "research", analyzeInputFile); err != nil {
			return err
		}

		runner, err := app.Agents.Get("analysis")
		if err != nil {
			return err
		}

		result := runner.Run(cmd.Context(), task, data)
		recordResult(app, "analysis", result)
		logUsage(app)

		return outputResult(result)
	},
}

func init() {
	analyzeCmd.Flags().StringVar(
		&analyzeInputFile, "input", "", "JSON file with research findings to analyze",
	)
}
