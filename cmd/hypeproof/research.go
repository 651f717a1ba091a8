package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var researchCmd = &cobra.Command{
	Use:   "research [topic]",
	Short: "Research a topic and report findings with sources",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.checkProvider(); err != nil {
			return err
		}

		topic := strings.Join(args, " ")

		runner, err := app.Agents.Get("research")
		if err != nil {
			return err
		}

		result := runner.Run(cmd.Context(), topic, nil)
		recordResult(app, "research", result)
		logUsage(app)

		return outputResult(result)
	},
}
