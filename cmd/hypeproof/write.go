package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var (
	writeInputFile string
	writeFormat    string
	writeTone      string
	writeAudience  string
)

var writeCmd = &cobra.Command{
	Use:   "write [task]",
	Short: "Draft content from analysis data",
	Long: `Draft content from analysis data.

Supported formats: article, podcast_script, documentation.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.checkProvider(); err != nil {
			return err
		}

		task := strings.Join(args, " ")

		data := map[string]any{
			"format":   writeFormat,
			"tone":     writeTone,
			"audience": writeAudience,
		}
		if err := loadDataFile(data, "analysis", writeInputFile); err != nil {
			return err
		}

		runner, err := app.Agents.Get("writing")
		if err != nil {
			return err
		}

		result := runner.Run(cmd.Context(), task, data)
		recordResult(app, "writing", result)
		logUsage(app)

		return outputResult(result)
	},
}

func init() {
	writeCmd.Flags().StringVar(
		&writeInputFile, "input", "", "JSON file with analysis data to write from",
	)
	writeCmd.Flags().StringVar(
		&writeFormat, "format", "article", "content format: article, podcast_script, documentation",
	)
	writeCmd.Flags().StringVar(
		&writeTone, "tone", "professional", "content tone: professional, casual, technical, engaging",
	)
	writeCmd.Flags().StringVar(
		&writeAudience, "audience", "technical", "target audience: technical, general, executive",
	)
}
