package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jayleekr/hypeprooflab/internal/agent"
	"github.com/jayleekr/hypeprooflab/internal/agents/writing"
)

var (
	produceSkill    string
	produceFormat   string
	produceTone     string
	produceAudience string
	produceSave     bool
)

var produceCmd = &cobra.Command{
	Use:   "produce [topic]",
	Short: "Run a full skill: research, analyze, and draft content",
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

		skillCfg, err := app.findSkill(produceSkill)
		if err != nil {
			return err
		}

		data := map[string]any{
			"format":   produceFormat,
			"tone":     produceTone,
			"audience": produceAudience,
		}

		result, err := app.Skills.Run(cmd.Context(), skillCfg, topic, data)
		if err != nil {
			return err
		}

		for _, name := range result.Order {
			recordResult(app, name, result.Steps[name])
		}

		byAgent := app.Metrics.SummarizeByAgent()
		for _, name := range result.Order {
			s := byAgent[name]
			app.Logger.Info("agent usage",
				"agent", name,
				"total_tokens", s.TotalTokens,
				"cost_usd", s.CostUSD,
			)
		}
		logUsage(app)

		if produceSave && result.Ok() {
			if path, err := saveDraft(app, topic, result.Steps); err != nil {
				app.Logger.Warn("failed to save draft", "error", err)
			} else if path != "" {
				app.Logger.Info("draft saved", "path", path)
			}
		}

		if err := output(result); err != nil {
			return err
		}
		return runError(result.Ok(), result.ErrorMessage)
	},
}

// saveDraft writes the writing step's content into the drafts directory.
// Returns an empty path when the skill produced no writing output.
func saveDraft(app *App, topic string, steps map[string]*agent.Result) (string, error) {
	res, ok := steps["writing"]
	if !ok || !res.Ok() {
		return "", nil
	}

	content, ok := res.Output.(*writing.Result)
	if !ok {
		return "", fmt.Errorf("unexpected writing output type %T", res.Output)
	}

	if err := app.Home.EnsureExists(); err != nil {
		return "", err
	}

	path := app.Home.DraftPath(topic, "md")
	if err := os.WriteFile(path, []byte(content.Content), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func init() {
	produceCmd.Flags().StringVar(
		&produceSkill, "skill", "produce", "skill to run",
	)
	produceCmd.Flags().StringVar(
		&produceFormat, "format", "article", "content format: article, podcast_script, documentation",
	)
	produceCmd.Flags().StringVar(
		&produceTone, "tone", "professional", "content tone",
	)
	produceCmd.Flags().StringVar(
		&produceAudience, "audience", "technical", "target audience",
	)
	produceCmd.Flags().BoolVar(
		&produceSave, "save", false, "save the produced content to the drafts directory",
	)
}
