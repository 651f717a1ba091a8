package main

import (
	"github.com/spf13/cobra"
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "Manage configured agents",
}

var agentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured agents",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		type agentInfo struct {
			Name       string   `json:"name" yaml:"name"`
			Role       string   `json:"role" yaml:"role"`
			Tools      []string `json:"tools,omitempty" yaml:"tools,omitempty"`
			Model      string   `json:"model,omitempty" yaml:"model,omitempty"`
			MaxRetries int      `json:"max_retries" yaml:"max_retries"`
			Timeout    int      `json:"timeout_seconds" yaml:"timeout_seconds"`
		}

		infos := make([]agentInfo, 0, len(app.AgentCfgs))
		for _, cfg := range app.AgentCfgs {
			infos = append(infos, agentInfo{
				Name:       cfg.Name,
				Role:       cfg.Role,
				Tools:      cfg.Tools,
				Model:      cfg.Model,
				MaxRetries: cfg.MaxRetries,
				Timeout:    cfg.TimeoutSeconds,
			})
		}

		return output(infos)
	},
}

func init() {
	agentsCmd.AddCommand(agentsListCmd)
}
