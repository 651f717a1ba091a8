package main

import (
	"github.com/spf13/cobra"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Manage configured skills",
}

var skillsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured skills",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		return output(app.SkillCfgs)
	},
}

func init() {
	skillsCmd.AddCommand(skillsListCmd)
}
