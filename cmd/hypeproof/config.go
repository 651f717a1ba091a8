package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jayleekr/hypeprooflab/internal/config"
	"github.com/jayleekr/hypeprooflab/internal/home"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the home directory with default configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := home.New(homeDir)
		if err != nil {
			return err
		}

		if err := dir.EnsureExists(); err != nil {
			return err
		}

		wrote := make([]string, 0, 3)
		if !dir.ConfigExists() {
			if err := config.WriteDefault(dir.ConfigPath()); err != nil {
				return err
			}
			wrote = append(wrote, dir.ConfigPath())
		}
		if !dir.AgentsExists() {
			if err := config.WriteDefaultAgents(dir.AgentsPath()); err != nil {
				return err
			}
			wrote = append(wrote, dir.AgentsPath())
		}
		if !dir.SkillsExists() {
			if err := config.WriteDefaultSkills(dir.SkillsPath()); err != nil {
				return err
			}
			wrote = append(wrote, dir.SkillsPath())
		}

		if len(wrote) == 0 {
			fmt.Printf("configuration already present in %s\n", dir.Path())
			return nil
		}
		for _, path := range wrote {
			fmt.Printf("wrote %s\n", path)
		}
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		return output(app.Config.Get())
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
