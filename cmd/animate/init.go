package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/animate/internal/config"
	"github.com/vango-dev/animate/internal/errors"
)

func initCmd(configDir *string) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default animate.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.Exists(*configDir) && !force {
				return errors.New("A060").
					WithDetail("animate.json already exists in " + *configDir).
					WithSuggestion("Pass --force to overwrite it")
			}
			path := filepath.Join(*configDir, config.ConfigFileName)
			if err := config.New().SaveTo(path); err != nil {
				return err
			}
			success("Wrote %s", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing animate.json")

	return cmd
}
