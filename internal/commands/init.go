package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spacesweep-dev/spacesweep/internal/config"
)

func newInitCommand() *cobra.Command {
	var environment string
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default spacesweep.yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "spacesweep.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			return runInit(cmd, path, environment, force)
		},
	}

	cmd.Flags().StringVar(&environment, "environment", "live", "API environment (live or sandbox)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	return cmd
}

func runInit(cmd *cobra.Command, path, environment string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", path, err)
		}
	}

	cfg := config.Default(environment)
	if err := config.Save(path, cfg); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	fmt.Fprintf(cmd.OutOrStdout(), "Set the API token in $%s. Required scopes: account:read, account-list:read, transaction:read, space:read, transaction:edit, savings-goal-transfer:create\n", cfg.API.TokenEnv)
	return nil
}
