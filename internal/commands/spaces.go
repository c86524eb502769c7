package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSpacesCommand(configPath *string, verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "spaces <account-uid>",
		Short: "List savings spaces for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(*configPath, *verbose)
			if err != nil {
				return err
			}

			spaces, err := sess.client.Spaces(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			for _, sg := range spaces {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-12s %s\n", sg.SavingsGoalUid, sg.TotalSaved, sg.Name)
			}
			return nil
		},
	}
}
