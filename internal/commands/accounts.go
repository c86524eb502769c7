package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAccountsCommand(configPath *string, verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List accounts visible to the token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(*configPath, *verbose)
			if err != nil {
				return err
			}

			accounts, err := sess.client.Accounts(cmd.Context())
			if err != nil {
				return err
			}

			for _, a := range accounts {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-10s %s  %s\n", a.AccountUid, a.Currency, a.AccountType, a.DisplayName())
			}
			return nil
		},
	}
}
