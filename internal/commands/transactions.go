package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/spacesweep-dev/spacesweep/internal/eligibility"
)

func newTransactionsCommand(configPath *string, verbose *bool) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "transactions <account-uid>",
		Short: "List recent transactions for an account",
		Long:  "Lists transactions from the fetch window, narrowed to reconciliation candidates unless --all is given.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(*configPath, *verbose)
			if err != nil {
				return err
			}

			now := time.Now()
			min := now.AddDate(0, 0, -sess.cfg.WindowDays())
			items, err := sess.client.Transactions(cmd.Context(), args[0], min, now)
			if err != nil {
				return err
			}
			if !all {
				items = eligibility.EligibleTransactions(items)
			}

			if len(items) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No eligible transactions found in the last %d days\n", sess.cfg.WindowDays())
				return nil
			}
			for _, txn := range items {
				name := txn.CounterPartyName
				if name == "" {
					name = "Unknown"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %-10s %-8s %s\n",
					txn.FeedItemUid, txn.TransactionTime.Format("2006-01-02"), txn.Amount, txn.Status, name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include ineligible transactions")

	return cmd
}
