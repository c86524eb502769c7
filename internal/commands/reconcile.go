package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/spacesweep-dev/spacesweep/internal/auditlog"
	"github.com/spacesweep-dev/spacesweep/internal/reconcile"
)

func newReconcileCommand(configPath *string, verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Interactively reconcile recent transactions against spaces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(*configPath, *verbose)
			if err != nil {
				return err
			}

			wf := reconcile.New(sess.client)
			wf.SetWindow(time.Duration(sess.cfg.WindowDays()) * 24 * time.Hour)
			wf.SetLogger(sess.log)
			if sess.cfg.Audit.Dir != "" {
				wf.SetAudit(auditlog.Open(sess.cfg.Audit.Dir))
			}

			r := &runner{
				in:   bufio.NewScanner(cmd.InOrStdin()),
				out:  cmd.OutOrStdout(),
				wf:   wf,
				days: sess.cfg.WindowDays(),
			}
			return r.run(cmd.Context())
		},
	}
}

// runner is the terminal front-end of the workflow: it renders the current
// state and translates keystrokes into workflow calls. All business rules
// live in the reconcile package.
type runner struct {
	in   *bufio.Scanner
	out  io.Writer
	wf   *reconcile.Workflow
	days int
}

func (r *runner) run(ctx context.Context) error {
	if err := r.wf.LoadAccounts(ctx); err != nil {
		return err
	}

	for {
		var done bool
		var err error
		switch r.wf.State() {
		case reconcile.StateSelectAccount:
			done, err = r.stepSelectAccount(ctx)
		case reconcile.StateSelectTransaction:
			done, err = r.stepSelectTransaction(ctx)
		case reconcile.StateSelectSpace:
			done, err = r.stepSelectSpace(ctx)
		default:
			return fmt.Errorf("unexpected workflow state %q", r.wf.State())
		}
		if err != nil {
			r.printError(err)
		}
		if done {
			return nil
		}
	}
}

func (r *runner) stepSelectAccount(ctx context.Context) (bool, error) {
	accounts := r.wf.Accounts()
	fmt.Fprintf(r.out, "\nSelect account:\n")
	for i, a := range accounts {
		fmt.Fprintf(r.out, "  %d) %s (%s, %s)\n", i+1, a.DisplayName(), a.AccountType, a.Currency)
	}

	choice, ok := r.prompt("account # (q to quit)")
	if !ok || choice == "q" {
		return true, nil
	}
	idx, err := parseIndex(choice, len(accounts))
	if err != nil {
		return false, err
	}
	return false, r.wf.SelectAccount(ctx, accounts[idx].AccountUid)
}

func (r *runner) stepSelectTransaction(ctx context.Context) (bool, error) {
	candidates := r.wf.Candidates()
	if len(candidates) == 0 {
		fmt.Fprintf(r.out, "\nNo eligible transactions found in the last %d days\n", r.days)
	} else {
		fmt.Fprintf(r.out, "\nSelect transaction (%d available):\n", len(candidates))
		for i, txn := range candidates {
			name := txn.CounterPartyName
			if name == "" {
				name = "Unknown"
			}
			fmt.Fprintf(r.out, "  %d) %s  %-10s %s (%s)\n",
				i+1, txn.TransactionTime.Format("2006-01-02"), txn.Amount, name, txn.Reference)
		}
	}

	choice, ok := r.prompt("transaction # (r to reload, b for accounts, q to quit)")
	if !ok || choice == "q" {
		return true, nil
	}
	switch choice {
	case "r":
		return false, r.wf.ReloadTransactions(ctx)
	case "b":
		r.wf.Reset()
		return false, r.wf.LoadAccounts(ctx)
	}

	idx, err := parseIndex(choice, len(candidates))
	if err != nil {
		return false, err
	}
	if err := r.wf.SelectTransaction(candidates[idx].FeedItemUid); err != nil {
		return false, err
	}

	action, ok := r.prompt("action: [c]ategorize, [i]gnore, [b]ack")
	if !ok {
		return true, nil
	}
	switch action {
	case "c":
		return false, r.wf.Categorize(ctx)
	case "i":
		if err := r.wf.Ignore(ctx); err != nil {
			return false, err
		}
		fmt.Fprintf(r.out, "Transaction marked as handled.\n")
		return false, nil
	case "b":
		return false, nil
	}
	return false, fmt.Errorf("unknown action %q", action)
}

func (r *runner) stepSelectSpace(ctx context.Context) (bool, error) {
	txn, _ := r.wf.Selected()
	spaces := r.wf.Spaces()
	fundable := r.wf.FundableSpaces()
	fundableUids := make(map[string]bool, len(fundable))
	for _, sg := range fundable {
		fundableUids[sg.SavingsGoalUid] = true
	}

	fmt.Fprintf(r.out, "\nCover %s from which space?\n", txn.Amount)
	for i, sg := range spaces {
		marker := ""
		if !fundableUids[sg.SavingsGoalUid] {
			marker = "  [insufficient funds]"
		}
		fmt.Fprintf(r.out, "  %d) %-20s %s%s\n", i+1, sg.Name, sg.TotalSaved, marker)
	}

	choice, ok := r.prompt("space # (b for transactions, q to quit)")
	if !ok || choice == "q" {
		return true, nil
	}
	if choice == "b" {
		return false, r.wf.Back()
	}

	idx, err := parseIndex(choice, len(spaces))
	if err != nil {
		return false, err
	}
	if err := r.wf.Transfer(ctx, spaces[idx].SavingsGoalUid); err != nil {
		return false, err
	}
	fmt.Fprintf(r.out, "Transferred %s and marked the transaction as handled.\n", txn.Amount)
	return false, nil
}

func (r *runner) prompt(label string) (string, bool) {
	fmt.Fprintf(r.out, "%s> ", label)
	if !r.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(r.in.Text()), true
}

func (r *runner) printError(err error) {
	var postErr *reconcile.PostWithdrawMarkError
	if errors.As(err, &postErr) {
		fmt.Fprintf(r.out, "\nWARNING: %s of funds were withdrawn from space %s, but the transaction %s could not be marked as handled.\n",
			postErr.Amount, postErr.SavingsGoalUid, postErr.FeedItemUid)
		fmt.Fprintf(r.out, "It will be offered again; reconcile it manually or ignore it. Details: %v\n", postErr.Err)
		return
	}
	fmt.Fprintf(r.out, "Error: %v\n", err)
}

func parseIndex(choice string, length int) (int, error) {
	n, err := strconv.Atoi(choice)
	if err != nil || n < 1 || n > length {
		return 0, fmt.Errorf("invalid selection %q", choice)
	}
	return n - 1, nil
}
