// Package reconcile implements the reconciliation workflow: a small state
// machine that sequences reads and mutations against the remote ledger while
// enforcing eligibility, idempotent marking and withdraw-before-mark ordering.
package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/spacesweep-dev/spacesweep/internal/auditlog"
	"github.com/spacesweep-dev/spacesweep/internal/eligibility"
	"github.com/spacesweep-dev/spacesweep/internal/model"
	"github.com/spacesweep-dev/spacesweep/internal/note"
)

// Gateway is the remote ledger surface the workflow drives. starling.Client
// satisfies it; tests substitute a fake.
type Gateway interface {
	Accounts(ctx context.Context) ([]model.Account, error)
	Transactions(ctx context.Context, accountUid string, minTime, maxTime time.Time) ([]model.Transaction, error)
	Spaces(ctx context.Context, accountUid string) ([]model.SavingsGoal, error)
	AnnotateTransaction(ctx context.Context, accountUid, categoryUid, feedItemUid, userNote string) error
	WithdrawFromSpace(ctx context.Context, accountUid, savingsGoalUid, feedItemUid string, amount model.Amount) error
}

// AuditSink receives a record of every attempted mutation. Audit failures are
// logged, never propagated; the audit trail must not block the workflow.
type AuditSink interface {
	Append(entries ...auditlog.Entry) error
}

// State names the screen-sized steps of the workflow.
type State string

const (
	StateSetup             State = "setup"
	StateSelectAccount     State = "selectAccount"
	StateSelectTransaction State = "selectTransaction"
	StateSelectSpace       State = "selectSpace"
)

// DefaultWindow is how far back the transaction fetch reaches.
const DefaultWindow = 7 * 24 * time.Hour

// Workflow owns all session state: the loaded accounts, the candidate set of
// reconcilable transactions, the current selections and the loaded spaces.
// It is single-goroutine by contract; at most one gateway call is in flight
// at a time and every mutation of local state is a direct consequence of a
// completed call.
type Workflow struct {
	gateway Gateway
	log     zerolog.Logger
	audit   AuditSink
	window  time.Duration
	now     func() time.Time

	state      State
	inFlight   bool
	accounts   []model.Account
	account    *model.Account
	candidates []model.Transaction
	selected   *model.Transaction
	spaces     []model.SavingsGoal
}

// New creates a Workflow in the Setup state with a 7-day fetch window.
func New(gateway Gateway) *Workflow {
	return &Workflow{
		gateway: gateway,
		log:     zerolog.Nop(),
		window:  DefaultWindow,
		now:     time.Now,
		state:   StateSetup,
	}
}

// SetWindow overrides the transaction fetch window.
func (w *Workflow) SetWindow(d time.Duration) { w.window = d }

// SetClock overrides the time source, for tests.
func (w *Workflow) SetClock(now func() time.Time) { w.now = now }

// SetLogger attaches a logger.
func (w *Workflow) SetLogger(logger zerolog.Logger) { w.log = logger }

// SetAudit attaches an audit sink for mutation records.
func (w *Workflow) SetAudit(sink AuditSink) { w.audit = sink }

// State returns the current workflow state.
func (w *Workflow) State() State { return w.state }

// Accounts returns the loaded account list.
func (w *Workflow) Accounts() []model.Account { return w.accounts }

// Account returns the selected account, if any.
func (w *Workflow) Account() (model.Account, bool) {
	if w.account == nil {
		return model.Account{}, false
	}
	return *w.account, true
}

// Candidates returns the current in-memory candidate set.
func (w *Workflow) Candidates() []model.Transaction { return w.candidates }

// Selected returns the selected transaction, if any.
func (w *Workflow) Selected() (model.Transaction, bool) {
	if w.selected == nil {
		return model.Transaction{}, false
	}
	return *w.selected, true
}

// Spaces returns all loaded spaces, fundable or not, for display.
func (w *Workflow) Spaces() []model.SavingsGoal { return w.spaces }

// FundableSpaces returns the loaded spaces that can fund the selected
// transaction. Re-evaluated on every call; balances are fetched fresh.
func (w *Workflow) FundableSpaces() []model.SavingsGoal {
	if w.selected == nil {
		return nil
	}
	return eligibility.FundableSpaces(w.spaces, *w.selected)
}

// Reset discards all selections and candidate sets and returns to Setup.
// Available from any state; issues no remote calls.
func (w *Workflow) Reset() {
	w.state = StateSetup
	w.inFlight = false
	w.accounts = nil
	w.account = nil
	w.candidates = nil
	w.selected = nil
	w.spaces = nil
}

// LoadAccounts fetches the account list and moves to account selection.
func (w *Workflow) LoadAccounts(ctx context.Context) error {
	if err := w.requireState(StateSetup); err != nil {
		return err
	}
	if err := w.begin(); err != nil {
		return err
	}
	defer w.end()

	accounts, err := w.gateway.Accounts(ctx)
	if err != nil {
		return &FetchError{Op: "accounts", Err: err}
	}
	w.accounts = accounts
	w.state = StateSelectAccount
	return nil
}

// SelectAccount picks an account by UID, fetches its recent transactions and
// narrows them to reconciliation candidates. On fetch failure no selection is
// made and the workflow stays in account selection.
func (w *Workflow) SelectAccount(ctx context.Context, accountUid string) error {
	if err := w.requireState(StateSelectAccount); err != nil {
		return err
	}
	account, ok := w.findAccount(accountUid)
	if !ok {
		return fmt.Errorf("account %s: %w", accountUid, ErrUnknownAccount)
	}
	if err := w.begin(); err != nil {
		return err
	}
	defer w.end()

	candidates, err := w.fetchCandidates(ctx, accountUid)
	if err != nil {
		return err
	}
	w.account = &account
	w.candidates = candidates
	w.selected = nil
	w.state = StateSelectTransaction
	return nil
}

// ReloadTransactions refetches the candidate set for the current account,
// discarding local removals and any selection.
func (w *Workflow) ReloadTransactions(ctx context.Context) error {
	if err := w.requireState(StateSelectTransaction); err != nil {
		return err
	}
	if err := w.begin(); err != nil {
		return err
	}
	defer w.end()

	candidates, err := w.fetchCandidates(ctx, w.account.AccountUid)
	if err != nil {
		return err
	}
	w.candidates = candidates
	w.selected = nil
	return nil
}

// SelectTransaction picks a transaction from the candidate set. Local only.
func (w *Workflow) SelectTransaction(feedItemUid string) error {
	if err := w.requireState(StateSelectTransaction); err != nil {
		return err
	}
	for _, txn := range w.candidates {
		if txn.FeedItemUid == feedItemUid {
			selected := txn
			w.selected = &selected
			return nil
		}
	}
	return fmt.Errorf("transaction %s: %w", feedItemUid, ErrUnknownTransaction)
}

// Categorize fetches the account's spaces so the caller can choose one to
// fund the selected transaction.
func (w *Workflow) Categorize(ctx context.Context) error {
	if err := w.requireState(StateSelectTransaction); err != nil {
		return err
	}
	if w.selected == nil {
		return ErrNoTransactionSelected
	}
	if err := w.begin(); err != nil {
		return err
	}
	defer w.end()

	spaces, err := w.gateway.Spaces(ctx, w.account.AccountUid)
	if err != nil {
		return &FetchError{Op: "spaces", Err: err}
	}
	w.spaces = spaces
	w.state = StateSelectSpace
	return nil
}

// Back leaves space selection without mutating anything.
func (w *Workflow) Back() error {
	if err := w.requireState(StateSelectSpace); err != nil {
		return err
	}
	w.spaces = nil
	w.state = StateSelectTransaction
	return nil
}

// Ignore marks the selected transaction as reconciled without moving any
// funds. On failure the candidate set and the remote note are unchanged.
func (w *Workflow) Ignore(ctx context.Context) error {
	if err := w.requireState(StateSelectTransaction); err != nil {
		return err
	}
	if w.selected == nil {
		return ErrNoTransactionSelected
	}
	if err := w.begin(); err != nil {
		return err
	}
	defer w.end()

	if err := w.markReconciled(ctx); err != nil {
		return &MarkError{FeedItemUid: w.selected.FeedItemUid, Err: err}
	}
	return nil
}

// Transfer withdraws the transaction amount from the chosen space and then
// marks the transaction as reconciled, in that order. Funds must move before
// the marker is written so a failed withdrawal can never leave a false
// "handled" marker. A mark failure after a successful withdrawal is returned
// as *PostWithdrawMarkError and must be surfaced for manual reconciliation.
func (w *Workflow) Transfer(ctx context.Context, savingsGoalUid string) error {
	if err := w.requireState(StateSelectSpace); err != nil {
		return err
	}
	if w.selected == nil {
		return ErrNoTransactionSelected
	}
	space, ok := w.findSpace(savingsGoalUid)
	if !ok {
		return fmt.Errorf("space %s: %w", savingsGoalUid, ErrUnknownSpace)
	}
	if !eligibility.CanFund(space, *w.selected) {
		return fmt.Errorf("space %s balance %s vs %s: %w",
			savingsGoalUid, space.TotalSaved, w.selected.Amount, ErrSpaceNotFundable)
	}
	if err := w.begin(); err != nil {
		return err
	}
	defer w.end()

	txn := *w.selected
	err := w.gateway.WithdrawFromSpace(ctx, w.account.AccountUid, savingsGoalUid, txn.FeedItemUid, txn.Amount)
	w.recordWithdraw(savingsGoalUid, txn, err)
	if err != nil {
		return &WithdrawError{FeedItemUid: txn.FeedItemUid, SavingsGoalUid: savingsGoalUid, Err: err}
	}

	if err := w.markReconciled(ctx); err != nil {
		postErr := &PostWithdrawMarkError{
			FeedItemUid:    txn.FeedItemUid,
			SavingsGoalUid: savingsGoalUid,
			Amount:         txn.Amount,
			Err:            err,
		}
		w.log.Error().
			Str("account_uid", w.account.AccountUid).
			Str("feed_item_uid", txn.FeedItemUid).
			Str("savings_goal_uid", savingsGoalUid).
			Str("amount", txn.Amount.String()).
			Err(err).
			Msg("funds withdrawn but marking failed; manual reconciliation required")
		return postErr
	}
	return nil
}

// markReconciled writes the note marker and, on success, removes the
// transaction from the candidate set, clears the selection and returns the
// workflow to transaction selection.
func (w *Workflow) markReconciled(ctx context.Context) error {
	txn := *w.selected
	newNote := note.WithMarker(txn.UserNote)

	err := w.gateway.AnnotateTransaction(ctx, w.account.AccountUid, txn.CategoryUid, txn.FeedItemUid, newNote)
	w.recordMark(txn, err)
	if err != nil {
		return err
	}

	w.removeCandidate(txn.FeedItemUid)
	w.selected = nil
	w.spaces = nil
	w.state = StateSelectTransaction
	return nil
}

func (w *Workflow) fetchCandidates(ctx context.Context, accountUid string) ([]model.Transaction, error) {
	max := w.now()
	min := max.Add(-w.window)
	items, err := w.gateway.Transactions(ctx, accountUid, min, max)
	if err != nil {
		return nil, &FetchError{Op: "transactions", Err: err}
	}
	return eligibility.EligibleTransactions(items), nil
}

func (w *Workflow) removeCandidate(feedItemUid string) {
	remaining := w.candidates[:0]
	for _, txn := range w.candidates {
		if txn.FeedItemUid != feedItemUid {
			remaining = append(remaining, txn)
		}
	}
	w.candidates = remaining
}

func (w *Workflow) findAccount(accountUid string) (model.Account, bool) {
	for _, a := range w.accounts {
		if a.AccountUid == accountUid {
			return a, true
		}
	}
	return model.Account{}, false
}

func (w *Workflow) findSpace(savingsGoalUid string) (model.SavingsGoal, bool) {
	for _, sg := range w.spaces {
		if sg.SavingsGoalUid == savingsGoalUid {
			return sg, true
		}
	}
	return model.SavingsGoal{}, false
}

func (w *Workflow) requireState(want State) error {
	if w.state != want {
		return fmt.Errorf("in state %q, want %q: %w", w.state, want, ErrInvalidState)
	}
	return nil
}

// begin rejects a new triggering action while a gateway call is outstanding.
// A plain bool suffices: the workflow is driven from a single goroutine.
func (w *Workflow) begin() error {
	if w.inFlight {
		return ErrCallInFlight
	}
	w.inFlight = true
	return nil
}

func (w *Workflow) end() { w.inFlight = false }

func (w *Workflow) recordWithdraw(savingsGoalUid string, txn model.Transaction, err error) {
	w.record(auditlog.Entry{
		Timestamp:      w.now(),
		Action:         auditlog.ActionWithdraw,
		AccountUid:     w.account.AccountUid,
		FeedItemUid:    txn.FeedItemUid,
		SavingsGoalUid: savingsGoalUid,
		Amount:         txn.Amount.String(),
		Outcome:        outcome(err),
		Detail:         detail(err),
	})
}

func (w *Workflow) recordMark(txn model.Transaction, err error) {
	w.record(auditlog.Entry{
		Timestamp:   w.now(),
		Action:      auditlog.ActionMark,
		AccountUid:  w.account.AccountUid,
		FeedItemUid: txn.FeedItemUid,
		Outcome:     outcome(err),
		Detail:      detail(err),
	})
}

func (w *Workflow) record(e auditlog.Entry) {
	if w.audit == nil {
		return
	}
	if err := w.audit.Append(e); err != nil {
		w.log.Warn().Err(err).Msg("failed to write audit log")
	}
}

func outcome(err error) string {
	if err != nil {
		return auditlog.OutcomeFailed
	}
	return auditlog.OutcomeOK
}

func detail(err error) string {
	if err != nil {
		return err.Error()
	}
	return ""
}
