package reconcile

import (
	"errors"
	"fmt"

	"github.com/spacesweep-dev/spacesweep/internal/model"
)

// Sentinel errors for state-machine misuse. These are caller bugs or stale
// selections, not remote failures.
var (
	ErrCallInFlight          = errors.New("a gateway call is already in flight")
	ErrInvalidState          = errors.New("operation not valid in current state")
	ErrUnknownAccount        = errors.New("account not in the loaded account list")
	ErrUnknownTransaction    = errors.New("transaction not in the candidate set")
	ErrUnknownSpace          = errors.New("space not in the loaded space list")
	ErrNoTransactionSelected = errors.New("no transaction selected")
	ErrSpaceNotFundable      = errors.New("space cannot fund the selected transaction")
)

// FetchError wraps a failed read call. Nothing was mutated, locally or
// remotely; the fetch may simply be retried.
type FetchError struct {
	Op  string // "accounts", "transactions", "spaces"
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// MarkError wraps a failed annotate call on the ignore path. No funds moved,
// the transaction keeps its old note and stays in the candidate set.
type MarkError struct {
	FeedItemUid string
	Err         error
}

func (e *MarkError) Error() string {
	return fmt.Sprintf("marking transaction %s: %v", e.FeedItemUid, e.Err)
}

func (e *MarkError) Unwrap() error { return e.Err }

// WithdrawError wraps a failed withdrawal. No funds moved, no note changed;
// the whole transfer is safe to retry from scratch.
type WithdrawError struct {
	FeedItemUid    string
	SavingsGoalUid string
	Err            error
}

func (e *WithdrawError) Error() string {
	return fmt.Sprintf("withdrawing from space %s for transaction %s: %v", e.SavingsGoalUid, e.FeedItemUid, e.Err)
}

func (e *WithdrawError) Unwrap() error { return e.Err }

// PostWithdrawMarkError is the one inconsistent failure mode: the withdrawal
// succeeded but the marker write failed, so money moved while the transaction
// still looks eligible. There is no compensating reversal in the ledger API;
// the caller must surface this for manual reconciliation.
type PostWithdrawMarkError struct {
	FeedItemUid    string
	SavingsGoalUid string
	Amount         model.Amount
	Err            error
}

func (e *PostWithdrawMarkError) Error() string {
	return fmt.Sprintf("withdrew %s from space %s but failed to mark transaction %s: %v",
		e.Amount, e.SavingsGoalUid, e.FeedItemUid, e.Err)
}

func (e *PostWithdrawMarkError) Unwrap() error { return e.Err }
