// Package eligibility holds the pure rules deciding which transactions may be
// reconciled and which spaces can fund them. No I/O, no side effects.
package eligibility

import (
	"github.com/spacesweep-dev/spacesweep/internal/model"
	"github.com/spacesweep-dev/spacesweep/internal/note"
)

// Eligible reports whether a single feed item is a reconciliation candidate:
// an outgoing payment that settled or is pending, and not already marked.
func Eligible(txn model.Transaction) bool {
	if txn.Direction != model.DirectionOut {
		return false
	}
	if txn.Status != model.StatusSettled && txn.Status != model.StatusPending {
		return false
	}
	if note.IsReconciled(txn.UserNote) {
		return false
	}
	return true
}

// EligibleTransactions filters a feed to its reconciliation candidates,
// preserving feed order.
func EligibleTransactions(items []model.Transaction) []model.Transaction {
	result := make([]model.Transaction, 0, len(items))
	for _, txn := range items {
		if Eligible(txn) {
			result = append(result, txn)
		}
	}
	return result
}

// CanFund reports whether a space balance covers a transaction. Absent
// information fails closed: a space with no resolvable balance, or a
// zero-value transaction selection, is never fundable.
func CanFund(space model.SavingsGoal, txn model.Transaction) bool {
	if txn.FeedItemUid == "" {
		return false
	}
	if space.TotalSaved.IsZero() {
		return false
	}
	return space.TotalSaved.Covers(txn.Amount)
}

// FundableSpaces filters spaces to those that can fund the transaction. Must
// be re-evaluated whenever spaces are refetched; balances are not monotonic
// across calls.
func FundableSpaces(spaces []model.SavingsGoal, txn model.Transaction) []model.SavingsGoal {
	result := make([]model.SavingsGoal, 0, len(spaces))
	for _, sg := range spaces {
		if CanFund(sg, txn) {
			result = append(result, sg)
		}
	}
	return result
}
