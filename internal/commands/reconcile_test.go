package commands

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesweep-dev/spacesweep/internal/model"
	"github.com/spacesweep-dev/spacesweep/internal/reconcile"
)

// stubGateway feeds the runner a fixed account, transactions and spaces.
type stubGateway struct {
	transactions []model.Transaction
	spaces       []model.SavingsGoal

	withdrawCalls int
	annotateCalls int
	lastNote      string
}

func (g *stubGateway) Accounts(ctx context.Context) ([]model.Account, error) {
	return []model.Account{{AccountUid: "acc-1", Name: "Main", Currency: "GBP"}}, nil
}

func (g *stubGateway) Transactions(ctx context.Context, accountUid string, minTime, maxTime time.Time) ([]model.Transaction, error) {
	return g.transactions, nil
}

func (g *stubGateway) Spaces(ctx context.Context, accountUid string) ([]model.SavingsGoal, error) {
	return g.spaces, nil
}

func (g *stubGateway) AnnotateTransaction(ctx context.Context, accountUid, categoryUid, feedItemUid, userNote string) error {
	g.annotateCalls++
	g.lastNote = userNote
	return nil
}

func (g *stubGateway) WithdrawFromSpace(ctx context.Context, accountUid, savingsGoalUid, feedItemUid string, amount model.Amount) error {
	g.withdrawCalls++
	return nil
}

func newRunner(gw reconcile.Gateway, script string) (*runner, *bytes.Buffer) {
	var out bytes.Buffer
	return &runner{
		in:   bufio.NewScanner(strings.NewReader(script)),
		out:  &out,
		wf:   reconcile.New(gw),
		days: 7,
	}, &out
}

func TestRunnerTransferSession(t *testing.T) {
	gw := &stubGateway{
		transactions: []model.Transaction{{
			FeedItemUid:      "t1",
			CategoryUid:      "cat-1",
			Direction:        model.DirectionOut,
			Status:           model.StatusSettled,
			Amount:           model.Amount{Currency: "GBP", MinorUnits: 1250},
			CounterPartyName: "Coffee Shop",
		}},
		spaces: []model.SavingsGoal{
			{SavingsGoalUid: "sg-1", Name: "Bills", TotalSaved: model.Amount{Currency: "GBP", MinorUnits: 5000}},
			{SavingsGoalUid: "sg-2", Name: "Holiday", TotalSaved: model.Amount{Currency: "GBP", MinorUnits: 500}},
		},
	}

	// account 1 -> transaction 1 -> categorize -> space 1 -> quit
	r, out := newRunner(gw, "1\n1\nc\n1\nq\n")
	require.NoError(t, r.run(context.Background()))

	output := out.String()
	assert.Contains(t, output, "Coffee Shop")
	assert.Contains(t, output, "[insufficient funds]")
	assert.Contains(t, output, "Transferred GBP 12.50")
	assert.Equal(t, 1, gw.withdrawCalls)
	assert.Equal(t, 1, gw.annotateCalls)
	assert.Equal(t, "transferred: true", gw.lastNote)
}

func TestRunnerIgnoreSession(t *testing.T) {
	gw := &stubGateway{
		transactions: []model.Transaction{{
			FeedItemUid: "t1",
			CategoryUid: "cat-1",
			Direction:   model.DirectionOut,
			Status:      model.StatusSettled,
			Amount:      model.Amount{Currency: "GBP", MinorUnits: 1250},
			UserNote:    "Lunch",
		}},
	}

	// account 1 -> transaction 1 -> ignore -> quit
	r, out := newRunner(gw, "1\n1\ni\nq\n")
	require.NoError(t, r.run(context.Background()))

	assert.Contains(t, out.String(), "Transaction marked as handled.")
	assert.Equal(t, 0, gw.withdrawCalls)
	assert.Equal(t, 1, gw.annotateCalls)
	assert.Equal(t, "Lunch | transferred: true", gw.lastNote)
}

func TestRunnerEmptyFeed(t *testing.T) {
	gw := &stubGateway{}

	r, out := newRunner(gw, "1\nq\n")
	require.NoError(t, r.run(context.Background()))

	assert.Contains(t, out.String(), "No eligible transactions found in the last 7 days")
}

func TestRunnerEOFQuits(t *testing.T) {
	gw := &stubGateway{}

	r, _ := newRunner(gw, "")
	require.NoError(t, r.run(context.Background()))
}
