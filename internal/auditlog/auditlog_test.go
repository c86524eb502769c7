package auditlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(action, outcome string) Entry {
	return Entry{
		Timestamp:      time.Date(2025, 3, 8, 12, 0, 0, 0, time.UTC),
		Action:         action,
		AccountUid:     "acc-1",
		FeedItemUid:    "t1",
		SavingsGoalUid: "sg-1",
		Amount:         "GBP 12.50",
		Outcome:        outcome,
		Detail:         "",
	}
}

func TestAppendAndRead(t *testing.T) {
	log := Open(t.TempDir())

	err := log.Append(entry(ActionWithdraw, OutcomeOK), entry(ActionMark, OutcomeFailed))
	require.NoError(t, err)

	entries, err := log.Read()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, ActionWithdraw, entries[0].Action)
	assert.Equal(t, OutcomeOK, entries[0].Outcome)
	assert.Equal(t, ActionMark, entries[1].Action)
	assert.Equal(t, OutcomeFailed, entries[1].Outcome)
	assert.Equal(t, "GBP 12.50", entries[0].Amount)
}

func TestAppendWritesHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	log := Open(dir)

	require.NoError(t, log.Append(entry(ActionMark, OutcomeOK)))
	require.NoError(t, log.Append(entry(ActionMark, OutcomeOK)))

	data, err := os.ReadFile(filepath.Join(dir, "audit-log.csv"))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "timestamp,action"))

	entries, err := log.Read()
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestReadMissingFile(t *testing.T) {
	log := Open(t.TempDir())
	entries, err := log.Read()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAppendCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")
	log := Open(dir)

	require.NoError(t, log.Append(entry(ActionWithdraw, OutcomeOK)))

	_, err := os.Stat(filepath.Join(dir, "audit-log.csv"))
	require.NoError(t, err)
}

func TestUnmarshalEntryBadRow(t *testing.T) {
	_, err := UnmarshalEntry([]string{"too", "short"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 8 fields")
}
