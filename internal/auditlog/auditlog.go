// Package auditlog records every attempted ledger mutation to a local CSV
// file. When a withdrawal succeeds but the follow-up marking fails, this file
// is the only durable record of what moved, so a human can reconcile by hand.
package auditlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Entry is one row in the audit log.
type Entry struct {
	Timestamp      time.Time
	Action         string // "mark" or "withdraw"
	AccountUid     string
	FeedItemUid    string
	SavingsGoalUid string // empty for mark actions
	Amount         string // formatted amount for withdraw actions
	Outcome        string // "ok" or "failed"
	Detail         string // error text on failure
}

// Header is the CSV header for audit-log.csv.
const Header = "timestamp,action,account_uid,feed_item_uid,savings_goal_uid,amount,outcome,detail"

const (
	numFields = 8
	logFile   = "audit-log.csv"

	colTimestamp      = 0
	colAction         = 1
	colAccountUid     = 2
	colFeedItemUid    = 3
	colSavingsGoalUid = 4
	colAmount         = 5
	colOutcome        = 6
	colDetail         = 7
)

// Action and outcome values written by the workflow.
const (
	ActionMark     = "mark"
	ActionWithdraw = "withdraw"

	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
)

// Log appends entries under a directory. The zero value is not usable; use Open.
type Log struct {
	dir string
}

// Open returns a Log rooted at dir. The directory and file are created lazily
// on first append.
func Open(dir string) *Log {
	return &Log{dir: dir}
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colAction] = e.Action
	row[colAccountUid] = e.AccountUid
	row[colFeedItemUid] = e.FeedItemUid
	row[colSavingsGoalUid] = e.SavingsGoalUid
	row[colAmount] = e.Amount
	row[colOutcome] = e.Outcome
	row[colDetail] = e.Detail
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	return Entry{
		Timestamp:      ts,
		Action:         record[colAction],
		AccountUid:     record[colAccountUid],
		FeedItemUid:    record[colFeedItemUid],
		SavingsGoalUid: record[colSavingsGoalUid],
		Amount:         record[colAmount],
		Outcome:        record[colOutcome],
		Detail:         record[colDetail],
	}, nil
}

// Append writes entries to <dir>/audit-log.csv, creating the file and header
// if needed.
func (l *Log) Append(entries ...Entry) error {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return fmt.Errorf("creating audit log dir: %w", err)
	}

	path := filepath.Join(l.dir, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from <dir>/audit-log.csv. Returns an empty slice
// if the file does not exist.
func (l *Log) Read() ([]Entry, error) {
	path := filepath.Join(l.dir, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading audit log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
