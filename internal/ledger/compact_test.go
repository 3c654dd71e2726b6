package ledger

import (
	"testing"
	"time"
)

func initClassified(line JournalLine, reduce bool) ClassifiedLine {
	return ClassifiedLine{JournalLine: line, Route: RouteInit, ReduceBalance: reduce}
}

func TestCompactInitialBalanceSingleLine(t *testing.T) {
	opts := baseOptions(TypeGeneral)
	line := JournalLine{
		Date:        date(2022, time.November, 1),
		Debit:       100,
		AccountID:   1,
		AccountCode: "411100",
	}

	rows := CompactInitialBalance([]ClassifiedLine{initClassified(line, false)}, opts)

	if len(rows) != 1 {
		t.Fatalf("expected one synthetic row, got %d", len(rows))
	}
	row := rows[0]
	if row.Date != "Initial balance" || row.Code != "INIT" || row.TypeLine != LineInit {
		t.Fatalf("unexpected synthetic row: %+v", row)
	}
	if row.Debit != 100 || row.Credit != 0 || row.Progress != 100 {
		t.Fatalf("unexpected amounts: %+v", row)
	}
	if row.GroupKey != 1 || row.AccountID != 1 || row.AccountCode != "411100" {
		t.Fatalf("unexpected identifiers: %+v", row)
	}
}

func TestCompactInitialBalanceMergesPerAccountAndGroup(t *testing.T) {
	opts := baseOptions(TypeGeneral)
	lines := []ClassifiedLine{
		initClassified(JournalLine{Debit: 100, AccountID: 1}, false),
		initClassified(JournalLine{Credit: 30, AccountID: 1}, false),
		initClassified(JournalLine{Debit: 50, AccountID: 2}, false),
	}

	rows := CompactInitialBalance(lines, opts)

	if len(rows) != 2 {
		t.Fatalf("expected two synthetic rows, got %d", len(rows))
	}
	if rows[0].Debit != 100 || rows[0].Credit != 30 || rows[0].Progress != 70 {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].Debit != 50 {
		t.Fatalf("unexpected second row: %+v", rows[1])
	}
}

func TestCompactInitialBalanceReinstatesReducedAmounts(t *testing.T) {
	opts := baseOptions(TypeGeneral)
	lines := []ClassifiedLine{
		initClassified(JournalLine{Debit: 200, AccountID: 1}, false),
		// Provisionally reduced receivable: excluded from the base sums,
		// then its net reinstated on the debit side.
		initClassified(JournalLine{Debit: 80, AccountID: 1}, true),
		initClassified(JournalLine{Credit: 30, AccountID: 1}, true),
	}

	rows := CompactInitialBalance(lines, opts)

	if len(rows) != 1 {
		t.Fatalf("expected one synthetic row, got %d", len(rows))
	}
	row := rows[0]
	if row.Debit != 250 || row.Credit != 0 {
		t.Fatalf("expected reinstated debit 250, got %+v", row)
	}
	// Progress keeps the pre-reinstatement balance.
	if row.Progress != 200 {
		t.Fatalf("expected progress 200, got %v", row.Progress)
	}
}

func TestCompactInitialBalanceReinstatesOnCreditSide(t *testing.T) {
	opts := baseOptions(TypeGeneral)
	lines := []ClassifiedLine{
		initClassified(JournalLine{Credit: 80, AccountID: 1}, true),
		initClassified(JournalLine{Debit: 30, AccountID: 1}, true),
	}

	rows := CompactInitialBalance(lines, opts)

	if len(rows) != 1 {
		t.Fatalf("expected one synthetic row, got %d", len(rows))
	}
	if rows[0].Debit != 0 || rows[0].Credit != 50 {
		t.Fatalf("expected reinstated credit 50, got %+v", rows[0])
	}
	if rows[0].Progress != 0 {
		t.Fatalf("expected zero progress, got %v", rows[0].Progress)
	}
}

func TestCompactInitialBalanceHistoryDisablesReduction(t *testing.T) {
	opts := baseOptions(TypeGeneral)
	opts.InitBalanceHistory = true
	lines := []ClassifiedLine{
		initClassified(JournalLine{Debit: 80, AccountID: 1}, true),
	}

	rows := CompactInitialBalance(lines, opts)

	if len(rows) != 1 {
		t.Fatalf("expected one synthetic row, got %d", len(rows))
	}
	if rows[0].Debit != 80 || rows[0].Progress != 80 {
		t.Fatalf("history mode must treat reduced lines as ordinary: %+v", rows[0])
	}
}

func TestCompactInitialBalanceSkipsZeroRows(t *testing.T) {
	opts := baseOptions(TypeGeneral)
	lines := []ClassifiedLine{
		initClassified(JournalLine{Debit: 40, AccountID: 1}, false),
		initClassified(JournalLine{Credit: 40, AccountID: 1}, false),
	}

	rows := CompactInitialBalance(lines, opts)

	if len(rows) != 0 {
		t.Fatalf("offsetting opening amounts must not emit a row, got %+v", rows)
	}
}

func TestCompactInitialBalanceIgnoresViewLines(t *testing.T) {
	opts := baseOptions(TypeGeneral)
	lines := []ClassifiedLine{
		{JournalLine: JournalLine{Debit: 40, AccountID: 1}, Route: RouteView},
	}

	if rows := CompactInitialBalance(lines, opts); len(rows) != 0 {
		t.Fatalf("view lines must not contribute, got %+v", rows)
	}
}
