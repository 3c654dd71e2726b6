package ledger

import "testing"

func viewClassified(accountID int64, debit, credit float64) ClassifiedLine {
	return ClassifiedLine{
		JournalLine: JournalLine{
			AccountID:   accountID,
			AccountCode: "411100",
			AccountName: "Trade receivables",
			Debit:       debit,
			Credit:      credit,
		},
		Route:    RouteView,
		TypeLine: LineNormal,
	}
}

func TestAggregateRunningBalanceAndTotals(t *testing.T) {
	opts := baseOptions(TypeGeneral)
	lines := []ClassifiedLine{
		viewClassified(1, 100, 0),
		viewClassified(1, 0, 40),
	}

	agg := Aggregate(nil, lines, opts)

	grp, ok := agg.groups[1]
	if !ok || len(grp.Lines) != 2 {
		t.Fatalf("expected one group with two lines, got %+v", agg.groups)
	}
	if grp.Lines[0].Progress != 100 || grp.Lines[1].Progress != 60 {
		t.Fatalf("unexpected running balance: %v / %v", grp.Lines[0].Progress, grp.Lines[1].Progress)
	}
	if grp.Debit != 100 || grp.Credit != 40 || grp.Balance != 60 {
		t.Fatalf("unexpected group sums: %+v", grp)
	}
	if agg.totals.Debit != 100 || agg.totals.Credit != 40 || agg.totals.Balance != 60 {
		t.Fatalf("unexpected grand totals: %+v", agg.totals)
	}

	summary, ok := agg.accounts[1]
	if !ok {
		t.Fatal("expected an account summary")
	}
	if summary.Debit != 100 || summary.Credit != 40 || summary.Balance != 60 {
		t.Fatalf("unexpected account summary: %+v", summary)
	}
}

func TestAggregateInitRowSeedsRunningBalance(t *testing.T) {
	opts := baseOptions(TypeGeneral)
	initRows := []ReportLine{{
		TypeLine:  LineInit,
		Date:      "Initial balance",
		Code:      "INIT",
		Debit:     50,
		Progress:  50,
		AccountID: 1,
		GroupKey:  1,
	}}
	lines := []ClassifiedLine{viewClassified(1, 0, 20)}

	agg := Aggregate(initRows, lines, opts)

	grp := agg.groups[1]
	if len(grp.Lines) != 2 {
		t.Fatalf("expected init row plus one line, got %d", len(grp.Lines))
	}
	if grp.Lines[0].Progress != 50 || grp.Lines[1].Progress != 30 {
		t.Fatalf("unexpected running balance: %v / %v", grp.Lines[0].Progress, grp.Lines[1].Progress)
	}
}

func TestAggregateJournalLedgerDiscardsInitRows(t *testing.T) {
	opts := baseOptions(TypeJournal)
	initRows := []ReportLine{{TypeLine: LineInit, Debit: 50, AccountID: 1, GroupKey: 10}}
	lines := []ClassifiedLine{{
		JournalLine: JournalLine{AccountID: 1, JournalID: 10, Debit: 25},
		Route:       RouteView,
		TypeLine:    LineNormal,
	}}

	agg := Aggregate(initRows, lines, opts)

	grp, ok := agg.groups[10]
	if !ok || len(grp.Lines) != 1 {
		t.Fatalf("journal ledger must not carry opening rows, got %+v", agg.groups)
	}
	if agg.totals.Debit != 25 {
		t.Fatalf("unexpected totals: %+v", agg.totals)
	}
}

func TestAggregateSignificanceFlags(t *testing.T) {
	opts := baseOptions(TypeGeneral)
	lines := []ClassifiedLine{viewClassified(1, 100, 0.001)}

	agg := Aggregate(nil, lines, opts)

	line := agg.groups[1].Lines[0]
	if !line.SDebit {
		t.Fatal("a real debit must be significant")
	}
	if line.SCredit {
		t.Fatal("sub-rounding credit must not be significant")
	}
}

func TestAggregateZeroBalanceClamped(t *testing.T) {
	opts := baseOptions(TypeGeneral)
	lines := []ClassifiedLine{
		viewClassified(1, 100, 0),
		viewClassified(1, 0, 99.999),
	}

	agg := Aggregate(nil, lines, opts)

	grp := agg.groups[1]
	if grp.Lines[1].Progress != 0 {
		t.Fatalf("near-zero running balance must clamp to zero, got %v", grp.Lines[1].Progress)
	}
	if grp.Balance != 0 {
		t.Fatalf("near-zero group balance must clamp to zero, got %v", grp.Balance)
	}
	if agg.totals.Balance != 0 {
		t.Fatalf("near-zero grand balance must clamp to zero, got %v", agg.totals.Balance)
	}
}

func TestAggregateBottomTotalRow(t *testing.T) {
	opts := baseOptions(TypeGeneral)
	opts.SumGroupByBottom = true
	lines := []ClassifiedLine{
		viewClassified(1, 100, 0),
		viewClassified(1, 0, 40),
	}

	agg := Aggregate(nil, lines, opts)

	grp := agg.groups[1]
	if len(grp.Lines) != 3 {
		t.Fatalf("expected an appended total row, got %d lines", len(grp.Lines))
	}
	total := grp.Lines[2]
	if total.TypeLine != LineTotal || total.Date != "Total" {
		t.Fatalf("unexpected total row: %+v", total)
	}
	if total.Debit != 100 || total.Credit != 40 || total.Progress != 60 {
		t.Fatalf("unexpected total amounts: %+v", total)
	}
	// The total row must not feed back into totals or account summaries.
	if agg.totals.Debit != 100 || agg.totals.Credit != 40 {
		t.Fatalf("unexpected grand totals: %+v", agg.totals)
	}
	if len(agg.accounts) != 1 {
		t.Fatalf("expected a single account summary, got %d", len(agg.accounts))
	}
}

func TestAggregateDropRoutedLinesExcluded(t *testing.T) {
	opts := baseOptions(TypeGeneral)
	lines := []ClassifiedLine{
		viewClassified(1, 100, 0),
		{JournalLine: JournalLine{AccountID: 1, Debit: 999}, Route: RouteDrop},
		{JournalLine: JournalLine{AccountID: 1, Debit: 999}, Route: RouteInit},
	}

	agg := Aggregate(nil, lines, opts)

	if agg.totals.Debit != 100 {
		t.Fatalf("only view lines may contribute, got %+v", agg.totals)
	}
}
