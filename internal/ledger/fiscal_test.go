package ledger

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestInitBoundaryCalendarYear(t *testing.T) {
	got := InitBoundary(datePtr(2023, time.March, 1), time.December, 31)
	if got == nil {
		t.Fatal("expected a boundary")
	}
	if !got.Equal(date(2023, time.January, 1)) {
		t.Fatalf("unexpected boundary: %s", got)
	}
}

func TestInitBoundaryOnFiscalYearEnd(t *testing.T) {
	// A period starting on the year-end day belongs to the fiscal year
	// ending that day, so the boundary rolls forward.
	got := InitBoundary(datePtr(2023, time.December, 31), time.December, 31)
	if !got.Equal(date(2024, time.January, 1)) {
		t.Fatalf("unexpected boundary: %s", got)
	}
}

func TestInitBoundaryMidYearFiscalEnd(t *testing.T) {
	// Fiscal year ends June 30. March 2023 falls in the fiscal year that
	// started July 1st 2022.
	got := InitBoundary(datePtr(2023, time.March, 1), time.June, 30)
	if !got.Equal(date(2022, time.July, 1)) {
		t.Fatalf("unexpected boundary: %s", got)
	}

	// August 2023 falls in the fiscal year starting July 1st 2023.
	got = InitBoundary(datePtr(2023, time.August, 15), time.June, 30)
	if !got.Equal(date(2023, time.July, 1)) {
		t.Fatalf("unexpected boundary: %s", got)
	}
}

func TestInitBoundaryWithoutPeriodStart(t *testing.T) {
	if got := InitBoundary(nil, time.December, 31); got != nil {
		t.Fatalf("expected nil boundary, got %s", got)
	}
}
