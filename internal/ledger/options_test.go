package ledger

import (
	"errors"
	"testing"
	"time"
)

func TestOptionsNormalizeDefaults(t *testing.T) {
	opts := Options{Type: TypeGeneral}
	opts.Normalize()

	if opts.FiscalYearEndMonth != time.December || opts.FiscalYearEndDay != 31 {
		t.Fatalf("unexpected fiscal year end: %v %d", opts.FiscalYearEndMonth, opts.FiscalYearEndDay)
	}
	if opts.Rounding != 0.01 || opts.DateLayout != "2006-01-02" {
		t.Fatalf("unexpected defaults: %+v", opts)
	}
	if opts.ResultSelection != SelectCustomer {
		t.Fatalf("unexpected result selection: %q", opts.ResultSelection)
	}
}

func TestOptionsValidate(t *testing.T) {
	opts := Options{Type: "bogus"}
	if err := opts.Validate(); !errors.Is(err, ErrUnknownLedgerType) {
		t.Fatalf("expected unknown-type error, got %v", err)
	}

	opts = Options{
		Type:     TypeGeneral,
		DateFrom: datePtr(2023, time.April, 1),
		DateTo:   datePtr(2023, time.March, 1),
	}
	if err := opts.Validate(); !errors.Is(err, ErrBadDate) {
		t.Fatalf("expected date error, got %v", err)
	}

	opts = Options{Type: TypeGeneral, AccountMethod: "sometimes"}
	if err := opts.Validate(); !errors.Is(err, ErrBadConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}

	opts = Options{Type: TypeGeneral}
	if err := opts.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOptionsTitle(t *testing.T) {
	opts := Options{Type: TypePartner}
	if got := opts.Title(); got != "Partner Ledger" {
		t.Fatalf("unexpected title: %q", got)
	}
	opts.Summary = true
	if got := opts.Title(); got != "Partner Ledger Summary" {
		t.Fatalf("unexpected title: %q", got)
	}
}

func TestOptionsFingerprintDistinguishesConfigurations(t *testing.T) {
	a := baseOptions(TypeGeneral)
	b := baseOptions(TypeGeneral)
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatal("identical configurations must share a fingerprint")
	}

	b.SumGroupByBottom = true
	if a.Fingerprint() == b.Fingerprint() {
		t.Fatal("flag changes must change the fingerprint")
	}

	c := baseOptions(TypePartner)
	c.PartnerIDs = []int64{1, 2}
	d := baseOptions(TypePartner)
	d.PartnerIDs = []int64{1, 3}
	if c.Fingerprint() == d.Fingerprint() {
		t.Fatal("id list changes must change the fingerprint")
	}
}

func TestOptionsMoveStates(t *testing.T) {
	opts := Options{Type: TypeGeneral, PostedOnly: true}
	if got := opts.MoveStates(); len(got) != 1 || got[0] != "posted" {
		t.Fatalf("unexpected states: %v", got)
	}
	opts.PostedOnly = false
	if got := opts.MoveStates(); len(got) != 2 {
		t.Fatalf("unexpected states: %v", got)
	}
}
