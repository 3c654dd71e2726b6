package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// AccountMethod controls how an explicit account id list is applied.
type AccountMethod string

const (
	AccountMethodNone    AccountMethod = ""
	AccountMethodInclude AccountMethod = "include"
	AccountMethodExclude AccountMethod = "exclude"
)

// ResultSelection restricts partner ledgers to customers, suppliers or both.
type ResultSelection string

const (
	SelectCustomer ResultSelection = "customer"
	SelectSupplier ResultSelection = "supplier"
	SelectBoth     ResultSelection = "both"
)

// AccountTypes returns the account internal types matching the selection.
func (s ResultSelection) AccountTypes() []AccountType {
	switch s {
	case SelectSupplier:
		return []AccountType{AccountPayable}
	case SelectCustomer:
		return []AccountType{AccountReceivable}
	default:
		return []AccountType{AccountPayable, AccountReceivable}
	}
}

const defaultRounding = 0.01

// Options carries the full report configuration. Zero values are usable
// after Normalize.
type Options struct {
	Type     LedgerType
	DateFrom *time.Time
	DateTo   *time.Time

	// Fiscal year end, used to derive the initial-balance boundary.
	FiscalYearEndMonth time.Month
	FiscalYearEndDay   int

	// Rounding is the minor-currency-unit precision for zero tests.
	Rounding float64

	// DateLayout formats dates on displayed rows.
	DateLayout string

	WithInitBalance          bool
	InitBalanceHistory       bool
	DetailUnreconciledInInit bool
	Reconciled               bool
	RemoveFutureReconciled   bool
	SumGroupByBottom         bool
	Summary                  bool
	PostedOnly               bool

	PartnerIDs      []int64
	AccountMethod   AccountMethod
	AccountIDs      []int64
	ResultSelection ResultSelection
}

// Normalize fills defaults in place and returns the receiver for chaining.
func (o *Options) Normalize() *Options {
	if o.FiscalYearEndMonth == 0 {
		o.FiscalYearEndMonth = time.December
	}
	if o.FiscalYearEndDay == 0 {
		o.FiscalYearEndDay = 31
	}
	if o.Rounding <= 0 {
		o.Rounding = defaultRounding
	}
	if o.DateLayout == "" {
		o.DateLayout = "2006-01-02"
	}
	if o.ResultSelection == "" {
		o.ResultSelection = SelectCustomer
	}
	return o
}

// Validate checks configuration that cannot be defaulted.
func (o *Options) Validate() error {
	if !o.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownLedgerType, o.Type)
	}
	if o.DateFrom != nil && o.DateTo != nil && o.DateFrom.After(*o.DateTo) {
		return fmt.Errorf("%w: range inverted, %s after %s", ErrBadDate,
			o.DateFrom.Format("2006-01-02"), o.DateTo.Format("2006-01-02"))
	}
	switch o.AccountMethod {
	case AccountMethodNone, AccountMethodInclude, AccountMethodExclude:
	default:
		return fmt.Errorf("%w: unknown account method %q", ErrBadConfiguration, o.AccountMethod)
	}
	return nil
}

// Title builds the report heading from the ledger type and summary flag.
func (o *Options) Title() string {
	name := o.Type.DisplayName()
	if o.Summary {
		name += " Summary"
	}
	return name
}

// Fingerprint renders the full configuration as a stable string, used for
// cache keys and request deduplication.
func (o *Options) Fingerprint() string {
	var b strings.Builder
	b.WriteString(string(o.Type))
	writeDate := func(t *time.Time) {
		b.WriteByte(':')
		if t != nil {
			b.WriteString(t.Format("2006-01-02"))
		}
	}
	writeDate(o.DateFrom)
	writeDate(o.DateTo)
	fmt.Fprintf(&b, ":%d-%d:%g:%s", int(o.FiscalYearEndMonth), o.FiscalYearEndDay, o.Rounding, o.DateLayout)
	for _, flag := range []bool{
		o.WithInitBalance, o.InitBalanceHistory, o.DetailUnreconciledInInit,
		o.Reconciled, o.RemoveFutureReconciled, o.SumGroupByBottom, o.Summary, o.PostedOnly,
	} {
		if flag {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	writeIDs := func(ids []int64) {
		b.WriteByte(':')
		for i, id := range ids {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.FormatInt(id, 10))
		}
	}
	writeIDs(o.PartnerIDs)
	writeIDs(o.AccountIDs)
	fmt.Fprintf(&b, ":%s:%s", o.AccountMethod, o.ResultSelection)
	return b.String()
}

// MoveStates resolves the move-state filter from the posted-only toggle.
func (o *Options) MoveStates() []string {
	if o.PostedOnly {
		return []string{"posted"}
	}
	return []string{"draft", "posted"}
}
