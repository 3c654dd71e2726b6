package ledger

import (
	"math"
	"time"
)

// LedgerType selects the report grouping mode.
type LedgerType string

const (
	TypeGeneral LedgerType = "general"
	TypePartner LedgerType = "partner"
	TypeJournal LedgerType = "journal"
	TypeOpen    LedgerType = "open"
)

// GroupDimension names the column the report groups by.
type GroupDimension string

const (
	GroupByAccount GroupDimension = "account_id"
	GroupByPartner GroupDimension = "partner_id"
	GroupByJournal GroupDimension = "journal_id"
)

// Valid reports whether the ledger type is one of the supported modes.
func (t LedgerType) Valid() bool {
	switch t {
	case TypeGeneral, TypePartner, TypeJournal, TypeOpen:
		return true
	}
	return false
}

// DisplayName returns the report title for the ledger type.
func (t LedgerType) DisplayName() string {
	switch t {
	case TypeGeneral:
		return "General Ledger"
	case TypePartner:
		return "Partner Ledger"
	case TypeJournal:
		return "Journal Ledger"
	case TypeOpen:
		return "Open Ledger"
	}
	return ""
}

// GroupBy returns the grouping dimension for the ledger type. General and
// open ledgers group by account, partner ledgers by partner, journal ledgers
// by journal.
func (t LedgerType) GroupBy() GroupDimension {
	switch t {
	case TypePartner:
		return GroupByPartner
	case TypeJournal:
		return GroupByJournal
	default:
		return GroupByAccount
	}
}

// AccountType enumerates the account internal types the classifier cares
// about. Values besides payable and receivable pass through untouched.
type AccountType string

const (
	AccountPayable    AccountType = "payable"
	AccountReceivable AccountType = "receivable"
)

// ReceivableOrPayable reports whether reconciliation rules apply to the type.
func (a AccountType) ReceivableOrPayable() bool {
	return a == AccountPayable || a == AccountReceivable
}

// JournalLine is one raw row fetched from the move-line query. It is
// immutable once fetched; classification derives new values instead of
// mutating it.
type JournalLine struct {
	ID                    int64
	Date                  time.Time
	DateMaturity          time.Time
	JournalCode           string
	AccountCode           string
	AccountName           string
	AccountType           AccountType
	IncludeInitialBalance bool
	Ref                   string
	MoveName              string
	Name                  string
	Debit                 float64
	Credit                float64
	AmountCurrency        float64
	CurrencyCode          string
	MatchingNumber        string
	MatchingNumberID      *int64
	PartnerID             *int64
	AccountID             int64
	JournalID             int64
	PartnerName           string
}

// GroupKey resolves the grouping identifier for the line under the given
// dimension. ok is false when the dimension value is absent (a line without
// a partner under partner grouping).
func (l JournalLine) GroupKey(dim GroupDimension) (int64, bool) {
	switch dim {
	case GroupByPartner:
		if l.PartnerID == nil {
			return 0, false
		}
		return *l.PartnerID, true
	case GroupByJournal:
		return l.JournalID, true
	default:
		return l.AccountID, true
	}
}

// LineType tags a report line's role.
type LineType string

const (
	LineInit   LineType = "init"
	LineNormal LineType = "normal"
	LineTotal  LineType = "total"
)

// ReportLine is one rendered row of a group bucket. Progress, SDebit and
// SCredit are filled by the aggregator.
type ReportLine struct {
	TypeLine       LineType
	Date           string
	DateMaturity   string
	Code           string
	AccountCode    string
	AccountName    string
	MoveName       string
	DisplayedName  string
	PartnerName    string
	Debit          float64
	Credit         float64
	Progress       float64
	SDebit         bool
	SCredit        bool
	AmountCurrency float64
	CurrencyCode   string
	MatchingNumber string
	AccountID      int64
	GroupKey       int64
}

// GroupBucket holds the ordered lines and aggregates for one group-by value.
type GroupBucket struct {
	Key     int64
	Code    string
	Name    string
	Lines   []ReportLine
	Debit   float64
	Credit  float64
	Balance float64
	SDebit  bool
	SCredit bool
}

// AccountSummary accumulates totals per contributing account.
type AccountSummary struct {
	AccountID int64
	Code      string
	Name      string
	Debit     float64
	Credit    float64
	Balance   float64
}

// AccountRef is the account master-data projection the report consumes.
type AccountRef struct {
	ID   int64
	Code string
	Name string
}

// OpenTotals are the grand totals over the visible period.
type OpenTotals struct {
	Debit   float64
	Credit  float64
	Balance float64
}

// Report is the assembled report model handed to the rendering layer.
type Report struct {
	Title     string
	Type      LedgerType
	Groups    []GroupBucket
	GroupKeys []int64
	Accounts  []AccountSummary
	Totals    OpenTotals
	DateFrom  string
	DateTo    string
	Summary   bool
}

// isZero compares an amount against zero within the rounding tolerance.
// Mirrors minor-unit float comparison; never exact equality.
func isZero(amount, rounding float64) bool {
	if rounding <= 0 {
		rounding = 0.01
	}
	return math.Abs(amount) < rounding/2
}
