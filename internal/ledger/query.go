package ledger

import (
	"fmt"
	"strings"
	"time"
)

// LineFilter is the value-object form of the move-line WHERE clause. Every
// value travels as a bind parameter; the builder never interpolates data
// into SQL text.
type LineFilter struct {
	MoveStates []string
	AccountIDs []int64

	// PartnerIDs restricts to the given partners. RequirePartner instead
	// demands any partner at all (partner ledgers without an explicit
	// filter).
	PartnerIDs     []int64
	RequirePartner bool

	// UnreconciledOnly keeps open items. FutureMatchedIDs widens that to
	// lines whose reconciliation only completes after the cutoff.
	UnreconciledOnly bool
	FutureMatchedIDs []int64

	DateTo   *time.Time
	DateFrom *time.Time
}

// FilterForReport derives the line filter from report options plus the
// resolved account scope and future-match set.
func FilterForReport(opts Options, accountIDs []int64, future MatchSet) LineFilter {
	f := LineFilter{
		MoveStates: opts.MoveStates(),
		AccountIDs: accountIDs,
		PartnerIDs: opts.PartnerIDs,
		DateTo:     opts.DateTo,
	}
	if len(opts.PartnerIDs) == 0 && opts.Type == TypePartner {
		f.RequirePartner = true
	}
	if !opts.Reconciled {
		f.UnreconciledOnly = true
		if opts.RemoveFutureReconciled && opts.DateTo != nil {
			f.FutureMatchedIDs = future.IDs()
		}
	}
	// Only the journal ledger bounds the fetch below; all other types need
	// the full history for initial-balance computation.
	if opts.Type == TypeJournal {
		f.DateFrom = opts.DateFrom
	}
	return f
}

// Build renders the filter into a WHERE fragment with positional
// parameters, continuing from the given argument offset.
func (f LineFilter) Build(argOffset int) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", argOffset+len(args))
	}

	clauses = append(clauses, "m.state = ANY("+next(f.MoveStates)+")")
	clauses = append(clauses, "l.account_id = ANY("+next(f.AccountIDs)+")")

	if len(f.PartnerIDs) > 0 {
		clauses = append(clauses, "l.partner_id = ANY("+next(f.PartnerIDs)+")")
	} else if f.RequirePartner {
		clauses = append(clauses, "l.partner_id IS NOT NULL")
	}

	if f.UnreconciledOnly {
		if len(f.FutureMatchedIDs) > 0 {
			clauses = append(clauses, "(l.full_reconcile_id IS NULL OR l.full_reconcile_id = ANY("+next(f.FutureMatchedIDs)+"))")
		} else {
			clauses = append(clauses, "l.reconciled = false")
		}
	}

	if f.DateTo != nil {
		clauses = append(clauses, "l.date <= "+next(*f.DateTo))
	}
	if f.DateFrom != nil {
		clauses = append(clauses, "l.date >= "+next(*f.DateFrom))
	}

	return strings.Join(clauses, " AND "), args
}

// AccountQuery scopes the account search.
type AccountQuery struct {
	Types      []AccountType
	IncludeIDs []int64
	ExcludeIDs []int64
}

// AccountQueryForReport derives the account search scope from the options.
// Partner ledgers restrict to receivable/payable accounts per the result
// selection; explicit id lists include or exclude on top.
func AccountQueryForReport(opts Options) AccountQuery {
	q := AccountQuery{}
	if opts.Type == TypePartner {
		q.Types = opts.ResultSelection.AccountTypes()
	}
	switch opts.AccountMethod {
	case AccountMethodInclude:
		q.IncludeIDs = opts.AccountIDs
	case AccountMethodExclude:
		q.ExcludeIDs = opts.AccountIDs
	}
	return q
}
