package ledger

import (
	"strings"
	"time"
)

// Route names the bucket a classified line lands in.
type Route int

const (
	// RouteView shows the line inside the visible period.
	RouteView Route = iota
	// RouteInit folds the line into the initial balance.
	RouteInit
	// RouteDrop discards the line entirely.
	RouteDrop
)

// ClassifiedLine is the immutable classification result for one journal
// line. Display fields are only populated for view-routed lines.
type ClassifiedLine struct {
	JournalLine

	Route Route

	// ReduceBalance marks reconciled receivable/payable lines predating the
	// init boundary for provisional-reduction treatment in the compactor.
	ReduceBalance bool

	TypeLine       LineType
	Code           string
	DisplayDate    string
	DisplayDue     string
	DisplayedName  string
	MatchingNumber string
}

// Classifier routes journal lines per the initial-balance decision table.
type Classifier struct {
	opts     Options
	boundary *time.Time
	matches  FutureMatches
}

// NewClassifier prepares a classifier for one report invocation.
func NewClassifier(opts Options, boundary *time.Time, matches FutureMatches) *Classifier {
	return &Classifier{opts: opts, boundary: boundary, matches: matches}
}

// Classify routes every line. Output order follows input order.
func (c *Classifier) Classify(lines []JournalLine) []ClassifiedLine {
	out := make([]ClassifiedLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, c.classifyLine(line))
	}
	return out
}

func (c *Classifier) classifyLine(line JournalLine) ClassifiedLine {
	cl := ClassifiedLine{JournalLine: line, Route: RouteView}

	if c.opts.WithInitBalance && c.boundary != nil {
		matchedAfterInit, matchedInFuture := c.matchFlags(line)
		switch {
		case line.Date.Before(*c.boundary) && matchedAfterInit:
			if line.IncludeInitialBalance {
				cl.Route = RouteInit
			} else {
				cl.Route = RouteDrop
				return cl
			}
		case !line.Date.Before(*c.boundary) && c.opts.DateFrom != nil &&
			line.Date.Before(*c.opts.DateFrom) && matchedInFuture:
			cl.Route = RouteInit
		}
	}

	if cl.Route == RouteInit {
		cl.ReduceBalance = line.AccountType.ReceivableOrPayable() &&
			c.boundary != nil && line.Date.Before(*c.boundary)
		return cl
	}
	return c.decorateView(cl)
}

// matchFlags decides whether a line's reconciliation state counts for
// bucketing. Receivable/payable lines under detailed-unreconciled handling
// look at the future-match sets; everything else is treated as settled.
func (c *Classifier) matchFlags(line JournalLine) (matchedAfterInit, matchedInFuture bool) {
	if !line.AccountType.ReceivableOrPayable() || !c.opts.DetailUnreconciledInInit {
		return true, true
	}
	if line.MatchingNumberID == nil {
		return false, false
	}
	matchedAfterInit, matchedInFuture = true, true
	if c.matches.Future.Has(*line.MatchingNumberID) {
		matchedInFuture = false
	}
	if c.matches.AfterInit.Has(*line.MatchingNumberID) {
		matchedAfterInit = false
	}
	return matchedAfterInit, matchedInFuture
}

// decorateView fills display fields for a line shown in the period. Lines
// dated before the period start are re-tagged as init but stay visible; the
// open ledger drops everything else.
func (c *Classifier) decorateView(cl ClassifiedLine) ClassifiedLine {
	cl.DisplayDate = cl.JournalLine.Date.Format(c.opts.DateLayout)
	if !cl.JournalLine.DateMaturity.IsZero() {
		cl.DisplayDue = cl.JournalLine.DateMaturity.Format(c.opts.DateLayout)
	}
	cl.DisplayedName = displayedName(cl.JournalLine.Ref, cl.JournalLine.Name)
	cl.MatchingNumber = cl.JournalLine.MatchingNumber
	if cl.JournalLine.MatchingNumberID != nil && c.matches.Future.Has(*cl.JournalLine.MatchingNumberID) {
		cl.MatchingNumber = "*"
	}
	cl.TypeLine = LineNormal
	cl.Code = cl.JournalLine.JournalCode

	beforePeriod := c.opts.DateFrom != nil && cl.JournalLine.Date.Before(*c.opts.DateFrom)
	if beforePeriod {
		cl.TypeLine = LineInit
		cl.Code = "INIT"
	} else if c.opts.Type == TypeOpen {
		// The open ledger only shows positions carried into the period.
		cl.Route = RouteDrop
	}
	return cl
}

// displayedName joins ref and label, skipping empties and the "/"
// placeholder.
func displayedName(ref, name string) string {
	parts := make([]string, 0, 2)
	for _, part := range []string{ref, name} {
		if part != "" && part != "/" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, "-")
}

// reportLine converts a view-routed classified line into a report line.
// Running balance and significance flags are left for the aggregator.
func (cl ClassifiedLine) reportLine() ReportLine {
	return ReportLine{
		TypeLine:       cl.TypeLine,
		Date:           cl.DisplayDate,
		DateMaturity:   cl.DisplayDue,
		Code:           cl.Code,
		AccountCode:    cl.JournalLine.AccountCode,
		AccountName:    cl.JournalLine.AccountName,
		MoveName:       cl.JournalLine.MoveName,
		DisplayedName:  cl.DisplayedName,
		PartnerName:    cl.JournalLine.PartnerName,
		Debit:          cl.JournalLine.Debit,
		Credit:         cl.JournalLine.Credit,
		AmountCurrency: cl.JournalLine.AmountCurrency,
		CurrencyCode:   cl.JournalLine.CurrencyCode,
		MatchingNumber: cl.MatchingNumber,
		AccountID:      cl.JournalLine.AccountID,
	}
}
