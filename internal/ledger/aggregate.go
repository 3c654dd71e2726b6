package ledger

// aggregation is the intermediate result of walking the combined rows.
type aggregation struct {
	groups   map[int64]*GroupBucket
	order    []int64
	accounts map[int64]*AccountSummary
	accOrder []int64
	totals   OpenTotals
}

// Aggregate merges the synthetic opening rows with the visible lines, walks
// each group in order and computes running balances, significance flags,
// group subtotals, account summaries and grand totals. Journal ledgers show
// no opening balance, so their init rows are discarded here.
func Aggregate(initRows []ReportLine, classified []ClassifiedLine, opts Options) aggregation {
	dim := opts.Type.GroupBy()
	agg := aggregation{
		groups:   make(map[int64]*GroupBucket),
		accounts: make(map[int64]*AccountSummary),
	}

	if opts.Type != TypeJournal {
		for _, row := range initRows {
			agg.appendLine(row.GroupKey, row)
		}
	}
	for _, cl := range classified {
		if cl.Route != RouteView {
			continue
		}
		groupKey, ok := cl.GroupKey(dim)
		if !ok {
			continue
		}
		row := cl.reportLine()
		row.GroupKey = groupKey
		agg.appendLine(groupKey, row)
	}

	for _, key := range agg.order {
		grp := agg.groups[key]
		balance := 0.0
		for i := range grp.Lines {
			line := &grp.Lines[i]
			balance += line.Debit - line.Credit
			line.Progress = balance
			if isZero(balance, opts.Rounding) {
				line.Progress = 0
			}
			line.SDebit = !isZero(line.Debit, opts.Rounding)
			line.SCredit = !isZero(line.Credit, opts.Rounding)

			grp.Debit += line.Debit
			grp.Credit += line.Credit
			agg.totals.Debit += line.Debit
			agg.totals.Credit += line.Credit
			agg.addAccount(line)
		}

		grp.Balance = grp.Debit - grp.Credit
		if isZero(grp.Balance, opts.Rounding) {
			grp.Balance = 0
		}
		grp.SDebit = !isZero(grp.Debit, opts.Rounding)
		grp.SCredit = !isZero(grp.Credit, opts.Rounding)

		if opts.SumGroupByBottom {
			grp.Lines = append(grp.Lines, ReportLine{
				TypeLine: LineTotal,
				Date:     "Total",
				Debit:    grp.Debit,
				Credit:   grp.Credit,
				Progress: grp.Balance,
				SDebit:   grp.SDebit,
				SCredit:  grp.SCredit,
				GroupKey: key,
			})
		}
	}

	agg.totals.Balance = agg.totals.Debit - agg.totals.Credit
	if isZero(agg.totals.Balance, opts.Rounding) {
		agg.totals.Balance = 0
	}
	return agg
}

func (a *aggregation) appendLine(key int64, row ReportLine) {
	grp, ok := a.groups[key]
	if !ok {
		grp = &GroupBucket{Key: key}
		a.groups[key] = grp
		a.order = append(a.order, key)
	}
	grp.Lines = append(grp.Lines, row)
}

// addAccount accumulates an account summary contribution. Only accounts
// with at least one contributing line ever appear, which implements the
// active-only pruning as build-then-filter.
func (a *aggregation) addAccount(line *ReportLine) {
	if line.AccountID == 0 {
		return
	}
	summary, ok := a.accounts[line.AccountID]
	if !ok {
		summary = &AccountSummary{
			AccountID: line.AccountID,
			Code:      line.AccountCode,
			Name:      line.AccountName,
		}
		a.accounts[line.AccountID] = summary
		a.accOrder = append(a.accOrder, line.AccountID)
	}
	if summary.Name == "" && line.AccountName != "" {
		summary.Name = line.AccountName
	}
	summary.Debit += line.Debit
	summary.Credit += line.Credit
	summary.Balance += line.Debit - line.Credit
}
