package ledger

import "math"

// initKey identifies one synthetic opening row.
type initKey struct {
	accountID int64
	groupKey  int64
}

type initAccumulator struct {
	debit       float64
	credit      float64
	reDebit     float64
	reCredit    float64
	accountID   int64
	groupKey    int64
	accountCode string
	accountName string
}

// CompactInitialBalance collapses init-routed lines into one synthetic
// opening row per (account, group-by key). Lines flagged for provisional
// reduction accumulate separately; their net amount is reinstated into the
// opening debit or credit afterwards, since nothing confirms they settle
// inside the visible window. The history flag disables the reduction and
// treats every line as an ordinary contribution.
func CompactInitialBalance(classified []ClassifiedLine, opts Options) []ReportLine {
	dim := opts.Type.GroupBy()
	acc := make(map[initKey]*initAccumulator)
	order := make([]initKey, 0)

	for _, cl := range classified {
		if cl.Route != RouteInit {
			continue
		}
		groupKey, ok := cl.GroupKey(dim)
		if !ok {
			continue
		}
		key := initKey{accountID: cl.AccountID, groupKey: groupKey}
		bucket, exists := acc[key]
		if !exists {
			bucket = &initAccumulator{
				accountID:   cl.AccountID,
				groupKey:    groupKey,
				accountCode: cl.AccountCode,
				accountName: cl.AccountName,
			}
			acc[key] = bucket
			order = append(order, key)
		}
		if cl.ReduceBalance && !opts.InitBalanceHistory {
			bucket.reDebit += cl.Debit
			bucket.reCredit += cl.Credit
		} else {
			bucket.debit += cl.Debit
			bucket.credit += cl.Credit
		}
	}

	out := make([]ReportLine, 0, len(order))
	for _, key := range order {
		bucket := acc[key]
		debit := bucket.debit
		credit := bucket.credit
		balance := debit - credit
		if isZero(balance, opts.Rounding) {
			balance = 0
		}
		reBalance := bucket.reDebit - bucket.reCredit
		if reBalance > 0 {
			debit += math.Abs(reBalance)
		} else if reBalance < 0 {
			credit += math.Abs(reBalance)
		}
		if isZero(debit, opts.Rounding) && isZero(credit, opts.Rounding) {
			continue
		}
		out = append(out, ReportLine{
			TypeLine:    LineInit,
			Date:        "Initial balance",
			Code:        "INIT",
			AccountCode: bucket.accountCode,
			AccountName: bucket.accountName,
			Debit:       debit,
			Credit:      credit,
			Progress:    balance,
			AccountID:   bucket.accountID,
			GroupKey:    bucket.groupKey,
		})
	}
	return out
}
