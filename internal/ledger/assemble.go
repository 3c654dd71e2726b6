package ledger

import (
	"sort"
	"time"
)

// GroupRef carries display metadata for one group-by value, looked up from
// master data. Ref is only meaningful for partners.
type GroupRef struct {
	Key  int64
	Code string
	Name string
	Ref  string
}

// Engine assembles ledger reports. It is stateless and safe for concurrent
// use; every Build works on fresh, invocation-local state.
type Engine struct{}

// NewEngine returns a report engine.
func NewEngine() *Engine {
	return &Engine{}
}

// MatchesForReport resolves the future-match sets for the report options.
// Detection only runs when the caller asked to treat future-reconciled
// lines as open and supplied a cutoff date.
func MatchesForReport(opts Options, boundary *time.Time, index ReconciliationIndex) FutureMatches {
	if !opts.RemoveFutureReconciled || opts.DateTo == nil {
		return FutureMatches{Future: MatchSet{}, AfterInit: MatchSet{}}
	}
	return ResolveFutureMatches(opts.DateTo, boundary, index)
}

// Build classifies, compacts and aggregates the supplied lines into the
// report model. The reconciliation index feeds future-match detection; pass
// nil when reconciliation futures are irrelevant.
func (e *Engine) Build(opts Options, lines []JournalLine, index ReconciliationIndex) (Report, error) {
	opts.Normalize()
	if err := opts.Validate(); err != nil {
		return Report{}, err
	}
	boundary := InitBoundary(opts.DateFrom, opts.FiscalYearEndMonth, opts.FiscalYearEndDay)
	return e.BuildWithMatches(opts, lines, MatchesForReport(opts, boundary, index))
}

// BuildWithMatches is Build with the future-match sets already resolved,
// for callers that query them from persistent reconciliation records.
func (e *Engine) BuildWithMatches(opts Options, lines []JournalLine, matches FutureMatches) (Report, error) {
	opts.Normalize()
	if err := opts.Validate(); err != nil {
		return Report{}, err
	}
	boundary := InitBoundary(opts.DateFrom, opts.FiscalYearEndMonth, opts.FiscalYearEndDay)

	classified := NewClassifier(opts, boundary, matches).Classify(lines)
	initRows := CompactInitialBalance(classified, opts)
	agg := Aggregate(initRows, classified, opts)

	report := Report{
		Title:   opts.Title(),
		Type:    opts.Type,
		Totals:  agg.totals,
		Summary: opts.Summary,
	}
	if opts.DateFrom != nil {
		report.DateFrom = opts.DateFrom.Format(opts.DateLayout)
	}
	if opts.DateTo != nil {
		report.DateTo = opts.DateTo.Format(opts.DateLayout)
	}

	fallback := groupFallbackMeta(opts.Type.GroupBy(), lines)
	for _, key := range agg.order {
		grp := agg.groups[key]
		if meta, ok := fallback[key]; ok {
			grp.Code, grp.Name = meta.Code, meta.Name
		}
		report.Groups = append(report.Groups, *grp)
	}
	for _, id := range agg.accOrder {
		report.Accounts = append(report.Accounts, *agg.accounts[id])
	}
	sort.Slice(report.Accounts, func(i, j int) bool {
		return report.Accounts[i].Code < report.Accounts[j].Code
	})

	report.sortGroups()
	return report, nil
}

// ApplyGroupRefs overrides the fallback group metadata with master-data
// labels and re-sorts. Partner ledgers prefer the partner's reference code
// and fall back to the bare name with an empty secondary label.
func (r *Report) ApplyGroupRefs(refs []GroupRef) {
	byKey := make(map[int64]GroupRef, len(refs))
	for _, ref := range refs {
		byKey[ref.Key] = ref
	}
	for i := range r.Groups {
		ref, ok := byKey[r.Groups[i].Key]
		if !ok {
			continue
		}
		if r.Type == TypePartner {
			if ref.Ref != "" {
				r.Groups[i].Code = ref.Ref
				r.Groups[i].Name = ref.Name
			} else {
				r.Groups[i].Code = ref.Name
				r.Groups[i].Name = ""
			}
		} else {
			r.Groups[i].Code = ref.Code
			r.Groups[i].Name = ref.Name
		}
	}
	r.sortGroups()
}

// sortGroups orders groups ascending by display label and rebuilds the
// ordered key list. Partner ledgers sort by name, everything else by code.
func (r *Report) sortGroups() {
	sort.SliceStable(r.Groups, func(i, j int) bool {
		return r.groupSortKey(r.Groups[i]) < r.groupSortKey(r.Groups[j])
	})
	r.GroupKeys = r.GroupKeys[:0]
	for _, grp := range r.Groups {
		r.GroupKeys = append(r.GroupKeys, grp.Key)
	}
}

func (r *Report) groupSortKey(grp GroupBucket) string {
	if r.Type == TypePartner && grp.Name != "" {
		return grp.Name
	}
	return grp.Code
}

type groupMeta struct {
	Code string
	Name string
}

// groupFallbackMeta derives group labels from the lines themselves so the
// report is presentable even without a master-data lookup.
func groupFallbackMeta(dim GroupDimension, lines []JournalLine) map[int64]groupMeta {
	meta := make(map[int64]groupMeta)
	for _, line := range lines {
		key, ok := line.GroupKey(dim)
		if !ok {
			continue
		}
		if _, seen := meta[key]; seen {
			continue
		}
		switch dim {
		case GroupByPartner:
			meta[key] = groupMeta{Code: line.PartnerName}
		case GroupByJournal:
			meta[key] = groupMeta{Code: line.JournalCode}
		default:
			meta[key] = groupMeta{Code: line.AccountCode, Name: line.AccountName}
		}
	}
	return meta
}
