package ledger

import "time"

// MatchSet holds reconciliation-group identifiers.
type MatchSet map[int64]struct{}

// NewMatchSet builds a set from a list of reconciliation-group ids.
func NewMatchSet(ids []int64) MatchSet {
	set := make(MatchSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Has reports membership. A nil set contains nothing.
func (s MatchSet) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the members as a slice, for query parameters.
func (s MatchSet) IDs() []int64 {
	ids := make([]int64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	return ids
}

// ReconciliationIndex maps a reconciliation group id to the dates of the
// lines it covers.
type ReconciliationIndex map[int64][]time.Time

// FutureMatches carries the two reconciliation-group sets the classifier
// consults: groups with activity strictly after the report cutoff, and
// groups with activity strictly after the fiscal-year init boundary.
type FutureMatches struct {
	Future    MatchSet
	AfterInit MatchSet
}

// ResolveFutureMatches scans the reconciliation index for groups whose
// activity spans past the cutoff or past the init boundary. A nil cutoff
// disables future detection entirely and yields two empty sets.
func ResolveFutureMatches(cutoff, initBoundary *time.Time, index ReconciliationIndex) FutureMatches {
	matches := FutureMatches{Future: MatchSet{}, AfterInit: MatchSet{}}
	if cutoff == nil {
		return matches
	}
	for id, dates := range index {
		for _, d := range dates {
			if d.After(*cutoff) {
				matches.Future[id] = struct{}{}
				break
			}
		}
		if initBoundary == nil {
			continue
		}
		for _, d := range dates {
			if d.After(*initBoundary) {
				matches.AfterInit[id] = struct{}{}
				break
			}
		}
	}
	return matches
}
