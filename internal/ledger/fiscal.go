package ledger

import "time"

// InitBoundary computes the first day of the fiscal year containing
// periodStart, given the configured fiscal year end. A nil periodStart means
// no initial-balance splitting and yields nil.
//
// When periodStart's (month, day) falls on or after the fiscal year end the
// fiscal year ends in periodStart's own year, otherwise it ended the year
// before. The boundary is the day after that year end.
func InitBoundary(periodStart *time.Time, fyEndMonth time.Month, fyEndDay int) *time.Time {
	if periodStart == nil {
		return nil
	}
	year := periodStart.Year()
	m, d := periodStart.Month(), periodStart.Day()
	onOrAfterEnd := m > fyEndMonth || (m == fyEndMonth && d >= fyEndDay)
	if !onOrAfterEnd {
		year--
	}
	boundary := time.Date(year, fyEndMonth, fyEndDay, 0, 0, 0, 0, periodStart.Location()).AddDate(0, 0, 1)
	return &boundary
}
