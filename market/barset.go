package market

import "sort"

// BarSet holds the daily bars for a symbol set over a date range, grouped by
// trading date. Dates iterate in ascending order and bars within a date are
// ordered by symbol ascending, so a replay over a BarSet is deterministic.
//
// A date with no entry is not a trading day, not a data gap.
type BarSet struct {
	byDate map[string][]Bar
	dates  []string
}

// NewBarSet groups the given bars by trade date. The input order does not
// matter; dates and per-date symbols are sorted here.
func NewBarSet(bars []Bar) *BarSet {
	s := &BarSet{byDate: make(map[string][]Bar)}
	for _, b := range bars {
		s.byDate[b.Date] = append(s.byDate[b.Date], b)
	}
	for date, group := range s.byDate {
		sort.Slice(group, func(i, j int) bool { return group[i].Symbol < group[j].Symbol })
		s.dates = append(s.dates, date)
	}
	sort.Strings(s.dates)
	return s
}

// Dates returns the trading dates in ascending order.
func (s *BarSet) Dates() []string {
	return s.dates
}

// ForDate returns the bars for one trading date, ordered by symbol. Nil when
// the date is not in the set.
func (s *BarSet) ForDate(date string) []Bar {
	return s.byDate[date]
}

// Days returns the number of trading dates in the set.
func (s *BarSet) Days() int {
	return len(s.dates)
}

// Range returns the first and last trading date, or empty strings for an
// empty set.
func (s *BarSet) Range() (start, end string) {
	if len(s.dates) == 0 {
		return "", ""
	}
	return s.dates[0], s.dates[len(s.dates)-1]
}

// Symbols returns the distinct symbols present anywhere in the set, sorted.
func (s *BarSet) Symbols() []string {
	seen := make(map[string]bool)
	var out []string
	for _, group := range s.byDate {
		for _, b := range group {
			if !seen[b.Symbol] {
				seen[b.Symbol] = true
				out = append(out, b.Symbol)
			}
		}
	}
	sort.Strings(out)
	return out
}
