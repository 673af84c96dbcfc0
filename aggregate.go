package salesdash

import (
	"fmt"
	"sort"
	"time"
)

// AggregateByDate sums SalesAmount per distinct InvoiceDate, ascending by date.
// Dates are compared at day granularity in UTC.
func AggregateByDate(records []SalesRecord) []DailyTotal {
	groups := make(map[time.Time]int64)
	for _, r := range records {
		groups[day(r.InvoiceDate)] += r.SalesAmount
	}
	out := make([]DailyTotal, 0, len(groups))
	for d, total := range groups {
		out = append(out, DailyTotal{Date: d, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// AggregateByKey sums SalesAmount per distinct value of key.
func AggregateByKey(records []SalesRecord, key Key) (map[string]int64, error) {
	if !key.valid() {
		return nil, fmt.Errorf("key %d: %w", int(key), ErrInvalidParameter)
	}
	groups := make(map[string]int64)
	for i := range records {
		groups[key.field(&records[i])] += records[i].SalesAmount
	}
	return groups, nil
}

// Summarize counts records and totals their SalesAmount.
func Summarize(records []SalesRecord) Summary {
	var s Summary
	for _, r := range records {
		s.Rows++
		s.Total += r.SalesAmount
	}
	if s.Rows > 0 {
		s.Mean = float64(s.Total) / float64(s.Rows)
	}
	return s
}

// SortedKeys returns the keys of an AggregateByKey result in ascending order.
func SortedKeys(groups map[string]int64) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
