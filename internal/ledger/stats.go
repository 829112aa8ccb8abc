package ledger

import (
	"fmt"
	"time"

	"github.com/tillworks/till/internal/model"
)

// Stats holds the derived aggregates for one statistics query. Filtered
// holds the transactions of the selected month (optionally restricted to
// one payment method) in ledger order, and FilteredTotal their sum.
type Stats struct {
	Filtered      []model.Transaction
	Today         int64
	Month         int64
	FilteredTotal int64
}

// MonthLabel names one selectable month in the history filter.
type MonthLabel struct {
	Name   string
	Offset int
}

// Compute derives all statistics from the given transactions. Boundaries
// use local wall-clock time: today starts at midnight, a month runs from
// the first instant of day 1 through the last instant of its final day.
// monthOffset selects the month (0 = current, 1 = previous, ...), rolling
// over year boundaries. An empty method matches every payment method.
func Compute(transactions []model.Transaction, now time.Time, monthOffset int, method model.PaymentMethod) Stats {
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).UnixMilli()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).UnixMilli()

	filterStart, filterEnd := MonthBounds(now, monthOffset)
	filterStartMs := filterStart.UnixMilli()
	filterEndMs := filterEnd.UnixMilli()

	stats := Stats{Filtered: []model.Transaction{}}
	for _, txn := range transactions {
		if txn.Timestamp >= startOfToday {
			stats.Today += txn.Total
		}
		if txn.Timestamp >= startOfMonth {
			stats.Month += txn.Total
		}
		if txn.Timestamp < filterStartMs || txn.Timestamp > filterEndMs {
			continue
		}
		if method != "" && txn.Method != method {
			continue
		}
		stats.Filtered = append(stats.Filtered, txn)
		stats.FilteredTotal += txn.Total
	}
	return stats
}

// MonthBounds returns the first and last instant of the month offset
// months before now, in now's location. time.Date normalizes out-of-range
// months, so an offset crossing January lands in the prior year.
func MonthBounds(now time.Time, offset int) (start, end time.Time) {
	start = time.Date(now.Year(), now.Month()-time.Month(offset), 1, 0, 0, 0, 0, now.Location())
	end = start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// MonthLabels returns display labels for the n most recent months,
// newest first, matching the offsets accepted by Compute.
func MonthLabels(now time.Time, n int) []MonthLabel {
	labels := make([]MonthLabel, 0, n)
	for i := 0; i < n; i++ {
		start, _ := MonthBounds(now, i)
		labels = append(labels, MonthLabel{
			Name:   fmt.Sprintf("%d-%02d", start.Year(), int(start.Month())),
			Offset: i,
		})
	}
	return labels
}
