package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tillworks/till/internal/model"
)

func at(t time.Time) int64 { return t.UnixMilli() }

func TestCompute_TodayBoundary(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.Local)
	midnight := time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)

	transactions := []model.Transaction{
		sale("at-midnight", at(midnight), 100, model.PaymentCash),
		sale("before-midnight", at(midnight)-1, 40, model.PaymentCash),
	}

	stats := Compute(transactions, now, 0, "")
	assert.Equal(t, int64(100), stats.Today, "a sale exactly at midnight counts toward today")
	assert.Equal(t, int64(140), stats.Month)
}

func TestCompute_MonthTotals(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)

	transactions := []model.Transaction{
		sale("june", at(time.Date(2025, 6, 10, 9, 0, 0, 0, time.Local)), 100, model.PaymentCash),
		sale("may-end", at(time.Date(2025, 5, 31, 23, 59, 59, 0, time.Local)), 50, model.PaymentLeke),
		sale("may-start", at(time.Date(2025, 5, 1, 0, 0, 0, 0, time.Local)), 25, model.PaymentMobile),
		sale("april", at(time.Date(2025, 4, 20, 12, 0, 0, 0, time.Local)), 10, model.PaymentCash),
	}

	current := Compute(transactions, now, 0, "")
	assert.Equal(t, int64(100), current.Month)
	assert.Equal(t, int64(100), current.FilteredTotal)
	require.Len(t, current.Filtered, 1)

	previous := Compute(transactions, now, 1, "")
	assert.Equal(t, int64(75), previous.FilteredTotal)
	require.Len(t, previous.Filtered, 2)
	// Ledger order is preserved in the filtered list.
	assert.Equal(t, "may-end", previous.Filtered[0].ID)
	assert.Equal(t, "may-start", previous.Filtered[1].ID)

	twoBack := Compute(transactions, now, 2, "")
	assert.Equal(t, int64(10), twoBack.FilteredTotal)
}

func TestCompute_MethodFilter(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)
	transactions := []model.Transaction{
		sale("c1", at(time.Date(2025, 6, 1, 8, 0, 0, 0, time.Local)), 100, model.PaymentCash),
		sale("l1", at(time.Date(2025, 6, 2, 8, 0, 0, 0, time.Local)), 200, model.PaymentLeke),
		sale("l2", at(time.Date(2025, 6, 3, 8, 0, 0, 0, time.Local)), 300, model.PaymentLeke),
	}

	stats := Compute(transactions, now, 0, model.PaymentLeke)
	assert.Equal(t, int64(500), stats.FilteredTotal)
	require.Len(t, stats.Filtered, 2)

	// Today and month totals ignore the method filter.
	assert.Equal(t, int64(600), stats.Month)
}

func TestMonthBounds_YearRollover(t *testing.T) {
	// Offset 2 from January must land in November of the prior year.
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.Local)
	start, end := MonthBounds(now, 2)

	assert.Equal(t, 2025, start.Year())
	assert.Equal(t, time.November, start.Month())
	assert.Equal(t, 1, start.Day())
	assert.Equal(t, time.November, end.Month())
	assert.Equal(t, 30, end.Day())
	assert.Equal(t, 23, end.Hour())
}

func TestMonthBounds_EndIsLastInstant(t *testing.T) {
	now := time.Date(2025, 3, 5, 12, 0, 0, 0, time.Local)
	start, end := MonthBounds(now, 1)

	assert.Equal(t, time.February, start.Month())
	assert.Equal(t, 28, end.Day())
	assert.True(t, end.Before(time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)))

	// A sale in the last millisecond of the month is still inside.
	lastMs := time.Date(2025, 2, 28, 23, 59, 59, 999_000_000, time.Local)
	stats := Compute([]model.Transaction{sale("late", at(lastMs), 10, model.PaymentCash)}, now, 1, "")
	assert.Equal(t, int64(10), stats.FilteredTotal)
}

func TestMonthLabels(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.Local)
	labels := MonthLabels(now, 3)
	require.Len(t, labels, 3)
	assert.Equal(t, "2026-01", labels[0].Name)
	assert.Equal(t, "2025-12", labels[1].Name)
	assert.Equal(t, "2025-11", labels[2].Name)
	assert.Equal(t, 2, labels[2].Offset)
}

func TestCompute_EmptyLedger(t *testing.T) {
	stats := Compute(nil, time.Now(), 0, "")
	assert.Zero(t, stats.Today)
	assert.Zero(t, stats.Month)
	assert.Zero(t, stats.FilteredTotal)
	assert.Empty(t, stats.Filtered)
}
