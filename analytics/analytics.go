/*
Package analytics aggregates the ledger collections for charts and reports.

PURPOSE:
  Read-only computations for the chart views: top-stock bars, category
  breakdown, monthly entry/exit movement, and a days-of-stock estimate.
  Everything here is a pure function of collection snapshots - the ledger
  is never touched directly, so these can run on any copy of the data.

MOVEMENT AGGREGATION:
  Monthly totals are derived from the actual entry/exit history by date,
  bucketed per calendar month over a trailing window. Records with
  unparseable dates are skipped.

DAYS OF STOCK:
  Estimated as current stock divided by the average daily disbursement over
  a trailing window. Rates are fractional (e.g. 17 units over 30 days), so
  the arithmetic uses decimal rather than floats.

SEE ALSO:
  - ledger/queries.go: The views these functions consume
*/
package analytics

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/pharmacy-engine/classify"
	"github.com/warp/pharmacy-engine/ledger"
)

// =============================================================================
// STOCK CHART
// =============================================================================

// StockPoint is one bar of the stock chart.
type StockPoint struct {
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

// TopStock returns up to limit medications as chart points, in collection
// order. Names are shortened to their first word to keep axis labels
// readable.
func TopStock(meds []ledger.Medication, limit int) []StockPoint {
	out := make([]StockPoint, 0, limit)
	for _, m := range meds {
		if len(out) == limit {
			break
		}
		out = append(out, StockPoint{Name: firstWord(m.Name), Stock: m.Stock})
	}
	return out
}

func firstWord(s string) string {
	for i, r := range s {
		if r == ' ' {
			return s[:i]
		}
	}
	return s
}

// =============================================================================
// CATEGORY CHART
// =============================================================================

// CategoryCount is one slice of the category breakdown.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// CategoryBreakdown counts medications per category, in first-seen order.
func CategoryBreakdown(meds []ledger.Medication) []CategoryCount {
	index := make(map[string]int)
	var out []CategoryCount
	for _, m := range meds {
		i, ok := index[m.Category]
		if !ok {
			index[m.Category] = len(out)
			out = append(out, CategoryCount{Category: m.Category})
			i = index[m.Category]
		}
		out[i].Count++
	}
	return out
}

// =============================================================================
// MOVEMENT CHART
// =============================================================================

// MonthlyMovement is one month of aggregated entry/exit quantities.
type MonthlyMovement struct {
	Month   string `json:"month"` // "2024-06"
	Entries int    `json:"entries"`
	Exits   int    `json:"exits"`
}

// MovementByMonth buckets entry and exit quantities per calendar month over
// the trailing window ending at now. The result always covers exactly
// months buckets, oldest first, with zeroes for quiet months.
func MovementByMonth(entries []ledger.Entry, exits []ledger.Exit, months int, now time.Time) []MonthlyMovement {
	if months < 1 {
		return nil
	}

	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)
	index := make(map[string]int, months)
	out := make([]MonthlyMovement, months)
	for i := 0; i < months; i++ {
		key := first.AddDate(0, i, 0).Format("2006-01")
		index[key] = i
		out[i].Month = key
	}

	for _, e := range entries {
		if i, ok := bucket(index, e.Date); ok {
			out[i].Entries += e.Quantity
		}
	}
	for _, x := range exits {
		if i, ok := bucket(index, x.Date); ok {
			out[i].Exits += x.Quantity
		}
	}
	return out
}

func bucket(index map[string]int, date string) (int, bool) {
	t, err := time.Parse(classify.DateLayout, date)
	if err != nil {
		return 0, false
	}
	i, ok := index[t.Format("2006-01")]
	return i, ok
}

// =============================================================================
// DAYS OF STOCK
// =============================================================================

// DaysOfStock estimates how many days the medication's current stock lasts
// at its recent disbursement rate: stock / (exited quantity over the last
// windowDays, per day). Returns false when nothing left the inventory in
// the window - no rate, no estimate.
func DaysOfStock(med ledger.Medication, exits []ledger.Exit, windowDays int, now time.Time) (decimal.Decimal, bool) {
	if windowDays < 1 {
		return decimal.Zero, false
	}

	cutoff := now.AddDate(0, 0, -windowDays)
	total := 0
	for _, x := range exits {
		if x.Medication != med.Name {
			continue
		}
		t, err := time.Parse(classify.DateLayout, x.Date)
		if err != nil {
			continue
		}
		if t.Before(cutoff) || t.After(now) {
			continue
		}
		total += x.Quantity
	}
	if total == 0 {
		return decimal.Zero, false
	}

	rate := decimal.NewFromInt(int64(total)).Div(decimal.NewFromInt(int64(windowDays)))
	return decimal.NewFromInt(int64(med.Stock)).DivRound(rate, 1), true
}
