package analytics_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/warp/pharmacy-engine/analytics"
	"github.com/warp/pharmacy-engine/ledger"
)

func TestTopStock_LimitsAndShortensNames(t *testing.T) {
	meds := []ledger.Medication{
		{Name: "Paracetamol 500mg", Stock: 150},
		{Name: "Amoxicilina 250mg", Stock: 25},
		{Name: "Ibuprofeno 400mg", Stock: 80},
	}

	points := analytics.TopStock(meds, 2)

	assert.Equal(t, []analytics.StockPoint{
		{Name: "Paracetamol", Stock: 150},
		{Name: "Amoxicilina", Stock: 25},
	}, points)
}

func TestCategoryBreakdown_CountsInFirstSeenOrder(t *testing.T) {
	meds := []ledger.Medication{
		{Name: "a", Category: "Analgésico"},
		{Name: "b", Category: "Antibiótico"},
		{Name: "c", Category: "Analgésico"},
	}

	counts := analytics.CategoryBreakdown(meds)

	assert.Equal(t, []analytics.CategoryCount{
		{Category: "Analgésico", Count: 2},
		{Category: "Antibiótico", Count: 1},
	}, counts)
}

func TestMovementByMonth_BucketsTrailingWindow(t *testing.T) {
	// GIVEN: Movements across three months, aggregated over a 3-month window
	// THEN: Quantities land in their calendar month; quiet months stay zero
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	entries := []ledger.Entry{
		{Medication: "Paracetamol 500mg", Date: "2024-04-10", Quantity: 40},
		{Medication: "Paracetamol 500mg", Date: "2024-06-01", Quantity: 100},
		{Medication: "Paracetamol 500mg", Date: "2023-12-01", Quantity: 999}, // outside window
		{Medication: "Paracetamol 500mg", Date: "garbage", Quantity: 7},      // unparseable, skipped
	}
	exits := []ledger.Exit{
		{Medication: "Paracetamol 500mg", Date: "2024-06-04", Quantity: 10},
		{Medication: "Paracetamol 500mg", Date: "2024-06-20", Quantity: 5},
	}

	got := analytics.MovementByMonth(entries, exits, 3, now)

	assert.Equal(t, []analytics.MonthlyMovement{
		{Month: "2024-04", Entries: 40},
		{Month: "2024-05"},
		{Month: "2024-06", Entries: 100, Exits: 15},
	}, got)
}

func TestDaysOfStock_FractionalRate(t *testing.T) {
	// GIVEN: 15 units exited over a 30-day window (0.5/day), 80 on hand
	// THEN: The estimate is 160 days
	now := time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)
	med := ledger.Medication{Name: "Ibuprofeno 400mg", Stock: 80}
	exits := []ledger.Exit{
		{Medication: "Ibuprofeno 400mg", Date: "2024-06-10", Quantity: 10},
		{Medication: "Ibuprofeno 400mg", Date: "2024-06-20", Quantity: 5},
		{Medication: "Outro 10mg", Date: "2024-06-20", Quantity: 50}, // other item
	}

	days, ok := analytics.DaysOfStock(med, exits, 30, now)

	assert.True(t, ok)
	assert.True(t, days.Equal(decimal.NewFromInt(160)), "got %s", days)
}

func TestDaysOfStock_NoRecentExitsMeansNoEstimate(t *testing.T) {
	now := time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)
	med := ledger.Medication{Name: "Lisinopril 10mg", Stock: 120}

	_, ok := analytics.DaysOfStock(med, nil, 30, now)
	assert.False(t, ok)
}
