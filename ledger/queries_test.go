package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchMedications_NameAndCategoryFilters(t *testing.T) {
	l := newTestLedger(t)

	byName := l.SearchMedications("para", "")
	require.Len(t, byName, 1)
	assert.Equal(t, "Paracetamol 500mg", byName[0].Name)

	byCategory := l.SearchMedications("", "Antibiótico")
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Amoxicilina 250mg", byCategory[0].Name)

	all := l.SearchMedications("", "all")
	assert.Len(t, all, 5, `category "all" disables the filter`)
}

func TestCategories_DistinctInFirstSeenOrder(t *testing.T) {
	l := newTestLedger(t)

	assert.Equal(t, []string{
		"Analgésico", "Antibiótico", "Anti-inflamatório", "Antidiabético", "Inibidor ECA",
	}, l.Categories())
}

func TestLowStockAndExpiring(t *testing.T) {
	// Sample data: Metformina at 5 (critical), Amoxicilina at 25 (low);
	// everything in the sample set expires before mid-2025.
	l := newTestLedger(t)
	now := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)

	low := l.LowStock()
	names := make([]string, len(low))
	for i, m := range low {
		names[i] = m.Name
	}
	assert.ElementsMatch(t, []string{"Amoxicilina 250mg", "Metformina 850mg"}, names)

	expiring := l.Expiring(now)
	assert.NotEmpty(t, expiring)
	for _, m := range expiring {
		assert.NotEqual(t, "Ibuprofeno 400mg", m.Name, "2025-03-10 is beyond the 90-day warning band at this instant")
	}
}

func TestDashboardStats(t *testing.T) {
	l := newTestLedger(t)
	// Amoxicilina (2024-08-20) and Metformina (2024-09-05) are already past
	// expiry at this instant; the other three sit beyond the 90-day band.
	now := time.Date(2024, time.September, 10, 0, 0, 0, 0, time.UTC)

	stats := l.DashboardStats(now)

	assert.Equal(t, 5, stats.Medications)
	assert.Equal(t, 150+25+80+5+120, stats.TotalStock)
	assert.Equal(t, 2, stats.LowStock)
	assert.Equal(t, 2, stats.Expired, "Amoxicilina and Metformina are past expiry")
	assert.GreaterOrEqual(t, stats.Expiring, stats.Expired, "expired items classify critical, hence expiring")
}

func TestAccessorsReturnCopies(t *testing.T) {
	l := newTestLedger(t)

	meds := l.Medications()
	meds[0].Stock = -12345

	fresh, ok := l.Medication(meds[0].ID)
	require.True(t, ok)
	assert.NotEqual(t, -12345, fresh.Stock, "mutating a returned slice must not touch the container")
}
