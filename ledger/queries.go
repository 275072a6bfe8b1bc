/*
queries.go - Read-only views over the current state

PURPOSE:
  Everything the UI reads - lists, search, alerts, dashboard totals - comes
  through here. No mutation path exists in this file; consumers combine
  these snapshots with the classify package for status labels.

COPY SEMANTICS:
  Accessors return copies, never the internal slices, so callers can hold
  results across mutations without racing the container.

SEE ALSO:
  - classify: Status functions applied to these views
  - analytics: Chart aggregations built on the same views
*/
package ledger

import (
	"strings"
	"time"

	"github.com/warp/pharmacy-engine/classify"
)

// Medications returns a copy of the medication collection.
func (l *Ledger) Medications() []Medication {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Medication, len(l.medications))
	copy(out, l.medications)
	return out
}

// Entries returns a copy of the entry collection.
func (l *Ledger) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Exits returns a copy of the exit collection.
func (l *Ledger) Exits() []Exit {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Exit, len(l.exits))
	copy(out, l.exits)
	return out
}

// Medication returns the record with the given id.
func (l *Ledger) Medication(id int) (Medication, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, m := range l.medications {
		if m.ID == id {
			return m, true
		}
	}
	return Medication{}, false
}

// MedicationByName returns the record matching name exactly. This is the
// same lookup entry/exit application uses.
func (l *Ledger) MedicationByName(name string) (Medication, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, m := range l.medications {
		if m.Name == name {
			return m, true
		}
	}
	return Medication{}, false
}

// SearchMedications filters by case-insensitive name substring and, unless
// category is empty or "all", by exact category.
func (l *Ledger) SearchMedications(term, category string) []Medication {
	l.mu.RLock()
	defer l.mu.RUnlock()

	term = strings.ToLower(term)
	var out []Medication
	for _, m := range l.medications {
		if term != "" && !strings.Contains(strings.ToLower(m.Name), term) {
			continue
		}
		if category != "" && category != "all" && m.Category != category {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Categories returns the distinct categories in first-seen order.
func (l *Ledger) Categories() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	seen := make(map[string]bool)
	var out []string
	for _, m := range l.medications {
		if !seen[m.Category] {
			seen[m.Category] = true
			out = append(out, m.Category)
		}
	}
	return out
}

// =============================================================================
// ALERT VIEWS
// =============================================================================

// LowStock returns medications whose stock classifies below good, under the
// current settings.
func (l *Ledger) LowStock() []Medication {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []Medication
	for _, m := range l.medications {
		if classify.StockStatus(m.Stock, l.settings) != classify.StatusGood {
			out = append(out, m)
		}
	}
	return out
}

// Expiring returns medications whose expiry classifies below good at the
// given instant. Already-expired items are included (they classify
// critical).
func (l *Ledger) Expiring(now time.Time) []Medication {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []Medication
	for _, m := range l.medications {
		if classify.ExpiryStatus(m.Expiry, now, l.settings) != classify.StatusGood {
			out = append(out, m)
		}
	}
	return out
}

// =============================================================================
// DASHBOARD
// =============================================================================

// Stats summarizes the inventory for the dashboard cards.
type Stats struct {
	Medications int `json:"medications"`
	TotalStock  int `json:"total_stock"`
	LowStock    int `json:"low_stock"`
	Expiring    int `json:"expiring"`
	Expired     int `json:"expired"`
}

// DashboardStats computes the headline totals at the given instant.
func (l *Ledger) DashboardStats(now time.Time) Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var s Stats
	s.Medications = len(l.medications)
	for _, m := range l.medications {
		s.TotalStock += m.Stock
		if classify.StockStatus(m.Stock, l.settings) != classify.StatusGood {
			s.LowStock++
		}
		if classify.ExpiryStatus(m.Expiry, now, l.settings) != classify.StatusGood {
			s.Expiring++
		}
		if classify.IsExpired(m.Expiry, now) {
			s.Expired++
		}
	}
	return s
}
