/*
Package classify maps stock counts and expiry dates to status labels.

PURPOSE:
  Pure classification functions over (value, Settings). No state, no side
  effects, no clock access - callers pass "now" explicitly so results are
  reproducible in tests and consistent across a single render pass.

KEY CONCEPTS:
  Stock status:  critical / low / good, by count against thresholds.
  Expiry status: critical / warning / good, by days remaining.
  Expired:       a separate boolean, layered on top of the expiry status by
                 consumers (an expired item is both "critical" and flagged
                 "expired" - the badge does not replace the classification).

TIE-BREAKING:
  Comparisons use <=, so a value sitting exactly on a threshold resolves to
  the more severe category.

DAY ARITHMETIC:
  Days until expiry is ceil((expiry - now) / 24h) over calendar time, not
  calendar days. A date "tomorrow at 00:00" seen at 23:59 today is 1 day
  out, not 0. Past dates yield negative day counts, which land below both
  thresholds and classify as critical.

SEE ALSO:
  - settings.go: The threshold value object
  - ledger/queries.go: Read-side consumers of these functions
*/
package classify

import (
	"math"
	"time"
)

// DateLayout is the wire format for expiry and movement dates.
const DateLayout = "2006-01-02"

// Status is a severity label produced by classification.
type Status string

const (
	StatusCritical Status = "critical"
	StatusLow      Status = "low"
	StatusWarning  Status = "warning"
	StatusGood     Status = "good"
)

// =============================================================================
// STOCK CLASSIFICATION
// =============================================================================

// StockStatus classifies a stock count against the configured thresholds.
// Ties resolve to the more severe category.
func StockStatus(stock int, s Settings) Status {
	if stock <= s.StockCritical {
		return StatusCritical
	}
	if stock <= s.StockLow {
		return StatusLow
	}
	return StatusGood
}

// =============================================================================
// EXPIRY CLASSIFICATION
// =============================================================================

// DaysUntilExpiry returns ceil((expiry - now) / 24h) for an expiry date in
// DateLayout. The result is negative for past dates. An unparseable date
// returns an error; see ExpiryStatus for how classification treats that.
func DaysUntilExpiry(expiry string, now time.Time) (int, error) {
	t, err := time.Parse(DateLayout, expiry)
	if err != nil {
		return 0, err
	}
	return int(math.Ceil(t.Sub(now).Hours() / 24)), nil
}

// ExpiryStatus classifies an expiry date by days remaining. A date that is
// already past yields a negative day count and therefore classifies as
// critical. An unparseable date classifies as good: classification never
// fails, and callers that care about malformed dates use DaysUntilExpiry.
func ExpiryStatus(expiry string, now time.Time, s Settings) Status {
	days, err := DaysUntilExpiry(expiry, now)
	if err != nil {
		return StatusGood
	}
	if days <= s.ExpiryCriticalDays {
		return StatusCritical
	}
	if days <= s.ExpiryWarningDays {
		return StatusWarning
	}
	return StatusGood
}

// IsExpired reports whether the expiry date is strictly in the past. This is
// the "Expired" badge check, distinct from (and layered on top of) the
// critical classification. Unparseable dates report false.
func IsExpired(expiry string, now time.Time) bool {
	t, err := time.Parse(DateLayout, expiry)
	if err != nil {
		return false
	}
	return t.Before(now)
}
