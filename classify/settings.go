/*
settings.go - Tunable thresholds and notification preferences

PURPOSE:
  Holds the four numeric thresholds that drive stock and expiry
  classification, plus notification-channel preferences. This is a plain
  value object: no logic lives here beyond defaults.

THRESHOLD CONVENTIONS:
  StockCritical < StockLow and ExpiryCriticalDays < ExpiryWarningDays by
  convention. Neither ordering is enforced - an inverted configuration
  simply makes the broader band unreachable.

NOTIFICATION FIELDS:
  The channel booleans and contact strings are opaque to the engine. They
  are stored, persisted, and handed to an external dispatch collaborator;
  nothing in this module reads them.

JSON KEYS:
  The json tags match the snapshot wire format, so settings saved by a
  previous run (or the original web client) round-trip unchanged.

SEE ALSO:
  - classify.go: The functions consuming these thresholds
  - ledger/snapshot.go: Load/save policy for the settings snapshot key
*/
package classify

// Settings holds the classification thresholds and notification preferences.
type Settings struct {
	// Stock thresholds, in units on hand.
	StockCritical int `json:"criticalThreshold"`
	StockLow      int `json:"lowThreshold"`

	// Expiry thresholds, in days until the expiry date.
	ExpiryWarningDays  int `json:"expiryWarning"`
	ExpiryCriticalDays int `json:"expiryCritical"`

	// Notification preferences. Opaque pass-through for the dispatch
	// collaborator; the engine never interprets them.
	EmailNotifications    bool   `json:"emailNotifications"`
	WhatsappNotifications bool   `json:"whatsappNotifications"`
	DailySummary          bool   `json:"dailySummary"`
	EmailAddress          string `json:"emailAddress"`
	WhatsappNumber        string `json:"whatsappNumber"`
}

// DefaultSettings returns the built-in configuration used when no settings
// snapshot exists or the stored one cannot be parsed.
func DefaultSettings() Settings {
	return Settings{
		StockCritical:      10,
		StockLow:           30,
		ExpiryWarningDays:  90,
		ExpiryCriticalDays: 30,
		EmailNotifications: true,
		DailySummary:       true,
	}
}
