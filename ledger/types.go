/*
Package ledger provides the inventory state container.

PURPOSE:
  This package owns the three collections at the heart of the system -
  medications, entries (stock receipts), exits (stock disbursements) - and
  the operations that mutate them. All mutation goes through the Ledger;
  nothing splices collections directly, so the invariants are enforced in
  one place.

KEY CONCEPTS IN THIS FILE (types.go):
  - Medication: an item on hand, with an eagerly maintained stock count
  - Entry: an immutable-ish receipt event that increased stock at creation
  - Exit: a disbursement event that decreased stock at creation
  - ExitReason: the enumerated reasons a disbursement happens

SOFT REFERENCES:
  Entries and exits point at medications BY NAME, not by id. This is a
  lookup key with defined miss behavior (the stock adjustment is skipped),
  not an ownership relation. Renaming or deleting a medication silently
  orphans historical movements referencing the old name. Pre-existing
  design limitation, preserved deliberately.

IDENTITY:
  Ids are positive integers assigned as max(existing ids) + 1, per
  collection. Gaps left by deleting a middle record are never refilled,
  because a higher surviving id keeps the max above the gap.

DATES:
  All dates travel as "YYYY-MM-DD" strings (classify.DateLayout). That is
  the snapshot wire format; classification parses on demand.

SEE ALSO:
  - ledger.go: The operation set mutating these records
  - queries.go: Read-only views for classification consumers
  - snapshot.go: Persistence policy
*/
package ledger

// Medication is one inventory item. Stock is a running total maintained by
// entry/exit application, never recomputed from history on read.
type Medication struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Lot          string `json:"lot"`
	Expiry       string `json:"expiry"`
	Manufacturer string `json:"manufacturer"`
	Category     string `json:"category"`
	Stock        int    `json:"stock"`
}

// Entry records a stock receipt. Medication is a soft reference by name.
type Entry struct {
	ID         int    `json:"id"`
	Medication string `json:"medication"`
	Lot        string `json:"lot"`
	Date       string `json:"date"`
	Supplier   string `json:"supplier"`
	Quantity   int    `json:"quantity"`
}

// Exit records a stock disbursement. Date is stamped at creation time and
// never replaced by edits.
type Exit struct {
	ID          int        `json:"id"`
	Medication  string     `json:"medication"`
	Date        string     `json:"date"`
	Reason      ExitReason `json:"reason"`
	Responsible string     `json:"responsible"`
	Quantity    int        `json:"quantity"`
	Notes       string     `json:"notes,omitempty"`
}

// ExitReason enumerates why stock left the inventory.
type ExitReason string

const (
	ReasonPrescription     ExitReason = "prescription"
	ReasonHospitalTransfer ExitReason = "hospital-transfer"
	ReasonPatientRequest   ExitReason = "patient-request"
	ReasonExpired          ExitReason = "expired"
	ReasonDamaged          ExitReason = "damaged"
)

// ValidReason reports whether r is one of the enumerated exit reasons.
func ValidReason(r ExitReason) bool {
	switch r {
	case ReasonPrescription, ReasonHospitalTransfer, ReasonPatientRequest, ReasonExpired, ReasonDamaged:
		return true
	}
	return false
}
