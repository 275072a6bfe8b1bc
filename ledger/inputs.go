/*
inputs.go - Per-operation input structs and field coercion

PURPOSE:
  UI collaborators hand the engine plain field bags: every value arrives as
  a string, exactly as typed into a form. These structs name the fields per
  operation, and the coerce functions turn them into validated records.
  Coercion and required-field checks happen HERE, at the engine boundary,
  never in the UI.

VALIDATION CONTRACT:
  Any missing required field or failed numeric coercion aborts the whole
  operation with a ValidationError before any collection is touched.

NUMERIC RULES:
  - Medication stock: integer >= 0
  - Entry/exit quantity: integer >= 1

SEE ALSO:
  - ledger.go: Callers of the coerce functions
*/
package ledger

import (
	"strconv"
	"strings"
)

// MedicationInput carries the editable medication fields, pre-coercion.
// All fields are required.
type MedicationInput struct {
	Name         string `json:"name"`
	Lot          string `json:"lot"`
	Expiry       string `json:"expiry"`
	Manufacturer string `json:"manufacturer"`
	Category     string `json:"category"`
	Stock        string `json:"stock"`
}

// EntryInput carries the editable entry fields, pre-coercion.
// All fields are required.
type EntryInput struct {
	Medication string `json:"medication"`
	Lot        string `json:"lot"`
	Date       string `json:"date"`
	Supplier   string `json:"supplier"`
	Quantity   string `json:"quantity"`
}

// ExitInput carries the editable exit fields, pre-coercion. Notes is
// optional; the date is never an input (stamped at creation, kept on edit).
type ExitInput struct {
	Medication  string `json:"medication"`
	Quantity    string `json:"quantity"`
	Reason      string `json:"reason"`
	Responsible string `json:"responsible"`
	Notes       string `json:"notes"`
}

// =============================================================================
// COERCION
// =============================================================================

// requiredField pairs a field name with its raw value, so missing-field
// errors always report the first gap in form order.
type requiredField struct {
	name  string
	value string
}

func firstMissing(fields []requiredField) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return missingField(f.name)
		}
	}
	return nil
}

func (in MedicationInput) coerce() (Medication, error) {
	if err := firstMissing([]requiredField{
		{"name", in.Name},
		{"lot", in.Lot},
		{"expiry", in.Expiry},
		{"manufacturer", in.Manufacturer},
		{"category", in.Category},
		{"stock", in.Stock},
	}); err != nil {
		return Medication{}, err
	}

	stock, err := strconv.Atoi(strings.TrimSpace(in.Stock))
	if err != nil {
		return Medication{}, invalidField("stock", "must be an integer")
	}
	if stock < 0 {
		return Medication{}, invalidField("stock", "must not be negative")
	}

	return Medication{
		Name:         in.Name,
		Lot:          in.Lot,
		Expiry:       in.Expiry,
		Manufacturer: in.Manufacturer,
		Category:     in.Category,
		Stock:        stock,
	}, nil
}

func (in EntryInput) coerce() (Entry, error) {
	if err := firstMissing([]requiredField{
		{"medication", in.Medication},
		{"lot", in.Lot},
		{"date", in.Date},
		{"supplier", in.Supplier},
		{"quantity", in.Quantity},
	}); err != nil {
		return Entry{}, err
	}

	qty, err := parseQuantity(in.Quantity)
	if err != nil {
		return Entry{}, err
	}

	return Entry{
		Medication: in.Medication,
		Lot:        in.Lot,
		Date:       in.Date,
		Supplier:   in.Supplier,
		Quantity:   qty,
	}, nil
}

func (in ExitInput) coerce() (Exit, error) {
	if err := firstMissing([]requiredField{
		{"medication", in.Medication},
		{"quantity", in.Quantity},
		{"reason", in.Reason},
		{"responsible", in.Responsible},
	}); err != nil {
		return Exit{}, err
	}

	qty, err := parseQuantity(in.Quantity)
	if err != nil {
		return Exit{}, err
	}

	reason := ExitReason(in.Reason)
	if !ValidReason(reason) {
		return Exit{}, invalidField("reason", "is not a known exit reason")
	}

	return Exit{
		Medication:  in.Medication,
		Reason:      reason,
		Responsible: in.Responsible,
		Quantity:    qty,
		Notes:       in.Notes,
	}, nil
}

func parseQuantity(raw string) (int, error) {
	qty, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, invalidField("quantity", "must be an integer")
	}
	if qty < 1 {
		return 0, invalidField("quantity", "must be positive")
	}
	return qty, nil
}
