/*
dto.go - Request/response data structures for the HTTP API

PURPOSE:
  Shapes the wire format. Mutation requests reuse the engine's input
  structs directly (all-string field bags - the engine owns coercion, not
  this layer). Responses decorate the raw records with classification
  labels so list views render badges without re-deriving them client-side.

SEE ALSO:
  - handlers.go: Producers and consumers of these types
  - ledger/inputs.go: The input structs requests decode into
*/
package api

import (
	"time"

	"github.com/warp/pharmacy-engine/classify"
	"github.com/warp/pharmacy-engine/ledger"
)

// MedicationDTO is a medication record plus its current classification.
// Expired is layered on top of the expiry status: an expired item reports
// expiry_status "critical" AND expired true.
type MedicationDTO struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	Lot          string          `json:"lot"`
	Expiry       string          `json:"expiry"`
	Manufacturer string          `json:"manufacturer"`
	Category     string          `json:"category"`
	Stock        int             `json:"stock"`
	StockStatus  classify.Status `json:"stock_status"`
	ExpiryStatus classify.Status `json:"expiry_status"`
	Expired      bool            `json:"expired"`
}

func toMedicationDTO(m ledger.Medication, s classify.Settings, now time.Time) MedicationDTO {
	return MedicationDTO{
		ID:           m.ID,
		Name:         m.Name,
		Lot:          m.Lot,
		Expiry:       m.Expiry,
		Manufacturer: m.Manufacturer,
		Category:     m.Category,
		Stock:        m.Stock,
		StockStatus:  classify.StockStatus(m.Stock, s),
		ExpiryStatus: classify.ExpiryStatus(m.Expiry, now, s),
		Expired:      classify.IsExpired(m.Expiry, now),
	}
}

func toMedicationDTOs(meds []ledger.Medication, s classify.Settings, now time.Time) []MedicationDTO {
	dtos := make([]MedicationDTO, len(meds))
	for i, m := range meds {
		dtos[i] = toMedicationDTO(m, s, now)
	}
	return dtos
}

// AlertsDTO is the alert view: items low on stock and items approaching
// (or past) expiry.
type AlertsDTO struct {
	LowStock []MedicationDTO `json:"low_stock"`
	Expiring []MedicationDTO `json:"expiring"`
}

// DaysOfStockDTO is the disbursement-rate estimate for one medication.
type DaysOfStockDTO struct {
	MedicationID int    `json:"medication_id"`
	Days         string `json:"days,omitempty"`
	Known        bool   `json:"known"`
}

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
