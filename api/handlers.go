/*
handlers.go - HTTP API handlers for the inventory engine

PURPOSE:
  Exposes the ledger, classification, and analytics over REST. Handlers
  decode the request, call the engine, push a notification mirroring the
  outcome, and serialize the response. Coercion of form values stays in the
  engine - this layer passes the string field bags through untouched.

ENDPOINTS:
  Medications:
    GET    /api/medications           List (optional ?q= and ?category=)
    POST   /api/medications           Add
    PUT    /api/medications/{id}      Update (full replacement)
    DELETE /api/medications/{id}      Delete (no cascade)
    GET    /api/medications/categories Distinct categories

  Movements:
    GET/POST       /api/entries       List / apply receipt
    PUT/DELETE     /api/entries/{id}  Edit / delete (no stock recompute)
    GET/POST       /api/exits         List / apply disbursement
    PUT/DELETE     /api/exits/{id}    Edit / delete (no stock recompute)

  Settings:
    GET/PUT /api/settings

  Read-only views:
    GET /api/dashboard                Headline totals
    GET /api/alerts                   Low-stock and expiring lists
    GET /api/analytics/stock          Top-stock chart points
    GET /api/analytics/categories     Category breakdown
    GET /api/analytics/movement       Monthly entry/exit totals
    GET /api/analytics/days-of-stock/{id}

  Notifications:
    GET    /api/notifications         Live queue
    DELETE /api/notifications/{id}    Dismiss (idempotent)

ERROR HANDLING:
  - 400: Validation errors (missing field, failed coercion)
  - 404: Target id does not exist
  - 500: Everything else
  Validation and not-found failures also surface as error notifications,
  matching how mutation successes surface as success notifications.

SEE ALSO:
  - dto.go: Response shapes
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/warp/pharmacy-engine/analytics"
	"github.com/warp/pharmacy-engine/classify"
	"github.com/warp/pharmacy-engine/ledger"
	"github.com/warp/pharmacy-engine/notify"
)

// movementWindowMonths is how far back the movement chart aggregates.
const movementWindowMonths = 6

// daysOfStockWindow is the trailing window for disbursement-rate estimates.
const daysOfStockWindow = 30

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Inv      *ledger.Ledger
	Notifier *notify.Dispatcher
}

// NewHandler creates a handler over the given ledger and dispatcher.
func NewHandler(inv *ledger.Ledger, notifier *notify.Dispatcher) *Handler {
	return &Handler{Inv: inv, Notifier: notifier}
}

// =============================================================================
// MEDICATION HANDLERS
// =============================================================================

// ListMedications returns medications with classification labels, filtered
// by the optional q (name substring) and category query parameters.
func (h *Handler) ListMedications(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")

	meds := h.Inv.SearchMedications(q, category)
	writeJSON(w, http.StatusOK, toMedicationDTOs(meds, h.Inv.Settings(), time.Now()))
}

// AddMedication creates a medication from the posted field bag.
func (h *Handler) AddMedication(w http.ResponseWriter, r *http.Request) {
	var in ledger.MedicationInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	med, err := h.Inv.AddMedication(r.Context(), in)
	if err != nil {
		h.failure(w, err)
		return
	}

	h.Notifier.Push(notify.KindSuccess, "Success", "Medication added.")
	writeJSON(w, http.StatusCreated, toMedicationDTO(med, h.Inv.Settings(), time.Now()))
}

// UpdateMedication replaces all fields of one medication.
func (h *Handler) UpdateMedication(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var in ledger.MedicationInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	med, err := h.Inv.UpdateMedication(r.Context(), id, in)
	if err != nil {
		h.failure(w, err)
		return
	}

	h.Notifier.Push(notify.KindSuccess, "Success", "Medication updated.")
	writeJSON(w, http.StatusOK, toMedicationDTO(med, h.Inv.Settings(), time.Now()))
}

// DeleteMedication removes one medication. Movements referencing it by
// name remain.
func (h *Handler) DeleteMedication(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.Inv.DeleteMedication(r.Context(), id); err != nil {
		h.failure(w, err)
		return
	}

	h.Notifier.Push(notify.KindSuccess, "Success", "Medication deleted.")
	w.WriteHeader(http.StatusNoContent)
}

// ListCategories returns the distinct categories.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"categories": h.Inv.Categories()})
}

// =============================================================================
// ENTRY HANDLERS
// =============================================================================

// ListEntries returns the receipt history.
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Inv.Entries())
}

// ApplyEntry records a receipt and applies its stock increase.
func (h *Handler) ApplyEntry(w http.ResponseWriter, r *http.Request) {
	var in ledger.EntryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	entry, err := h.Inv.ApplyEntry(r.Context(), in)
	if err != nil {
		h.failure(w, err)
		return
	}

	h.Notifier.Push(notify.KindSuccess, "Success", "Entry recorded.")
	writeJSON(w, http.StatusCreated, entry)
}

// EditEntry replaces an entry's fields. Stock is not recomputed.
func (h *Handler) EditEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var in ledger.EntryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	entry, err := h.Inv.EditEntry(r.Context(), id, in)
	if err != nil {
		h.failure(w, err)
		return
	}

	h.Notifier.Push(notify.KindSuccess, "Success", "Entry updated.")
	writeJSON(w, http.StatusOK, entry)
}

// DeleteEntry removes an entry record. The stock it moved stays moved.
func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.Inv.DeleteEntry(r.Context(), id); err != nil {
		h.failure(w, err)
		return
	}

	h.Notifier.Push(notify.KindSuccess, "Success", "Entry deleted.")
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// EXIT HANDLERS
// =============================================================================

// ListExits returns the disbursement history.
func (h *Handler) ListExits(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Inv.Exits())
}

// ApplyExit records a disbursement and applies its clamped stock decrease.
func (h *Handler) ApplyExit(w http.ResponseWriter, r *http.Request) {
	var in ledger.ExitInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	exit, err := h.Inv.ApplyExit(r.Context(), in)
	if err != nil {
		h.failure(w, err)
		return
	}

	h.Notifier.Push(notify.KindSuccess, "Success", "Exit recorded.")
	writeJSON(w, http.StatusCreated, exit)
}

// EditExit replaces an exit's editable fields; the creation date stays.
func (h *Handler) EditExit(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var in ledger.ExitInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	exit, err := h.Inv.EditExit(r.Context(), id, in)
	if err != nil {
		h.failure(w, err)
		return
	}

	h.Notifier.Push(notify.KindSuccess, "Success", "Exit updated.")
	writeJSON(w, http.StatusOK, exit)
}

// DeleteExit removes an exit record. The stock it moved stays moved.
func (h *Handler) DeleteExit(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.Inv.DeleteExit(r.Context(), id); err != nil {
		h.failure(w, err)
		return
	}

	h.Notifier.Push(notify.KindSuccess, "Success", "Exit deleted.")
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// SETTINGS HANDLERS
// =============================================================================

// GetSettings returns the current thresholds and preferences.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Inv.Settings())
}

// UpdateSettings replaces the settings and persists them.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var s classify.Settings
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	h.Inv.UpdateSettings(r.Context(), s)
	h.Notifier.Push(notify.KindSuccess, "Success", "Settings saved.")
	writeJSON(w, http.StatusOK, h.Inv.Settings())
}

// =============================================================================
// READ-ONLY VIEWS
// =============================================================================

// Dashboard returns the headline totals.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Inv.DashboardStats(time.Now()))
}

// Alerts returns the low-stock and expiring lists.
func (h *Handler) Alerts(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	s := h.Inv.Settings()
	writeJSON(w, http.StatusOK, AlertsDTO{
		LowStock: toMedicationDTOs(h.Inv.LowStock(), s, now),
		Expiring: toMedicationDTOs(h.Inv.Expiring(now), s, now),
	})
}

// StockChart returns the top-stock bar chart points.
func (h *Handler) StockChart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, analytics.TopStock(h.Inv.Medications(), 5))
}

// CategoryChart returns medication counts per category.
func (h *Handler) CategoryChart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, analytics.CategoryBreakdown(h.Inv.Medications()))
}

// MovementChart returns monthly entry/exit totals over the trailing window.
func (h *Handler) MovementChart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, analytics.MovementByMonth(
		h.Inv.Entries(), h.Inv.Exits(), movementWindowMonths, time.Now()))
}

// DaysOfStock returns the disbursement-rate estimate for one medication.
func (h *Handler) DaysOfStock(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	med, found := h.Inv.Medication(id)
	if !found {
		writeError(w, http.StatusNotFound, "Medication not found", nil)
		return
	}

	dto := DaysOfStockDTO{MedicationID: id}
	if days, known := analytics.DaysOfStock(med, h.Inv.Exits(), daysOfStockWindow, time.Now()); known {
		dto.Days = days.String()
		dto.Known = true
	}
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// NOTIFICATION HANDLERS
// =============================================================================

// ListNotifications returns the live queue.
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Notifier.Active())
}

// DismissNotification removes one message. Dismissing an id that already
// expired (or never existed) succeeds: removal is idempotent.
func (h *Handler) DismissNotification(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid notification id", err)
		return
	}

	h.Notifier.Dismiss(id)
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// HELPERS
// =============================================================================

// failure maps an engine error to a status code and mirrors it into the
// notification queue, the way successes are mirrored.
func (h *Handler) failure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrValidation):
		h.Notifier.Push(notify.KindError, "Validation error", err.Error())
		writeError(w, http.StatusBadRequest, "Validation failed", err)
	case errors.Is(err, ledger.ErrNotFound):
		h.Notifier.Push(notify.KindError, "Not found", err.Error())
		writeError(w, http.StatusNotFound, "Record not found", err)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}

func idParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id", err)
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
