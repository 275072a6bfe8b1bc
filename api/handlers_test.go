/*
handlers_test.go - Unit tests for API handlers

Tests for:
- Mutation round-trips through the router
- Error status mapping (400 validation, 404 not found)
- Notification mirroring of mutation outcomes
*/
package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/pharmacy-engine/api"
	"github.com/warp/pharmacy-engine/ledger"
	"github.com/warp/pharmacy-engine/ledger/store"
	"github.com/warp/pharmacy-engine/notify"
)

func newTestServer(t *testing.T) (*httptest.Server, *ledger.Ledger, *notify.Dispatcher) {
	t.Helper()

	inv := ledger.New(store.NewMemory())
	notifier := notify.NewDispatcherWithLifetime(time.Minute)
	srv := httptest.NewServer(api.NewRouter(api.NewHandler(inv, notifier)))
	t.Cleanup(srv.Close)
	return srv, inv, notifier
}

func doJSON(t *testing.T, method, url, body string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestAddMedication_RoundTrip(t *testing.T) {
	srv, inv, notifier := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/medications", `{
		"name": "Dipirona 500mg", "lot": "LOT010", "expiry": "2026-01-01",
		"manufacturer": "TestPharm", "category": "Analgésico", "stock": "60"
	}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var dto api.MedicationDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&dto))
	assert.Equal(t, 6, dto.ID, "sample medications end at 5")
	assert.Equal(t, 60, dto.Stock, "stock string was coerced by the engine")

	_, ok := inv.Medication(6)
	assert.True(t, ok)

	msgs := notifier.Active()
	require.Len(t, msgs, 1)
	assert.Equal(t, notify.KindSuccess, msgs[0].Kind)
}

func TestAddMedication_ValidationErrorIs400(t *testing.T) {
	srv, inv, notifier := newTestServer(t)
	before := len(inv.Medications())

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/medications", `{"name": "Incompleto"}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Len(t, inv.Medications(), before, "no mutation on validation failure")

	msgs := notifier.Active()
	require.Len(t, msgs, 1)
	assert.Equal(t, notify.KindError, msgs[0].Kind, "failures surface as notifications too")
}

func TestUpdateMedication_UnknownIDIs404(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/medications/99", `{
		"name": "X", "lot": "L", "expiry": "2026-01-01",
		"manufacturer": "M", "category": "C", "stock": "1"
	}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestApplyEntry_AdjustsStockThroughTheAPI(t *testing.T) {
	srv, inv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/entries", `{
		"medication": "Paracetamol 500mg", "lot": "LOT001",
		"date": "2024-07-01", "supplier": "MedSupply Co.", "quantity": "20"
	}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	med, ok := inv.MedicationByName("Paracetamol 500mg")
	require.True(t, ok)
	assert.Equal(t, 170, med.Stock, "sample stock 150 plus 20")
}

func TestApplyExit_ClampsAtZeroThroughTheAPI(t *testing.T) {
	srv, inv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/exits", `{
		"medication": "Metformina 850mg", "quantity": "30",
		"reason": "prescription", "responsible": "Dr. Silva"
	}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	med, ok := inv.MedicationByName("Metformina 850mg")
	require.True(t, ok)
	assert.Equal(t, 0, med.Stock, "sample stock 5, clamped at zero")
}

func TestSettings_UpdateAndReadBack(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/settings", `{
		"criticalThreshold": 5, "lowThreshold": 20,
		"expiryWarning": 60, "expiryCritical": 15,
		"emailNotifications": true, "emailAddress": "farmacia@example.com"
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	get := doJSON(t, http.MethodGet, srv.URL+"/api/settings", "")
	var got map[string]any
	require.NoError(t, json.NewDecoder(get.Body).Decode(&got))
	assert.EqualValues(t, 20, got["lowThreshold"])
	assert.Equal(t, "farmacia@example.com", got["emailAddress"])
}

func TestDismissNotification_IsIdempotentOverHTTP(t *testing.T) {
	srv, _, notifier := newTestServer(t)
	msg := notifier.Push(notify.KindInfo, "Note", "hello")

	first := doJSON(t, http.MethodDelete, srv.URL+"/api/notifications/"+itoa64(msg.ID), "")
	assert.Equal(t, http.StatusNoContent, first.StatusCode)

	second := doJSON(t, http.MethodDelete, srv.URL+"/api/notifications/"+itoa64(msg.ID), "")
	assert.Equal(t, http.StatusNoContent, second.StatusCode, "double dismissal is a no-op, not an error")
}

func TestAlerts_ReflectThresholds(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/alerts", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var alerts api.AlertsDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&alerts))

	names := make([]string, len(alerts.LowStock))
	for i, m := range alerts.LowStock {
		names[i] = m.Name
	}
	assert.ElementsMatch(t, []string{"Amoxicilina 250mg", "Metformina 850mg"}, names)
}

func itoa64(n int64) string {
	return strconv.FormatInt(n, 10)
}
