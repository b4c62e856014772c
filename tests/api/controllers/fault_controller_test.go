package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gridwatch/backend/internal/api/controllers"
	"github.com/gridwatch/backend/internal/db/models"
	"github.com/gridwatch/backend/internal/services"
	testutils "github.com/gridwatch/backend/tests/utils"
	"github.com/stretchr/testify/assert"
)

func setupFaultRoutes(ts *testutils.TestSetup) *services.FaultService {
	ts.SetupTestDatabase(&models.FaultEvent{})
	service := services.NewFaultService(ts.DB, ts.Logger, nil)
	controller := controllers.NewFaultController(service, ts.Logger)
	controller.RegisterRoutes(ts.Router.Group("/api"))
	return service
}

func TestRecordFault_Created(t *testing.T) {
	ts := testutils.NewTestSetup(t)
	defer ts.Cleanup()
	setupFaultRoutes(ts)

	body := map[string]interface{}{
		"control_mac": "AA:BB:CC:DD:EE:FF",
		"short_circuit": map[string]interface{}{
			"current": map[string]interface{}{"active": true, "duration_seconds": 5},
		},
	}

	resp := ts.ExecuteRequest(http.MethodPost, "/api/short-circuit", body, nil)
	assert.Equal(t, http.StatusCreated, resp.Code)

	var parsed struct {
		Status string `json:"status"`
		Data   struct {
			ID                   uint        `json:"id"`
			ControlMAC           string      `json:"control_mac"`
			CurrentActive        bool        `json:"current_active"`
			CurrentDurationSecs  int         `json:"current_duration_seconds"`
			PreviousActive       interface{} `json:"previous_active"`
			PreviousTimestamp    interface{} `json:"previous_timestamp"`
			PreviousDurationSecs interface{} `json:"previous_duration_seconds"`
		} `json:"data"`
	}
	ts.ParseResponse(resp, &parsed)
	assert.Equal(t, "success", parsed.Status)
	assert.NotZero(t, parsed.Data.ID)
	assert.Equal(t, "AA:BB:CC:DD:EE:FF", parsed.Data.ControlMAC)
	assert.True(t, parsed.Data.CurrentActive)
	assert.Equal(t, 5, parsed.Data.CurrentDurationSecs)
	assert.Nil(t, parsed.Data.PreviousActive)
	assert.Nil(t, parsed.Data.PreviousTimestamp)
	assert.Nil(t, parsed.Data.PreviousDurationSecs)
}

func TestRecordFault_NoBody(t *testing.T) {
	ts := testutils.NewTestSetup(t)
	defer ts.Cleanup()
	setupFaultRoutes(ts)

	resp := ts.ExecuteRawRequest(http.MethodPost, "/api/short-circuit", "", "application/json")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestRecordFault_MissingControlMAC(t *testing.T) {
	ts := testutils.NewTestSetup(t)
	defer ts.Cleanup()
	setupFaultRoutes(ts)

	body := map[string]interface{}{
		"wifi_mac": "11:22:33:44:55:66",
	}

	resp := ts.ExecuteRequest(http.MethodPost, "/api/short-circuit", body, nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var parsed map[string]interface{}
	ts.ParseResponse(resp, &parsed)
	assert.Equal(t, "error", parsed["status"])
	assert.Contains(t, parsed["error"], "control_mac")
}

func TestListFaults_Pagination(t *testing.T) {
	ts := testutils.NewTestSetup(t)
	defer ts.Cleanup()
	setupFaultRoutes(ts)

	for i := 0; i < 5; i++ {
		body := map[string]interface{}{"control_mac": fmt.Sprintf("AA:BB:CC:DD:EE:%02d", i)}
		resp := ts.ExecuteRequest(http.MethodPost, "/api/short-circuit", body, nil)
		assert.Equal(t, http.StatusCreated, resp.Code)
	}

	resp := ts.ExecuteRequest(http.MethodGet, "/api/short-circuits?page=1&per_page=2", nil, nil)
	assert.Equal(t, http.StatusOK, resp.Code)

	var parsed struct {
		Status     string                   `json:"status"`
		Data       []map[string]interface{} `json:"data"`
		Pagination struct {
			Page         int   `json:"page"`
			PerPage      int   `json:"per_page"`
			TotalRecords int64 `json:"total_records"`
			TotalPages   int   `json:"total_pages"`
		} `json:"pagination"`
	}
	ts.ParseResponse(resp, &parsed)
	assert.Equal(t, "success", parsed.Status)
	assert.Len(t, parsed.Data, 2)
	assert.Equal(t, 1, parsed.Pagination.Page)
	assert.Equal(t, 2, parsed.Pagination.PerPage)
	assert.Equal(t, int64(5), parsed.Pagination.TotalRecords)
	assert.Equal(t, 3, parsed.Pagination.TotalPages)
}

func TestListFaults_RejectsOutOfRangeParams(t *testing.T) {
	ts := testutils.NewTestSetup(t)
	defer ts.Cleanup()
	setupFaultRoutes(ts)

	for _, query := range []string{"page=0", "page=-1", "per_page=0", "per_page=101"} {
		resp := ts.ExecuteRequest(http.MethodGet, "/api/short-circuits?"+query, nil, nil)
		assert.Equal(t, http.StatusBadRequest, resp.Code, "query %q should be rejected", query)
	}
}

func TestListFaults_RejectsPageBeyondOffsetRange(t *testing.T) {
	ts := testutils.NewTestSetup(t)
	defer ts.Cleanup()
	setupFaultRoutes(ts)

	for i := 0; i < 3; i++ {
		body := map[string]interface{}{"control_mac": fmt.Sprintf("AA:BB:CC:DD:EE:%02d", i)}
		resp := ts.ExecuteRequest(http.MethodPost, "/api/short-circuit", body, nil)
		assert.Equal(t, http.StatusCreated, resp.Code)
	}

	// A page number whose offset would wrap must not be answered with page
	// 1's rows under a fabricated page number
	resp := ts.ExecuteRequest(http.MethodGet, "/api/short-circuits?page=4611686018427387904&per_page=100", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestCountFaults(t *testing.T) {
	ts := testutils.NewTestSetup(t)
	defer ts.Cleanup()
	setupFaultRoutes(ts)

	resp := ts.ExecuteRequest(http.MethodGet, "/api/short-circuits/count", nil, nil)
	assert.Equal(t, http.StatusOK, resp.Code)

	var parsed struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	ts.ParseResponse(resp, &parsed)
	assert.Equal(t, "success", parsed.Status)
	assert.Equal(t, int64(0), parsed.Count)

	body := map[string]interface{}{"control_mac": "AA:BB:CC:DD:EE:FF"}
	ts.ExecuteRequest(http.MethodPost, "/api/short-circuit", body, nil)

	resp = ts.ExecuteRequest(http.MethodGet, "/api/short-circuits/count", nil, nil)
	ts.ParseResponse(resp, &parsed)
	assert.Equal(t, int64(1), parsed.Count)
}
