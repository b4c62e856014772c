package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gridwatch/backend/internal/api/controllers"
	"github.com/gridwatch/backend/internal/db/models"
	"github.com/gridwatch/backend/internal/services"
	testutils "github.com/gridwatch/backend/tests/utils"
	"github.com/stretchr/testify/assert"
)

func setupAdminRoutes(ts *testutils.TestSetup) *services.FaultService {
	ts.SetupTestDatabase(&models.FaultEvent{})
	ts.Router.LoadHTMLGlob("../../../web/templates/*.html")
	service := services.NewFaultService(ts.DB, ts.Logger, nil)
	controller := controllers.NewAdminController(service, ts.Logger)
	controller.RegisterRoutes(ts.Router.Group("/admin"))
	return service
}

func TestShortCircuitDashboard_RendersHTML(t *testing.T) {
	ts := testutils.NewTestSetup(t)
	defer ts.Cleanup()
	setupAdminRoutes(ts)

	resp := ts.ExecuteRequest(http.MethodGet, "/admin/short-circuits", nil, nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, resp.Body.String(), "Short-Circuit Events")
}

func TestShortCircuitDashboard_ClampsOutOfRangeParams(t *testing.T) {
	ts := testutils.NewTestSetup(t)
	defer ts.Cleanup()
	setupAdminRoutes(ts)

	// The dashboard clamps instead of rejecting: a stale link still renders
	for _, query := range []string{"page=0", "per_page=500", "page=abc"} {
		resp := ts.ExecuteRequest(http.MethodGet, "/admin/short-circuits?"+query, nil, nil)
		assert.Equal(t, http.StatusOK, resp.Code, "query %q should be clamped, not rejected", query)
	}
}
