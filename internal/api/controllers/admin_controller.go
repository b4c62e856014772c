package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gridwatch/backend/internal/services"
	"github.com/gridwatch/backend/internal/utils"
)

// AdminController renders the human-facing dashboard pages
type AdminController struct {
	faultService *services.FaultService
	logger       *utils.Logger
}

// NewAdminController creates a new admin controller
func NewAdminController(faultService *services.FaultService, logger *utils.Logger) *AdminController {
	return &AdminController{
		faultService: faultService,
		logger:       logger.Named("admin_controller"),
	}
}

// RegisterRoutes registers the dashboard routes
func (c *AdminController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/short-circuits", c.ShortCircuitDashboard)
}

// ShortCircuitDashboard renders the paginated short-circuit table. Unlike
// the machine API, out-of-range pagination parameters are clamped rather
// than rejected: a human following a stale link gets a page, not a 400.
func (c *AdminController) ShortCircuitDashboard(ctx *gin.Context) {
	pagination := utils.ClampedPagination(ctx)

	faults, total, err := c.faultService.List(pagination)
	if err != nil {
		ctx.HTML(http.StatusInternalServerError, "error.html", gin.H{"Error": err.Error()})
		return
	}

	meta := utils.NewPagination(pagination, total)
	ctx.HTML(http.StatusOK, "short_circuits.html", gin.H{
		"Records":      faults,
		"Page":         meta.Page,
		"PerPage":      meta.PerPage,
		"TotalRecords": meta.TotalRecords,
		"TotalPages":   meta.TotalPages,
		"HasPrev":      meta.Page > 1,
		"HasNext":      meta.Page < meta.TotalPages,
		"PrevPage":     meta.Page - 1,
		"NextPage":     meta.Page + 1,
	})
}
