package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gridwatch/backend/internal/services"
	"github.com/gridwatch/backend/internal/utils"
)

// FaultController handles the short-circuit API endpoints
type FaultController struct {
	faultService *services.FaultService
	logger       *utils.Logger
}

// NewFaultController creates a new fault controller
func NewFaultController(faultService *services.FaultService, logger *utils.Logger) *FaultController {
	return &FaultController{
		faultService: faultService,
		logger:       logger.Named("fault_controller"),
	}
}

// RegisterRoutes registers the short-circuit routes
func (c *FaultController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/short-circuit", c.RecordFault)
	router.GET("/short-circuits", c.ListFaults)
	router.GET("/short-circuits/count", c.CountFaults)
}

// RecordFault records one short-circuit event
// @Summary Record a short-circuit event
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{} "Recorded event"
// @Failure 400 {object} map[string]string "Missing body or control_mac"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/short-circuit [post]
func (c *FaultController) RecordFault(ctx *gin.Context) {
	raw, err := ctx.GetRawData()
	if err != nil || len(raw) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "No JSON data received"})
		return
	}

	// control_mac is required at the boundary even though the column is
	// nullable at the model level
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "No JSON data received"})
		return
	}
	if _, ok := fields["control_mac"]; !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "The control_mac field is required"})
		return
	}

	fault, err := c.faultService.Record(raw)
	if err != nil {
		// Report, don't crash: the recorder hands back parse and persistence
		// failures as values and the boundary answers with a server error.
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"status": "success", "data": fault})
}

// ListFaults returns one page of short-circuit events
// @Summary List short-circuit events
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param per_page query int false "Page size, 1..100"
// @Success 200 {object} map[string]interface{} "Page of events"
// @Failure 400 {object} map[string]string "Out-of-range pagination"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/short-circuits [get]
func (c *FaultController) ListFaults(ctx *gin.Context) {
	pagination, err := utils.ParsePagination(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": err.Error()})
		return
	}

	faults, total, err := c.faultService.List(pagination)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"data":       faults,
		"pagination": utils.NewPagination(pagination, total),
	})
}

// CountFaults returns the total number of recorded short-circuit events
// @Summary Count short-circuit events
// @Produce json
// @Success 200 {object} map[string]interface{} "Total count"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/short-circuits/count [get]
func (c *FaultController) CountFaults(ctx *gin.Context) {
	count, err := c.faultService.Count()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "count": count})
}
