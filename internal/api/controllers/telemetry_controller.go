package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gridwatch/backend/internal/services"
	"github.com/gridwatch/backend/internal/utils"
)

// TelemetryController handles ingestion of sensor readings and heartbeats
// plus the bulk device listing
type TelemetryController struct {
	ingestService *services.IngestService
	logger        *utils.Logger
}

// NewTelemetryController creates a new telemetry controller
func NewTelemetryController(ingestService *services.IngestService, logger *utils.Logger) *TelemetryController {
	return &TelemetryController{
		ingestService: ingestService,
		logger:        logger.Named("telemetry_controller"),
	}
}

// RegisterRoutes registers the telemetry routes
func (c *TelemetryController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/save_sensor_data", c.SaveSensorData)
	router.GET("/sensor_data", c.ListSensorData)
}

// SaveSensorDataResponse defines the success body for an ingested payload.
// DeviceID is omitted for heartbeats, which never touch the device registry.
type SaveSensorDataResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	RecordID string `json:"record_id"`
	DeviceID string `json:"device_id,omitempty"`
}

// SaveSensorData ingests one device payload, either a sensor reading or a
// heartbeat depending on its shape
func (c *TelemetryController) SaveSensorData(ctx *gin.Context) {
	if ctx.ContentType() != "application/json" {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Request must be JSON"})
		return
	}

	raw, err := ctx.GetRawData()
	if err != nil || len(raw) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Request must be JSON"})
		return
	}

	result, err := c.ingestService.Ingest(raw)
	if err != nil {
		switch {
		case utils.IsValidationError(err):
			ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		case utils.IsDatabaseError(err):
			ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database error"})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		}
		return
	}

	response := SaveSensorDataResponse{
		Status:  "success",
		Message: "Sensor data saved successfully",
	}
	if result.Reading != nil {
		response.RecordID = result.Reading.ID.String()
		response.DeviceID = result.Reading.DeviceID.String()
	} else {
		response.RecordID = result.Heartbeat.ID.String()
	}

	ctx.JSON(http.StatusCreated, response)
}

// ListSensorData returns every registered device with its readings nested.
// Bulk diagnostic endpoint, not paginated.
func (c *TelemetryController) ListSensorData(ctx *gin.Context) {
	devices, err := c.ingestService.ListDevicesWithReadings()
	if err != nil {
		if utils.IsDatabaseError(err) {
			ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database error"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "data": devices})
}
