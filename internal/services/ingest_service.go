package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gridwatch/backend/internal/db"
	"github.com/gridwatch/backend/internal/db/models"
	"github.com/gridwatch/backend/internal/db/repository"
	"github.com/gridwatch/backend/internal/kafka"
	"github.com/gridwatch/backend/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Defaults applied during payload normalization. A missing state_duration
// takes the zero value of its field.
const (
	defaultDeviceName  = "Unknown Device"
	defaultMACAddress  = "00:00:00:00:00:00"
	defaultAlarmStatus = models.AlarmStatusUnknown
)

// heartbeatPayload is the decoded form of a liveness report. Payloads with a
// top-level serial_number key take this shape.
type heartbeatPayload struct {
	SerialNumber  string `json:"serial_number"`
	DeviceName    string `json:"device_name"`
	MACAddress    string `json:"mac_address"`
	StateDuration int    `json:"state_duration"`
	Timestamp     string `json:"timestamp"`
}

// sensorPayload is the decoded form of a periodic sensor reading. The five
// sub-records are kept as opaque JSON; only the device details and the alarm
// status are inspected.
type sensorPayload struct {
	STM32Details struct {
		SerialNumber    string `json:"serial_number"`
		FirmwareVersion string `json:"firmware_version"`
	} `json:"stm32_details"`
	AlarmStatus struct {
		Status string `json:"status"`
	} `json:"alarm_status"`
	SwitchStatus models.JSON `json:"ln_switch_status"`
	Currents     models.JSON `json:"currents"`
	Measurements models.JSON `json:"measurements"`
	Voltages     models.JSON `json:"voltages"`
}

// IngestResult is the outcome of ingesting one telemetry payload. Exactly one
// of the two fields is set.
type IngestResult struct {
	Reading   *models.Reading
	Heartbeat *models.Heartbeat
}

// IngestService normalizes heterogeneous device payloads and persists them.
// It handles two payload shapes: periodic sensor readings, which register
// the owning device on first contact, and liveness heartbeats, which bypass
// the device registry entirely.
type IngestService struct {
	db       *db.Database
	logger   *utils.Logger
	producer *kafka.Producer
	repos    *repository.RepositoryFactory
}

// NewIngestService creates a new ingest service. The producer is optional;
// when nil, no events are published.
func NewIngestService(database *db.Database, logger *utils.Logger, producer *kafka.Producer) *IngestService {
	return &IngestService{
		db:       database,
		logger:   logger.Named("ingest_service"),
		producer: producer,
		repos:    repository.NewRepositoryFactory(database.DB),
	}
}

// Ingest classifies the payload by shape and persists it as either a Reading
// or a Heartbeat. The discrimination rule is fixed: a top-level serial_number
// key marks a heartbeat, everything else must be a sensor reading carrying
// stm32_details.serial_number.
func (s *IngestService) Ingest(raw json.RawMessage) (*IngestResult, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: request body must be a JSON object", utils.ErrValidation)
	}

	if _, isHeartbeat := fields["serial_number"]; isHeartbeat {
		heartbeat, err := s.ingestHeartbeat(raw)
		if err != nil {
			return nil, err
		}
		return &IngestResult{Heartbeat: heartbeat}, nil
	}

	reading, err := s.ingestReading(raw)
	if err != nil {
		return nil, err
	}
	return &IngestResult{Reading: reading}, nil
}

// ingestHeartbeat persists a liveness report. No device-registry interaction.
func (s *IngestService) ingestHeartbeat(raw json.RawMessage) (*models.Heartbeat, error) {
	var payload heartbeatPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: malformed heartbeat payload: %v", utils.ErrValidation, err)
	}

	heartbeat := &models.Heartbeat{
		DeviceName:    payload.DeviceName,
		MACAddress:    payload.MACAddress,
		SerialNumber:  payload.SerialNumber,
		StateDuration: payload.StateDuration,
		Timestamp:     utils.ParseTimestampOrNow(payload.Timestamp),
	}
	if heartbeat.DeviceName == "" {
		heartbeat.DeviceName = defaultDeviceName
	}
	if heartbeat.MACAddress == "" {
		heartbeat.MACAddress = defaultMACAddress
	}

	if err := s.repos.Heartbeat().Create(heartbeat); err != nil {
		s.logger.Error("Failed to persist heartbeat",
			zap.String("serial_number", heartbeat.SerialNumber),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: failed to save heartbeat", utils.ErrDatabase)
	}

	s.publish(kafka.TopicHeartbeats, "heartbeat", heartbeat.ID.String(), heartbeat)

	return heartbeat, nil
}

// ingestReading resolves the owning device and persists the reading. Device
// registration and reading creation commit together or not at all.
func (s *IngestService) ingestReading(raw json.RawMessage) (*models.Reading, error) {
	var payload sensorPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: malformed sensor payload: %v", utils.ErrValidation, err)
	}

	if payload.STM32Details.SerialNumber == "" {
		return nil, fmt.Errorf("%w: payload does not contain 'serial_number'", utils.ErrValidation)
	}

	reading := &models.Reading{
		AlarmStatus:         payload.AlarmStatus.Status,
		SwitchStatus:        payload.SwitchStatus,
		CurrentMeasurements: payload.Currents,
		PowerMeasurements:   payload.Measurements,
		VoltageMeasurements: payload.Voltages,
		// The raw payload is always retained, even when sub-records are
		// missing or unparseable.
		RawData: models.JSON(raw),
	}
	if reading.AlarmStatus == "" {
		reading.AlarmStatus = defaultAlarmStatus
	}
	if len(reading.SwitchStatus) == 0 {
		reading.SwitchStatus = models.EmptyObject()
	}
	if len(reading.CurrentMeasurements) == 0 {
		reading.CurrentMeasurements = models.EmptyObject()
	}
	if len(reading.PowerMeasurements) == 0 {
		reading.PowerMeasurements = models.EmptyObject()
	}
	if len(reading.VoltageMeasurements) == 0 {
		reading.VoltageMeasurements = models.EmptyObject()
	}

	err := s.db.DB.Transaction(func(tx *gorm.DB) error {
		deviceRepo := repository.NewDeviceRepository(tx)
		readingRepo := repository.NewReadingRepository(tx)

		device, err := deviceRepo.EnsureBySerial(
			payload.STM32Details.SerialNumber,
			payload.STM32Details.FirmwareVersion,
		)
		if err != nil {
			return err
		}

		reading.DeviceID = device.ID
		return readingRepo.Create(reading)
	})
	if err != nil {
		s.logger.Error("Failed to persist sensor reading",
			zap.String("serial_number", payload.STM32Details.SerialNumber),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: failed to save sensor data", utils.ErrDatabase)
	}

	s.publish(kafka.TopicReadings, "reading", reading.ID.String(), reading)

	return reading, nil
}

// ListDevicesWithReadings returns every registered device with its readings
// eager-loaded
func (s *IngestService) ListDevicesWithReadings() ([]models.Device, error) {
	devices, err := s.repos.Device().ListWithReadings()
	if err != nil {
		s.logger.Error("Failed to list devices", zap.Error(err))
		return nil, fmt.Errorf("%w: failed to list devices", utils.ErrDatabase)
	}
	return devices, nil
}

// publish sends an event to Kafka when fan-out is configured. Delivery
// failures are logged, never returned: the row is already committed.
func (s *IngestService) publish(topic, kind, recordID string, payload interface{}) {
	if s.producer == nil {
		return
	}

	event := &kafka.Event{
		Kind:       kind,
		RecordID:   recordID,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
	if err := s.producer.Publish(topic, event); err != nil {
		s.logger.Warn("Failed to publish event",
			zap.String("kind", kind),
			zap.String("record_id", recordID),
			zap.Error(err),
		)
	}
}
