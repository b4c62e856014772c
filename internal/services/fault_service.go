package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/gridwatch/backend/internal/db"
	"github.com/gridwatch/backend/internal/db/models"
	"github.com/gridwatch/backend/internal/db/repository"
	"github.com/gridwatch/backend/internal/kafka"
	"github.com/gridwatch/backend/internal/utils"
	"go.uber.org/zap"
)

// faultPayload is the decoded form of a short-circuit report
type faultPayload struct {
	ControlMAC   string `json:"control_mac"`
	WifiMAC      string `json:"wifi_mac"`
	Timestamp    string `json:"timestamp"`
	ShortCircuit struct {
		Current struct {
			Active          bool `json:"active"`
			DurationSeconds int  `json:"duration_seconds"`
		} `json:"current"`
		Previous *struct {
			Active          bool   `json:"active"`
			Timestamp       string `json:"timestamp"`
			DurationSeconds int    `json:"duration_seconds"`
		} `json:"previous"`
	} `json:"short_circuit"`
}

// FaultService records short-circuit events and serves the paginated fault
// queries behind both the public API and the admin dashboard.
type FaultService struct {
	db       *db.Database
	logger   *utils.Logger
	producer *kafka.Producer
	repos    *repository.RepositoryFactory
}

// NewFaultService creates a new fault service. The producer is optional;
// when nil, no events are published.
func NewFaultService(database *db.Database, logger *utils.Logger, producer *kafka.Producer) *FaultService {
	return &FaultService{
		db:       database,
		logger:   logger.Named("fault_service"),
		producer: producer,
		repos:    repository.NewRepositoryFactory(database.DB),
	}
}

// Record parses and persists one short-circuit report. Errors are returned
// as values for the boundary to translate; nothing here panics and a failed
// insert leaves no partial state behind.
func (s *FaultService) Record(raw json.RawMessage) (*models.FaultEvent, error) {
	var payload faultPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: malformed short-circuit payload: %v", utils.ErrValidation, err)
	}

	timestamp := time.Now().UTC()
	if payload.Timestamp != "" {
		parsed, err := utils.ParseTimestamp(payload.Timestamp)
		if err != nil {
			return nil, err
		}
		timestamp = parsed
	}

	fault := &models.FaultEvent{
		ControlMAC:             payload.ControlMAC,
		WifiMAC:                payload.WifiMAC,
		Timestamp:              timestamp,
		CurrentActive:          payload.ShortCircuit.Current.Active,
		CurrentDurationSeconds: payload.ShortCircuit.Current.DurationSeconds,
	}

	// The previous-state fields travel together: they are only populated
	// when the previous sub-object was reported, otherwise all three stay
	// null.
	if previous := payload.ShortCircuit.Previous; previous != nil {
		active := previous.Active
		duration := previous.DurationSeconds
		fault.PreviousActive = &active
		fault.PreviousDurationSeconds = &duration

		if previous.Timestamp != "" {
			parsed, err := utils.ParseTimestamp(previous.Timestamp)
			if err != nil {
				return nil, err
			}
			fault.PreviousTimestamp = &parsed
		}
	}

	if err := s.repos.Fault().Create(fault); err != nil {
		s.logger.Error("Failed to persist short-circuit event",
			zap.String("control_mac", fault.ControlMAC),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: failed to save short-circuit event", utils.ErrDatabase)
	}

	s.publishFault(fault)

	return fault, nil
}

// List returns one page of fault events ordered most-recent first, together
// with the total record count. Offset math lives with the caller-supplied
// pagination request so the API and the dashboard share one query path.
func (s *FaultService) List(pagination utils.PaginationRequest) ([]models.FaultEvent, int64, error) {
	faults, total, err := s.repos.Fault().List(pagination.Offset(), pagination.PerPage)
	if err != nil {
		s.logger.Error("Failed to list short-circuit events", zap.Error(err))
		return nil, 0, fmt.Errorf("%w: failed to list short-circuit events", utils.ErrDatabase)
	}
	return faults, total, nil
}

// Count returns the total number of recorded fault events
func (s *FaultService) Count() (int64, error) {
	count, err := s.repos.Fault().Count()
	if err != nil {
		s.logger.Error("Failed to count short-circuit events", zap.Error(err))
		return 0, fmt.Errorf("%w: failed to count short-circuit events", utils.ErrDatabase)
	}
	return count, nil
}

// publishFault sends a fault event to Kafka when fan-out is configured
func (s *FaultService) publishFault(fault *models.FaultEvent) {
	if s.producer == nil {
		return
	}

	event := &kafka.Event{
		Kind:       "fault",
		RecordID:   strconv.FormatUint(uint64(fault.ID), 10),
		OccurredAt: time.Now().UTC(),
		Payload:    fault,
	}
	if err := s.producer.Publish(kafka.TopicFaults, event); err != nil {
		s.logger.Warn("Failed to publish fault event",
			zap.Uint("id", fault.ID),
			zap.Error(err),
		)
	}
}
