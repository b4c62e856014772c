package services

import (
	"github.com/gridwatch/backend/internal/config"
	"github.com/gridwatch/backend/internal/db"
	"github.com/gridwatch/backend/internal/kafka"
	"github.com/gridwatch/backend/internal/utils"
	"go.uber.org/zap"
)

// ServiceProvider wires the services together and owns the lifecycle of
// shared collaborators such as the Kafka producer.
type ServiceProvider struct {
	logger   *utils.Logger
	config   *config.Config
	db       *db.Database
	producer *kafka.Producer

	ingestService *IngestService
	faultService  *FaultService
}

// NewServiceProvider creates a new service provider
func NewServiceProvider(logger *utils.Logger, cfg *config.Config, database *db.Database) *ServiceProvider {
	return &ServiceProvider{
		logger: logger.Named("service_provider"),
		config: cfg,
		db:     database,
	}
}

// Initialize sets up the services and, when enabled, the event fan-out
func (p *ServiceProvider) Initialize() error {
	if p.config.Kafka.Enabled {
		producer, err := kafka.NewProducer(&p.config.Kafka, p.logger)
		if err != nil {
			return err
		}
		p.producer = producer
		p.logger.Info("Telemetry event fan-out enabled",
			zap.String("brokers", p.config.Kafka.Brokers),
			zap.String("topic_prefix", p.config.Kafka.TopicPrefix),
		)
	}

	p.ingestService = NewIngestService(p.db, p.logger, p.producer)
	p.faultService = NewFaultService(p.db, p.logger, p.producer)

	return nil
}

// GetIngestService returns the ingest service
func (p *ServiceProvider) GetIngestService() *IngestService {
	return p.ingestService
}

// GetFaultService returns the fault service
func (p *ServiceProvider) GetFaultService() *FaultService {
	return p.faultService
}

// Shutdown flushes and releases shared collaborators
func (p *ServiceProvider) Shutdown() error {
	if p.producer != nil {
		p.producer.Close()
	}
	return nil
}
