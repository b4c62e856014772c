package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/gridwatch/backend/internal/config"
	"github.com/gridwatch/backend/internal/utils"
	"go.uber.org/zap"
)

// Topic suffixes for telemetry event fan-out. The configured topic prefix is
// prepended, e.g. "telemetry.readings".
const (
	TopicReadings   = "readings"
	TopicHeartbeats = "heartbeats"
	TopicFaults     = "faults"
)

// Producer publishes ingested telemetry to Kafka for downstream consumers.
// Delivery is fire-and-forget: a failed publish is logged and never fails
// the ingestion that triggered it.
type Producer struct {
	producer *kafka.Producer
	logger   *utils.Logger
	config   *config.KafkaConfig
}

// NewProducer creates a new Kafka producer
func NewProducer(cfg *config.KafkaConfig, logger *utils.Logger) (*Producer, error) {
	kafkaLogger := logger.Named("kafka_producer")

	// Create Kafka configuration
	kafkaConfig := &kafka.ConfigMap{
		"bootstrap.servers": cfg.Brokers,
		"client.id":         "gridwatch-producer",
		"acks":              "all",
	}

	// Add security configuration if enabled
	if cfg.SecurityEnable {
		if err := kafkaConfig.SetKey("security.protocol", "SASL_SSL"); err != nil {
			return nil, fmt.Errorf("failed to set security protocol: %w", err)
		}
		if err := kafkaConfig.SetKey("sasl.mechanisms", "PLAIN"); err != nil {
			return nil, fmt.Errorf("failed to set SASL mechanism: %w", err)
		}
		if err := kafkaConfig.SetKey("sasl.username", cfg.SecurityUser); err != nil {
			return nil, fmt.Errorf("failed to set SASL username: %w", err)
		}
		if err := kafkaConfig.SetKey("sasl.password", cfg.SecurityPass); err != nil {
			return nil, fmt.Errorf("failed to set SASL password: %w", err)
		}
	}

	producer, err := kafka.NewProducer(kafkaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	// Drain delivery reports so failed publishes surface in the logs
	go func() {
		for e := range producer.Events() {
			switch ev := e.(type) {
			case *kafka.Message:
				if ev.TopicPartition.Error != nil {
					kafkaLogger.Error("Failed to deliver event",
						zap.String("topic", *ev.TopicPartition.Topic),
						zap.Error(ev.TopicPartition.Error),
					)
				} else {
					kafkaLogger.Debug("Event delivered",
						zap.String("topic", *ev.TopicPartition.Topic),
						zap.Int32("partition", ev.TopicPartition.Partition),
						zap.Int64("offset", int64(ev.TopicPartition.Offset)),
					)
				}
			}
		}
	}()

	return &Producer{
		producer: producer,
		logger:   kafkaLogger,
		config:   cfg,
	}, nil
}

// Event is one ingested-telemetry notification
type Event struct {
	Kind       string      `json:"kind"`
	RecordID   string      `json:"record_id"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// Publish sends an event to the topic with the given suffix, keyed so that
// events for the same record land on the same partition
func (p *Producer) Publish(topicSuffix string, event *Event) error {
	topic := p.config.TopicPrefix + "." + topicSuffix

	valueBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	message := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Key:            []byte(event.RecordID),
		Value:          valueBytes,
		Timestamp:      event.OccurredAt,
	}

	p.logger.Debug("Publishing event",
		zap.String("topic", topic),
		zap.String("kind", event.Kind),
		zap.String("record_id", event.RecordID),
	)

	if err := p.producer.Produce(message, nil); err != nil {
		return fmt.Errorf("failed to produce event: %w", err)
	}

	return nil
}

// Flush flushes the producer's message queue
func (p *Producer) Flush(timeoutMs int) int {
	return p.producer.Flush(timeoutMs)
}

// Close closes the producer and waits for any outstanding messages to be delivered
func (p *Producer) Close() {
	p.logger.Info("Flushing producer before closing")
	remaining := p.producer.Flush(5000)
	if remaining > 0 {
		p.logger.Warn("Failed to deliver all events during flush", zap.Int("remaining", remaining))
	}

	p.producer.Close()
	p.logger.Info("Kafka producer closed")
}
