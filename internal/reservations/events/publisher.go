package events

import (
	"context"
	"fmt"
	"parkeo/pkg/config"
	"parkeo/pkg/kafka"
	"parkeo/pkg/logger"
	"parkeo/pkg/model"
	"time"
)

// Event types carried in the event-type header and payload.
const (
	TypeCreated   = "reservation.created"
	TypeUpdated   = "reservation.updated"
	TypeReleased  = "reservation.released"
	TypeCancelled = "reservation.cancelled"
)

// Publisher emits reservation lifecycle events. Publishing is best effort:
// the reservation state in Mongo is the source of truth and a failed
// publish never rolls back a committed write.
type Publisher interface {
	Publish(ctx context.Context, eventType string, reservation *model.Reservation) error
	Close() error
}

// ReservationEvent is the payload consumers receive.
type ReservationEvent struct {
	EventType   string             `json:"event_type"`
	Reservation *model.Reservation `json:"reservation"`
	OccurredAt  time.Time          `json:"occurred_at"`
}

type kafkaPublisher struct {
	producer *kafka.Producer
	source   string
	log      *logger.Logger
}

// NewPublisher builds a Kafka-backed publisher, or a noop one when no
// brokers are configured.
func NewPublisher(cfg *config.Config, serviceName string) (Publisher, error) {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("Event publishing disabled, no Kafka brokers configured")
		return NewNoopPublisher(), nil
	}

	producer, err := kafka.NewProducer(kafka.ProducerConfig{
		Brokers:      cfg.KafkaBrokers,
		Topic:        cfg.KafkaTopic,
		MaxAttempts:  cfg.KafkaProducerMaxAttempts,
		BatchTimeout: cfg.KafkaProducerBatchTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	cfg.Log.Info("Event publishing enabled",
		"topic", cfg.KafkaTopic,
		"brokers", cfg.KafkaBrokers,
	)
	return &kafkaPublisher{
		producer: producer,
		source:   serviceName,
		log:      cfg.Log,
	}, nil
}

// Publish keys messages by space id so all events for one space stay in
// partition order.
func (p *kafkaPublisher) Publish(ctx context.Context, eventType string, reservation *model.Reservation) error {
	event := ReservationEvent{
		EventType:   eventType,
		Reservation: reservation,
		OccurredAt:  time.Now().UTC(),
	}

	msg, err := kafka.NewMessage().
		WithKey(reservation.SpaceID).
		WithValue(event).
		WithEventType(eventType).
		WithSource(p.source).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build event message: %w", err)
	}

	return p.producer.Publish(ctx, msg)
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

type noopPublisher struct{}

func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(ctx context.Context, eventType string, reservation *model.Reservation) error {
	return nil
}

func (noopPublisher) Close() error {
	return nil
}
