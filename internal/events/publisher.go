// Package events publishes registry changes to Kafka so downstream
// consumers (balance sync, audit) see enable/disable actions. When no
// broker is configured the publisher is a no-op.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/poyntloop/rewards-admin-service/internal/logging"
)

const defaultTopic = "reward-registry-events"

// RegistryEvent records one enable/disable of a redemption item.
type RegistryEvent struct {
	EventID        string    `json:"event_id"`
	Action         string    `json:"action"` // "enabled" | "disabled"
	TenantID       string    `json:"tenant_id"`
	RedemptionID   int64     `json:"redemption_id,string"`
	RedemptionType string    `json:"redemption_type"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// Publisher emits registry events.
type Publisher interface {
	PublishRegistryEvents(ctx context.Context, events []RegistryEvent) error
	Close() error
}

// NewEvent stamps an event with an id and timestamp.
func NewEvent(action, tenantID string, redemptionID int64, redemptionType string) RegistryEvent {
	return RegistryEvent{
		EventID:        uuid.NewString(),
		Action:         action,
		TenantID:       tenantID,
		RedemptionID:   redemptionID,
		RedemptionType: redemptionType,
		OccurredAt:     time.Now().UTC(),
	}
}

// KafkaPublisher writes registry events to a Kafka topic.
type KafkaPublisher struct {
	writer *kafka.Writer
	topic  string
}

// NewKafkaPublisher builds a publisher against the given brokers.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	if topic == "" {
		topic = defaultTopic
	}
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.LeastBytes{},
		},
		topic: topic,
	}
}

// PublishRegistryEvents writes the batch, keyed by tenant so one tenant's
// events stay ordered. Events that fail to marshal are skipped with a
// warning rather than failing the batch.
func (k *KafkaPublisher) PublishRegistryEvents(ctx context.Context, events []RegistryEvent) error {
	if len(events) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(events))
	for _, ev := range events {
		v, err := json.Marshal(ev)
		if err != nil {
			logging.Warn("failed to marshal registry event", map[string]interface{}{"event_id": ev.EventID, "error": err.Error()})
			continue
		}
		messages = append(messages, kafka.Message{
			Key:   []byte(ev.TenantID),
			Value: v,
			Time:  ev.OccurredAt,
			Topic: k.topic,
		})
	}
	if len(messages) == 0 {
		return fmt.Errorf("no valid registry events to publish")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := k.writer.WriteMessages(ctx, messages...); err != nil {
		return fmt.Errorf("failed to write registry events: %w", err)
	}
	return nil
}

func (k *KafkaPublisher) Close() error {
	return k.writer.Close()
}

// NoopPublisher drops events; used when Kafka is not configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishRegistryEvents(context.Context, []RegistryEvent) error { return nil }
func (NoopPublisher) Close() error                                                 { return nil }

// FromEnv builds a Kafka publisher when KAFKA_BROKERS is set, otherwise a
// no-op.
func FromEnv() Publisher {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		return NoopPublisher{}
	}
	return NewKafkaPublisher(strings.Split(brokers, ","), os.Getenv("KAFKA_REGISTRY_TOPIC"))
}
