package events

import (
	"context"
	"encoding/json"
	"testing"
)

func TestNewEvent(t *testing.T) {
	ev := NewEvent("enabled", "tenant-1", 1234567890123456789, "giftcard")
	if ev.EventID == "" {
		t.Error("EventID is empty")
	}
	if ev.OccurredAt.IsZero() {
		t.Error("OccurredAt is zero")
	}

	// IDs large enough to lose precision in a JS client must serialize as
	// strings.
	b, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got, ok := m["redemption_id"].(string); !ok || got != "1234567890123456789" {
		t.Errorf("redemption_id = %v, want the string form", m["redemption_id"])
	}
}

func TestFromEnv_NoBrokers(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "")
	if _, ok := FromEnv().(NoopPublisher); !ok {
		t.Error("expected NoopPublisher when KAFKA_BROKERS is unset")
	}
}

func TestNoopPublisher(t *testing.T) {
	var p NoopPublisher
	if err := p.PublishRegistryEvents(context.Background(), []RegistryEvent{NewEvent("disabled", "t", 1, "offer")}); err != nil {
		t.Errorf("noop publish returned %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("noop close returned %v", err)
	}
}
