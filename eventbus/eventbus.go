// Package eventbus publishes post lifecycle events. Kafka is used when brokers are
// configured; otherwise NopEventBus swallows every event.
package eventbus

import (
	"context"
	"encoding/json"
)

// Event는 Kafka 메시지의 페이로드로 사용되는 구조체입니다.
type Event struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// EventBus publishes events. Close flushes whatever is still buffered.
type EventBus interface {
	Publish(ctx context.Context, topic string, event Event) error
	Close()
}

// NopEventBus drops every event.
type NopEventBus struct{}

func (NopEventBus) Publish(context.Context, string, Event) error { return nil }

func (NopEventBus) Close() {}
