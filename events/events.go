package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"blog-cms/models"
)

// EventType 이벤트 타입 정의
type EventType string

const (
	PostCreated EventType = "post.created"
	PostUpdated EventType = "post.updated"
	PostDeleted EventType = "post.deleted"
)

// Version of the event payload layout.
const Version = "1"

// BaseEvent 모든 이벤트의 기본 구조
type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"` // "api", "importer"
	Version   string    `json:"version"`
}

// PostChangedEvent is emitted after a create, update or delete has been persisted.
type PostChangedEvent struct {
	BaseEvent
	PostID   string `json:"post_id"`
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Status   string `json:"status"`
	Category string `json:"category,omitempty"`
}

// NewPostChangedEvent builds the event for p.
func NewPostChangedEvent(t EventType, source string, p models.Post, at time.Time) PostChangedEvent {
	return PostChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.NewString(),
			Type:      t,
			Timestamp: at.UTC(),
			Source:    source,
			Version:   Version,
		},
		PostID:   p.ID,
		Slug:     p.Slug,
		Title:    p.Title,
		Status:   p.Status,
		Category: p.Category,
	}
}

// DeserializeEvent 이벤트 타입에 따라 적절한 구조체로 역직렬화
func DeserializeEvent(eventType EventType, data []byte) (*PostChangedEvent, error) {
	switch eventType {
	case PostCreated, PostUpdated, PostDeleted:
	default:
		return nil, fmt.Errorf("unknown event type: %s", eventType)
	}

	var event PostChangedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	return &event, nil
}
