package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	EventSource  = "seminar-portal"
	EventVersion = "1.0"

	TypeRequestCreated       = "training_request.created"
	TypeRequestStatusChanged = "training_request.status_changed"
	TypeRequestNoteUpdated   = "training_request.note_updated"
)

// Event is the envelope for every lifecycle event leaving the portal
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

func NewEvent(eventType string, data interface{}) *Event {
	return &Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    EventSource,
		Version:   EventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

type RequestCreatedData struct {
	RequestID string `json:"request_id"`
	UserID    string `json:"user_id"`
	CourseID  string `json:"course_id"`
}

type RequestStatusChangedData struct {
	RequestID   string    `json:"request_id"`
	Status      string    `json:"status"`
	AdminID     string    `json:"admin_id"`
	ProcessedAt time.Time `json:"processed_at"`
}

type RequestNoteUpdatedData struct {
	RequestID string `json:"request_id"`
	AdminID   string `json:"admin_id"`
	Cleared   bool   `json:"cleared"`
}

// EventPublisher hands lifecycle events to downstream consumers
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}
