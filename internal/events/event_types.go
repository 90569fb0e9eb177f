package events

import (
	"time"

	"github.com/spec-kit/mosquito-alert/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSessionChanged EventType = "session_changed"
	EventReportCreated  EventType = "report_created"
)

// Event represents a domain event emitted by the stores.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SessionChangedPayload payload.
type SessionChangedPayload struct {
	UserID        string `json:"user_id,omitempty"`
	UserName      string `json:"user_name,omitempty"`
	Authenticated bool   `json:"authenticated"`
	Trigger       string `json:"trigger"`
}

// ReportCreatedPayload payload.
type ReportCreatedPayload struct {
	ReportID string              `json:"report_id"`
	UserID   string              `json:"user_id"`
	Address  string              `json:"address"`
	Status   domain.ReportStatus `json:"status"`
}
