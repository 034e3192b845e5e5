package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/contact-funnel/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserSignedUp  EventType = "user_signed_up"
	EventFormSubmitted EventType = "form_submitted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// NewEvent stamps a fresh event envelope.
func NewEvent(eventType EventType, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

// UserSignedUpPayload payload.
type UserSignedUpPayload struct {
	UserID   string `json:"user_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// FormSubmittedPayload payload.
type FormSubmittedPayload struct {
	SubmissionID string          `json:"submission_id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	FormType     domain.FormType `json:"form_type"`
	Subject      *string         `json:"subject,omitempty"`
	Message      *string         `json:"message,omitempty"`
	Mobile       *string         `json:"mobile,omitempty"`
	City         *string         `json:"city,omitempty"`
	Service      *string         `json:"service,omitempty"`
}
