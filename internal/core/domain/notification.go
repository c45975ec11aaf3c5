package domain

import "time"

// NotificationType classifies what a notification surfaces
type NotificationType string

// Notification types
const (
	NotificationCredentialOffer     NotificationType = "cred_offer"
	NotificationPresentationRequest NotificationType = "pres_request"
	NotificationConnection          NotificationType = "connection"
	NotificationMessage             NotificationType = "message"
)

// Notification is a user facing record of a pending exchange event.
// Protocol derived notifications are keyed by the exchange id.
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Details   any              `json:"details"`
	CreatedAt time.Time        `json:"created_at"`
	New       bool             `json:"new"`
}

// NewNotification returns an unread notification created now
func NewNotification(id string, typ NotificationType, title string, details any) *Notification {
	return &Notification{
		ID:        id,
		Type:      typ,
		Title:     title,
		Details:   details,
		CreatedAt: time.Now().UTC(),
		New:       true,
	}
}

// EventType is the type of a real time event sent to connected clients
type EventType string

// Event types
const (
	EventConnected           EventType = "connected"
	EventNotificationCreated EventType = "notification_created"
	EventNotificationRemoved EventType = "notification_removed"
	EventCredentialReceived  EventType = "credential_received"
	EventConnectionActive    EventType = "connection_active"
	EventMessageReceived     EventType = "message_received"
	EventPresentationSent    EventType = "presentation_sent"
)

// Event is the envelope pushed to subscriber queues
type Event struct {
	Type      EventType `json:"type"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// NotificationRemoved is the data of a notification_removed event
type NotificationRemoved struct {
	ExchangeID string `json:"exchange_id"`
	Reason     string `json:"reason"`
}

// CredentialReceived is the data of a credential_received event
type CredentialReceived struct {
	Credential any    `json:"credential"`
	Tags       Tags   `json:"tags,omitempty"`
	ExchangeID string `json:"exchange_id,omitempty"`
}

// MessageReceived is the data of a message_received event
type MessageReceived struct {
	ConnectionID string  `json:"connection_id"`
	Sender       string  `json:"sender"`
	Message      Message `json:"message"`
}

// PresentationSent is the data of a presentation_sent event
type PresentationSent struct {
	ExchangeURL string   `json:"exchange_url"`
	Domain      string   `json:"domain,omitempty"`
	Reasons     []string `json:"reasons,omitempty"`
}
