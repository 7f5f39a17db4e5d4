package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// EventType identifies the kind of booking mutation an event records
type EventType string

const (
	EventTypeCreated          EventType = "created"
	EventTypeStatusUpdated    EventType = "status_updated"
	EventTypeProviderAssigned EventType = "provider_assigned"
)

// IsValid checks if the event type is known
func (t EventType) IsValid() bool {
	switch t {
	case EventTypeCreated, EventTypeStatusUpdated, EventTypeProviderAssigned:
		return true
	}
	return false
}

// BookingEvent is an append-only audit record of one booking mutation.
// Events are never updated or deleted.
type BookingEvent struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	BookingID       string    `gorm:"type:varchar(36);not null;index" json:"booking_id"`
	EventType       EventType `gorm:"type:varchar(50);not null;index" json:"event_type"`
	EventData       JSON      `gorm:"type:jsonb" json:"event_data,omitempty"`
	PerformedBy     string    `gorm:"type:varchar(100)" json:"performed_by"`
	PerformedByType ActorType `gorm:"type:varchar(20)" json:"performed_by_type"`
	CreatedAt       time.Time `gorm:"not null;index" json:"created_at"`
}

func (BookingEvent) TableName() string {
	return "booking_events"
}

// EventHistoryEntry is a booking event joined with a summary of its booking
type EventHistoryEntry struct {
	ID              int64
	BookingID       string
	EventType       EventType
	EventData       JSON
	PerformedBy     string
	PerformedByType ActorType
	CreatedAt       time.Time
	CustomerName    string
	ServiceType     string
}

// EventPayload is the typed content of a booking event.
// Exactly one variant exists per EventType.
type EventPayload interface {
	EventType() EventType
}

// BookingSnapshot captures the caller supplied fields at creation time
type BookingSnapshot struct {
	CustomerID    string     `json:"customerId"`
	CustomerName  string     `json:"customerName"`
	ServiceType   string     `json:"serviceType"`
	Description   string     `json:"description"`
	Address       string     `json:"address"`
	ScheduledTime *time.Time `json:"scheduledTime"`
}

// CreatedPayload is recorded when a booking is created
type CreatedPayload struct {
	BookingData BookingSnapshot `json:"bookingData"`
}

func (CreatedPayload) EventType() EventType { return EventTypeCreated }

// StatusChangedPayload is recorded on every status transition
type StatusChangedPayload struct {
	From               BookingStatus `json:"from"`
	To                 BookingStatus `json:"to"`
	UpdatedBy          string        `json:"updatedBy"`
	CancellationReason *string       `json:"cancellationReason"`
}

func (StatusChangedPayload) EventType() EventType { return EventTypeStatusUpdated }

// ProviderAssignedPayload is recorded when a provider is bound to a booking
type ProviderAssignedPayload struct {
	ProviderID string `json:"providerId"`
}

func (ProviderAssignedPayload) EventType() EventType { return EventTypeProviderAssigned }

// NewBookingEvent builds an event whose type and data come from the payload
func NewBookingEvent(bookingID string, payload EventPayload, performedBy string, performedByType ActorType, at time.Time) (*BookingEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", payload.EventType(), err)
	}
	return &BookingEvent{
		BookingID:       bookingID,
		EventType:       payload.EventType(),
		EventData:       JSON(data),
		PerformedBy:     performedBy,
		PerformedByType: performedByType,
		CreatedAt:       at,
	}, nil
}

// Payload decodes EventData into the variant matching EventType
func (e *BookingEvent) Payload() (EventPayload, error) {
	return decodePayload(e.EventType, e.EventData)
}

// Payload decodes EventData into the variant matching EventType
func (e *EventHistoryEntry) Payload() (EventPayload, error) {
	return decodePayload(e.EventType, e.EventData)
}

func decodePayload(eventType EventType, data JSON) (EventPayload, error) {
	switch eventType {
	case EventTypeCreated:
		var p CreatedPayload
		err := json.Unmarshal(data, &p)
		return p, err
	case EventTypeStatusUpdated:
		var p StatusChangedPayload
		err := json.Unmarshal(data, &p)
		return p, err
	case EventTypeProviderAssigned:
		var p ProviderAssignedPayload
		err := json.Unmarshal(data, &p)
		return p, err
	}
	return nil, fmt.Errorf("unknown event type %q", eventType)
}

// JSON holds raw JSON for jsonb columns and passes it through unchanged when encoded
type JSON json.RawMessage

// Value returns json value, implement driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return string(j), nil
}

// Scan scan value into Jsonb, implements sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}
	*j = append((*j)[:0], bytes...)
	return nil
}

// MarshalJSON implements json.Marshaler
func (j JSON) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

// UnmarshalJSON implements json.Unmarshaler
func (j *JSON) UnmarshalJSON(data []byte) error {
	if j == nil {
		return errors.New("entity.JSON: UnmarshalJSON on nil pointer")
	}
	*j = append((*j)[:0], data...)
	return nil
}
