package entity

import (
	"time"
)

// Booking represents a customer service request tracked through its lifecycle
type Booking struct {
	ID                 string        `gorm:"type:varchar(36);primaryKey" json:"id"`
	CustomerID         string        `gorm:"type:varchar(100);not null;index" json:"customer_id"`
	CustomerName       string        `gorm:"type:varchar(255);not null" json:"customer_name"`
	ServiceType        string        `gorm:"type:varchar(100);not null;index" json:"service_type"`
	Description        string        `gorm:"type:text" json:"description"`
	Address            string        `gorm:"type:text;not null" json:"address"`
	ScheduledTime      *time.Time    `json:"scheduled_time,omitempty"`
	Status             BookingStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ProviderID         *string       `gorm:"type:varchar(100);index" json:"provider_id,omitempty"`
	CancelledBy        *string       `gorm:"type:varchar(100)" json:"cancelled_by,omitempty"`
	CancellationReason *string       `gorm:"type:text" json:"cancellation_reason,omitempty"`
	Version            int64         `gorm:"not null;default:1" json:"version"`
	CreatedAt          time.Time     `gorm:"not null;index" json:"created_at"`
	UpdatedAt          time.Time     `gorm:"not null" json:"updated_at"`
}

func (Booking) TableName() string {
	return "bookings"
}

// AssignedProvider returns the last provider bound to the booking, or "" when none was ever assigned
func (b *Booking) AssignedProvider() string {
	if b.ProviderID == nil {
		return ""
	}
	return *b.ProviderID
}

// IsAssignable reports whether the booking may receive a fresh provider assignment
func (b *Booking) IsAssignable() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusRejected
}

// IsAssignedTo checks if the given provider is the one currently bound to the booking
func (b *Booking) IsAssignedTo(providerID string) bool {
	return b.ProviderID != nil && *b.ProviderID == providerID
}
