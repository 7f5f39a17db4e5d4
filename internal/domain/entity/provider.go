package entity

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Provider represents a service professional who can be assigned to bookings
type Provider struct {
	ID           string       `gorm:"type:varchar(100);primaryKey" json:"id"`
	Name         string       `gorm:"type:varchar(255);not null" json:"name"`
	Email        string       `gorm:"type:varchar(255);not null" json:"email"`
	Phone        string       `gorm:"type:varchar(50)" json:"phone,omitempty"`
	ServiceTypes ServiceTypes `gorm:"type:text;not null" json:"service_types"`
	IsAvailable  bool         `gorm:"not null;index" json:"is_available"`
	CreatedAt    time.Time    `gorm:"not null" json:"created_at"`
}

func (Provider) TableName() string {
	return "providers"
}

// Offers checks if the provider has the given skill tag
func (p *Provider) Offers(serviceType string) bool {
	return p.ServiceTypes.Contains(serviceType)
}

// ServiceTypes is a set of skill tags persisted as a comma separated list
type ServiceTypes []string

// ParseServiceTypes splits a comma separated tag list, dropping blanks and duplicates
func ParseServiceTypes(raw string) ServiceTypes {
	var out ServiceTypes
	for _, tag := range strings.Split(raw, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "" || out.Contains(tag) {
			continue
		}
		out = append(out, tag)
	}
	return out
}

// Contains checks exact tag membership
func (s ServiceTypes) Contains(serviceType string) bool {
	for _, tag := range s {
		if tag == serviceType {
			return true
		}
	}
	return false
}

// Value implements driver.Valuer
func (s ServiceTypes) Value() (driver.Value, error) {
	return strings.Join(s, ","), nil
}

// Scan implements sql.Scanner
func (s *ServiceTypes) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*s = nil
	case []byte:
		*s = ParseServiceTypes(string(v))
	case string:
		*s = ParseServiceTypes(v)
	default:
		return fmt.Errorf("failed to scan service types from %T", value)
	}
	return nil
}
