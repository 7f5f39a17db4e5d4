package entity

// BookingFilter is a domain-level filter for querying bookings.
// Empty fields do not filter.
type BookingFilter struct {
	CustomerID string
	ProviderID string
	Status     BookingStatus
}

// EventFilter narrows the booking event history view
type EventFilter struct {
	BookingID string
	EventType EventType
}

// ProviderFilter narrows the provider directory.
// IsAvailable is a pointer so that "any availability" stays expressible.
type ProviderFilter struct {
	IsAvailable *bool
	ServiceType string
	ExcludeIDs  []string
}
