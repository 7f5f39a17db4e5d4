package entity

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusAssigned   BookingStatus = "assigned"
	BookingStatusInProgress BookingStatus = "in-progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
	BookingStatusRejected   BookingStatus = "rejected"
)

// DefaultCancellationReason is stored when a booking is cancelled without a reason
const DefaultCancellationReason = "No reason provided"

// statusTransitions lists the legal next statuses for every known status.
// It is never mutated after package initialization.
var statusTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:    {BookingStatusAssigned, BookingStatusCancelled},
	BookingStatusAssigned:   {BookingStatusInProgress, BookingStatusCancelled, BookingStatusRejected},
	BookingStatusInProgress: {BookingStatusCompleted, BookingStatusCancelled},
	BookingStatusCompleted:  {},
	BookingStatusCancelled:  {},
	BookingStatusRejected:   {BookingStatusAssigned, BookingStatusCancelled},
}

// AllBookingStatuses returns every known status in lifecycle order
func AllBookingStatuses() []BookingStatus {
	return []BookingStatus{
		BookingStatusPending,
		BookingStatusAssigned,
		BookingStatusInProgress,
		BookingStatusCompleted,
		BookingStatusCancelled,
		BookingStatusRejected,
	}
}

// AllowedTransitions returns the statuses reachable from the given status.
// Unknown statuses have no legal transitions.
func AllowedTransitions(from BookingStatus) []BookingStatus {
	next := statusTransitions[from]
	out := make([]BookingStatus, len(next))
	copy(out, next)
	return out
}

// CanTransition checks the transition table for a single move
func CanTransition(from, to BookingStatus) bool {
	for _, s := range statusTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsValid checks if the status is one of the known statuses
func (s BookingStatus) IsValid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// IsTerminal checks if no further transition is possible from the status
func (s BookingStatus) IsTerminal() bool {
	return s.IsValid() && len(statusTransitions[s]) == 0
}

func (s BookingStatus) String() string {
	return string(s)
}
