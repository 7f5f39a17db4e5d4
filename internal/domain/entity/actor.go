package entity

// ActorType identifies who performed a booking mutation
type ActorType string

const (
	ActorTypeCustomer ActorType = "customer"
	ActorTypeProvider ActorType = "provider"
	ActorTypeAdmin    ActorType = "admin"
	ActorTypeSystem   ActorType = "system"
)

// SystemActor is the actor id used for automatic assignments
const SystemActor = "system"

// AdminActor is the actor id used for admin overrides
const AdminActor = "admin"

// IsValid checks if the actor type is known
func (a ActorType) IsValid() bool {
	switch a {
	case ActorTypeCustomer, ActorTypeProvider, ActorTypeAdmin, ActorTypeSystem:
		return true
	}
	return false
}
