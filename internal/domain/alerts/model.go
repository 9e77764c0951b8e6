package alerts

import "time"

// Status de la alerta.
// @Enum active, resolved
type Status string

const (
	StatusActive   Status = "active"
	StatusResolved Status = "resolved"
)

// ResolvedBy indica cómo se cerró la alerta.
type ResolvedBy string

const (
	ResolvedByOwner    ResolvedBy = "owner"
	ResolvedBySighting ResolvedBy = "sighting"
)

// Alert es el reporte de una mascota perdida. A lo sumo una active por mascota.
type Alert struct {
	ID      string
	PetID   string
	OwnerID string

	LastSeenAt       time.Time
	LastSeenLocation string
	Description      string
	ExtraInfo        string

	Status     Status
	ResolvedAt *time.Time
	ResolvedBy ResolvedBy

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (a Alert) Active() bool {
	return a.Status == StatusActive
}
