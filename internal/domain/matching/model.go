package matching

import (
	"context"
	"time"
)

// Candidate es una alerta activa con todo lo necesario para contactar al dueño
// sin otra consulta.
type Candidate struct {
	AlertID string
	PetID   string
	Rank    float64

	PetName  string
	Species  string
	Breed    string
	Color    string
	Gender   string
	Size     string
	CoatType string
	Marks    string
	PhotoURL string

	LastSeenAt       time.Time
	LastSeenLocation string
	Description      string

	OwnerName         string
	OwnerPhone        string
	OwnerCity         string
	OwnerNeighborhood string
}

type Repository interface {
	// SearchActive devuelve hasta limit alertas activas ordenadas por Rank desc.
	SearchActive(ctx context.Context, query string, limit int) ([]Candidate, error)
}
