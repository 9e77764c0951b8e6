package sightings

import "time"

// Sighting es el reporte de quien encontró (o vio) un animal.
// AlertID vacío = huérfano. Una vez seteado no cambia.
type Sighting struct {
	ID          string
	FinderPhone string
	FinderName  string
	Description string
	Location    string
	PhotoURL    string

	AlertID   string
	MatchedAt *time.Time

	CreatedAt time.Time
}

func (s Sighting) Matched() bool {
	return s.AlertID != ""
}
