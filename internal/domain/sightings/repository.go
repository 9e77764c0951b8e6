package sightings

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, s Sighting) error
	GetByID(ctx context.Context, id string) (Sighting, error)
	// LinkAlert solo vincula huérfanos; si ya tenía alerta devuelve ErrAlreadyMatched.
	LinkAlert(ctx context.Context, id, alertID string, at time.Time) error
	ListByAlert(ctx context.Context, alertID string) ([]Sighting, error)
	ListUnmatched(ctx context.Context, limit int) ([]Sighting, error)
}
