package alerts

import (
	"context"
	"time"
)

type Repository interface {
	// CreateActive inserta la alerta y marca la mascota como perdida en una sola
	// operación. Devuelve ErrAlreadyActive si la mascota ya tiene una activa.
	CreateActive(ctx context.Context, a Alert) error
	GetByID(ctx context.Context, id string) (Alert, error)
	GetActiveByPet(ctx context.Context, petID string) (Alert, error)
	ListActiveByOwner(ctx context.Context, ownerID string) ([]Alert, error)
	// Resolve cierra la alerta y limpia currently_lost. Sobre una alerta ya
	// resuelta no hace nada.
	Resolve(ctx context.Context, id string, by ResolvedBy, at time.Time) error
}
