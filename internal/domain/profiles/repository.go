package profiles

import "context"

type Repository interface {
	Create(ctx context.Context, p Profile) error
	Update(ctx context.Context, p Profile) error
	GetByID(ctx context.Context, id string) (Profile, error)
	GetByPhone(ctx context.Context, phone string) (Profile, error)
	// ListReachable devuelve perfiles con ciudad y teléfono no vacíos.
	ListReachable(ctx context.Context) ([]Profile, error)
}

type PlanRepository interface {
	GetByID(ctx context.Context, id string) (Plan, error)
	ListActive(ctx context.Context) ([]Plan, error)
}

type SubscriptionRepository interface {
	Create(ctx context.Context, s Subscription) error
	// ListByProfile trae todas las suscripciones (con su Plan) sin filtrar por vigencia.
	ListByProfile(ctx context.Context, profileID string) ([]Subscription, error)
}
