package profiles

import "time"

// UnlimitedPetLimit: un plan con pet_limit >= este valor no tiene tope.
// Se conserva el centinela porque así vienen los datos de planes existentes.
const UnlimitedPetLimit = 999

// Profile es la cuenta de un usuario, una por número de teléfono.
type Profile struct {
	ID           string
	Phone        string
	Name         string
	Email        string
	City         string
	Country      string
	Neighborhood string

	// IsSubscriber es un indicador rápido; la cuota real la calcula quota.Resolver.
	IsSubscriber bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Plan es dato de catálogo, solo lectura para el core.
type Plan struct {
	ID             string
	Name           string
	Price          float64
	PetLimit       int
	DurationMonths int
	Active         bool
}

// Unlimited expone el centinela como tipo.
func (p Plan) Unlimited() bool {
	return p.PetLimit >= UnlimitedPetLimit
}

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

// Subscription vincula un Profile con un Plan.
// active -> expired ocurre solo por tiempo; no se persiste (ver IsCurrent).
type Subscription struct {
	ID          string
	ProfileID   string
	PlanID      string
	Plan        Plan
	Status      SubscriptionStatus
	ActivatedAt time.Time
	ExpiresAt   time.Time
}

// IsCurrent: status active y expires_at >= now.
func (s Subscription) IsCurrent(now time.Time) bool {
	return s.Status == SubscriptionActive && !s.ExpiresAt.Before(now)
}
