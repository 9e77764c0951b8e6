package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-lost-found/internal/domain/profiles"
)

type ProfileRepo struct {
	mu      sync.RWMutex
	byID    map[string]profiles.Profile
	byPhone map[string]string
}

func NewProfileRepo() *ProfileRepo {
	return &ProfileRepo{
		byID:    make(map[string]profiles.Profile),
		byPhone: make(map[string]string),
	}
}

func (r *ProfileRepo) Create(ctx context.Context, p profiles.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("profile id required")
	}
	if _, exists := r.byPhone[p.Phone]; exists {
		return profiles.ErrDuplicate
	}
	r.byID[p.ID] = p
	r.byPhone[p.Phone] = p.ID
	return nil
}

// Update no permite cambiar el teléfono.
func (r *ProfileRepo) Update(ctx context.Context, p profiles.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, exists := r.byID[p.ID]
	if !exists {
		return profiles.ErrNotFound
	}
	p.Phone = cur.Phone
	r.byID[p.ID] = p
	return nil
}

func (r *ProfileRepo) GetByID(ctx context.Context, id string) (profiles.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return profiles.Profile{}, profiles.ErrNotFound
	}
	return p, nil
}

func (r *ProfileRepo) GetByPhone(ctx context.Context, phone string) (profiles.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byPhone[phone]
	if !ok {
		return profiles.Profile{}, profiles.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *ProfileRepo) ListReachable(ctx context.Context) ([]profiles.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]profiles.Profile, 0)
	for _, p := range r.byID {
		if strings.TrimSpace(p.City) == "" || strings.TrimSpace(p.Phone) == "" {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// DefaultPlans es el mismo catálogo que siembra la migración de Postgres.
func DefaultPlans() []profiles.Plan {
	return []profiles.Plan{
		{ID: "basic", Name: "Plan Básico", Price: 9900, PetLimit: 1, DurationMonths: 1, Active: true},
		{ID: "family", Name: "Plan Familiar", Price: 19900, PetLimit: 3, DurationMonths: 1, Active: true},
		{ID: "unlimited", Name: "Plan Ilimitado", Price: 99900, PetLimit: profiles.UnlimitedPetLimit, DurationMonths: 12, Active: true},
	}
}

type PlanRepo struct {
	mu   sync.RWMutex
	byID map[string]profiles.Plan
}

// NewPlanRepo sin argumentos usa DefaultPlans.
func NewPlanRepo(plans ...profiles.Plan) *PlanRepo {
	if len(plans) == 0 {
		plans = DefaultPlans()
	}
	r := &PlanRepo{byID: make(map[string]profiles.Plan, len(plans))}
	for _, p := range plans {
		r.byID[p.ID] = p
	}
	return r
}

func (r *PlanRepo) GetByID(ctx context.Context, id string) (profiles.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return profiles.Plan{}, profiles.ErrPlanNotFound
	}
	return p, nil
}

func (r *PlanRepo) ListActive(ctx context.Context) ([]profiles.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]profiles.Plan, 0, len(r.byID))
	for _, p := range r.byID {
		if p.Active {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Price < out[j].Price
	})
	return out, nil
}

type SubscriptionRepo struct {
	mu    sync.RWMutex
	plans *PlanRepo
	items []profiles.Subscription
}

func NewSubscriptionRepo(plans *PlanRepo) *SubscriptionRepo {
	return &SubscriptionRepo{plans: plans}
}

func (r *SubscriptionRepo) Create(ctx context.Context, s profiles.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(s.ID) == "" {
		return errors.New("subscription id required")
	}
	r.items = append(r.items, s)
	return nil
}

// ListByProfile devuelve el plan vigente del catálogo, como el join en Postgres.
func (r *SubscriptionRepo) ListByProfile(ctx context.Context, profileID string) ([]profiles.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]profiles.Subscription, 0)
	for _, s := range r.items {
		if s.ProfileID != profileID {
			continue
		}
		if r.plans != nil {
			plan, err := r.plans.GetByID(ctx, s.PlanID)
			if err != nil {
				return nil, err
			}
			s.Plan = plan
		}
		out = append(out, s)
	}
	return out, nil
}
