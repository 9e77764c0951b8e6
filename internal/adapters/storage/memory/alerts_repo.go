package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"pet-lost-found/internal/domain/alerts"
)

// AlertRepo comparte el lock de PetRepo al tocar currently_lost para que
// alerta y flag cambien juntos, como la transacción en Postgres.
type AlertRepo struct {
	mu   sync.RWMutex
	pets *PetRepo
	byID map[string]alerts.Alert
}

func NewAlertRepo(pets *PetRepo) *AlertRepo {
	return &AlertRepo{
		pets: pets,
		byID: make(map[string]alerts.Alert),
	}
}

func (r *AlertRepo) CreateActive(ctx context.Context, a alerts.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("alert id required")
	}
	for _, cur := range r.byID {
		if cur.PetID == a.PetID && cur.Active() {
			return alerts.ErrAlreadyActive
		}
	}

	if r.pets != nil {
		r.pets.mu.Lock()
		err := r.pets.setLostLocked(a.PetID, true)
		r.pets.mu.Unlock()
		if err != nil {
			return err
		}
	}
	r.byID[a.ID] = a
	return nil
}

func (r *AlertRepo) GetByID(ctx context.Context, id string) (alerts.Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return alerts.Alert{}, alerts.ErrNotFound
	}
	return a, nil
}

func (r *AlertRepo) GetActiveByPet(ctx context.Context, petID string) (alerts.Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.byID {
		if a.PetID == petID && a.Active() {
			return a, nil
		}
	}
	return alerts.Alert{}, alerts.ErrNotFound
}

func (r *AlertRepo) ListActiveByOwner(ctx context.Context, ownerID string) ([]alerts.Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]alerts.Alert, 0)
	for _, a := range r.byID {
		if a.OwnerID == ownerID && a.Active() {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// listActive lo usa SearchRepo.
func (r *AlertRepo) listActive() []alerts.Alert {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]alerts.Alert, 0)
	for _, a := range r.byID {
		if a.Active() {
			out = append(out, a)
		}
	}
	return out
}

func (r *AlertRepo) Resolve(ctx context.Context, id string, by alerts.ResolvedBy, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return alerts.ErrNotFound
	}
	if !a.Active() {
		return nil
	}

	if r.pets != nil {
		r.pets.mu.Lock()
		err := r.pets.setLostLocked(a.PetID, false)
		r.pets.mu.Unlock()
		if err != nil {
			return err
		}
	}

	a.Status = alerts.StatusResolved
	a.ResolvedBy = by
	a.ResolvedAt = &at
	a.UpdatedAt = at
	r.byID[id] = a
	return nil
}
