package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"pet-lost-found/internal/domain/sightings"
)

type SightingRepo struct {
	mu   sync.RWMutex
	byID map[string]sightings.Sighting
}

func NewSightingRepo() *SightingRepo {
	return &SightingRepo{
		byID: make(map[string]sightings.Sighting),
	}
}

func (r *SightingRepo) Create(ctx context.Context, s sightings.Sighting) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(s.ID) == "" {
		return errors.New("sighting id required")
	}
	if strings.TrimSpace(s.PhotoURL) == "" {
		return errors.New("sighting photo required")
	}
	if _, exists := r.byID[s.ID]; exists {
		return errors.New("sighting already exists")
	}
	r.byID[s.ID] = s
	return nil
}

func (r *SightingRepo) GetByID(ctx context.Context, id string) (sightings.Sighting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return sightings.Sighting{}, sightings.ErrNotFound
	}
	return s, nil
}

func (r *SightingRepo) LinkAlert(ctx context.Context, id, alertID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[id]
	if !ok {
		return sightings.ErrNotFound
	}
	if s.Matched() {
		return sightings.ErrAlreadyMatched
	}
	s.AlertID = alertID
	s.MatchedAt = &at
	r.byID[id] = s
	return nil
}

func (r *SightingRepo) ListByAlert(ctx context.Context, alertID string) ([]sightings.Sighting, error) {
	return r.filter(func(s sightings.Sighting) bool { return s.AlertID == alertID }, 0), nil
}

func (r *SightingRepo) ListUnmatched(ctx context.Context, limit int) ([]sightings.Sighting, error) {
	return r.filter(func(s sightings.Sighting) bool { return !s.Matched() }, limit), nil
}

// filter ordena por created_at desc; limit <= 0 es sin límite.
func (r *SightingRepo) filter(keep func(sightings.Sighting) bool, limit int) []sightings.Sighting {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]sightings.Sighting, 0)
	for _, s := range r.byID {
		if keep(s) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
