package quota

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pet-lost-found/internal/domain/profiles"
	"pet-lost-found/internal/platform/logger"
	"pet-lost-found/internal/platform/textnorm"
)

// Denial explica por qué Status.Active es false.
type Denial string

const (
	DenialNone           Denial = ""
	DenialNoProfile      Denial = "no_profile"
	DenialNoSubscription Denial = "no_subscription"
	DenialExpired        Denial = "expired"
	DenialLookupFailed   Denial = "lookup_failed"
)

// Status es la cuota efectiva de un perfil sumando todas sus suscripciones vigentes.
type Status struct {
	Active        bool
	TotalLimit    int
	CurrentCount  int
	CanRegister   bool
	Unlimited     bool
	Subscriptions []profiles.Subscription

	Denial Denial
	Reason string
}

// Remaining devuelve los cupos libres, o -1 si el plan es ilimitado.
func (s Status) Remaining() int {
	if s.Unlimited {
		return -1
	}
	if r := s.TotalLimit - s.CurrentCount; r > 0 {
		return r
	}
	return 0
}

type ProfileLookup interface {
	GetByPhone(ctx context.Context, phone string) (profiles.Profile, error)
}

type SubscriptionLister interface {
	ListByProfile(ctx context.Context, profileID string) ([]profiles.Subscription, error)
}

type PetCounter interface {
	CountByOwner(ctx context.Context, ownerProfileID string) (int, error)
}

type Resolver struct {
	profiles ProfileLookup
	subs     SubscriptionLister
	pets     PetCounter
	log      logger.Logger
	now      func() time.Time
}

func NewResolver(p ProfileLookup, subs SubscriptionLister, pets PetCounter, log logger.Logger) *Resolver {
	if log == nil {
		log = logger.Nop()
	}
	return &Resolver{
		profiles: p,
		subs:     subs,
		pets:     pets,
		log:      log.With(map[string]any{"component": "quota-resolver"}),
		now:      time.Now,
	}
}

// Check es de solo lectura. Cualquier error de consulta devuelve Active=false:
// ante la duda se niega el registro.
func (r *Resolver) Check(ctx context.Context, phone string) Status {
	phone = textnorm.NormalizePhone(phone)
	if phone == "" {
		return denied(DenialNoProfile, "phone is required")
	}

	p, err := r.profiles.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, profiles.ErrNotFound) {
			return denied(DenialNoProfile, "profile not found")
		}
		r.log.Warn("quota: profile lookup failed", map[string]any{"phone": phone, "error": err})
		return denied(DenialLookupFailed, fmt.Sprintf("profile lookup failed: %v", err))
	}

	all, err := r.subs.ListByProfile(ctx, p.ID)
	if err != nil {
		r.log.Warn("quota: subscription lookup failed", map[string]any{"profile_id": p.ID, "error": err})
		return denied(DenialLookupFailed, fmt.Sprintf("subscription lookup failed: %v", err))
	}

	now := r.now()
	current := make([]profiles.Subscription, 0, len(all))
	expired := false
	for _, s := range all {
		if s.IsCurrent(now) {
			current = append(current, s)
			continue
		}
		if s.Status == profiles.SubscriptionActive {
			expired = true
		}
	}

	if len(current) == 0 {
		if expired {
			return denied(DenialExpired, "all subscriptions have expired")
		}
		return denied(DenialNoSubscription, "no active subscription")
	}

	st := Status{
		Active:        true,
		Subscriptions: current,
	}
	for _, s := range current {
		st.TotalLimit += s.Plan.PetLimit
		if s.Plan.Unlimited() {
			st.Unlimited = true
		}
	}

	count, err := r.pets.CountByOwner(ctx, p.ID)
	if err != nil {
		r.log.Warn("quota: pet count failed", map[string]any{"profile_id": p.ID, "error": err})
		return denied(DenialLookupFailed, fmt.Sprintf("pet count failed: %v", err))
	}
	st.CurrentCount = count

	// planes vigentes que suman 0 cupos: activo pero sin espacio
	st.CanRegister = st.Unlimited || st.CurrentCount < st.TotalLimit
	return st
}

func denied(d Denial, reason string) Status {
	return Status{Active: false, Denial: d, Reason: reason}
}
