package profiles

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-lost-found/internal/apperrors"
	"pet-lost-found/internal/platform/logger"
	"pet-lost-found/internal/platform/textnorm"

	"github.com/google/uuid"
)

// Los repos devuelven estos sentinels; el servicio los traduce a apperrors.
var (
	ErrNotFound     = errors.New("profile not found")
	ErrPlanNotFound = errors.New("plan not found")
	ErrDuplicate    = errors.New("profile already exists")
)

type Service struct {
	repo  Repository
	plans PlanRepository
	subs  SubscriptionRepository
	log   logger.Logger
	now   func() time.Time
}

func NewService(repo Repository, plans PlanRepository, subs SubscriptionRepository, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:  repo,
		plans: plans,
		subs:  subs,
		log:   log.With(map[string]any{"component": "profiles"}),
		now:   time.Now,
	}
}

// Ensure devuelve el perfil del teléfono, creándolo en la primera interacción.
func (s *Service) Ensure(ctx context.Context, phone, name string) (Profile, error) {
	phone = textnorm.NormalizePhone(phone)
	if phone == "" {
		return Profile{}, apperrors.Validation("phone is required", "phone")
	}

	p, err := s.repo.GetByPhone(ctx, phone)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Profile{}, apperrors.Storage("get profile", err)
	}

	now := s.now()
	p = Profile{
		ID:        uuid.NewString(),
		Phone:     phone,
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		// otro request lo creó primero
		if errors.Is(err, ErrDuplicate) {
			if existing, gerr := s.repo.GetByPhone(ctx, phone); gerr == nil {
				return existing, nil
			}
		}
		return Profile{}, apperrors.Storage("create profile", err)
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, phone string) (Profile, error) {
	phone = textnorm.NormalizePhone(phone)
	if phone == "" {
		return Profile{}, apperrors.Validation("phone is required", "phone")
	}
	p, err := s.repo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Profile{}, apperrors.NotFound(apperrors.CodeProfileNotFound, "profile not found")
		}
		return Profile{}, apperrors.Storage("get profile", err)
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Profile, error) {
	p, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Profile{}, apperrors.NotFound(apperrors.CodeProfileNotFound, "profile not found")
		}
		return Profile{}, apperrors.Storage("get profile", err)
	}
	return p, nil
}

// UpdateInput: punteros para PATCH real, nil = no tocar.
type UpdateInput struct {
	Name         *string
	Email        *string
	City         *string
	Country      *string
	Neighborhood *string
}

func (s *Service) Update(ctx context.Context, phone string, in UpdateInput) (Profile, error) {
	p, err := s.Get(ctx, phone)
	if err != nil {
		return Profile{}, err
	}

	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email != "" && !strings.Contains(email, "@") {
			return Profile{}, apperrors.Validation("email is invalid", "email")
		}
		p.Email = email
	}
	if in.City != nil {
		p.City = strings.TrimSpace(*in.City)
	}
	if in.Country != nil {
		p.Country = strings.TrimSpace(*in.Country)
	}
	if in.Neighborhood != nil {
		p.Neighborhood = strings.TrimSpace(*in.Neighborhood)
	}
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Profile{}, apperrors.Storage("update profile", err)
	}
	return p, nil
}

func (s *Service) ListPlans(ctx context.Context) ([]Plan, error) {
	plans, err := s.plans.ListActive(ctx)
	if err != nil {
		return nil, apperrors.Storage("list plans", err)
	}
	return plans, nil
}

// Subscribe activa un plan para el perfil. El cobro ocurre fuera del core.
func (s *Service) Subscribe(ctx context.Context, phone, planID string) (Subscription, error) {
	p, err := s.Get(ctx, phone)
	if err != nil {
		return Subscription{}, err
	}

	planID = strings.TrimSpace(planID)
	if planID == "" {
		return Subscription{}, apperrors.Validation("plan_id is required", "plan_id")
	}
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			return Subscription{}, apperrors.NotFound(apperrors.CodePlanNotFound, "plan not found")
		}
		return Subscription{}, apperrors.Storage("get plan", err)
	}
	if !plan.Active {
		return Subscription{}, apperrors.Rule(apperrors.CodeSubscriptionInvalid, "plan is not available")
	}

	months := plan.DurationMonths
	if months <= 0 {
		months = 1
	}
	now := s.now()
	sub := Subscription{
		ID:          uuid.NewString(),
		ProfileID:   p.ID,
		PlanID:      plan.ID,
		Plan:        plan,
		Status:      SubscriptionActive,
		ActivatedAt: now,
		ExpiresAt:   now.AddDate(0, months, 0),
	}
	if err := s.subs.Create(ctx, sub); err != nil {
		return Subscription{}, apperrors.Storage("create subscription", err)
	}

	if !p.IsSubscriber {
		p.IsSubscriber = true
		p.UpdatedAt = now
		// el flag es solo un atajo; si falla, la suscripción ya quedó
		if err := s.repo.Update(ctx, p); err != nil {
			s.log.Warn("subscriber flag update failed", map[string]any{
				"profile_id":      p.ID,
				"subscription_id": sub.ID,
				"error":           err,
			})
		}
	}
	return sub, nil
}
