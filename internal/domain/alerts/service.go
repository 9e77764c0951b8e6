package alerts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-lost-found/internal/apperrors"
	"pet-lost-found/internal/domain/broadcast"
	"pet-lost-found/internal/domain/pets"
	"pet-lost-found/internal/domain/profiles"
	"pet-lost-found/internal/platform/logger"
	"pet-lost-found/internal/platform/textnorm"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("alert not found")
	ErrAlreadyActive = errors.New("pet already has an active alert")
)

// Formatos aceptados para last_seen, en orden.
var lastSeenLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006",
}

type ProfileGetter interface {
	Get(ctx context.Context, phone string) (profiles.Profile, error)
}

type PetLookup interface {
	GetByID(ctx context.Context, id string) (pets.Pet, error)
	ListByOwnerID(ctx context.Context, ownerID string) ([]pets.Pet, error)
}

// Broadcaster es broadcast.Dispatcher o broadcast.Async.
type Broadcaster interface {
	Dispatch(ctx context.Context, req broadcast.Request) (broadcast.Result, error)
}

type Service struct {
	repo        Repository
	profiles    ProfileGetter
	pets        PetLookup
	broadcaster Broadcaster
	log         logger.Logger
	now         func() time.Time
}

func NewService(repo Repository, p ProfileGetter, pl PetLookup, b Broadcaster, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:        repo,
		profiles:    p,
		pets:        pl,
		broadcaster: b,
		log:         log.With(map[string]any{"component": "alerts"}),
		now:         time.Now,
	}
}

type CreateInput struct {
	LastSeen    string
	PetRef      string // id o nombre, opcional
	Description string
	Location    string
	ExtraInfo   string
}

// CreateResult: la alerta ya es durable aunque la difusión falle.
type CreateResult struct {
	Alert          Alert
	Pet            pets.Pet
	Broadcast      *broadcast.Result
	BroadcastError string
}

func (s *Service) Create(ctx context.Context, ownerPhone string, in CreateInput) (CreateResult, error) {
	lastSeen, err := ParseLastSeen(in.LastSeen)
	if err != nil {
		return CreateResult{}, err
	}

	owner, err := s.profiles.Get(ctx, ownerPhone)
	if err != nil {
		return CreateResult{}, err
	}

	pet, err := s.resolvePet(ctx, owner, in.PetRef)
	if err != nil {
		return CreateResult{}, err
	}

	if _, err := s.repo.GetActiveByPet(ctx, pet.ID); err == nil {
		return CreateResult{}, alreadyActive(pet)
	} else if !errors.Is(err, ErrNotFound) {
		return CreateResult{}, apperrors.Storage("get active alert", err)
	}

	now := s.now()
	a := Alert{
		ID:               uuid.NewString(),
		PetID:            pet.ID,
		OwnerID:          owner.ID,
		LastSeenAt:       lastSeen,
		LastSeenLocation: strings.TrimSpace(in.Location),
		Description:      strings.TrimSpace(in.Description),
		ExtraInfo:        strings.TrimSpace(in.ExtraInfo),
		Status:           StatusActive,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.repo.CreateActive(ctx, a); err != nil {
		// la constraint parcial es la fuente de verdad ante carreras
		if errors.Is(err, ErrAlreadyActive) {
			return CreateResult{}, alreadyActive(pet)
		}
		return CreateResult{}, apperrors.Storage("create alert", err)
	}
	pet.CurrentlyLost = true

	out := CreateResult{Alert: a, Pet: pet}
	out.Broadcast, out.BroadcastError = s.broadcast(ctx, owner, pet, a)
	return out, nil
}

// Rebroadcast vuelve a difundir una alerta activa del dueño, p.ej. cuando la
// difusión inicial falló. El guard del dispatcher evita repetir una que ya salió.
func (s *Service) Rebroadcast(ctx context.Context, ownerPhone, alertID string) (CreateResult, error) {
	owner, err := s.profiles.Get(ctx, ownerPhone)
	if err != nil {
		return CreateResult{}, err
	}
	a, err := s.Get(ctx, alertID)
	if err != nil {
		return CreateResult{}, err
	}
	if a.OwnerID != owner.ID {
		return CreateResult{}, apperrors.NotFound(apperrors.CodeAlertNotFound, "alert not found")
	}
	if !a.Active() {
		return CreateResult{}, apperrors.Conflict(apperrors.CodeAlertNotActive, "alert is already resolved")
	}
	pet, err := s.pets.GetByID(ctx, a.PetID)
	if err != nil {
		return CreateResult{}, err
	}

	out := CreateResult{Alert: a, Pet: pet}
	out.Broadcast, out.BroadcastError = s.broadcast(ctx, owner, pet, a)
	return out, nil
}

// broadcast es best-effort: el error solo se loguea y se devuelve como texto.
func (s *Service) broadcast(ctx context.Context, owner profiles.Profile, pet pets.Pet, a Alert) (*broadcast.Result, string) {
	if s.broadcaster == nil {
		return nil, ""
	}
	res, err := s.broadcaster.Dispatch(ctx, broadcast.Request{
		AlertID:    a.ID,
		City:       owner.City,
		OwnerPhone: owner.Phone,
		Summary:    s.summary(pet, a),
	})
	if err != nil {
		s.log.Warn("alert broadcast failed", map[string]any{"alert_id": a.ID, "error": err})
		return nil, err.Error()
	}
	return &res, ""
}

func alreadyActive(p pets.Pet) error {
	return apperrors.Conflict(apperrors.CodeAlertAlreadyActive,
		fmt.Sprintf("%s already has an active alert", p.Name))
}

// resolvePet: id -> nombre exacto -> substring -> única mascota -> enumerar.
// Nunca elige entre varias.
func (s *Service) resolvePet(ctx context.Context, owner profiles.Profile, ref string) (pets.Pet, error) {
	ref = strings.TrimSpace(ref)

	if _, err := uuid.Parse(ref); err == nil {
		p, err := s.pets.GetByID(ctx, ref)
		if err != nil {
			return pets.Pet{}, err
		}
		if p.OwnerID != owner.ID {
			return pets.Pet{}, apperrors.NotFound(apperrors.CodePetNotFound, "pet not found")
		}
		return p, nil
	}

	owned, err := s.pets.ListByOwnerID(ctx, owner.ID)
	if err != nil {
		return pets.Pet{}, err
	}

	if ref == "" {
		switch len(owned) {
		case 0:
			return pets.Pet{}, apperrors.NotFound(apperrors.CodePetNotFound, "owner has no registered pets")
		case 1:
			return owned[0], nil
		default:
			return pets.Pet{}, ambiguous("several pets registered, name one", owned)
		}
	}

	var exact []pets.Pet
	for _, p := range owned {
		if strings.EqualFold(strings.TrimSpace(p.Name), ref) {
			exact = append(exact, p)
		}
	}
	matches := exact
	if len(matches) == 0 {
		needle := textnorm.Fold(ref)
		for _, p := range owned {
			if needle == "" {
				break
			}
			if strings.Contains(textnorm.Fold(p.Name), needle) ||
				strings.Contains(textnorm.Fold(p.Species), needle) ||
				strings.Contains(textnorm.Fold(p.Breed), needle) {
				matches = append(matches, p)
			}
		}
	}

	switch len(matches) {
	case 0:
		return pets.Pet{}, apperrors.NotFound(apperrors.CodePetNotFound,
			fmt.Sprintf("no pet matches %q", ref))
	case 1:
		return matches[0], nil
	default:
		return pets.Pet{}, ambiguous(fmt.Sprintf("several pets match %q", ref), matches)
	}
}

func ambiguous(msg string, items []pets.Pet) error {
	return apperrors.Rule(apperrors.CodePetAmbiguous, msg).WithCandidates(Candidates(items))
}

// Candidates describe cada mascota para que el usuario elija.
func Candidates(items []pets.Pet) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		state := "en casa"
		if p.CurrentlyLost {
			state = "perdida"
		}
		out = append(out, fmt.Sprintf("%s (%s, %s, %s)", p.Name, p.Species, p.Breed, state))
	}
	return out
}

func (s *Service) summary(p pets.Pet, a Alert) broadcast.Summary {
	lastSeen := a.LastSeenAt.Format("02/01/2006 15:04")
	if a.LastSeenLocation != "" {
		lastSeen = a.LastSeenLocation + ", " + lastSeen
	}
	return broadcast.Summary{
		PetName:   p.Name,
		Species:   p.Species,
		Breed:     p.Breed,
		Gender:    string(p.Gender),
		AgeBucket: broadcast.AgeBucket(p.BirthDate, s.now()),
		Marks:     p.Marks,
		LastSeen:  lastSeen,
		PhotoURL:  p.PhotoURL,
	}
}

// ParseLastSeen acepta los formatos de lastSeenLayouts. Sin zona => UTC.
func ParseLastSeen(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, apperrors.Validation("last_seen is required", "last_seen")
	}
	for _, layout := range lastSeenLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperrors.Validation("last_seen is not a valid date", "last_seen")
}

// Resolve: el dueño encontró a su mascota.
func (s *Service) Resolve(ctx context.Context, ownerPhone, alertID string) (Alert, error) {
	owner, err := s.profiles.Get(ctx, ownerPhone)
	if err != nil {
		return Alert{}, err
	}
	a, err := s.Get(ctx, alertID)
	if err != nil {
		return Alert{}, err
	}
	if a.OwnerID != owner.ID {
		return Alert{}, apperrors.NotFound(apperrors.CodeAlertNotFound, "alert not found")
	}
	if !a.Active() {
		return a, nil
	}
	return s.resolve(ctx, a, ResolvedByOwner)
}

// ResolveByMatch cierra la alerta cuando un avistamiento queda vinculado.
func (s *Service) ResolveByMatch(ctx context.Context, alertID string) (Alert, error) {
	a, err := s.Get(ctx, alertID)
	if err != nil {
		return Alert{}, err
	}
	if !a.Active() {
		return a, nil
	}
	return s.resolve(ctx, a, ResolvedBySighting)
}

func (s *Service) resolve(ctx context.Context, a Alert, by ResolvedBy) (Alert, error) {
	now := s.now()
	if err := s.repo.Resolve(ctx, a.ID, by, now); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Alert{}, apperrors.NotFound(apperrors.CodeAlertNotFound, "alert not found")
		}
		return Alert{}, apperrors.Storage("resolve alert", err)
	}
	a.Status = StatusResolved
	a.ResolvedAt = &now
	a.ResolvedBy = by
	a.UpdatedAt = now
	return a, nil
}

func (s *Service) Get(ctx context.Context, id string) (Alert, error) {
	id = strings.TrimSpace(id)
	if _, err := uuid.Parse(id); err != nil {
		return Alert{}, apperrors.NotFound(apperrors.CodeAlertNotFound, "alert not found")
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Alert{}, apperrors.NotFound(apperrors.CodeAlertNotFound, "alert not found")
		}
		return Alert{}, apperrors.Storage("get alert", err)
	}
	return a, nil
}

func (s *Service) ListActiveByOwner(ctx context.Context, ownerPhone string) ([]Alert, error) {
	owner, err := s.profiles.Get(ctx, ownerPhone)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListActiveByOwner(ctx, owner.ID)
	if err != nil {
		return nil, apperrors.Storage("list alerts", err)
	}
	return items, nil
}
