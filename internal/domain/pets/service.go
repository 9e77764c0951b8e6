package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-lost-found/internal/apperrors"
	"pet-lost-found/internal/domain/profiles"
	"pet-lost-found/internal/domain/quota"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("pet not found")
)

// QuotaChecker es quota.Resolver visto desde pets.
type QuotaChecker interface {
	Check(ctx context.Context, phone string) quota.Status
}

type ProfileGetter interface {
	Get(ctx context.Context, phone string) (profiles.Profile, error)
}

type Service struct {
	repo     Repository
	quota    QuotaChecker
	profiles ProfileGetter
	now      func() time.Time
}

func NewService(repo Repository, q QuotaChecker, p ProfileGetter) *Service {
	return &Service{
		repo:     repo,
		quota:    q,
		profiles: p,
		now:      time.Now,
	}
}

type RegisterInput struct {
	Name      string
	Species   string
	Breed     string
	Color     string
	Gender    string
	Size      string
	CoatType  string
	BirthDate *time.Time
	PhotoURL  string
	Marks     string
}

// missingFields devuelve todos los obligatorios vacíos, en orden fijo.
func (in RegisterInput) missingFields() []string {
	required := []struct {
		field string
		value string
	}{
		{"name", in.Name},
		{"species", in.Species},
		{"breed", in.Breed},
		{"color", in.Color},
		{"gender", in.Gender},
		{"photo_url", in.PhotoURL},
		{"size", in.Size},
		{"coat_type", in.CoatType},
	}
	var out []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			out = append(out, r.field)
		}
	}
	return out
}

// Register valida en orden: campos obligatorios, suscripción vigente, cupo.
func (s *Service) Register(ctx context.Context, ownerPhone string, in RegisterInput) (Pet, error) {
	if missing := in.missingFields(); len(missing) > 0 {
		return Pet{}, apperrors.Validation("missing required fields", missing...)
	}

	st := s.quota.Check(ctx, ownerPhone)
	if !st.Active {
		return Pet{}, denialError(st)
	}
	if !st.CanRegister {
		return Pet{}, apperrors.Errorf(apperrors.KindBusinessRule, apperrors.CodePetLimitExceeded,
			"pet limit reached (%d of %d)", st.CurrentCount, st.TotalLimit)
	}

	owner, err := s.profiles.Get(ctx, ownerPhone)
	if err != nil {
		return Pet{}, err
	}

	now := s.now()
	p := Pet{
		ID:        uuid.NewString(),
		OwnerID:   owner.ID,
		Name:      strings.TrimSpace(in.Name),
		Species:   strings.TrimSpace(in.Species),
		Breed:     strings.TrimSpace(in.Breed),
		Color:     strings.TrimSpace(in.Color),
		Gender:    Gender(strings.ToLower(strings.TrimSpace(in.Gender))),
		Size:      Size(strings.ToLower(strings.TrimSpace(in.Size))),
		CoatType:  strings.TrimSpace(in.CoatType),
		BirthDate: in.BirthDate,
		PhotoURL:  strings.TrimSpace(in.PhotoURL),
		Marks:     strings.TrimSpace(in.Marks),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, apperrors.Storage("create pet", err)
	}
	return p, nil
}

func denialError(st quota.Status) error {
	switch st.Denial {
	case quota.DenialExpired:
		return apperrors.Rule(apperrors.CodeSubscriptionExpired, st.Reason)
	case quota.DenialLookupFailed:
		return apperrors.Rule(apperrors.CodeSubscriptionInvalid, st.Reason)
	default:
		return apperrors.Rule(apperrors.CodeSubscriptionRequired, st.Reason)
	}
}

// UpdateInput: punteros para PATCH real, nil = no tocar.
type UpdateInput struct {
	Name     *string
	Species  *string
	Breed    *string
	Color    *string
	Gender   *string
	Size     *string
	CoatType *string
	PhotoURL *string
	Marks    *string

	BirthDateSet bool
	BirthDate    *time.Time
}

func (s *Service) Update(ctx context.Context, ownerPhone, petID string, in UpdateInput) (Pet, error) {
	p, err := s.Get(ctx, ownerPhone, petID)
	if err != nil {
		return Pet{}, err
	}

	var blank []string
	set := func(field string, dst *string, v *string) {
		if v == nil {
			return
		}
		val := strings.TrimSpace(*v)
		if val == "" {
			blank = append(blank, field)
			return
		}
		*dst = val
	}

	set("name", &p.Name, in.Name)
	set("species", &p.Species, in.Species)
	set("breed", &p.Breed, in.Breed)
	set("color", &p.Color, in.Color)
	gender, size := string(p.Gender), string(p.Size)
	set("gender", &gender, in.Gender)
	set("size", &size, in.Size)
	p.Gender, p.Size = Gender(strings.ToLower(gender)), Size(strings.ToLower(size))
	set("coat_type", &p.CoatType, in.CoatType)
	set("photo_url", &p.PhotoURL, in.PhotoURL)

	if len(blank) > 0 {
		return Pet{}, apperrors.Validation("required fields cannot be blank", blank...)
	}

	if in.Marks != nil {
		p.Marks = strings.TrimSpace(*in.Marks)
	}
	if in.BirthDateSet {
		p.BirthDate = in.BirthDate
	}
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Pet{}, apperrors.NotFound(apperrors.CodePetNotFound, "pet not found")
		}
		return Pet{}, apperrors.Storage("update pet", err)
	}
	return p, nil
}

// Get devuelve la mascota solo si pertenece al dueño; si no, PET_NOT_FOUND.
func (s *Service) Get(ctx context.Context, ownerPhone, petID string) (Pet, error) {
	owner, err := s.profiles.Get(ctx, ownerPhone)
	if err != nil {
		return Pet{}, err
	}
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	if p.OwnerID != owner.ID {
		return Pet{}, apperrors.NotFound(apperrors.CodePetNotFound, "pet not found")
	}
	return p, nil
}

// GetByID sin chequeo de dueño, para uso interno entre módulos.
func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if _, err := uuid.Parse(id); err != nil {
		return Pet{}, apperrors.NotFound(apperrors.CodePetNotFound, "pet not found")
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Pet{}, apperrors.NotFound(apperrors.CodePetNotFound, "pet not found")
		}
		return Pet{}, apperrors.Storage("get pet", err)
	}
	return p, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerPhone string) ([]Pet, error) {
	owner, err := s.profiles.Get(ctx, ownerPhone)
	if err != nil {
		return nil, err
	}
	return s.ListByOwnerID(ctx, owner.ID)
}

func (s *Service) ListByOwnerID(ctx context.Context, ownerID string) ([]Pet, error) {
	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperrors.Storage("list pets", err)
	}
	return items, nil
}
