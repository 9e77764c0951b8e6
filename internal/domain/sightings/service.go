package sightings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-lost-found/internal/apperrors"
	"pet-lost-found/internal/domain/alerts"
	"pet-lost-found/internal/domain/pets"
	"pet-lost-found/internal/domain/profiles"
	"pet-lost-found/internal/platform/logger"
	"pet-lost-found/internal/platform/photoref"
	"pet-lost-found/internal/platform/textnorm"
	"pet-lost-found/internal/ports/messaging"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("sighting not found")
	ErrAlreadyMatched = errors.New("sighting already linked to an alert")
)

const defaultUnmatchedLimit = 50

type AlertResolver interface {
	Get(ctx context.Context, id string) (alerts.Alert, error)
	ResolveByMatch(ctx context.Context, id string) (alerts.Alert, error)
}

type PetGetter interface {
	GetByID(ctx context.Context, id string) (pets.Pet, error)
}

type ProfileLookup interface {
	Get(ctx context.Context, phone string) (profiles.Profile, error)
	GetByID(ctx context.Context, id string) (profiles.Profile, error)
}

type Options struct {
	TemplateID  string
	From        string
	PhotoMarker string
}

type Service struct {
	repo     Repository
	alerts   AlertResolver
	pets     PetGetter
	profiles ProfileLookup
	gw       messaging.Gateway
	opts     Options
	log      logger.Logger
	now      func() time.Time
}

func NewService(repo Repository, a AlertResolver, p PetGetter, pr ProfileLookup, gw messaging.Gateway, log logger.Logger, opts Options) *Service {
	if log == nil {
		log = logger.Nop()
	}
	if opts.PhotoMarker == "" {
		opts.PhotoMarker = photoref.DefaultMarker
	}
	return &Service{
		repo:     repo,
		alerts:   a,
		pets:     p,
		profiles: pr,
		gw:       gw,
		opts:     opts,
		log:      log.With(map[string]any{"component": "sightings"}),
		now:      time.Now,
	}
}

type ReportInput struct {
	FinderPhone string
	FinderName  string
	Description string
	Location    string
	PhotoURL    string
	AlertID     string // opcional
}

// Finder es quien reportó el avistamiento.
type Finder struct {
	Name        string
	Phone       string
	Location    string
	Description string
	PhotoURL    string
}

// Match junta lo que el dueño necesita para contactar al finder.
type Match struct {
	AlertID string
	Pet     pets.Pet
	Owner   profiles.Profile
	Finder  Finder
}

// Result: con SightingID presente el avistamiento ya es durable, aunque la
// notificación haya fallado.
type Result struct {
	SightingID        string
	IsMatch           bool
	Match             *Match
	NotificationSent  bool
	MessageID         string
	NotificationError string
}

// Report guarda el avistamiento. La foto es obligatoria en ambos caminos y se
// valida antes de cualquier escritura.
func (s *Service) Report(ctx context.Context, in ReportInput) (Result, error) {
	if strings.TrimSpace(in.PhotoURL) == "" {
		return Result{}, apperrors.New(apperrors.KindValidation, apperrors.CodePhotoRequired, "a photo is required to report a sighting")
	}
	finderPhone := textnorm.NormalizePhone(in.FinderPhone)
	if finderPhone == "" {
		return Result{}, apperrors.Validation("finder phone is required", "finder_phone")
	}

	alertID := strings.TrimSpace(in.AlertID)
	var alert alerts.Alert
	if alertID != "" {
		if _, err := uuid.Parse(alertID); err != nil {
			return Result{}, invalidID("alert_id")
		}
		a, err := s.alerts.Get(ctx, alertID)
		if err != nil {
			return Result{}, err
		}
		alert = a
	}

	now := s.now()
	sg := Sighting{
		ID:          uuid.NewString(),
		FinderPhone: finderPhone,
		FinderName:  strings.TrimSpace(in.FinderName),
		Description: strings.TrimSpace(in.Description),
		Location:    strings.TrimSpace(in.Location),
		PhotoURL:    strings.TrimSpace(in.PhotoURL),
		AlertID:     alertID,
		CreatedAt:   now,
	}
	if alertID != "" {
		sg.MatchedAt = &now
	}

	// una sola escritura, ya vinculada si corresponde
	if err := s.repo.Create(ctx, sg); err != nil {
		return Result{}, apperrors.Storage("create sighting", err)
	}

	if alertID == "" {
		return Result{SightingID: sg.ID, IsMatch: false}, nil
	}
	return s.afterMatch(ctx, sg, alert), nil
}

// Confirm vincula un avistamiento huérfano con una alerta (otro turno de la conversación).
func (s *Service) Confirm(ctx context.Context, sightingID, alertID string) (Result, error) {
	sightingID, alertID = strings.TrimSpace(sightingID), strings.TrimSpace(alertID)
	if _, err := uuid.Parse(sightingID); err != nil {
		return Result{}, invalidID("sighting_id")
	}
	if _, err := uuid.Parse(alertID); err != nil {
		return Result{}, invalidID("alert_id")
	}

	sg, err := s.Get(ctx, sightingID)
	if err != nil {
		return Result{}, err
	}
	if sg.Matched() {
		return Result{}, alreadyMatched()
	}
	alert, err := s.alerts.Get(ctx, alertID)
	if err != nil {
		return Result{}, err
	}

	now := s.now()
	if err := s.repo.LinkAlert(ctx, sg.ID, alert.ID, now); err != nil {
		switch {
		case errors.Is(err, ErrAlreadyMatched):
			return Result{}, alreadyMatched()
		case errors.Is(err, ErrNotFound):
			return Result{}, apperrors.NotFound(apperrors.CodeSightingNotFound, "sighting not found")
		default:
			return Result{}, apperrors.Storage("link sighting", err)
		}
	}
	sg.AlertID = alert.ID
	sg.MatchedAt = &now

	return s.afterMatch(ctx, sg, alert), nil
}

// afterMatch corre después de la escritura durable: resuelve dueño, notifica
// una vez y cierra la alerta. Nada de esto puede fallar el resultado.
func (s *Service) afterMatch(ctx context.Context, sg Sighting, alert alerts.Alert) Result {
	res := Result{SightingID: sg.ID, IsMatch: true}

	m, err := s.buildMatch(ctx, sg, alert)
	if err != nil {
		res.NotificationError = err.Error()
		s.log.Warn("match owner lookup failed", map[string]any{"sighting_id": sg.ID, "alert_id": alert.ID, "error": err})
		return res
	}
	res.Match = &m

	id, err := s.notifyOwner(ctx, m)
	if err != nil {
		res.NotificationError = err.Error()
		s.log.Warn("match notification failed", map[string]any{
			"sighting_id": sg.ID,
			"alert_id":    alert.ID,
			"owner_phone": m.Owner.Phone,
			"error":       err,
		})
	} else {
		res.NotificationSent = true
		res.MessageID = id
	}

	if _, err := s.alerts.ResolveByMatch(ctx, alert.ID); err != nil {
		s.log.Warn("resolve alert after match failed", map[string]any{"alert_id": alert.ID, "error": err})
	}
	return res
}

func (s *Service) buildMatch(ctx context.Context, sg Sighting, alert alerts.Alert) (Match, error) {
	pet, err := s.pets.GetByID(ctx, alert.PetID)
	if err != nil {
		return Match{}, fmt.Errorf("pet lookup: %w", err)
	}
	owner, err := s.profiles.GetByID(ctx, pet.OwnerID)
	if err != nil {
		return Match{}, fmt.Errorf("owner lookup: %w", err)
	}
	return Match{
		AlertID: alert.ID,
		Pet:     pet,
		Owner:   owner,
		Finder: Finder{
			Name:        sg.FinderName,
			Phone:       sg.FinderPhone,
			Location:    sg.Location,
			Description: sg.Description,
			PhotoURL:    sg.PhotoURL,
		},
	}, nil
}

// notifyOwner hace exactamente un intento de envío.
func (s *Service) notifyOwner(ctx context.Context, m Match) (string, error) {
	if s.gw == nil {
		return "", errors.New("messaging gateway not configured")
	}
	photo, err := photoref.GatewayPath(m.Finder.PhotoURL, s.opts.PhotoMarker)
	if err != nil {
		return "", fmt.Errorf("photo reference: %w", err)
	}

	finderName := m.Finder.Name
	if finderName == "" {
		finderName = "Alguien"
	}
	return s.gw.SendTemplate(ctx, messaging.TemplateMessage{
		To:         m.Owner.Phone,
		From:       s.opts.From,
		TemplateID: s.opts.TemplateID,
		Variables: map[string]string{
			"1": orDash(m.Owner.Name),
			"2": orDash(m.Pet.Name),
			"3": finderName,
			"4": m.Finder.Phone,
			"5": orDash(m.Finder.Location),
			"6": orDash(m.Finder.Description),
			"7": photo,
		},
	})
}

func (s *Service) Get(ctx context.Context, id string) (Sighting, error) {
	id = strings.TrimSpace(id)
	if _, err := uuid.Parse(id); err != nil {
		return Sighting{}, apperrors.NotFound(apperrors.CodeSightingNotFound, "sighting not found")
	}
	sg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Sighting{}, apperrors.NotFound(apperrors.CodeSightingNotFound, "sighting not found")
		}
		return Sighting{}, apperrors.Storage("get sighting", err)
	}
	return sg, nil
}

// ListByAlert: solo el dueño de la alerta ve sus avistamientos.
func (s *Service) ListByAlert(ctx context.Context, ownerPhone, alertID string) ([]Sighting, error) {
	owner, err := s.profiles.Get(ctx, ownerPhone)
	if err != nil {
		return nil, err
	}
	alert, err := s.alerts.Get(ctx, alertID)
	if err != nil {
		return nil, err
	}
	if alert.OwnerID != owner.ID {
		return nil, apperrors.NotFound(apperrors.CodeAlertNotFound, "alert not found")
	}
	items, err := s.repo.ListByAlert(ctx, alert.ID)
	if err != nil {
		return nil, apperrors.Storage("list sightings", err)
	}
	return items, nil
}

func (s *Service) ListUnmatched(ctx context.Context, limit int) ([]Sighting, error) {
	if limit <= 0 || limit > defaultUnmatchedLimit {
		limit = defaultUnmatchedLimit
	}
	items, err := s.repo.ListUnmatched(ctx, limit)
	if err != nil {
		return nil, apperrors.Storage("list unmatched sightings", err)
	}
	return items, nil
}

func invalidID(field string) error {
	return &apperrors.Error{
		Kind:    apperrors.KindValidation,
		Code:    apperrors.CodeInvalidID,
		Message: field + " is not a valid id",
		Fields:  []string{field},
	}
}

func alreadyMatched() error {
	return apperrors.Conflict(apperrors.CodeSightingAlreadyMatched, "sighting is already linked to an alert")
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
