package broadcast

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pet-lost-found/internal/apperrors"
	"pet-lost-found/internal/domain/profiles"
	"pet-lost-found/internal/platform/logger"
	"pet-lost-found/internal/platform/textnorm"
	"pet-lost-found/internal/ports/messaging"

	"golang.org/x/time/rate"
)

// Directory lista perfiles con ciudad y teléfono cargados.
type Directory interface {
	ListReachable(ctx context.Context) ([]profiles.Profile, error)
}

type Options struct {
	// Interval entre envíos; 0 = sin throttle.
	Interval    time.Duration
	SendTimeout time.Duration
	TemplateID  string
	From        string

	Guard     Guard // opcional
	DedupeTTL time.Duration
}

// Dispatcher difunde una alerta a todos los perfiles de la ciudad del dueño.
// Los envíos son secuenciales; el limiter espacia cada envío.
type Dispatcher struct {
	dir     Directory
	gw      messaging.Gateway
	limiter *rate.Limiter
	opts    Options
	log     logger.Logger
}

func NewDispatcher(dir Directory, gw messaging.Gateway, log logger.Logger, opts Options) *Dispatcher {
	if log == nil {
		log = logger.Nop()
	}
	if opts.SendTimeout <= 0 {
		opts.SendTimeout = 10 * time.Second
	}
	if opts.DedupeTTL <= 0 {
		opts.DedupeTTL = 24 * time.Hour
	}

	limit := rate.Inf
	if opts.Interval > 0 {
		limit = rate.Every(opts.Interval)
	}

	return &Dispatcher{
		dir:     dir,
		gw:      gw,
		limiter: rate.NewLimiter(limit, 1),
		opts:    opts,
		log:     log.With(map[string]any{"component": "broadcast"}),
	}
}

// Dispatch nunca aborta por un destinatario: cada falla queda en el ledger
// y el loop sigue. Success es true si al menos un envío salió.
// Cero destinatarios no es error (NothingToDo).
// El guard se toma recién con los destinatarios resueltos y se libera si
// ningún envío salió, así un reintento del caller puede volver a difundir.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (Result, error) {
	recipients, err := d.recipients(ctx, req)
	if err != nil {
		return Result{}, err
	}
	if len(recipients) == 0 {
		d.log.Info("broadcast: no recipients", map[string]any{"alert_id": req.AlertID, "city": req.City})
		return Result{NothingToDo: true, Recipients: []RecipientResult{}}, nil
	}

	key, acquired := d.acquire(ctx, req.AlertID)
	if key != "" && !acquired {
		d.log.Info("broadcast already sent", map[string]any{"alert_id": req.AlertID})
		return Result{NothingToDo: true, Duplicate: true}, nil
	}

	from := d.opts.From
	if s := strings.TrimSpace(req.Sender); s != "" {
		from = s
	}
	vars := templateVariables(req)

	res := Result{
		TotalRecipients: len(recipients),
		Recipients:      make([]RecipientResult, 0, len(recipients)),
	}
	for _, p := range recipients {
		entry := RecipientResult{Phone: p.Phone, Name: p.Name}

		id, err := d.send(ctx, messaging.TemplateMessage{
			To:         p.Phone,
			From:       from,
			TemplateID: d.opts.TemplateID,
			Variables:  vars,
		})
		if err != nil {
			entry.Error = err.Error()
			res.FailedSends++
			d.log.Warn("broadcast send failed", map[string]any{
				"alert_id": req.AlertID,
				"phone":    p.Phone,
				"error":    err,
			})
		} else {
			entry.Success = true
			entry.MessageID = id
			res.SuccessfulSends++
		}
		res.Recipients = append(res.Recipients, entry)
	}
	res.Success = res.SuccessfulSends > 0
	if !res.Success && acquired {
		d.release(ctx, key, req.AlertID)
	}

	d.log.Info("broadcast finished", map[string]any{
		"alert_id": req.AlertID,
		"city":     req.City,
		"total":    res.TotalRecipients,
		"ok":       res.SuccessfulSends,
		"failed":   res.FailedSends,
	})
	return res, nil
}

// acquire devuelve la clave usada y si quedó tomada. Sin guard o sin
// AlertID la clave es "". Si el guard falla seguimos; peor caso, un duplicado.
func (d *Dispatcher) acquire(ctx context.Context, alertID string) (string, bool) {
	alertID = strings.TrimSpace(alertID)
	if d.opts.Guard == nil || alertID == "" {
		return "", false
	}
	key := "broadcast:" + alertID
	ok, err := d.opts.Guard.Acquire(ctx, key, d.opts.DedupeTTL)
	if err != nil {
		d.log.Warn("broadcast guard unavailable", map[string]any{"alert_id": alertID, "error": err})
		return "", false
	}
	return key, ok
}

func (d *Dispatcher) release(ctx context.Context, key, alertID string) {
	if err := d.opts.Guard.Release(ctx, key); err != nil {
		d.log.Warn("broadcast guard release failed", map[string]any{"alert_id": alertID, "error": err})
	}
}

func (d *Dispatcher) send(ctx context.Context, msg messaging.TemplateMessage) (string, error) {
	if err := d.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}
	sctx, cancel := context.WithTimeout(ctx, d.opts.SendTimeout)
	defer cancel()
	return d.gw.SendTemplate(sctx, msg)
}

func (d *Dispatcher) recipients(ctx context.Context, req Request) ([]profiles.Profile, error) {
	city := textnorm.NormalizeCity(req.City)
	if city == "" {
		return nil, nil
	}

	all, err := d.dir.ListReachable(ctx)
	if err != nil {
		return nil, apperrors.Storage("list broadcast recipients", err)
	}

	owner := textnorm.NormalizePhone(req.OwnerPhone)
	seen := map[string]struct{}{}
	out := make([]profiles.Profile, 0)
	for _, p := range all {
		phone := textnorm.NormalizePhone(p.Phone)
		if phone == "" || phone == owner {
			continue
		}
		if textnorm.NormalizeCity(p.City) != city {
			continue
		}
		if _, dup := seen[phone]; dup {
			continue
		}
		seen[phone] = struct{}{}
		out = append(out, p)
	}
	return out, nil
}

func templateVariables(req Request) map[string]string {
	s := req.Summary
	return map[string]string{
		"1": orDash(s.PetName),
		"2": orDash(s.Species),
		"3": orDash(s.Breed),
		"4": orDash(s.Gender),
		"5": orDash(s.AgeBucket),
		"6": orDash(s.Marks),
		"7": orDash(s.LastSeen),
		"8": orDash(req.City),
	}
}

// las plantillas rechazan variables vacías
func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return strings.TrimSpace(s)
}
