// Package twilio envía plantillas de WhatsApp por la API REST de Twilio.
package twilio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"pet-lost-found/internal/platform/httpclient"
	"pet-lost-found/internal/platform/logger"
	"pet-lost-found/internal/ports/messaging"
)

const (
	DefaultBaseURL = "https://api.twilio.com/2010-04-01"
	whatsappPrefix = "whatsapp:"
	maxBackoff     = 10 * time.Second
)

type Config struct {
	AccountSID string
	AuthToken  string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	// Backoff inicial entre reintentos; se duplica en cada intento.
	Backoff time.Duration
}

type Gateway struct {
	http       *httpclient.Client
	auth       httpclient.BasicAuth
	accountSID string
	maxRetries int
	backoff    time.Duration
	log        logger.Logger
}

var _ messaging.Gateway = (*Gateway)(nil)

func New(cfg Config, log logger.Logger) (*Gateway, error) {
	cfg.AccountSID = strings.TrimSpace(cfg.AccountSID)
	cfg.AuthToken = strings.TrimSpace(cfg.AuthToken)
	if cfg.AccountSID == "" {
		return nil, errors.New("missing TWILIO_ACCOUNT_SID")
	}
	if cfg.AuthToken == "" {
		return nil, errors.New("missing TWILIO_AUTH_TOKEN")
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = time.Second
	}
	if log == nil {
		log = logger.Nop()
	}

	hc, err := httpclient.NewWithBaseURL(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, err
	}

	return &Gateway{
		http:       hc,
		auth:       httpclient.BasicAuth{User: cfg.AccountSID, Pass: cfg.AuthToken},
		accountSID: cfg.AccountSID,
		maxRetries: cfg.MaxRetries,
		backoff:    cfg.Backoff,
		log:        log.With(map[string]any{"component": "twilio"}),
	}, nil
}

type message struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

// SendTemplate manda una plantilla aprobada (ContentSid) y devuelve el SID.
// Solo reintenta 429: con rate limit el mensaje no se creó. Un 5xx se
// devuelve al caller, el mensaje pudo haber quedado encolado.
func (g *Gateway) SendTemplate(ctx context.Context, msg messaging.TemplateMessage) (string, error) {
	to := strings.TrimSpace(msg.To)
	if to == "" {
		return "", errors.New("twilio: To required")
	}
	if strings.TrimSpace(msg.From) == "" {
		return "", errors.New("twilio: From required")
	}
	if strings.TrimSpace(msg.TemplateID) == "" {
		return "", errors.New("twilio: template id required")
	}

	vars, err := json.Marshal(msg.Variables)
	if err != nil {
		return "", fmt.Errorf("twilio: encode variables: %w", err)
	}

	form := url.Values{}
	form.Set("To", whatsapp(to))
	form.Set("From", whatsapp(msg.From))
	form.Set("ContentSid", msg.TemplateID)
	form.Set("ContentVariables", string(vars))

	path := fmt.Sprintf("/Accounts/%s/Messages.json", g.accountSID)
	backoff := g.backoff

	for attempt := 0; ; attempt++ {
		var out message
		err := g.http.DoForm(ctx, path, &g.auth, form, &out)
		if err == nil {
			return out.SID, nil
		}

		var he *httpclient.HTTPError
		if !errors.As(err, &he) || !he.Retryable() || attempt >= g.maxRetries {
			return "", err
		}

		wait := backoff
		if he.RetryAfter > 0 {
			wait = he.RetryAfter
		}
		if wait > maxBackoff {
			wait = maxBackoff
		}
		g.log.Warn("twilio request retrying", map[string]any{
			"to":          to,
			"attempt":     attempt + 1,
			"max_retries": g.maxRetries,
			"sleep":       wait.String(),
			"error":       err.Error(),
		})

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(wait):
		}
		backoff *= 2
	}
}

func whatsapp(phone string) string {
	phone = strings.TrimSpace(phone)
	if strings.HasPrefix(phone, whatsappPrefix) {
		return phone
	}
	return whatsappPrefix + phone
}
