// Package logsink es el gateway de desarrollo: registra el mensaje en el log
// en vez de enviarlo.
package logsink

import (
	"context"
	"errors"
	"strings"

	"pet-lost-found/internal/platform/logger"
	"pet-lost-found/internal/ports/messaging"

	"github.com/google/uuid"
)

type Gateway struct {
	log logger.Logger
}

var _ messaging.Gateway = (*Gateway)(nil)

func New(log logger.Logger) *Gateway {
	if log == nil {
		log = logger.Nop()
	}
	return &Gateway{log: log.With(map[string]any{"component": "logsink"})}
}

func (g *Gateway) SendTemplate(ctx context.Context, msg messaging.TemplateMessage) (string, error) {
	if strings.TrimSpace(msg.To) == "" {
		return "", errors.New("logsink: To required")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id := "dev-" + uuid.NewString()
	g.log.Info("template message (not sent)", map[string]any{
		"message_id": id,
		"to":         msg.To,
		"template":   msg.TemplateID,
		"variables":  msg.Variables,
	})
	return id, nil
}
