package broadcast

import (
	"context"
	"sync"

	"pet-lost-found/internal/platform/logger"
)

// Async corre la difusión en background, desligada del request.
// El resultado solo queda en logs.
type Async struct {
	d   *Dispatcher
	log logger.Logger
	wg  sync.WaitGroup
}

func NewAsync(d *Dispatcher, log logger.Logger) *Async {
	if log == nil {
		log = logger.Nop()
	}
	return &Async{d: d, log: log.With(map[string]any{"component": "broadcast-async"})}
}

func (a *Async) Dispatch(ctx context.Context, req Request) (Result, error) {
	ctx = context.WithoutCancel(ctx)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				a.log.Error("broadcast panic", map[string]any{"alert_id": req.AlertID, "panic": r})
			}
		}()

		if _, err := a.d.Dispatch(ctx, req); err != nil {
			a.log.Error("broadcast failed", map[string]any{"alert_id": req.AlertID, "error": err})
		}
	}()

	return Result{Queued: true}, nil
}

// Wait bloquea hasta que terminen las difusiones en curso (shutdown y tests).
func (a *Async) Wait() {
	a.wg.Wait()
}
