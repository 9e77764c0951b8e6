package memory

import (
	"context"
	"sync"
	"time"
)

// BroadcastGuard es la versión de un solo proceso del SET NX de redis.
type BroadcastGuard struct {
	mu   sync.Mutex
	keys map[string]time.Time
	now  func() time.Time
}

func NewBroadcastGuard() *BroadcastGuard {
	return &BroadcastGuard{
		keys: make(map[string]time.Time),
		now:  time.Now,
	}
}

// Acquire devuelve true solo para el primero que toma la clave dentro del ttl.
// ttl <= 0 no expira.
func (g *BroadcastGuard) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if exp, ok := g.keys[key]; ok && (exp.IsZero() || now.Before(exp)) {
		return false, nil
	}

	var exp time.Time
	if ttl > 0 {
		exp = now.Add(ttl)
	}
	g.keys[key] = exp
	return true, nil
}

func (g *BroadcastGuard) Release(ctx context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.keys, key)
	return nil
}
