package health

import (
	"context"
	"sync"
	"time"

	"github.com/polygonid/wallet-mediator/internal/log"
)

// DefaultPingPeriod is the interval between two rounds of pings
const DefaultPingPeriod = 10 * time.Second

// Ping interface
type Ping interface {
	Ping(ctx context.Context) error
}

// Monitors maps a component name to the dependency checked for it
type Monitors map[string]Ping

// Status struct
type Status struct {
	pingers Monitors
	mu      sync.RWMutex
	last    map[string]bool
}

// New returns a Health instance
func New(monitors Monitors) *Status {
	m := make(Monitors, len(monitors))
	for name, p := range monitors {
		if p != nil {
			m[name] = p
		}
	}
	return &Status{pingers: m}
}

// Run pings every monitor each period until ctx is done, so Status can answer from the last round
func (h *Status) Run(ctx context.Context, period time.Duration) {
	h.refresh(ctx)
	go func() {
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				h.refresh(ctx)
			}
		}
	}()
}

// Status returns whether each monitored dependency is up.
// When Run has not been started the dependencies are pinged now.
func (h *Status) Status(ctx context.Context) map[string]bool {
	h.mu.RLock()
	last := h.last
	h.mu.RUnlock()
	if last == nil {
		return h.ping(ctx)
	}
	m := make(map[string]bool, len(last))
	for k, v := range last {
		m[k] = v
	}
	return m
}

// Healthy reports whether every monitored dependency is up
func (h *Status) Healthy(ctx context.Context) bool {
	for _, up := range h.Status(ctx) {
		if !up {
			return false
		}
	}
	return true
}

func (h *Status) refresh(ctx context.Context) {
	m := h.ping(ctx)
	h.mu.Lock()
	h.last = m
	h.mu.Unlock()
}

func (h *Status) ping(ctx context.Context) map[string]bool {
	m := make(map[string]bool, len(h.pingers))
	for key, val := range h.pingers {
		m[key] = true
		if err := val.Ping(ctx); err != nil {
			log.Warn(ctx, "health check failed", "component", key, "err", err)
			m[key] = false
		}
	}
	return m
}
