package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/polygonid/wallet-mediator/internal/core/domain"
	"github.com/polygonid/wallet-mediator/internal/core/ports"
	"github.com/polygonid/wallet-mediator/pkg/cache"
)

const (
	defaultTTL        = 24 * time.Hour
	sessionKeyPrefix  = "wallet-session:"
	agentTokenKeyPrfx = "agent-token:"
)

// ErrSessionNotFound is returned when the session does not exist or has expired
var ErrSessionNotFound = errors.New("session not found")

type cached struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewSessionCached returns a new cached session manager. A zero ttl falls back to one day.
func NewSessionCached(c cache.Cache, ttl time.Duration) ports.SessionRepository {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &cached{cache: c, ttl: ttl}
}

// Get returns the cached session
func (c *cached) Get(ctx context.Context, id string) (*domain.Session, error) {
	var session domain.Session
	if id == "" || !c.cache.Get(ctx, sessionKeyPrefix+id, &session) {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

// Set stores the given session information
func (c *cached) Set(ctx context.Context, session domain.Session) error {
	return c.cache.Set(ctx, sessionKeyPrefix+session.ID, session, c.ttl)
}

// Delete ends the session
func (c *cached) Delete(ctx context.Context, id string) error {
	return c.cache.Delete(ctx, sessionKeyPrefix+id)
}

type agentTokens struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewAgentTokenCached returns a token cache whose entries expire after ttl.
// ttl must be shorter than the lifetime of the agent tokens.
func NewAgentTokenCached(c cache.Cache, ttl time.Duration) ports.AgentTokenRepository {
	return &agentTokens{cache: c, ttl: ttl}
}

func (a *agentTokens) Get(ctx context.Context, walletID string) (string, bool) {
	var token string
	if !a.cache.Get(ctx, agentTokenKeyPrfx+walletID, &token) || token == "" {
		return "", false
	}
	return token, true
}

func (a *agentTokens) Set(ctx context.Context, walletID string, token string) error {
	return a.cache.Set(ctx, agentTokenKeyPrfx+walletID, token, a.ttl)
}

func (a *agentTokens) Delete(ctx context.Context, walletID string) error {
	return a.cache.Delete(ctx, agentTokenKeyPrfx+walletID)
}
