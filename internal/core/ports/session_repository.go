package ports

import (
	"context"

	"github.com/polygonid/wallet-mediator/internal/core/domain"
)

// SessionRepository defines the interface for managing sessions
type SessionRepository interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Set(ctx context.Context, session domain.Session) error
	Delete(ctx context.Context, id string) error
}

// AgentTokenRepository caches the bearer tokens issued by the agent for each sub wallet
type AgentTokenRepository interface {
	Get(ctx context.Context, walletID string) (string, bool)
	Set(ctx context.Context, walletID string, token string) error
	Delete(ctx context.Context, walletID string) error
}
