package ports

import (
	"context"

	"github.com/polygonid/wallet-mediator/internal/core/domain"
)

// WalletService provisions agent sub wallets and signs in to them
type WalletService interface {
	Provision(ctx context.Context, clientID string, username string) (*domain.Profile, error)
	Profile(ctx context.Context, clientID string) (*domain.Profile, bool)
	Wallet(ctx context.Context, walletID string) (*domain.Wallet, bool)
	SignIn(ctx context.Context, walletID string) (TenantAgent, bool)
	Remove(ctx context.Context, clientID string) error
}
