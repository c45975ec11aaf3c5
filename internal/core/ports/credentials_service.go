package ports

import (
	"context"

	"github.com/polygonid/wallet-mediator/internal/core/domain"
)

// CredentialsService implements the user decisions on offers and requests, and the wallet content views
type CredentialsService interface {
	List(ctx context.Context, walletID string, filter domain.Tags) []domain.Document
	Delete(ctx context.Context, walletID string, credentialID string) error
	Connections(ctx context.Context, walletID string) []domain.Connection
	Offers(ctx context.Context, walletID string) []domain.CredentialOffer
	ViewOffer(ctx context.Context, walletID string, exchangeID string) (*domain.OfferView, error)
	AcceptOffer(ctx context.Context, walletID string, exchangeID string) error
	DeclineOffer(ctx context.Context, walletID string, exchangeID string) error
	ViewPresentationRequest(ctx context.Context, walletID string, exchangeID string) (*domain.PresentationView, error)
	RespondPresentationRequest(ctx context.Context, walletID string, exchangeID string) error
	DeclinePresentationRequest(ctx context.Context, walletID string, exchangeID string) error
}

// ScannerService acts on a scanned payload
type ScannerService interface {
	Scan(ctx context.Context, walletID string, payload string) (*domain.ScanResult, error)
}
