package ports

import (
	"context"

	"github.com/polygonid/wallet-mediator/internal/core/domain"
)

// AgentGateway is the admin side of the remote credential agent.
// Every call reports a failed or undecodable answer as absent, the reason is logged.
type AgentGateway interface {
	CreateSubWallet(ctx context.Context, label string, walletName string, walletKey string) (*domain.SubWallet, bool)
	RequestToken(ctx context.Context, walletID string, walletKey string) (string, bool)
	ForTenant(token string) TenantAgent
}

// TenantAgent is a handle on the agent bound to the bearer token of one tenant
type TenantAgent interface {
	CreateKey(ctx context.Context) (*domain.WalletKey, bool)
	GetConnection(ctx context.Context, connectionID string) (*domain.ConnectionRecord, bool)
	GetSchema(ctx context.Context, schemaID string) (*domain.SchemaResult, bool)
	GetCredentialDefinition(ctx context.Context, credDefID string) (*domain.CredDefResult, bool)
	GetCredentialExchange(ctx context.Context, credExID string) (*domain.CredExRecord, bool)
	SendCredentialRequest(ctx context.Context, credExID string) bool
	DeclineCredentialOffer(ctx context.Context, credExID string, reason string) bool
	GetPresentationExchange(ctx context.Context, presExID string) (*domain.PresExRecord, bool)
	GetMatchingCredentials(ctx context.Context, presExID string) ([]domain.MatchingCredential, bool)
	SendPresentation(ctx context.Context, presExID string, spec domain.PresentationSpec) bool
	DeletePresentationExchange(ctx context.Context, presExID string) bool
	SignPresentation(ctx context.Context, presentation domain.Presentation, options domain.ProofOptions) (*domain.VerifiablePresentation, bool)
	ReceiveInvitation(ctx context.Context, invitation map[string]any) (*domain.OobRecord, bool)
	ListCredentials(ctx context.Context) ([]domain.CredInfo, bool)
	GetCredential(ctx context.Context, credentialID string) (*domain.CredInfo, bool)
}
