package ports

import "context"

// WebhookService handles the events the agent reports for a wallet
type WebhookService interface {
	Handle(ctx context.Context, walletID string, topic string, payload map[string]any) error
}
