package ports

import (
	"context"

	"github.com/polygonid/wallet-mediator/internal/core/domain"
)

// NotificationService keeps the user facing notifications of a wallet and announces their changes
type NotificationService interface {
	Create(ctx context.Context, walletID string, notification *domain.Notification) error
	Remove(ctx context.Context, walletID string, id string, reason string) (bool, error)
	List(ctx context.Context, walletID string) []domain.Notification
}

// Subscription is the event queue of one connected client
type Subscription interface {
	ID() string
	Events() <-chan domain.Event
}

// Broadcaster pushes events to the clients connected for a wallet. Delivery is best effort.
type Broadcaster interface {
	Subscribe(walletID string) Subscription
	Unsubscribe(walletID string, sub Subscription)
	Broadcast(ctx context.Context, walletID string, typ domain.EventType, data any)
}
