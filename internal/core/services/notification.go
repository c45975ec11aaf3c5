package services

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/polygonid/wallet-mediator/internal/core/domain"
	"github.com/polygonid/wallet-mediator/internal/core/ports"
	"github.com/polygonid/wallet-mediator/internal/log"
	"github.com/polygonid/wallet-mediator/internal/repositories"
)

const tagNotificationType = "type"

type notification struct {
	stores      ports.TenantStoreProvider
	broadcaster ports.Broadcaster
}

// NewNotification returns a Notification Service.
// Every notification is one entry keyed by its id, so creating overwrites and removing is idempotent.
func NewNotification(stores ports.TenantStoreProvider, broadcaster ports.Broadcaster) ports.NotificationService {
	return &notification{
		stores:      stores,
		broadcaster: broadcaster,
	}
}

func (n *notification) Create(ctx context.Context, walletID string, notif *domain.Notification) error {
	store := n.stores.Open(walletID)
	err := store.Modify(ctx, domain.CategoryNotifications, notif.ID, func(json.RawMessage, domain.Tags) (any, domain.Tags, error) {
		return notif, domain.Tags{tagNotificationType: string(notif.Type)}, nil
	})
	if err != nil {
		log.Error(ctx, "storing notification", "err", err, "id", notif.ID)
		return err
	}
	n.broadcaster.Broadcast(ctx, walletID, domain.EventNotificationCreated, notif)
	return nil
}

func (n *notification) Remove(ctx context.Context, walletID string, id string, reason string) (bool, error) {
	removed := false
	store := n.stores.Open(walletID)
	err := store.Modify(ctx, domain.CategoryNotifications, id, func(current json.RawMessage, _ domain.Tags) (any, domain.Tags, error) {
		if current == nil {
			return nil, nil, repositories.ErrUnchanged
		}
		removed = true
		return nil, nil, nil
	})
	if err != nil {
		log.Error(ctx, "removing notification", "err", err, "id", id)
		return false, err
	}
	if removed {
		n.broadcaster.Broadcast(ctx, walletID, domain.EventNotificationRemoved, domain.NotificationRemoved{ExchangeID: id, Reason: reason})
	}
	return removed, nil
}

// List returns the notifications of the wallet, newest first
func (n *notification) List(ctx context.Context, walletID string) []domain.Notification {
	raws := n.stores.Open(walletID).FetchAllByTag(ctx, domain.CategoryNotifications, nil)
	notifications := make([]domain.Notification, 0, len(raws))
	for _, raw := range raws {
		var notif domain.Notification
		if err := json.Unmarshal(raw, &notif); err != nil {
			log.Warn(ctx, "undecodable notification", "err", err)
			continue
		}
		notifications = append(notifications, notif)
	}
	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	return notifications
}
