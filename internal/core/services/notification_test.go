package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polygonid/wallet-mediator/internal/core/domain"
)

func TestNotification_CreateAndList(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	older := domain.NewNotification("ex1", domain.NotificationCredentialOffer, "first", nil)
	older.CreatedAt = time.Now().Add(-time.Minute).UTC()
	newer := domain.NewNotification("p1", domain.NotificationPresentationRequest, "second", nil)
	require.NoError(t, env.notifications.Create(ctx, testWalletID, older))
	require.NoError(t, env.notifications.Create(ctx, testWalletID, newer))

	list := env.notifications.List(ctx, testWalletID)
	require.Len(t, list, 2)
	assert.Equal(t, "p1", list[0].ID)
	assert.Equal(t, "ex1", list[1].ID)

	events := env.drain()
	require.Equal(t, []domain.EventType{domain.EventNotificationCreated, domain.EventNotificationCreated}, eventTypes(events))
	assert.Same(t, older, events[0].Data)

	// creating under an existing id replaces the notification
	replacement := domain.NewNotification("ex1", domain.NotificationCredentialOffer, "replaced", nil)
	require.NoError(t, env.notifications.Create(ctx, testWalletID, replacement))
	list = env.notifications.List(ctx, testWalletID)
	require.Len(t, list, 2)
	assert.Equal(t, "replaced", list[0].Title)

	tagged := env.store().FetchAllByTag(ctx, domain.CategoryNotifications, domain.Tags{tagNotificationType: string(domain.NotificationPresentationRequest)})
	assert.Len(t, tagged, 1)
}

func TestNotification_Remove(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	require.NoError(t, env.notifications.Create(ctx, testWalletID, domain.NewNotification("ex1", domain.NotificationCredentialOffer, "offer", nil)))
	env.drain()

	removed, err := env.notifications.Remove(ctx, testWalletID, "ex1", "declined")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Empty(t, env.notifications.List(ctx, testWalletID))

	events := env.drain()
	require.Len(t, events, 1)
	assert.Equal(t, domain.NotificationRemoved{ExchangeID: "ex1", Reason: "declined"}, events[0].Data)

	removed, err = env.notifications.Remove(ctx, testWalletID, "ex1", "declined")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Empty(t, env.drain())
}

func TestNotification_IsolatedPerWallet(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	require.NoError(t, env.stores.Provision(ctx, "w2"))
	other := env.broadcaster.Subscribe("w2")

	require.NoError(t, env.notifications.Create(ctx, "w2", domain.NewNotification("ex9", domain.NotificationMessage, "hi", nil)))

	assert.Empty(t, env.notifications.List(ctx, testWalletID))
	assert.Len(t, env.notifications.List(ctx, "w2"), 1)
	assert.Empty(t, env.drain())
	assert.Len(t, other.Events(), 1)
}
