package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/polygonid/wallet-mediator/internal/core/domain"
	"github.com/polygonid/wallet-mediator/internal/core/ports"
	"github.com/polygonid/wallet-mediator/internal/log"
	"github.com/polygonid/wallet-mediator/internal/repositories"
)

const (
	walletKeySize = 16
	tagDID        = "did"
	tagWalletID   = "wallet_id"
)

type wallet struct {
	stores  ports.TenantStoreProvider
	agent   ports.AgentGateway
	tokens  ports.AgentTokenRepository
	appName string
}

// NewWallet returns the wallet service
func NewWallet(stores ports.TenantStoreProvider, agent ports.AgentGateway, tokens ports.AgentTokenRepository, appName string) ports.WalletService {
	return &wallet{
		stores:  stores,
		agent:   agent,
		tokens:  tokens,
		appName: appName,
	}
}

// Provision creates the agent sub wallet of clientID with its signing key and the tenant holding its data.
// A client that already has a wallet gets its existing profile back.
func (w *wallet) Provision(ctx context.Context, clientID string, username string) (*domain.Profile, error) {
	if profile, ok := w.Profile(ctx, clientID); ok {
		return profile, nil
	}

	walletKey, err := newWalletKey()
	if err != nil {
		return nil, err
	}
	label := fmt.Sprintf("%s - %s", w.appName, clientID)
	sub, ok := w.agent.CreateSubWallet(ctx, label, clientID, walletKey)
	if !ok {
		return nil, fmt.Errorf("%w: creating sub wallet", ErrAgentUnavailable)
	}
	key, ok := w.agent.ForTenant(sub.Token).CreateKey(ctx)
	if !ok {
		return nil, fmt.Errorf("%w: creating wallet key", ErrAgentUnavailable)
	}

	if err := w.stores.Provision(ctx, sub.WalletID); err != nil {
		log.Error(ctx, "provisioning tenant", "err", err, "wallet_id", sub.WalletID)
		return nil, err
	}
	record := domain.Wallet{
		WalletID:  sub.WalletID,
		WalletKey: walletKey,
		Token:     sub.Token,
		Label:     label,
		Multikey:  key.Multikey,
		CreatedAt: time.Now().UTC(),
	}
	profile := domain.Profile{
		ClientID: clientID,
		WalletID: sub.WalletID,
		Multikey: key.Multikey,
		Username: username,
	}
	tags := domain.Tags{tagDID: profile.DIDKey()}
	if err := w.stores.Open(sub.WalletID).Store(ctx, domain.CategoryWallets, sub.WalletID, record, tags); err != nil {
		log.Error(ctx, "storing wallet", "err", err, "wallet_id", sub.WalletID)
		return nil, err
	}
	global := w.stores.Open(domain.GlobalTenant)
	if err := global.Store(ctx, domain.CategoryProfiles, clientID, profile, domain.Tags{tagWalletID: sub.WalletID}); err != nil {
		if errors.Is(err, repositories.ErrAlreadyExists) {
			if existing, ok := w.Profile(ctx, clientID); ok {
				return existing, nil
			}
		}
		log.Error(ctx, "storing profile", "err", err, "client_id", clientID)
		return nil, err
	}
	w.cacheToken(ctx, sub.WalletID, sub.Token)

	log.Info(ctx, "wallet provisioned", "wallet_id", sub.WalletID, "did", profile.DIDKey())
	return &profile, nil
}

func (w *wallet) Profile(ctx context.Context, clientID string) (*domain.Profile, bool) {
	raw, ok := w.stores.Open(domain.GlobalTenant).Fetch(ctx, domain.CategoryProfiles, clientID)
	if !ok {
		return nil, false
	}
	var profile domain.Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		log.Warn(ctx, "undecodable profile", "err", err, "client_id", clientID)
		return nil, false
	}
	return &profile, true
}

func (w *wallet) Wallet(ctx context.Context, walletID string) (*domain.Wallet, bool) {
	if walletID == "" {
		return nil, false
	}
	raw, ok := w.stores.Open(walletID).Fetch(ctx, domain.CategoryWallets, walletID)
	if !ok {
		return nil, false
	}
	var record domain.Wallet
	if err := json.Unmarshal(raw, &record); err != nil {
		log.Warn(ctx, "undecodable wallet", "err", err, "wallet_id", walletID)
		return nil, false
	}
	return &record, true
}

// SignIn returns an agent handle authorized for walletID, reusing a cached token when there is one
func (w *wallet) SignIn(ctx context.Context, walletID string) (ports.TenantAgent, bool) {
	if token, ok := w.tokens.Get(ctx, walletID); ok {
		return w.agent.ForTenant(token), true
	}
	record, ok := w.Wallet(ctx, walletID)
	if !ok {
		log.Warn(ctx, "signing in to an unknown wallet", "wallet_id", walletID)
		return nil, false
	}
	token, ok := w.agent.RequestToken(ctx, walletID, record.WalletKey)
	if !ok {
		return nil, false
	}
	err := w.stores.Open(walletID).Modify(ctx, domain.CategoryWallets, walletID, func(current json.RawMessage, tags domain.Tags) (any, domain.Tags, error) {
		if current == nil {
			return nil, nil, repositories.ErrUnchanged
		}
		var rec domain.Wallet
		if err := json.Unmarshal(current, &rec); err != nil {
			return nil, nil, err
		}
		rec.Token = token
		return rec, tags, nil
	})
	if err != nil {
		log.Warn(ctx, "persisting wallet token", "err", err, "wallet_id", walletID)
	}
	w.cacheToken(ctx, walletID, token)
	return w.agent.ForTenant(token), true
}

// Remove deletes the wallet data of clientID. The agent sub wallet is left in place.
func (w *wallet) Remove(ctx context.Context, clientID string) error {
	profile, ok := w.Profile(ctx, clientID)
	if !ok {
		return ErrProfileNotFound
	}
	if err := w.stores.Remove(ctx, profile.WalletID); err != nil {
		return err
	}
	if err := w.tokens.Delete(ctx, profile.WalletID); err != nil {
		log.Warn(ctx, "forgetting wallet token", "err", err, "wallet_id", profile.WalletID)
	}
	return w.stores.Open(domain.GlobalTenant).Delete(ctx, domain.CategoryProfiles, clientID)
}

func (w *wallet) cacheToken(ctx context.Context, walletID string, token string) {
	if err := w.tokens.Set(ctx, walletID, token); err != nil {
		log.Warn(ctx, "caching wallet token", "err", err, "wallet_id", walletID)
	}
}

func newWalletKey() (string, error) {
	buf := make([]byte, walletKeySize)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
