package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/polygonid/wallet-mediator/internal/core/domain"
	"github.com/polygonid/wallet-mediator/internal/core/ports"
	"github.com/polygonid/wallet-mediator/internal/invitation"
	"github.com/polygonid/wallet-mediator/internal/log"
	"github.com/polygonid/wallet-mediator/internal/metrics"
	"github.com/polygonid/wallet-mediator/internal/repositories"
	"github.com/polygonid/wallet-mediator/internal/urn"
	client "github.com/polygonid/wallet-mediator/pkg/http"
)

// ErrExchangeFailed is returned when a remote VC API exchange answers with something unusable
var ErrExchangeFailed = errors.New("vc api exchange failed")

type interactionResponse struct {
	Protocols struct {
		VCAPI string `json:"vcapi"`
	} `json:"protocols"`
}

// Scanner acts on the payloads scanned by the wallet user
type Scanner struct {
	stores      ports.TenantStoreProvider
	wallets     ports.WalletService
	broadcaster ports.Broadcaster
	matcher     *Matcher
	client      *client.Client
	metrics     *metrics.Metrics
}

// NewScanner returns a Scanner. client is used for every call to a third party endpoint.
func NewScanner(stores ports.TenantStoreProvider, wallets ports.WalletService, broadcaster ports.Broadcaster, matcher *Matcher, c *client.Client, m *metrics.Metrics) *Scanner {
	return &Scanner{
		stores:      stores,
		wallets:     wallets,
		broadcaster: broadcaster,
		matcher:     matcher,
		client:      c,
		metrics:     m,
	}
}

var _ ports.ScannerService = (*Scanner)(nil)

// Scan classifies payload and runs the interaction it starts.
// A payload that is not recognised gives an unknown result, not an error.
func (s *Scanner) Scan(ctx context.Context, walletID string, payload string) (*domain.ScanResult, error) {
	result, err := s.scan(ctx, walletID, payload)
	if err != nil {
		log.Warn(ctx, "scanned payload not processed", "err", err, "wallet_id", walletID)
		return nil, err
	}
	s.metrics.IncScanResult(string(result.Type))
	log.Info(ctx, "payload scanned", "wallet_id", walletID, "type", result.Type)
	return result, nil
}

func (s *Scanner) scan(ctx context.Context, walletID string, payload string) (*domain.ScanResult, error) {
	p, err := invitation.Classify(payload)
	if err != nil {
		log.Warn(ctx, "undecodable invitation", "err", err)
		return &domain.ScanResult{Type: domain.ScanUnknown}, nil
	}

	switch p.Kind {
	case invitation.KindInline:
		return s.forward(ctx, walletID, p.Invitation)
	case invitation.KindReference:
		resp, err := s.client.Get(ctx, p.URL, client.WithHeader("Accept", "application/json"))
		if err != nil {
			return nil, fmt.Errorf("%w: fetching invitation: %v", ErrExchangeFailed, err)
		}
		var inv map[string]any
		if err := json.Unmarshal(resp, &inv); err != nil || inv == nil {
			return nil, invitation.ErrMalformed
		}
		return s.forward(ctx, walletID, inv)
	case invitation.KindInteraction:
		return s.interact(ctx, walletID, p.URL)
	default:
		return &domain.ScanResult{Type: domain.ScanUnknown}, nil
	}
}

// forward hands an out of band invitation to the agent of the wallet
func (s *Scanner) forward(ctx context.Context, walletID string, inv map[string]any) (*domain.ScanResult, error) {
	inv = invitation.Normalize(inv)
	result := &domain.ScanResult{Type: domain.ScanOOBInvitation}
	if invitation.HasRequests(inv) {
		result.Type = domain.ScanOOBPresentationRequest
	}
	if !invitation.IsOutOfBand(inv) {
		log.Info(ctx, "not an out of band invitation, not forwarded", "type", inv["@type"])
		return result, nil
	}

	agent, ok := s.wallets.SignIn(ctx, walletID)
	if !ok {
		return nil, fmt.Errorf("%w: signing in", ErrAgentUnavailable)
	}
	record, ok := agent.ReceiveInvitation(ctx, inv)
	if !ok {
		return nil, fmt.Errorf("%w: receiving invitation", ErrAgentUnavailable)
	}
	result.Forwarded = true
	result.OobID = record.OobID
	result.ConnectionID = record.ConnectionID
	return result, nil
}

// interact runs a VC API exchange announced by an interaction url
func (s *Scanner) interact(ctx context.Context, walletID string, interactionURL string) (*domain.ScanResult, error) {
	result := &domain.ScanResult{Type: domain.ScanInteractionURL}

	var protocols interactionResponse
	if err := s.getJSON(ctx, interactionURL, &protocols); err != nil {
		return nil, err
	}
	exchangeURL := protocols.Protocols.VCAPI
	if exchangeURL == "" {
		log.Info(ctx, "interaction without vc api protocol", "url", interactionURL)
		return result, nil
	}

	var exchange domain.VCAPIExchangeResponse
	if err := s.postJSON(ctx, exchangeURL, map[string]any{}, &exchange); err != nil {
		return nil, err
	}

	switch {
	case exchange.VerifiablePresentation != nil:
		stored, err := s.storeCredentials(ctx, walletID, exchange.VerifiablePresentation)
		if err != nil {
			return nil, err
		}
		result.CredentialsStored = stored
	case exchange.VerifiablePresentationRequest != nil:
		redirect, err := s.present(ctx, walletID, exchangeURL, *exchange.VerifiablePresentationRequest)
		if err != nil {
			return nil, err
		}
		result.PresentationSent = true
		result.RedirectURL = redirect
	case exchange.RedirectURL != "":
		result.RedirectURL = exchange.RedirectURL
	default:
		log.Warn(ctx, "empty vc api exchange answer", "url", exchangeURL)
	}
	return result, nil
}

// storeCredentials keeps the credentials of a received presentation. Credentials without id get one.
func (s *Scanner) storeCredentials(ctx context.Context, walletID string, vp *domain.VerifiablePresentation) (int, error) {
	store := s.stores.Open(walletID)
	stored := 0
	for _, vc := range vp.VerifiableCredential {
		if vc.ID() == "" {
			vc["id"] = urn.FromUUID(uuid.New()).String()
		}
		tags := domain.Tags{}
		if issuer := vc.IssuerID(); issuer != "" {
			tags[TagIssuerID] = issuer
		}
		if name := vc.Name(); name != "" {
			tags[TagCredentialName] = name
		}
		err := store.Store(ctx, domain.CategoryCredentials, vc.ID(), vc, tags)
		switch {
		case errors.Is(err, repositories.ErrAlreadyExists):
			log.Info(ctx, "credential already held", "id", vc.ID())
			continue
		case err != nil:
			return stored, err
		}
		stored++
		s.broadcaster.Broadcast(ctx, walletID, domain.EventCredentialReceived, domain.CredentialReceived{
			Credential: vc,
			Tags:       tags,
		})
	}
	return stored, nil
}

// present answers a presentation request with held credentials signed by the wallet key.
// It returns the redirect url the verifier may send back.
func (s *Scanner) present(ctx context.Context, walletID string, exchangeURL string, vpr domain.VerifiablePresentationRequest) (string, error) {
	wallet, ok := s.wallets.Wallet(ctx, walletID)
	if !ok {
		return "", ErrWalletNotFound
	}
	draft, err := s.matcher.Match(ctx, wallet.Multikey, heldCredentials(ctx, s.stores.Open(walletID), nil), vpr)
	if err != nil {
		return "", err
	}

	agent, ok := s.wallets.SignIn(ctx, walletID)
	if !ok {
		return "", fmt.Errorf("%w: signing in", ErrAgentUnavailable)
	}
	vp, ok := agent.SignPresentation(ctx, draft.Presentation, draft.Options)
	if !ok {
		return "", fmt.Errorf("%w: signing presentation", ErrAgentUnavailable)
	}

	var answer domain.VCAPIExchangeResponse
	if err := s.postJSON(ctx, exchangeURL, vp, &answer); err != nil {
		return "", err
	}
	s.broadcaster.Broadcast(ctx, walletID, domain.EventPresentationSent, domain.PresentationSent{
		ExchangeURL: exchangeURL,
		Domain:      vpr.Domain,
		Reasons:     draft.Reasons,
	})
	return answer.RedirectURL, nil
}

func (s *Scanner) getJSON(ctx context.Context, url string, out any) error {
	resp, err := s.client.Get(ctx, url, client.WithHeader("Accept", "application/json"))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}
	return decodeExchange(resp, out)
}

func (s *Scanner) postJSON(ctx context.Context, url string, body any, out any) error {
	req, err := json.Marshal(body)
	if err != nil {
		return err
	}
	resp, err := s.client.Post(ctx, url, req, client.WithHeader("Accept", "application/json"), client.WithoutRetry())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}
	return decodeExchange(resp, out)
}

// decodeExchange decodes a json answer. An empty answer leaves out untouched.
func decodeExchange(resp []byte, out any) error {
	if len(resp) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp, out); err != nil {
		return fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}
	return nil
}
