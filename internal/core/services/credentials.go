package services

import (
	"context"
	"fmt"

	"github.com/polygonid/wallet-mediator/internal/core/domain"
	"github.com/polygonid/wallet-mediator/internal/core/ports"
	"github.com/polygonid/wallet-mediator/internal/log"
	"github.com/polygonid/wallet-mediator/internal/urn"
)

const (
	reasonDeclined      = "declined"
	reasonDeleted       = "deleted"
	declineOfferMessage = "declined by the holder"
)

type credentials struct {
	stores        ports.TenantStoreProvider
	wallets       ports.WalletService
	notifications ports.NotificationService
	matcher       *Matcher
}

// NewCredentials returns the service behind the wallet content views and the user decisions on pending exchanges
func NewCredentials(stores ports.TenantStoreProvider, wallets ports.WalletService, notifications ports.NotificationService, matcher *Matcher) ports.CredentialsService {
	return &credentials{
		stores:        stores,
		wallets:       wallets,
		notifications: notifications,
		matcher:       matcher,
	}
}

// List returns the held credentials whose tags match filter, in storage order
func (c *credentials) List(ctx context.Context, walletID string, filter domain.Tags) []domain.Document {
	return heldCredentials(ctx, c.stores.Open(walletID), filter)
}

func heldCredentials(ctx context.Context, store ports.TenantStore, filter domain.Tags) []domain.Document {
	raws := store.FetchAllByTag(ctx, domain.CategoryCredentials, filter)
	docs := make([]domain.Document, 0, len(raws))
	for _, raw := range raws {
		doc, err := domain.ParseDocument(raw)
		if err != nil {
			log.Warn(ctx, "undecodable credential", "err", err, "tenant", store.Tenant())
			continue
		}
		docs = append(docs, doc)
	}
	return docs
}

func (c *credentials) Delete(ctx context.Context, walletID string, credentialID string) error {
	store := c.stores.Open(walletID)
	if _, ok := store.Fetch(ctx, domain.CategoryCredentials, credentialID); !ok {
		return ErrCredentialNotFound
	}
	if err := store.Delete(ctx, domain.CategoryCredentials, credentialID); err != nil {
		return err
	}
	if exchangeID, err := urn.URN(credentialID).ExchangeID(); err == nil {
		if _, err := c.notifications.Remove(ctx, walletID, exchangeID, reasonDeleted); err != nil {
			log.Warn(ctx, "removing notification of deleted credential", "err", err)
		}
	}
	log.Info(ctx, "credential deleted", "wallet_id", walletID, "id", credentialID)
	return nil
}

func (c *credentials) Connections(ctx context.Context, walletID string) []domain.Connection {
	return listItems[domain.Connection](ctx, c.stores.Open(walletID), domain.CategoryConnections, walletID)
}

func (c *credentials) Offers(ctx context.Context, walletID string) []domain.CredentialOffer {
	return listItems[domain.CredentialOffer](ctx, c.stores.Open(walletID), domain.CategoryCredOffers, walletID)
}

// ViewOffer returns a pending offer with the display names of its schema and issuer
func (c *credentials) ViewOffer(ctx context.Context, walletID string, exchangeID string) (*domain.OfferView, error) {
	offer, ok := c.offer(ctx, walletID, exchangeID)
	if !ok {
		return nil, ErrExchangeNotFound
	}
	view := &domain.OfferView{
		ExchangeID:     offer.ExchangeID,
		CredentialName: defaultCredentialName,
		IssuerName:     defaultIssuerName,
		Attributes:     offer.Preview,
		State:          string(offer.State),
	}
	agent, ok := c.wallets.SignIn(ctx, walletID)
	if !ok {
		return view, nil
	}
	if schema, ok := agent.GetSchema(ctx, offer.SchemaID); ok && schema.Schema.Name != "" {
		view.CredentialName = schema.Schema.Name
	}
	if conn, ok := agent.GetConnection(ctx, offer.ConnectionID); ok {
		view.IssuerName = firstNonEmpty(conn.TheirLabel, defaultIssuerName)
		view.IssuerImage = conn.ImageURL
	}
	return view, nil
}

// AcceptOffer asks the issuer for the credential. The offer is closed by the following webhooks.
func (c *credentials) AcceptOffer(ctx context.Context, walletID string, exchangeID string) error {
	if _, ok := c.offer(ctx, walletID, exchangeID); !ok {
		return ErrExchangeNotFound
	}
	agent, ok := c.wallets.SignIn(ctx, walletID)
	if !ok || !agent.SendCredentialRequest(ctx, exchangeID) {
		return fmt.Errorf("%w: sending credential request", ErrAgentUnavailable)
	}
	log.Info(ctx, "credential offer accepted", "wallet_id", walletID, "cred_ex_id", exchangeID)
	return nil
}

func (c *credentials) DeclineOffer(ctx context.Context, walletID string, exchangeID string) error {
	if _, ok := c.offer(ctx, walletID, exchangeID); !ok {
		return ErrExchangeNotFound
	}
	agent, ok := c.wallets.SignIn(ctx, walletID)
	if !ok || !agent.DeclineCredentialOffer(ctx, exchangeID, declineOfferMessage) {
		return fmt.Errorf("%w: declining credential offer", ErrAgentUnavailable)
	}
	if err := markClosed(ctx, c.stores.Open(walletID), exchangeID, reasonDeclined); err != nil {
		return err
	}
	if _, err := c.notifications.Remove(ctx, walletID, exchangeID, reasonDeclined); err != nil {
		return err
	}
	_, err := removeItems(ctx, c.stores.Open(walletID), domain.CategoryCredOffers, walletID, func(o domain.CredentialOffer) bool {
		return o.ExchangeID == exchangeID
	})
	return err
}

func (c *credentials) offer(ctx context.Context, walletID string, exchangeID string) (*domain.CredentialOffer, bool) {
	for _, o := range c.Offers(ctx, walletID) {
		if o.ExchangeID == exchangeID {
			return &o, true
		}
	}
	return nil, false
}

// ViewPresentationRequest matches a pending proof request against the held credentials
func (c *credentials) ViewPresentationRequest(ctx context.Context, walletID string, exchangeID string) (*domain.PresentationView, error) {
	agent, signedIn := c.wallets.SignIn(ctx, walletID)

	record, ok := c.presentationRecord(ctx, walletID, exchangeID)
	if !ok && signedIn {
		record, ok = agent.GetPresentationExchange(ctx, exchangeID)
	}
	if !ok {
		return nil, ErrExchangeNotFound
	}

	verifierName := ""
	if signedIn {
		if conn, ok := agent.GetConnection(ctx, record.ConnectionID); ok {
			verifierName = conn.TheirLabel
		}
	}
	if verifierName == "" {
		for _, conn := range c.Connections(ctx, walletID) {
			if conn.ConnectionID == record.ConnectionID {
				verifierName = conn.Label
				break
			}
		}
	}
	return c.matcher.MatchAnonCredsRequest(record, verifierName, c.List(ctx, walletID, nil)), nil
}

// presentationRecord rebuilds the exchange record of a stored pending request
func (c *credentials) presentationRecord(ctx context.Context, walletID string, exchangeID string) (*domain.PresExRecord, bool) {
	requests := listItems[domain.PresentationRequest](ctx, c.stores.Open(walletID), domain.CategoryPresRequests, walletID)
	for _, r := range requests {
		if r.ExchangeID != exchangeID {
			continue
		}
		return &domain.PresExRecord{
			PresExID:     r.ExchangeID,
			ConnectionID: r.ConnectionID,
			State:        r.State,
			CreatedAt:    r.Timestamp,
			UpdatedAt:    r.UpdatedAt,
			ByFormat: domain.PresExByFormat{PresRequest: domain.PresExFormat{AnonCreds: &domain.AnonCredsProofRequest{
				Name:                r.Name,
				RequestedAttributes: r.Attributes,
				RequestedPredicates: r.Predicates,
			}}},
		}, true
	}
	return nil, false
}

// RespondPresentationRequest answers every referent of the request with the first agent credential able to.
// Attributes are revealed. The request is closed by the following webhooks.
func (c *credentials) RespondPresentationRequest(ctx context.Context, walletID string, exchangeID string) error {
	agent, ok := c.wallets.SignIn(ctx, walletID)
	if !ok {
		return fmt.Errorf("%w: signing in", ErrAgentUnavailable)
	}
	record, ok := agent.GetPresentationExchange(ctx, exchangeID)
	if !ok {
		if record, ok = c.presentationRecord(ctx, walletID, exchangeID); !ok {
			return ErrExchangeNotFound
		}
	}
	matching, ok := agent.GetMatchingCredentials(ctx, exchangeID)
	if !ok {
		return fmt.Errorf("%w: fetching matching credentials", ErrAgentUnavailable)
	}

	spec, err := presentationSpec(record.ByFormat.PresRequest.Request(), matching)
	if err != nil {
		return err
	}
	if !agent.SendPresentation(ctx, exchangeID, spec) {
		return fmt.Errorf("%w: sending presentation", ErrAgentUnavailable)
	}
	log.Info(ctx, "presentation sent", "wallet_id", walletID, "pres_ex_id", exchangeID)
	return nil
}

func presentationSpec(request domain.AnonCredsProofRequest, matching []domain.MatchingCredential) (domain.PresentationSpec, error) {
	spec := domain.PresentationSpec{AnonCreds: domain.AnonCredsPresSpec{
		RequestedAttributes:    map[string]domain.RequestedCredential{},
		RequestedPredicates:    map[string]domain.RequestedCredential{},
		SelfAttestedAttributes: map[string]string{},
	}}
	revealed := true
	for _, referent := range sortedKeys(request.RequestedAttributes) {
		m, ok := firstMatching(matching, referent)
		if !ok {
			return spec, fmt.Errorf("%w: attribute %s", ErrQueryUnsatisfied, referent)
		}
		spec.AnonCreds.RequestedAttributes[referent] = domain.RequestedCredential{
			CredID:    m.CredInfo.Referent,
			Revealed:  &revealed,
			Timestamp: intervalEnd(m),
		}
	}
	for _, referent := range sortedKeys(request.RequestedPredicates) {
		m, ok := firstMatching(matching, referent)
		if !ok {
			return spec, fmt.Errorf("%w: predicate %s", ErrQueryUnsatisfied, referent)
		}
		spec.AnonCreds.RequestedPredicates[referent] = domain.RequestedCredential{
			CredID:    m.CredInfo.Referent,
			Timestamp: intervalEnd(m),
		}
	}
	return spec, nil
}

func firstMatching(matching []domain.MatchingCredential, referent string) (domain.MatchingCredential, bool) {
	for _, m := range matching {
		if contains(m.PresentationReferents, referent) {
			return m, true
		}
	}
	return domain.MatchingCredential{}, false
}

func intervalEnd(m domain.MatchingCredential) *int64 {
	if m.Interval == nil {
		return nil
	}
	return m.Interval.To
}

func (c *credentials) DeclinePresentationRequest(ctx context.Context, walletID string, exchangeID string) error {
	agent, ok := c.wallets.SignIn(ctx, walletID)
	if !ok || !agent.DeletePresentationExchange(ctx, exchangeID) {
		return fmt.Errorf("%w: deleting presentation exchange", ErrAgentUnavailable)
	}
	if err := markClosed(ctx, c.stores.Open(walletID), exchangeID, reasonDeclined); err != nil {
		return err
	}
	if _, err := c.notifications.Remove(ctx, walletID, exchangeID, reasonDeclined); err != nil {
		return err
	}
	_, err := removeItems(ctx, c.stores.Open(walletID), domain.CategoryPresRequests, walletID, func(p domain.PresentationRequest) bool {
		return p.ExchangeID == exchangeID
	})
	return err
}
