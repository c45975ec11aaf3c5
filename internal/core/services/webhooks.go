package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"golang.org/x/sync/errgroup"

	"github.com/polygonid/wallet-mediator/internal/core/domain"
	"github.com/polygonid/wallet-mediator/internal/core/ports"
	"github.com/polygonid/wallet-mediator/internal/log"
	"github.com/polygonid/wallet-mediator/internal/metrics"
	"github.com/polygonid/wallet-mediator/internal/repositories"
	"github.com/polygonid/wallet-mediator/internal/urn"
)

const (
	reasonAccepted  = "accepted"
	reasonAbandoned = "abandoned"
	unknownSender   = "Unknown"
)

type webhookHandler func(ctx context.Context, walletID string, payload map[string]any) error

// WebhookManager turns agent webhooks into stored exchange state, notifications and client events.
// Every handler tolerates redelivery and reordering of the events of an exchange.
type WebhookManager struct {
	stores        ports.TenantStoreProvider
	wallets       ports.WalletService
	notifications ports.NotificationService
	broadcaster   ports.Broadcaster
	metrics       *metrics.Metrics
	handlers      map[domain.Topic]webhookHandler
}

// NewWebhookManager returns a WebhookManager. It panics when a known topic has no handler.
func NewWebhookManager(stores ports.TenantStoreProvider, wallets ports.WalletService, notifications ports.NotificationService, broadcaster ports.Broadcaster, m *metrics.Metrics) *WebhookManager {
	wm := &WebhookManager{
		stores:        stores,
		wallets:       wallets,
		notifications: notifications,
		broadcaster:   broadcaster,
		metrics:       m,
	}
	wm.handlers = map[domain.Topic]webhookHandler{
		domain.TopicConnections:                wm.connections,
		domain.TopicOutOfBand:                  wm.logOnly,
		domain.TopicPing:                       wm.logOnly,
		domain.TopicBasicMessages:              wm.basicMessages,
		domain.TopicIssueCredential:            wm.logOnly,
		domain.TopicIssuerCredRev:              wm.logOnly,
		domain.TopicIssueCredentialV2:          wm.issueCredentialV2,
		domain.TopicIssueCredentialV2AnonCreds: wm.logOnly,
		domain.TopicIssueCredentialV2Indy:      wm.logOnly,
		domain.TopicPresentProof:               wm.logOnly,
		domain.TopicPresentProofV2:             wm.presentProofV2,
		domain.TopicRevocationRegistry:         wm.logOnly,
	}
	for _, topic := range domain.AllTopics {
		if _, ok := wm.handlers[topic]; !ok {
			panic(fmt.Sprintf("no handler for webhook topic %s", topic))
		}
	}
	return wm
}

var _ ports.WebhookService = (*WebhookManager)(nil)

// Handle runs the handler of topic. An unknown topic is the only error reported to the caller,
// handler failures are logged.
func (wm *WebhookManager) Handle(ctx context.Context, walletID string, topic string, payload map[string]any) error {
	t, err := domain.ParseTopic(topic)
	if err != nil {
		log.Warn(ctx, "rejecting webhook", "err", err, "wallet_id", walletID)
		return err
	}
	state, _ := payload["state"].(string)
	wm.metrics.IncWebhookEvent(topic, state)

	ctx = log.With(ctx, "topic", topic, "state", state, "wallet_id", walletID)
	if err := wm.handlers[t](ctx, walletID, payload); err != nil {
		log.Error(ctx, "handling webhook", "err", err)
	}
	return nil
}

func (wm *WebhookManager) logOnly(ctx context.Context, _ string, _ map[string]any) error {
	log.Info(ctx, "webhook received")
	return nil
}

func (wm *WebhookManager) issueCredentialV2(ctx context.Context, walletID string, payload map[string]any) error {
	var rec domain.CredExRecord
	if err := decodePayload(payload, &rec); err != nil {
		return err
	}
	if rec.CredExID == "" {
		return errors.New("credential exchange without id")
	}
	ctx = log.With(ctx, "cred_ex_id", rec.CredExID)

	switch rec.State {
	case domain.CredExOfferReceived:
		return wm.credentialOffered(ctx, walletID, &rec)
	case domain.CredExRequestSent:
		wm.updateOfferState(ctx, walletID, &rec)
		_, err := wm.notifications.Remove(ctx, walletID, rec.CredExID, reasonAccepted)
		return err
	case domain.CredExCredentialReceived:
		log.Info(ctx, "credential received, waiting for completion")
		return nil
	case domain.CredExDeclined, domain.CredExAbandoned:
		return wm.closeOffer(ctx, walletID, rec.CredExID, string(rec.State))
	case domain.CredExDone:
		return wm.credentialIssued(ctx, walletID, &rec)
	case domain.CredExDeleted:
		log.Info(ctx, "credential exchange deleted")
		return nil
	default:
		log.Warn(ctx, "unhandled credential exchange state")
		return nil
	}
}

func (wm *WebhookManager) credentialOffered(ctx context.Context, walletID string, rec *domain.CredExRecord) error {
	store := wm.stores.Open(walletID)
	if _, ok := store.Fetch(ctx, domain.CategoryCredentials, urn.FromExchangeID(rec.CredExID).String()); ok {
		log.Info(ctx, "offer of an already issued credential, ignoring")
		return nil
	}
	if isClosed(ctx, store, rec.CredExID) {
		log.Info(ctx, "offer of a closed exchange, ignoring")
		return nil
	}

	agent, _ := wm.wallets.SignIn(ctx, walletID)
	record := rec
	if agent != nil {
		if full, ok := agent.GetCredentialExchange(ctx, rec.CredExID); ok {
			record = full
		}
	}
	if record.State != "" && record.State != domain.CredExOfferReceived {
		log.Info(ctx, "offer already moved on, ignoring", "current_state", record.State)
		return nil
	}

	offer := domain.CredentialOffer{
		ExchangeID:   rec.CredExID,
		ConnectionID: firstNonEmpty(record.ConnectionID, rec.ConnectionID),
		State:        domain.CredExOfferReceived,
		Timestamp:    firstNonEmpty(record.CreatedAt, now()),
		UpdatedAt:    record.UpdatedAt,
		Comment:      record.Comment(),
		Preview:      record.Attributes(),
		SchemaID:     firstNonEmpty(record.SchemaID(), rec.SchemaID()),
		CredDefID:    firstNonEmpty(record.CredDefID(), rec.CredDefID()),
	}
	err := upsertItem(ctx, store, domain.CategoryCredOffers, walletID, offer, func(o domain.CredentialOffer) bool {
		return o.ExchangeID == offer.ExchangeID
	})
	if err != nil {
		return err
	}

	schemaName, issuerName := defaultCredentialName, defaultIssuerName
	if agent != nil {
		if schema, ok := agent.GetSchema(ctx, offer.SchemaID); ok && schema.Schema.Name != "" {
			schemaName = schema.Schema.Name
		}
		if conn, ok := agent.GetConnection(ctx, offer.ConnectionID); ok && conn.TheirLabel != "" {
			issuerName = conn.TheirLabel
		}
	}
	title := fmt.Sprintf("%s is offering %s", issuerName, schemaName)
	return wm.notifications.Create(ctx, walletID, domain.NewNotification(offer.ExchangeID, domain.NotificationCredentialOffer, title, offer))
}

func (wm *WebhookManager) updateOfferState(ctx context.Context, walletID string, rec *domain.CredExRecord) {
	_, err := updateItem(ctx, wm.stores.Open(walletID), domain.CategoryCredOffers, walletID,
		func(o domain.CredentialOffer) bool { return o.ExchangeID == rec.CredExID },
		func(o *domain.CredentialOffer) {
			o.State = rec.State
			o.UpdatedAt = firstNonEmpty(rec.UpdatedAt, now())
		})
	if err != nil {
		log.Warn(ctx, "updating offer state", "err", err)
	}
}

// closeOffer forgets a finished offer together with its notification
func (wm *WebhookManager) closeOffer(ctx context.Context, walletID string, exchangeID string, reason string) error {
	if err := markClosed(ctx, wm.stores.Open(walletID), exchangeID, reason); err != nil {
		return err
	}
	if _, err := wm.notifications.Remove(ctx, walletID, exchangeID, reason); err != nil {
		return err
	}
	_, err := removeItems(ctx, wm.stores.Open(walletID), domain.CategoryCredOffers, walletID, func(o domain.CredentialOffer) bool {
		return o.ExchangeID == exchangeID
	})
	return err
}

func (wm *WebhookManager) credentialIssued(ctx context.Context, walletID string, rec *domain.CredExRecord) error {
	agent, _ := wm.wallets.SignIn(ctx, walletID)
	record := rec
	if agent != nil {
		if full, ok := agent.GetCredentialExchange(ctx, rec.CredExID); ok {
			record = full
		}
	}

	in := BeautifyInput{
		Attributes: record.Attributes(),
		SchemaID:   firstNonEmpty(record.SchemaID(), rec.SchemaID()),
		CredDefID:  firstNonEmpty(record.CredDefID(), rec.CredDefID()),
		IssuerID:   record.ByFormat.CredOffer.Filter().IssuerID,
		IssuedAt:   normalizeTimestamp(firstNonEmpty(record.UpdatedAt, rec.UpdatedAt)),
		ExchangeID: rec.CredExID,
	}
	if agent != nil {
		wm.enrich(ctx, agent, firstNonEmpty(record.ConnectionID, rec.ConnectionID), &in)
	}
	credential, tags := Beautify(in)

	stored := true
	err := wm.stores.Open(walletID).Store(ctx, domain.CategoryCredentials, credential.ID, credential, tags)
	switch {
	case errors.Is(err, repositories.ErrAlreadyExists):
		log.Info(ctx, "credential already stored", "id", credential.ID)
		stored = false
	case err != nil:
		return err
	}

	if err := wm.closeOffer(ctx, walletID, rec.CredExID, string(domain.CredExDone)); err != nil {
		log.Warn(ctx, "closing issued offer", "err", err)
	}
	if stored {
		log.Info(ctx, "credential stored", "id", credential.ID)
		wm.broadcaster.Broadcast(ctx, walletID, domain.EventCredentialReceived, domain.CredentialReceived{
			Credential: credential,
			Tags:       tags,
			ExchangeID: rec.CredExID,
		})
	}
	return nil
}

// enrich resolves schema, credential definition and issuer connection concurrently.
// Every lookup is best effort, a failed one leaves its fields empty.
func (wm *WebhookManager) enrich(ctx context.Context, agent ports.TenantAgent, connectionID string, in *BeautifyInput) {
	var (
		schema  *domain.SchemaResult
		credDef *domain.CredDefResult
		conn    *domain.ConnectionRecord
		g       errgroup.Group
	)
	g.Go(func() error {
		schema, _ = agent.GetSchema(ctx, in.SchemaID)
		return nil
	})
	g.Go(func() error {
		credDef, _ = agent.GetCredentialDefinition(ctx, in.CredDefID)
		return nil
	})
	g.Go(func() error {
		conn, _ = agent.GetConnection(ctx, connectionID)
		return nil
	})
	_ = g.Wait()

	if schema != nil {
		in.SchemaName = schema.Schema.Name
		in.SchemaVersion = schema.Schema.Version
	}
	if credDef != nil {
		in.CredDefTag = credDef.CredentialDefinition.Tag
		in.IssuerID = firstNonEmpty(credDef.CredentialDefinition.IssuerID, in.IssuerID)
	}
	if conn != nil {
		in.IssuerName = conn.TheirLabel
		in.IssuerImage = conn.ImageURL
	}
}

func (wm *WebhookManager) presentProofV2(ctx context.Context, walletID string, payload map[string]any) error {
	var rec domain.PresExRecord
	if err := decodePayload(payload, &rec); err != nil {
		return err
	}
	if rec.PresExID == "" {
		return errors.New("presentation exchange without id")
	}
	ctx = log.With(ctx, "pres_ex_id", rec.PresExID)

	switch rec.State {
	case domain.PresExRequestReceived:
		return wm.presentationRequested(ctx, walletID, &rec)
	case domain.PresExPresentationSent, domain.PresExDone:
		return wm.closeRequest(ctx, walletID, rec.PresExID, string(rec.State))
	case domain.PresExAbandoned, domain.PresExDeclined:
		return wm.closeRequest(ctx, walletID, rec.PresExID, reasonAbandoned)
	case domain.PresExDeleted:
		return wm.closeRequest(ctx, walletID, rec.PresExID, string(rec.State))
	default:
		log.Warn(ctx, "unhandled presentation exchange state")
		return nil
	}
}

func (wm *WebhookManager) presentationRequested(ctx context.Context, walletID string, rec *domain.PresExRecord) error {
	store := wm.stores.Open(walletID)
	if isClosed(ctx, store, rec.PresExID) {
		log.Info(ctx, "request of a closed exchange, ignoring")
		return nil
	}

	agent, _ := wm.wallets.SignIn(ctx, walletID)
	record := rec
	if agent != nil {
		if full, ok := agent.GetPresentationExchange(ctx, rec.PresExID); ok {
			record = full
		}
	}
	if record.State != "" && record.State != domain.PresExRequestReceived {
		log.Info(ctx, "request already moved on, ignoring", "current_state", record.State)
		return nil
	}
	if record.ByFormat.PresRequest.AnonCreds == nil && record.ByFormat.PresRequest.Indy == nil {
		merged := *record
		merged.ByFormat = rec.ByFormat
		record = &merged
	}
	request := record.ByFormat.PresRequest.Request()

	pres := domain.PresentationRequest{
		ExchangeID:   rec.PresExID,
		ConnectionID: firstNonEmpty(record.ConnectionID, rec.ConnectionID),
		State:        domain.PresExRequestReceived,
		Timestamp:    firstNonEmpty(record.CreatedAt, now()),
		UpdatedAt:    record.UpdatedAt,
		Name:         request.Name,
		Attributes:   request.RequestedAttributes,
		Predicates:   request.RequestedPredicates,
	}
	if record.PresRequest != nil {
		pres.Comment = record.PresRequest.Comment
	}
	err := upsertItem(ctx, store, domain.CategoryPresRequests, walletID, pres, func(p domain.PresentationRequest) bool {
		return p.ExchangeID == pres.ExchangeID
	})
	if err != nil {
		return err
	}

	verifierName := defaultVerifierName
	if agent != nil {
		if conn, ok := agent.GetConnection(ctx, pres.ConnectionID); ok && conn.TheirLabel != "" {
			verifierName = conn.TheirLabel
		}
	}
	title := fmt.Sprintf("%s is requesting %s", verifierName, firstNonEmpty(pres.Name, defaultRequestName))
	return wm.notifications.Create(ctx, walletID, domain.NewNotification(pres.ExchangeID, domain.NotificationPresentationRequest, title, pres))
}

// closeRequest forgets a finished presentation request together with its notification
func (wm *WebhookManager) closeRequest(ctx context.Context, walletID string, exchangeID string, reason string) error {
	if err := markClosed(ctx, wm.stores.Open(walletID), exchangeID, reason); err != nil {
		return err
	}
	if _, err := wm.notifications.Remove(ctx, walletID, exchangeID, reason); err != nil {
		return err
	}
	_, err := removeItems(ctx, wm.stores.Open(walletID), domain.CategoryPresRequests, walletID, func(p domain.PresentationRequest) bool {
		return p.ExchangeID == exchangeID
	})
	return err
}

// markClosed records that exchangeID reached a terminal state. Marking twice keeps the first reason.
func markClosed(ctx context.Context, store ports.TenantStore, exchangeID string, reason string) error {
	marker := domain.ClosedExchange{ExchangeID: exchangeID, Reason: reason, ClosedAt: now()}
	err := store.Store(ctx, domain.CategoryClosed, exchangeID, marker, domain.Tags{"reason": reason})
	if err != nil && !errors.Is(err, repositories.ErrAlreadyExists) {
		return fmt.Errorf("marking exchange closed: %w", err)
	}
	return nil
}

func isClosed(ctx context.Context, store ports.TenantStore, exchangeID string) bool {
	_, ok := store.Fetch(ctx, domain.CategoryClosed, exchangeID)
	return ok
}

func (wm *WebhookManager) connections(ctx context.Context, walletID string, payload map[string]any) error {
	var rec domain.ConnectionRecord
	if err := decodePayload(payload, &rec); err != nil {
		return err
	}
	if rec.ConnectionID == "" {
		return errors.New("connection without id")
	}
	ctx = log.With(ctx, "connection_id", rec.ConnectionID)

	conn := domain.Connection{
		ConnectionID: rec.ConnectionID,
		State:        rec.State,
		Label:        rec.TheirLabel,
		DID:          rec.TheirDID,
		Created:      rec.CreatedAt,
		Updated:      rec.UpdatedAt,
	}
	same := func(c domain.Connection) bool { return c.ConnectionID == conn.ConnectionID }
	store := wm.stores.Open(walletID)

	switch rec.State {
	case domain.ConnectionInvitation:
		added, err := insertItem(ctx, store, domain.CategoryConnections, walletID, conn, same)
		if err != nil {
			return err
		}
		log.Info(ctx, "connection invitation", "added", added)
		return nil
	case domain.ConnectionRequest, domain.ConnectionResponse:
		log.Info(ctx, "connection in progress")
		return nil
	case domain.ConnectionActive, domain.ConnectionCompleted:
		if err := upsertItem(ctx, store, domain.CategoryConnections, walletID, conn, same); err != nil {
			return err
		}
		wm.broadcaster.Broadcast(ctx, walletID, domain.EventConnectionActive, conn)
		return nil
	case domain.ConnectionAbandoned, domain.ConnectionDeleted:
		log.Info(ctx, "connection closed")
		return nil
	default:
		log.Warn(ctx, "unhandled connection state")
		return nil
	}
}

func (wm *WebhookManager) basicMessages(ctx context.Context, walletID string, payload map[string]any) error {
	var rec domain.BasicMessage
	if err := decodePayload(payload, &rec); err != nil {
		return err
	}

	switch rec.State {
	case domain.BasicMessageReceived:
		msg := domain.Message{
			ID:        rec.MessageID,
			Content:   rec.Content,
			Inbound:   true,
			Timestamp: firstNonEmpty(rec.SentTime, now()),
		}
		store := wm.stores.Open(walletID)
		added, err := insertItem(ctx, store, domain.CategoryMessages, rec.ConnectionID, msg, func(m domain.Message) bool {
			return m.ID != "" && m.ID == msg.ID
		})
		if err != nil {
			return err
		}
		if !added {
			log.Info(ctx, "message already received", "message_id", rec.MessageID)
			return nil
		}
		wm.broadcaster.Broadcast(ctx, walletID, domain.EventMessageReceived, domain.MessageReceived{
			ConnectionID: rec.ConnectionID,
			Sender:       wm.senderLabel(ctx, walletID, rec.ConnectionID),
			Message:      msg,
		})
		return nil
	case domain.BasicMessageSent:
		log.Debug(ctx, "message sent")
		return nil
	default:
		log.Warn(ctx, "unhandled basic message state")
		return nil
	}
}

// senderLabel names the peer of a connection, from the agent or from the stored connections
func (wm *WebhookManager) senderLabel(ctx context.Context, walletID string, connectionID string) string {
	if agent, ok := wm.wallets.SignIn(ctx, walletID); ok {
		if conn, ok := agent.GetConnection(ctx, connectionID); ok && conn.TheirLabel != "" {
			return conn.TheirLabel
		}
	}
	for _, c := range listItems[domain.Connection](ctx, wm.stores.Open(walletID), domain.CategoryConnections, walletID) {
		if c.ConnectionID == connectionID && c.Label != "" {
			return c.Label
		}
	}
	return unknownSender
}

// decodePayload decodes a webhook body into a typed record using its json field names
func decodePayload(payload map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(payload); err != nil {
		return fmt.Errorf("decoding webhook payload: %w", err)
	}
	return nil
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// normalizeTimestamp rewrites an agent timestamp as RFC 3339. Unreadable values become empty.
func normalizeTimestamp(ts string) string {
	if ts == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999Z07:00", "2006-01-02 15:04:05.999999Z07:00", "2006-01-02 15:04:05.999999Z"} {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.UTC().Format(time.RFC3339)
		}
	}
	return ""
}
