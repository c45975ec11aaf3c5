package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polygonid/wallet-mediator/internal/core/domain"
	"github.com/polygonid/wallet-mediator/internal/core/ports"
)

func newCredentialsService(env *testEnv) ports.CredentialsService {
	return NewCredentials(env.stores, env.wallets, env.notifications, NewMatcher())
}

// receiveOffer runs the offer-received webhook of ex1
func receiveOffer(t *testing.T, env *testEnv) {
	t.Helper()
	withIssuer(env.agent)
	require.NoError(t, newManager(env, nil).Handle(context.Background(), testWalletID, "issue_credential_v2_0", payload(t, offerReceived)))
	env.drain()
}

func storeCredential(t *testing.T, env *testEnv, in BeautifyInput) {
	t.Helper()
	credential, tags := Beautify(in)
	require.NoError(t, env.store().Store(context.Background(), domain.CategoryCredentials, credential.ID, credential, tags))
}

func TestCredentials_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newCredentialsService(env)

	storeCredential(t, env, BeautifyInput{ExchangeID: "ex1", SchemaID: "S1", SchemaName: "Degree", Attributes: map[string]string{"name": "Alice"}})
	storeCredential(t, env, BeautifyInput{ExchangeID: "ex2", SchemaID: "S2", SchemaName: "Membership", Attributes: map[string]string{"level": "gold"}})
	require.NoError(t, env.notifications.Create(ctx, testWalletID, domain.NewNotification("ex1", domain.NotificationCredentialOffer, "stale", nil)))
	env.drain()

	all := svc.List(ctx, testWalletID, nil)
	require.Len(t, all, 2)
	assert.Equal(t, "urn:uuid:ex1", all[0].ID())
	assert.Equal(t, "urn:uuid:ex2", all[1].ID())

	filtered := svc.List(ctx, testWalletID, domain.Tags{TagSchemaID: "S2"})
	require.Len(t, filtered, 1)
	assert.Equal(t, "Membership", filtered[0].Name())

	require.NoError(t, svc.Delete(ctx, testWalletID, "urn:uuid:ex1"))
	assert.Len(t, svc.List(ctx, testWalletID, nil), 1)
	assert.Empty(t, env.notifications.List(ctx, testWalletID))
	events := env.drain()
	require.Len(t, events, 1)
	assert.Equal(t, domain.NotificationRemoved{ExchangeID: "ex1", Reason: "deleted"}, events[0].Data)

	assert.ErrorIs(t, svc.Delete(ctx, testWalletID, "urn:uuid:ex1"), ErrCredentialNotFound)
}

func TestCredentials_ViewOffer(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newCredentialsService(env)
	receiveOffer(t, env)

	view, err := svc.ViewOffer(ctx, testWalletID, "ex1")
	require.NoError(t, err)
	assert.Equal(t, &domain.OfferView{
		ExchangeID:     "ex1",
		CredentialName: "University Degree",
		IssuerName:     "Faber College",
		IssuerImage:    "https://faber.example/logo.png",
		Attributes:     map[string]string{"name": "Alice", "degree": "BSc"},
		State:          "offer-received",
	}, view)

	env.wallets.agent = nil
	view, err = svc.ViewOffer(ctx, testWalletID, "ex1")
	require.NoError(t, err)
	assert.Equal(t, "Credential", view.CredentialName)
	assert.Equal(t, "Unknown Issuer", view.IssuerName)

	_, err = svc.ViewOffer(ctx, testWalletID, "missing")
	assert.ErrorIs(t, err, ErrExchangeNotFound)
}

func TestCredentials_AcceptOffer(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newCredentialsService(env)
	receiveOffer(t, env)

	require.NoError(t, svc.AcceptOffer(ctx, testWalletID, "ex1"))
	assert.Contains(t, env.agent.called(), "send-request:ex1")
	// the offer stays pending until the agent reports the request
	assert.Len(t, svc.Offers(ctx, testWalletID), 1)
	assert.Len(t, env.notifications.List(ctx, testWalletID), 1)

	assert.ErrorIs(t, svc.AcceptOffer(ctx, testWalletID, "missing"), ErrExchangeNotFound)

	env.agent.fail = true
	assert.ErrorIs(t, svc.AcceptOffer(ctx, testWalletID, "ex1"), ErrAgentUnavailable)
}

func TestCredentials_DeclineOffer(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newCredentialsService(env)
	receiveOffer(t, env)

	require.NoError(t, svc.DeclineOffer(ctx, testWalletID, "ex1"))
	assert.Contains(t, env.agent.called(), "decline-offer:ex1")
	assert.Empty(t, svc.Offers(ctx, testWalletID))
	assert.Empty(t, env.notifications.List(ctx, testWalletID))
	events := env.drain()
	require.Len(t, events, 1)
	assert.Equal(t, domain.NotificationRemoved{ExchangeID: "ex1", Reason: "declined"}, events[0].Data)

	assert.ErrorIs(t, svc.DeclineOffer(ctx, testWalletID, "ex1"), ErrExchangeNotFound)
}

func TestCredentials_DeclineOfferAgentFailure(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newCredentialsService(env)
	receiveOffer(t, env)
	env.agent.fail = true

	assert.ErrorIs(t, svc.DeclineOffer(ctx, testWalletID, "ex1"), ErrAgentUnavailable)
	assert.Len(t, svc.Offers(ctx, testWalletID), 1)
	assert.Len(t, env.notifications.List(ctx, testWalletID), 1)
}

const ageRequest = `{
	"state": "request-received",
	"pres_ex_id": "p1",
	"connection_id": "c2",
	"by_format": {"pres_request": {"anoncreds": {
		"name": "Proof of age",
		"requested_attributes": {"attr1": {"names": ["name"], "restrictions": [{"schema_id": "S1"}]}},
		"requested_predicates": {"pred1": {"name": "age", "p_type": ">=", "p_value": 18}}
	}}}
}`

func receivePresentationRequest(t *testing.T, env *testEnv) {
	t.Helper()
	env.agent.connections["c2"] = &domain.ConnectionRecord{ConnectionID: "c2", TheirLabel: "Acme"}
	require.NoError(t, newManager(env, nil).Handle(context.Background(), testWalletID, "present_proof_v2_0", payload(t, ageRequest)))
	env.drain()
}

func TestCredentials_ViewPresentationRequest(t *testing.T) {
	for _, tc := range []struct {
		name       string
		age        string
		canRespond bool
	}{
		{name: "adult", age: "30", canRespond: true},
		{name: "minor", age: "17", canRespond: false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			env := newTestEnv(t)
			svc := newCredentialsService(env)
			receivePresentationRequest(t, env)
			storeCredential(t, env, BeautifyInput{
				ExchangeID: "ex1",
				SchemaID:   "S1",
				SchemaName: "Identity",
				IssuerName: "Gov",
				Attributes: map[string]string{"name": "Alice", "age": tc.age},
			})

			view, err := svc.ViewPresentationRequest(ctx, testWalletID, "p1")
			require.NoError(t, err)
			assert.Equal(t, "p1", view.ExchangeID)
			assert.Equal(t, "Acme", view.VerifierName)
			assert.Equal(t, "Proof of age", view.RequestName)
			require.Len(t, view.MatchedAttributes, 1)
			assert.Equal(t, "attr1_name", view.MatchedAttributes[0].ID)
			assert.Equal(t, "Alice", view.MatchedAttributes[0].Value)
			assert.Equal(t, "Gov", view.MatchedAttributes[0].IssuerName)
			require.Len(t, view.MatchedPredicates, 1)
			assert.True(t, view.MatchedPredicates[0].HasMatch)
			assert.Equal(t, tc.canRespond, view.MatchedPredicates[0].MeetsCondition)
			assert.Equal(t, tc.canRespond, view.CanRespond)
		})
	}
}

func TestCredentials_ViewPresentationRequestFromAgent(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newCredentialsService(env)
	env.agent.presExchanges["p9"] = &domain.PresExRecord{
		PresExID:     "p9",
		ConnectionID: "c9",
		ByFormat: domain.PresExByFormat{PresRequest: domain.PresExFormat{Indy: &domain.AnonCredsProofRequest{
			RequestedAttributes: map[string]domain.RequestedAttribute{"a": {Name: "email"}},
		}}},
	}

	view, err := svc.ViewPresentationRequest(ctx, testWalletID, "p9")
	require.NoError(t, err)
	assert.Equal(t, "Unknown Verifier", view.VerifierName)
	assert.Equal(t, "Presentation Request", view.RequestName)
	require.Len(t, view.MatchedAttributes, 1)
	assert.False(t, view.MatchedAttributes[0].HasMatch)
	assert.False(t, view.CanRespond)

	_, err = svc.ViewPresentationRequest(ctx, testWalletID, "missing")
	assert.ErrorIs(t, err, ErrExchangeNotFound)
}

func TestCredentials_RespondPresentationRequest(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newCredentialsService(env)
	receivePresentationRequest(t, env)

	to := int64(1700000000)
	env.agent.matching["p1"] = []domain.MatchingCredential{
		{CredInfo: domain.CredInfo{Referent: "cred-a"}, PresentationReferents: []string{"attr1"}},
		{CredInfo: domain.CredInfo{Referent: "cred-b"}, PresentationReferents: []string{"attr1", "pred1"}, Interval: &domain.NonRevokedInterval{To: &to}},
	}

	require.NoError(t, svc.RespondPresentationRequest(ctx, testWalletID, "p1"))
	assert.Contains(t, env.agent.called(), "send-presentation:p1")

	spec := env.agent.sentSpecs["p1"]
	require.Contains(t, spec.AnonCreds.RequestedAttributes, "attr1")
	attr := spec.AnonCreds.RequestedAttributes["attr1"]
	assert.Equal(t, "cred-a", attr.CredID)
	require.NotNil(t, attr.Revealed)
	assert.True(t, *attr.Revealed)
	assert.Nil(t, attr.Timestamp)

	pred := spec.AnonCreds.RequestedPredicates["pred1"]
	assert.Equal(t, "cred-b", pred.CredID)
	assert.Nil(t, pred.Revealed)
	require.NotNil(t, pred.Timestamp)
	assert.Equal(t, to, *pred.Timestamp)
	assert.Empty(t, spec.AnonCreds.SelfAttestedAttributes)
}

func TestCredentials_RespondPresentationRequestUnsatisfied(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newCredentialsService(env)
	receivePresentationRequest(t, env)
	env.agent.matching["p1"] = []domain.MatchingCredential{
		{CredInfo: domain.CredInfo{Referent: "cred-a"}, PresentationReferents: []string{"attr1"}},
	}

	err := svc.RespondPresentationRequest(ctx, testWalletID, "p1")
	assert.ErrorIs(t, err, ErrQueryUnsatisfied)
	assert.NotContains(t, env.agent.called(), "send-presentation:p1")

	env.wallets.agent = nil
	assert.ErrorIs(t, svc.RespondPresentationRequest(ctx, testWalletID, "p1"), ErrAgentUnavailable)
}

func TestCredentials_DeclinePresentationRequest(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newCredentialsService(env)
	receivePresentationRequest(t, env)

	require.NoError(t, svc.DeclinePresentationRequest(ctx, testWalletID, "p1"))
	assert.Contains(t, env.agent.called(), "delete-presentation:p1")
	assert.Empty(t, env.notifications.List(ctx, testWalletID))
	assert.Empty(t, listItems[domain.PresentationRequest](ctx, env.store(), domain.CategoryPresRequests, testWalletID))
	events := env.drain()
	require.Len(t, events, 1)
	assert.Equal(t, domain.NotificationRemoved{ExchangeID: "p1", Reason: "declined"}, events[0].Data)

	// the agent redelivering the request does not reopen it
	require.NoError(t, newManager(env, nil).Handle(ctx, testWalletID, "present_proof_v2_0", payload(t, ageRequest)))
	assert.Empty(t, env.notifications.List(ctx, testWalletID))
	assert.Empty(t, env.drain())
}

func TestCredentials_Connections(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newCredentialsService(env)
	assert.Empty(t, svc.Connections(ctx, testWalletID))

	require.NoError(t, newManager(env, nil).Handle(ctx, testWalletID, "connections", payload(t, `{"state": "active", "connection_id": "c1", "their_label": "Faber"}`)))
	connections := svc.Connections(ctx, testWalletID)
	require.Len(t, connections, 1)
	assert.Equal(t, "Faber", connections[0].Label)
}
