package gateways

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polygonid/wallet-mediator/internal/core/domain"
	httpclient "github.com/polygonid/wallet-mediator/pkg/http"
)

const (
	testAPIKey = "admin-key"
	testToken  = "tenant-token"
)

func newTestAgent(t *testing.T, mux *http.ServeMux) *Agent {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewAgent(httpclient.NewClient(http.Client{}), srv.URL, testAPIKey)
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	body, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestAgent_CreateSubWallet(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /multitenancy/wallet", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, testAPIKey, r.Header.Get("X-API-KEY"))
		body := decodeBody(t, r)
		assert.Equal(t, "askar-anoncreds", body["wallet_type"])
		assert.Equal(t, "managed", body["key_management_mode"])
		assert.Equal(t, "client-1", body["wallet_name"])
		assert.Equal(t, "secret", body["wallet_key"])
		writeJSON(t, w, map[string]any{"wallet_id": "w1", "token": testToken})
	})
	agent := newTestAgent(t, mux)

	wallet, ok := agent.CreateSubWallet(context.Background(), "Wallet - client-1", "client-1", "secret")
	require.True(t, ok)
	assert.Equal(t, "w1", wallet.WalletID)
	assert.Equal(t, testToken, wallet.Token)
}

func TestAgent_RequestToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /multitenancy/wallet/{id}/token", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, testAPIKey, r.Header.Get("X-API-KEY"))
		if r.PathValue("id") != "w1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		assert.Equal(t, "secret", decodeBody(t, r)["wallet_key"])
		writeJSON(t, w, map[string]string{"token": testToken})
	})
	agent := newTestAgent(t, mux)

	token, ok := agent.RequestToken(context.Background(), "w1", "secret")
	require.True(t, ok)
	assert.Equal(t, testToken, token)

	_, ok = agent.RequestToken(context.Background(), "w2", "secret")
	assert.False(t, ok)
}

func TestTenantAgent_BearerToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /connections/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+testToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(t, w, domain.ConnectionRecord{ConnectionID: r.PathValue("id"), TheirLabel: "Faber", State: domain.ConnectionActive})
	})
	agent := newTestAgent(t, mux)

	conn, ok := agent.ForTenant(testToken).GetConnection(context.Background(), "c1")
	require.True(t, ok)
	assert.Equal(t, "Faber", conn.TheirLabel)
	assert.Equal(t, "c1", conn.ConnectionID)

	_, ok = agent.ForTenant("another").GetConnection(context.Background(), "c1")
	assert.False(t, ok)

	_, ok = agent.ForTenant(testToken).GetConnection(context.Background(), "")
	assert.False(t, ok)
}

func TestTenantAgent_AbsentOnError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /anoncreds/schema/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	})
	mux.HandleFunc("GET /anoncreds/credential-definition/{id}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})
	mux.HandleFunc("POST /issue-credential-2.0/records/{id}/send-request", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	agent := newTestAgent(t, mux).ForTenant(testToken)
	ctx := context.Background()

	_, ok := agent.GetSchema(ctx, "S")
	assert.False(t, ok)
	_, ok = agent.GetCredentialDefinition(ctx, "D")
	assert.False(t, ok)
	assert.False(t, agent.SendCredentialRequest(ctx, "ex1"))
	_, ok = agent.GetCredentialExchange(ctx, "missing")
	assert.False(t, ok)
}

func TestTenantAgent_CredentialExchange(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /issue-credential-2.0/records/{id}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"cred_ex_record": {
			"cred_ex_id": "ex1", "connection_id": "c1", "state": "offer-received",
			"cred_offer": {"comment": "hi", "credential_preview": {"attributes": [{"name": "age", "value": "30"}]}},
			"by_format": {"cred_offer": {"anoncreds": {"schema_id": "S", "cred_def_id": "did:web:x/D"}}}
		}}`))
	})
	var declined map[string]any
	mux.HandleFunc("POST /issue-credential-2.0/records/{id}/problem-report", func(w http.ResponseWriter, r *http.Request) {
		declined = decodeBody(t, r)
		writeJSON(t, w, map[string]any{})
	})
	agent := newTestAgent(t, mux).ForTenant(testToken)
	ctx := context.Background()

	record, ok := agent.GetCredentialExchange(ctx, "ex1")
	require.True(t, ok)
	assert.Equal(t, domain.CredExOfferReceived, record.State)
	assert.Equal(t, map[string]string{"age": "30"}, record.Attributes())
	assert.Equal(t, "S", record.SchemaID())
	assert.Equal(t, "did:web:x/D", record.CredDefID())
	assert.Equal(t, "hi", record.Comment())

	assert.True(t, agent.DeclineCredentialOffer(ctx, "ex1", "declined"))
	assert.Equal(t, "declined", declined["description"])
}

func TestTenantAgent_PresentationExchange(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /present-proof-2.0/records/{id}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"pres_ex_id": "p1", "connection_id": "c1", "state": "request-received",
			"by_format": {"pres_request": {"anoncreds": {"name": "Proof of age",
				"requested_attributes": {"attr1": {"names": ["name"]}},
				"requested_predicates": {"pred1": {"name": "age", "p_type": ">=", "p_value": 18}}}}}}`))
	})
	mux.HandleFunc("GET /present-proof-2.0/records/{id}/credentials", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"cred_info": {"referent": "cred-1"}, "presentation_referents": ["attr1", "pred1"]}]`))
	})
	var spec domain.PresentationSpec
	mux.HandleFunc("POST /present-proof-2.0/records/{id}/send-presentation", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&spec))
		writeJSON(t, w, map[string]any{})
	})
	deleted := false
	mux.HandleFunc("DELETE /present-proof-2.0/records/{id}", func(w http.ResponseWriter, r *http.Request) {
		deleted = true
		writeJSON(t, w, map[string]any{})
	})
	agent := newTestAgent(t, mux).ForTenant(testToken)
	ctx := context.Background()

	record, ok := agent.GetPresentationExchange(ctx, "p1")
	require.True(t, ok)
	req := record.ByFormat.PresRequest.Request()
	assert.Equal(t, "Proof of age", req.Name)
	assert.Equal(t, []string{"name"}, req.RequestedAttributes["attr1"].AttributeNames())

	matches, ok := agent.GetMatchingCredentials(ctx, "p1")
	require.True(t, ok)
	require.Len(t, matches, 1)
	assert.Equal(t, "cred-1", matches[0].CredInfo.Referent)

	assert.True(t, agent.SendPresentation(ctx, "p1", domain.PresentationSpec{AnonCreds: domain.AnonCredsPresSpec{
		RequestedAttributes: map[string]domain.RequestedCredential{"attr1": {CredID: "cred-1"}},
	}}))
	assert.Equal(t, "cred-1", spec.AnonCreds.RequestedAttributes["attr1"].CredID)

	assert.True(t, agent.DeletePresentationExchange(ctx, "p1"))
	assert.True(t, deleted)
}

func TestTenantAgent_SignPresentation(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /vc/presentations/prove", func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		options := body["options"].(map[string]any)
		assert.Equal(t, "Ed25519Signature2020", options["proofType"])
		assert.Equal(t, "authentication", options["proofPurpose"])
		presentation := body["presentation"].(map[string]any)
		writeJSON(t, w, map[string]any{"verifiablePresentation": map[string]any{
			"@context": presentation["@context"],
			"type":     presentation["type"],
			"holder":   presentation["holder"],
			"proof":    map[string]any{"type": "Ed25519Signature2020"},
		}})
	})
	agent := newTestAgent(t, mux).ForTenant(testToken)

	vp, ok := agent.SignPresentation(context.Background(), domain.Presentation{
		Context: []string{domain.ContextCredentialsV2},
		Type:    []string{domain.TypeVerifiablePresentation},
		Holder:  "did:key:z6Mk",
	}, domain.ProofOptions{ProofType: domain.TypeEd25519Signature2020, ProofPurpose: "authentication"})
	require.True(t, ok)
	assert.Equal(t, "did:key:z6Mk", vp.Holder)
	assert.NotNil(t, vp.Proof)
}

func TestTenantAgent_KeysInvitationsCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /wallet/keys", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ed25519", decodeBody(t, r)["alg"])
		writeJSON(t, w, domain.WalletKey{Multikey: "z6MkTest"})
	})
	mux.HandleFunc("POST /out-of-band/receive-invitation", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "https://didcomm.org/out-of-band/1.1/invitation", decodeBody(t, r)["@type"])
		writeJSON(t, w, domain.OobRecord{OobID: "o1", State: "deleted", ConnectionID: "c1"})
	})
	mux.HandleFunc("GET /credentials", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"results": []domain.CredInfo{{Referent: "r1"}, {Referent: "r2"}}})
	})
	mux.HandleFunc("GET /credential/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, domain.CredInfo{Referent: r.PathValue("id")})
	})
	agent := newTestAgent(t, mux).ForTenant(testToken)
	ctx := context.Background()

	key, ok := agent.CreateKey(ctx)
	require.True(t, ok)
	assert.Equal(t, "z6MkTest", key.Multikey)

	oob, ok := agent.ReceiveInvitation(ctx, map[string]any{"@type": "https://didcomm.org/out-of-band/1.1/invitation"})
	require.True(t, ok)
	assert.Equal(t, "c1", oob.ConnectionID)

	creds, ok := agent.ListCredentials(ctx)
	require.True(t, ok)
	assert.Len(t, creds, 2)

	cred, ok := agent.GetCredential(ctx, "r2")
	require.True(t, ok)
	assert.Equal(t, "r2", cred.Referent)
}
