package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polygonid/wallet-mediator/internal/core/domain"
	"github.com/polygonid/wallet-mediator/internal/metrics"
	client "github.com/polygonid/wallet-mediator/pkg/http"
)

const (
	scannedInvitation      = `{"@type": "https://didcomm.org/out-of-band/1.1/invitation", "@id": "i1", "label": "Faber", "goal_code": "issue-vc"}`
	scannedProofInvitation = `{"@type": "https://didcomm.org/out-of-band/1.1/invitation", "@id": "i2", "requests~attach": [{"@id": "r1"}]}`

	issuedPresentation = `{"verifiablePresentation": {
		"@context": ["https://www.w3.org/ns/credentials/v2"],
		"type": ["VerifiablePresentation"],
		"verifiableCredential": [
			{"@context": ["https://www.w3.org/ns/credentials/v2"], "id": "urn:uuid:vc1", "type": ["VerifiableCredential", "UniversityDegree"], "name": "Degree", "issuer": {"id": "did:web:faber", "name": "Faber"}, "credentialSubject": {"degree": "BSc"}, "proof": {"type": "DataIntegrityProof", "cryptosuite": "eddsa-rdfc-2022"}},
			{"@context": ["https://www.w3.org/ns/credentials/v2"], "type": ["VerifiableCredential"], "issuer": "did:web:acme", "credentialSubject": {"member": true}}
		]
	}}`

	presentationRequest = `{"verifiablePresentationRequest": {
		"query": [
			{"type": "DIDAuthentication", "acceptedMethods": [{"method": "key"}]},
			{"type": "QueryByExample", "credentialQuery": {"reason": "proof of degree", "example": {"type": ["UniversityDegree"]}, "acceptedCryptosuites": ["eddsa-rdfc-2022"]}}
		],
		"challenge": "c-123",
		"domain": "verifier.example"
	}}`
)

// exchangeServer plays the third party endpoints a scanned payload leads to
type exchangeServer struct {
	*httptest.Server
	mu       sync.Mutex
	received []json.RawMessage
	failed   int
}

func newExchangeServer(t *testing.T) *exchangeServer {
	t.Helper()
	s := &exchangeServer{}
	mux := http.NewServeMux()
	write := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, body)
		}
	}
	interaction := func(exchange string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			write(`{"protocols": {"vcapi": "` + s.URL + exchange + `"}}`)(w, r)
		}
	}
	mux.HandleFunc("/oob", write(scannedInvitation))
	mux.HandleFunc("/interactions/issue", interaction("/exchanges/issue"))
	mux.HandleFunc("/interactions/verify", interaction("/exchanges/verify"))
	mux.HandleFunc("/interactions/redirect", interaction("/exchanges/redirect"))
	mux.HandleFunc("/interactions/none", write(`{"protocols": {}}`))
	mux.HandleFunc("/interactions/broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/interactions/failing", interaction("/exchanges/failing"))
	mux.HandleFunc("/exchanges/failing", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.failed++
		s.mu.Unlock()
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	mux.HandleFunc("/exchanges/issue", write(issuedPresentation))
	mux.HandleFunc("/exchanges/redirect", write(`{"redirectUrl": "https://verifier.example/done"}`))
	mux.HandleFunc("/exchanges/verify", func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		s.mu.Lock()
		s.received = append(s.received, body)
		first := len(s.received) == 1
		s.mu.Unlock()
		if first {
			write(presentationRequest)(w, r)
			return
		}
		write(`{"redirectUrl": "https://verifier.example/thanks"}`)(w, r)
	})
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func newScanner(env *testEnv, m *metrics.Metrics) *Scanner {
	return NewScanner(env.stores, env.wallets, env.broadcaster, NewMatcher(), client.NewClient(http.Client{}), m)
}

func TestScanner_Invitations(t *testing.T) {
	srv := newExchangeServer(t)
	encode := func(s string) string { return base64.RawURLEncoding.EncodeToString([]byte(s)) }

	for _, tc := range []struct {
		name     string
		payload  string
		expected domain.ScanResultType
		id       string
	}{
		{name: "inline", payload: "https://faber.example/?oob=" + encode(scannedInvitation), expected: domain.ScanOOBInvitation, id: "i1"},
		{name: "connectionless proof request", payload: "didcomm://invite?oob=" + encode(scannedProofInvitation), expected: domain.ScanOOBPresentationRequest, id: "i2"},
		{name: "by reference", payload: srv.URL + "/oob?_oobid=abc", expected: domain.ScanOOBInvitation, id: "i1"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			env := newTestEnv(t)
			env.agent.oob = &domain.OobRecord{OobID: "oob-1", ConnectionID: "c1"}

			result, err := newScanner(env, nil).Scan(ctx, testWalletID, tc.payload)
			require.NoError(t, err)
			assert.Equal(t, &domain.ScanResult{Type: tc.expected, OobID: "oob-1", ConnectionID: "c1", Forwarded: true}, result)
			require.Len(t, env.agent.invitations, 1)
			assert.Equal(t, tc.id, env.agent.invitations[0]["@id"])
			assert.NotContains(t, env.agent.invitations[0], "goal_code")
		})
	}
}

func TestScanner_InvitationNotForwarded(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	payload := "https://faber.example/?c_i=" + base64.RawURLEncoding.EncodeToString([]byte(`{"@type": "https://didcomm.org/connections/1.0/invitation"}`))

	result, err := newScanner(env, nil).Scan(ctx, testWalletID, payload)
	require.NoError(t, err)
	assert.Equal(t, domain.ScanOOBInvitation, result.Type)
	assert.False(t, result.Forwarded)
	assert.Empty(t, env.agent.invitations)
}

func TestScanner_InvitationAgentFailure(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	payload := "https://faber.example/?oob=" + base64.RawURLEncoding.EncodeToString([]byte(scannedInvitation))

	_, err := newScanner(env, nil).Scan(ctx, testWalletID, payload)
	assert.ErrorIs(t, err, ErrAgentUnavailable)
}

func TestScanner_Unknown(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	m := metrics.New(prometheus.NewRegistry())
	s := newScanner(env, m)

	for _, payload := range []string{"hello", "https://example.com/page", "https://faber.example/?oob=%%%"} {
		result, err := s.Scan(ctx, testWalletID, payload)
		require.NoError(t, err, payload)
		assert.Equal(t, domain.ScanUnknown, result.Type, payload)
	}
	assert.Equal(t, float64(3), testutil.ToFloat64(m.ScanResults.WithLabelValues("unknown")))
}

func TestScanner_InteractionStoresCredentials(t *testing.T) {
	ctx := context.Background()
	srv := newExchangeServer(t)
	env := newTestEnv(t)
	m := metrics.New(prometheus.NewRegistry())
	s := newScanner(env, m)

	result, err := s.Scan(ctx, testWalletID, srv.URL+"/interactions/issue?iuv=1")
	require.NoError(t, err)
	assert.Equal(t, &domain.ScanResult{Type: domain.ScanInteractionURL, CredentialsStored: 2}, result)

	held := storedCredentials(t, env)
	require.Len(t, held, 2)
	assert.Equal(t, "urn:uuid:vc1", held[0].ID())
	assert.Regexp(t, `^urn:uuid:[0-9a-f-]{36}$`, held[1].ID())

	events := env.drain()
	assert.Equal(t, []domain.EventType{domain.EventCredentialReceived, domain.EventCredentialReceived}, eventTypes(events))
	assert.Equal(t, "did:web:faber", events[0].Data.(domain.CredentialReceived).Tags[TagIssuerID])

	// the credential with an id is not stored twice
	result, err = s.Scan(ctx, testWalletID, srv.URL+"/interactions/issue?iuv=1")
	require.NoError(t, err)
	assert.Equal(t, 1, result.CredentialsStored)
	assert.Len(t, storedCredentials(t, env), 3)
	assert.Equal(t, float64(2), testutil.ToFloat64(m.ScanResults.WithLabelValues("iuv")))
}

func TestScanner_InteractionPresents(t *testing.T) {
	ctx := context.Background()
	srv := newExchangeServer(t)
	env := newTestEnv(t)
	storeCredential(t, env, BeautifyInput{ExchangeID: "anoncreds", SchemaName: "Membership Card", CredDefID: "did:web:faber/D"})
	degree, err := domain.ParseDocument([]byte(`{"@context": ["https://www.w3.org/ns/credentials/v2"], "id": "urn:uuid:vc1", "type": ["VerifiableCredential", "UniversityDegree"], "issuer": "did:web:faber", "credentialSubject": {"degree": "BSc"}, "proof": [{"type": "DataIntegrityProof", "cryptosuite": "eddsa-rdfc-2022", "proofValue": "z1"}, {"type": "Ed25519Signature2020"}]}`))
	require.NoError(t, err)
	require.NoError(t, env.store().Store(ctx, domain.CategoryCredentials, degree.ID(), degree, nil))
	env.agent.signed = &domain.VerifiablePresentation{Type: domain.StringSet{"VerifiablePresentation"}, Holder: "did:key:" + testMultikey(), Proof: map[string]any{"type": "Ed25519Signature2020"}}

	result, err := newScanner(env, nil).Scan(ctx, testWalletID, srv.URL+"/interactions/verify?iuv=1")
	require.NoError(t, err)
	assert.Equal(t, &domain.ScanResult{Type: domain.ScanInteractionURL, PresentationSent: true, RedirectURL: "https://verifier.example/thanks"}, result)

	require.Len(t, env.agent.signRequests, 1)
	presentation := env.agent.signRequests[0]
	assert.Equal(t, "did:key:"+testMultikey(), presentation.Holder)
	require.Len(t, presentation.VerifiableCredential, 1)
	assert.Equal(t, "urn:uuid:vc1", presentation.VerifiableCredential[0].ID())
	assert.Equal(t, "z1", presentation.VerifiableCredential[0]["proof"].(map[string]any)["proofValue"])

	require.Len(t, srv.received, 2)
	assert.JSONEq(t, `{}`, string(srv.received[0]))
	var sent domain.VerifiablePresentation
	require.NoError(t, json.Unmarshal(srv.received[1], &sent))
	assert.Equal(t, env.agent.signed.Holder, sent.Holder)

	events := env.drain()
	require.Equal(t, []domain.EventType{domain.EventPresentationSent}, eventTypes(events))
	assert.Equal(t, domain.PresentationSent{
		ExchangeURL: srv.URL + "/exchanges/verify",
		Domain:      "verifier.example",
		Reasons:     []string{"proof of degree"},
	}, events[0].Data)
}

func TestScanner_InteractionCannotPresent(t *testing.T) {
	ctx := context.Background()
	srv := newExchangeServer(t)
	env := newTestEnv(t)

	_, err := newScanner(env, nil).Scan(ctx, testWalletID, srv.URL+"/interactions/verify?iuv=1")
	assert.ErrorIs(t, err, ErrQueryUnsatisfied)
	assert.Empty(t, env.agent.signRequests)
	assert.Empty(t, env.drain())
}

func TestScanner_InteractionOutcomes(t *testing.T) {
	srv := newExchangeServer(t)
	for _, tc := range []struct {
		name     string
		path     string
		expected *domain.ScanResult
		err      error
	}{
		{name: "redirect", path: "/interactions/redirect?iuv=1", expected: &domain.ScanResult{Type: domain.ScanInteractionURL, RedirectURL: "https://verifier.example/done"}},
		{name: "no vc api", path: "/interactions/none?iuv=1", expected: &domain.ScanResult{Type: domain.ScanInteractionURL}},
		{name: "unreachable", path: "/interactions/broken?iuv=1", err: ErrExchangeFailed},
	} {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			result, err := newScanner(env, nil).Scan(context.Background(), testWalletID, srv.URL+tc.path)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestScanner_ExchangePostsAreNotReplayed(t *testing.T) {
	srv := newExchangeServer(t)
	env := newTestEnv(t)
	scanner := NewScanner(env.stores, env.wallets, env.broadcaster, NewMatcher(), client.NewRetryableClient(5*time.Second, 2), nil)

	_, err := scanner.Scan(context.Background(), testWalletID, srv.URL+"/interactions/failing?iuv=1")
	assert.ErrorIs(t, err, ErrExchangeFailed)

	srv.mu.Lock()
	defer srv.mu.Unlock()
	assert.Equal(t, 1, srv.failed)
}
