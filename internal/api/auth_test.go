package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polygonid/wallet-mediator/internal/config"
	"github.com/polygonid/wallet-mediator/internal/core/domain"
)

func TestServer_DevSignIn(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.get(t, nil, "/auth/dev")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	cookie := ts.signIn(t)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	rr = ts.get(t, nil, "/auth/dev?client_id="+testClientID+"&username=Alice")
	require.Equal(t, http.StatusOK, rr.Code)
	profile := decode[domain.Profile](t, rr)
	assert.Equal(t, testWalletID, profile.WalletID)
	assert.Equal(t, testMultikey(), profile.Multikey)
}

func TestServer_DevSignInProduction(t *testing.T) {
	ts := newTestServer(t)
	ts.cfg.Env = config.EnvProduction

	rr := ts.get(t, nil, "/auth/dev?client_id="+testClientID)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestServer_SessionRequired(t *testing.T) {
	ts := newTestServer(t)

	for _, tc := range []struct {
		name   string
		cookie *http.Cookie
	}{
		{name: "no cookie"},
		{name: "unknown session", cookie: &http.Cookie{Name: cookieName, Value: "forged"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			for _, path := range []string{"/notifications", "/credentials", "/connections", "/credentials/offers"} {
				rr := ts.get(t, tc.cookie, path)
				assert.Equal(t, http.StatusUnauthorized, rr.Code, path)
				assert.Equal(t, "unauthorized", decode[GenericErrorMessage](t, rr).Message)
			}
			assert.Equal(t, http.StatusOK, ts.get(t, tc.cookie, "/health").Code)
		})
	}
}

func TestServer_SignOut(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.signIn(t)
	require.Equal(t, http.StatusOK, ts.get(t, cookie, "/connections").Code)

	rr := ts.get(t, cookie, "/auth/logout")
	require.Equal(t, http.StatusOK, rr.Code)
	cleared := rr.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, cookieName, cleared[0].Name)
	assert.Empty(t, cleared[0].Value)

	assert.Equal(t, http.StatusUnauthorized, ts.get(t, cookie, "/connections").Code)
}

func TestServer_Health(t *testing.T) {
	ts := newTestServer(t)
	rr := ts.get(t, nil, "/health")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"storage": true}`, rr.Body.String())
}

func TestServer_Metrics(t *testing.T) {
	ts := newTestServer(t)
	ts.signIn(t)
	require.Equal(t, http.StatusOK, ts.webhook(t, string(domain.TopicPing), `{"state": "received"}`).Code)

	rr := ts.get(t, nil, "/metrics")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `webhook_events_total{state="received",topic="ping"} 1`)
	assert.Contains(t, rr.Body.String(), `http_endpoint_latency_seconds_count{endpoint="webhook"} 1`)
}
