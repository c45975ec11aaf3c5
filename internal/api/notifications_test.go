package api

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polygonid/wallet-mediator/internal/core/domain"
)

func TestServer_DeleteNotification(t *testing.T) {
	ts := newTestServer(t)
	ts.agent.withIssuer()
	cookie := ts.signIn(t)
	require.Equal(t, http.StatusOK, ts.webhook(t, string(domain.TopicIssueCredentialV2), offerReceived).Code)
	require.Len(t, decode[[]domain.Notification](t, ts.get(t, cookie, "/notifications")), 1)

	rr := ts.send(t, cookie, http.MethodDelete, "/notifications/ex1", "", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Empty(t, decode[[]domain.Notification](t, ts.get(t, cookie, "/notifications")))

	rr = ts.send(t, cookie, http.MethodDelete, "/notifications/ex1", "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

// nextEvent reads the stream until the next data line, skipping comments
func nextEvent(t *testing.T, r *bufio.Reader, keepalives *int) domain.Event {
	t.Helper()
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		switch {
		case line == ": keepalive":
			*keepalives++
		case strings.HasPrefix(line, "data: "):
			var ev domain.Event
			require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev))
			return ev
		}
	}
}

func TestServer_NotificationStream(t *testing.T) {
	ts := newTestServer(t)
	ts.agent.withIssuer()
	cookie := ts.signIn(t)

	srv := httptest.NewServer(ts.handler)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/notifications/stream", nil)
	require.NoError(t, err)
	req.AddCookie(cookie)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	keepalives := 0
	first := nextEvent(t, reader, &keepalives)
	assert.Equal(t, domain.EventConnected, first.Type)
	assert.Equal(t, 1, ts.broadcaster.Subscribers(testWalletID))

	require.Equal(t, http.StatusOK, ts.webhook(t, string(domain.TopicIssueCredentialV2), offerReceived).Code)
	created := nextEvent(t, reader, &keepalives)
	assert.Equal(t, domain.EventNotificationCreated, created.Type)
	data, ok := created.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ex1", data["id"])

	// a keepalive is written while nothing happens
	for keepalives == 0 {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		if strings.TrimRight(line, "\n") == ": keepalive" {
			keepalives++
		}
	}

	cancel()
	assert.Eventually(t, func() bool {
		return ts.broadcaster.Subscribers(testWalletID) == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestServer_NotificationStreamRequiresSession(t *testing.T) {
	ts := newTestServer(t)
	rr := ts.get(t, nil, "/notifications/stream")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
