package api

import (
	"encoding/base64"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polygonid/wallet-mediator/internal/core/domain"
)

func TestServer_Scan(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.signIn(t)

	invitation := base64.RawURLEncoding.EncodeToString([]byte(`{"@type": "https://didcomm.org/out-of-band/1.1/invitation", "@id": "i1", "label": "Faber"}`))
	oob := "https://faber.example/invite?oob=" + invitation

	for _, tc := range []struct {
		name        string
		contentType string
		body        string
		expected    int
		result      domain.ScanResultType
		undecoded   bool
	}{
		{name: "json invitation", contentType: "application/json", body: `{"payload": "` + oob + `"}`, expected: http.StatusOK, result: domain.ScanOOBInvitation},
		{name: "form invitation", contentType: "application/x-www-form-urlencoded", body: url.Values{"payload": {oob}}.Encode(), expected: http.StatusOK, result: domain.ScanOOBInvitation},
		{name: "unknown payload", contentType: "application/json", body: `{"payload": "hello"}`, expected: http.StatusOK, result: domain.ScanUnknown},
		{name: "empty payload", contentType: "application/json", body: `{"payload": " "}`, expected: http.StatusBadRequest},
		{name: "missing payload", contentType: "application/x-www-form-urlencoded", body: "", expected: http.StatusBadRequest},
		{name: "invalid json", contentType: "application/json", body: `{"payload":`, expected: http.StatusBadRequest, undecoded: true},
		{name: "no content type", body: `{"payload": "hello"}`, expected: http.StatusBadRequest},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rr := ts.send(t, cookie, http.MethodPost, "/scanner", tc.contentType, strings.NewReader(tc.body))
			require.Equal(t, tc.expected, rr.Code, rr.Body.String())
			if tc.undecoded {
				assert.Contains(t, decode[GenericErrorMessage](t, rr).Message, "can't decode JSON body")
				return
			}
			resp := decode[ScanResponse](t, rr)
			if tc.expected != http.StatusOK {
				assert.Equal(t, ScanResponseStatusError, resp.Status)
				assert.NotEmpty(t, resp.Message)
				return
			}
			assert.Equal(t, ScanResponseStatusSuccess, resp.Status)
			require.NotNil(t, resp.Result)
			assert.Equal(t, tc.result, resp.Result.Type)
		})
	}

	ts.agent.mu.Lock()
	defer ts.agent.mu.Unlock()
	require.Len(t, ts.agent.invitations, 2)
	assert.Equal(t, "i1", ts.agent.invitations[0]["@id"])
}

func TestServer_ScanForwarded(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.signIn(t)

	invitation := base64.RawURLEncoding.EncodeToString([]byte(`{"@type": "https://didcomm.org/out-of-band/1.1/invitation", "@id": "i1"}`))
	rr := ts.send(t, cookie, http.MethodPost, "/scanner", "application/json", strings.NewReader(`{"payload": "didcomm://invite?oob=`+invitation+`"}`))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	result := decode[ScanResponse](t, rr).Result
	require.NotNil(t, result)
	assert.True(t, result.Forwarded)
	assert.Equal(t, "oob-1", result.OobID)
	assert.Equal(t, "c9", result.ConnectionID)
}
