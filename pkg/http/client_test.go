package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryableClient_Replays(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewRetryableClient(5*time.Second, 1)
	for _, tc := range []struct {
		name     string
		call     func(ctx context.Context) error
		expected int32
	}{
		{
			name: "get is retried",
			call: func(ctx context.Context) error {
				_, err := c.Get(ctx, srv.URL)
				return err
			},
			expected: 2,
		},
		{
			name: "post is retried by default",
			call: func(ctx context.Context) error {
				_, err := c.Post(ctx, srv.URL, []byte(`{}`))
				return err
			},
			expected: 2,
		},
		{
			name: "post without retry is sent once",
			call: func(ctx context.Context) error {
				_, err := c.Post(ctx, srv.URL, []byte(`{}`), WithoutRetry())
				return err
			},
			expected: 1,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			hits.Store(0)
			err := tc.call(context.Background())
			require.Error(t, err)
			assert.Equal(t, tc.expected, hits.Load())
		})
	}
}

func TestClient_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`taken`))
	}))
	defer srv.Close()

	_, err := NewRetryableClient(time.Second, 2).Post(context.Background(), srv.URL, []byte(`{}`), WithoutRetry())
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusConflict, statusErr.StatusCode)
	assert.Equal(t, "taken", string(statusErr.Body))
}
