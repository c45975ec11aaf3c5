package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"

	"github.com/polygonid/wallet-mediator/internal/log"
)

// StatusError is returned when the remote end answers with a non 2xx status
type StatusError struct {
	StatusCode int
	Body       []byte
}

// Error satisfies the error interface
func (e *StatusError) Error() string {
	return fmt.Sprintf("http request failed with status %v, error: %v", e.StatusCode, string(e.Body))
}

// RequestOption customizes an outgoing request
type RequestOption func(r *http.Request)

// WithHeader sets a request header
func WithHeader(key, value string) RequestOption {
	return func(r *http.Request) {
		r.Header.Set(key, value)
	}
}

// WithBearerToken sets the Authorization header
func WithBearerToken(token string) RequestOption {
	return WithHeader("Authorization", "Bearer "+token)
}

type noRetryKey struct{}

// WithoutRetry sends the request once even through a retryable client.
// Use it for requests that must not be replayed, like a presentation submission.
func WithoutRetry() RequestOption {
	return func(r *http.Request) {
		*r = *r.WithContext(context.WithValue(r.Context(), noRetryKey{}, true))
	}
}

// Client represents default http client that can be used to send requests to third party services
type Client struct {
	base http.Client
}

// NewClient returns new instance of custom client
func NewClient(c http.Client) *Client {
	return &Client{
		base: c,
	}
}

// NewRetryableClient returns a client that retries connection errors and 5xx answers up to retryMax times
func NewRetryableClient(timeout time.Duration, retryMax int) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = retryMax
	rc.RetryWaitMax = 2 * time.Second
	rc.Logger = nil
	rc.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if once, _ := ctx.Value(noRetryKey{}).(bool); once {
			return false, nil
		}
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}
	return NewClient(http.Client{
		Timeout:   timeout,
		Transport: &retryablehttp.RoundTripper{Client: rc},
	})
}

// Post send posts request to url with additional headers
func (c *Client) Post(ctx context.Context, url string, req []byte, opts ...RequestOption) ([]byte, error) {
	return c.do(ctx, http.MethodPost, url, req, opts)
}

// Get send request to url with requestID headers
func (c *Client) Get(ctx context.Context, url string, opts ...RequestOption) ([]byte, error) {
	return c.do(ctx, http.MethodGet, url, nil, opts)
}

// Delete sends a DELETE request to url
func (c *Client) Delete(ctx context.Context, url string, opts ...RequestOption) ([]byte, error) {
	return c.do(ctx, http.MethodDelete, url, nil, opts)
}

func (c *Client) do(ctx context.Context, method string, url string, body []byte, opts []RequestOption) ([]byte, error) {
	var reqBody io.Reader = http.NoBody
	if body != nil {
		reqBody = bytes.NewReader(body)
	}
	request, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	addRequestIDToHeader(ctx, request)
	for _, opt := range opts {
		opt(request)
	}

	return executeRequest(ctx, c, request)
}

// addRequestIDToHeader adds headers to request
func addRequestIDToHeader(ctx context.Context, r *http.Request) {
	r.Header.Set("Content-Type", "application/json")
	if requestID := middleware.GetReqID(ctx); requestID != "" {
		r.Header.Set(middleware.RequestIDHeader, requestID)
	}
}

// executeRequest contains common logic of request execution
func executeRequest(ctx context.Context, c *Client, r *http.Request) ([]byte, error) {
	resp, err := c.base.Do(r)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	defer func() {
		err := resp.Body.Close()
		if err != nil {
			log.Error(ctx, "can not close body", "err", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, errors.WithStack(&StatusError{StatusCode: resp.StatusCode, Body: body})
	}

	return body, nil
}
