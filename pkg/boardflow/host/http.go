// Package host implements the host-function surface exposed to node
// code: the outbound HTTP transport behind the "http" capability.
//
// The package performs transport only. Authorization happens in the
// ExecutionContext bridge, which consults the capability gate with the
// current activation's permission set before any call reaches this code.
package host

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single outbound request when the caller's
// context carries no earlier deadline.
const DefaultTimeout = 30 * time.Second

// Request describes one outbound HTTP call as a node sees it:
// method, URL, headers, body.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
}

// Response is the status/headers/body triple returned to node code.
type Response struct {
	Status  int
	Headers map[string]string
	Body    []byte
}

// Client performs outbound HTTP calls for gated host functions.
// The zero value is not usable; use NewClient.
type Client struct {
	httpc   *http.Client
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
// Tests use this to point the host at an httptest server transport.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		if httpc != nil {
			c.httpc = httpc
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewClient creates an HTTP host client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpc:   &http.Client{},
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do performs the request and returns the response triple.
//
// The call respects ctx: a cancelled run abandons the request and the
// transport error is returned. Non-2xx statuses are not errors; the
// status is part of the response and the node decides what it means.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	if req.Method == "" {
		req.Method = http.MethodGet
	}
	if req.URL == "" {
		return nil, fmt.Errorf("http host call: empty url")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("http host call: %w", err)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http host call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("http host call: read body: %w", err)
	}

	headers := make(map[string]string, len(resp.Header))
	for k := range resp.Header {
		headers[k] = resp.Header.Get(k)
	}

	return &Response{
		Status:  resp.StatusCode,
		Headers: headers,
		Body:    respBody,
	}, nil
}
