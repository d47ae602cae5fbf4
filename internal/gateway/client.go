// Package gateway wraps the inventory backend REST API consumed by the
// console. Every loader and form handler goes through one Client so the
// cross-origin posture (JSON content type, Origin header, shared cookie
// jar) stays consistent.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/altiplano/backoffice/internal/platform/httpx"
)

// CallRecorder receives one observation per outbound backend call.
type CallRecorder interface {
	CountBackendCall(operation, outcome string)
}

// Client talks to the inventory backend REST API.
type Client struct {
	baseURL    string
	origin     string
	httpClient *http.Client
	recorder   CallRecorder
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRecorder attaches a call recorder.
func WithRecorder(rec CallRecorder) Option {
	return func(c *Client) { c.recorder = rec }
}

// NewClient constructs a backend client rooted at baseURL.
func NewClient(baseURL, origin string, opts ...Option) *Client {
	jar, _ := cookiejar.New(nil)
	c := &Client{
		baseURL: baseURL,
		origin:  origin,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get fetches a collection or sub-resource and decodes it into out.
func (c *Client) get(ctx context.Context, operation, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", operation, err)
	}
	return c.do(operation, req, out)
}

// post sends a JSON body. body may be nil for action endpoints, out may be
// nil when the response payload is not needed.
func (c *Client) post(ctx context.Context, operation, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", operation, err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", operation, err)
	}
	return c.do(operation, req, out)
}

func (c *Client) do(operation string, req *http.Request, out any) error {
	req.Header.Set("Content-Type", "application/json")
	if c.origin != "" {
		req.Header.Set("Origin", c.origin)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.record(operation, "transport_error")
		return fmt.Errorf("%s: %w", operation, errors.Join(httpx.ErrUnavailable, err))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 400 {
		c.record(operation, "api_error")
		return decodeAPIError(operation, resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.record(operation, "decode_error")
			return fmt.Errorf("%s: decode response: %w", operation, err)
		}
	}
	c.record(operation, "ok")
	return nil
}

func (c *Client) record(operation, outcome string) {
	if c.recorder != nil {
		c.recorder.CountBackendCall(operation, outcome)
	}
}

// createResponse carries the identifier the backend assigns on creation.
type createResponse struct {
	ID int64 `json:"id"`
}
