// Package runtime is an HTTP client for the local LLM runtime daemon.
// The runtime itself is external: it owns model weights, inference, and the
// pull operation. This package only speaks its local API and decodes the
// NDJSON streams it produces.
package runtime

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Client talks to the runtime at a fixed base URL.
type Client struct {
	baseURL string
	http    *http.Client
}

// New constructs a Client for baseURL (e.g. http://127.0.0.1:11434).
// Intentionally Timeout=0: all calls must use context-based deadlines,
// since generation and pull streams run for arbitrary lengths.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 0},
	}
}

// BaseURL returns the configured runtime base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Version returns the runtime's version string.
func (c *Client) Version(ctx context.Context) (string, error) {
	var out struct {
		Version string `json:"version"`
	}
	if err := c.getJSON(ctx, "/api/version", &out); err != nil {
		return "", err
	}
	return out.Version, nil
}

// Health returns nil when the runtime answers its version endpoint.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.Version(ctx)
	return err
}

// getJSON performs a GET and decodes a JSON body.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return classifyTransport(ctx, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromResponse(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// postStream POSTs a JSON payload and invokes onLine for every NDJSON line of
// the response until EOF or context cancellation.
func (c *Client) postStream(ctx context.Context, path string, payload any, onLine func([]byte) error) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(string(body)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return classifyTransport(ctx, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromResponse(resp)
	}
	dec := json.NewDecoder(resp.Body)
	for {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			if err == io.EOF {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("decode stream line: %w", err)
		}
		if err := onLine(raw); err != nil {
			return err
		}
	}
}

// postJSON POSTs a payload and decodes a single JSON response body.
func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(string(body)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return classifyTransport(ctx, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromResponse(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// errorFromResponse builds an apiError including a small body tail for context.
func errorFromResponse(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	msg := strings.TrimSpace(string(b))
	// The runtime reports errors as {"error":"..."}; surface just the message.
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(b, &e) == nil && e.Error != "" {
		msg = e.Error
	}
	return apiError{status: resp.StatusCode, msg: fmt.Sprintf("runtime http error: %s: %s", resp.Status, msg)}
}
