// ABOUTME: HTTP client for the Atlas backend REST API
// ABOUTME: Fixed base URL, bearer credentials, JSON/multipart auto-encoding, typed errors

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TokenSource supplies the current session token. An empty token means
// the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// Error is an HTTP-level failure decoded from the backend. Message is the
// server-supplied message field when one was present, otherwise the HTTP
// status text.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
}

// Client issues requests against a fixed base URL.
type Client struct {
	base   string
	httpc  *http.Client
	tokens TokenSource
	log    *slog.Logger
}

// New creates a client. base must carry the scheme and host; timeout
// bounds every request (a hung backend cannot hold a dispatch open
// forever).
func New(base string, timeout time.Duration, tokens TokenSource, log *slog.Logger) *Client {
	return &Client{
		base:   strings.TrimRight(base, "/"),
		httpc:  &http.Client{Timeout: timeout},
		tokens: tokens,
		log:    log,
	}
}

// Do issues one request. body may be nil, a *Form (sent as multipart), or
// any JSON-marshalable value. On 2xx the response body is decoded into
// out when out is non-nil. On an error status Do returns a *Error; on a
// transport failure it returns the underlying error unchanged.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	contentType := ""

	switch payload := body.(type) {
	case nil:
	case *Form:
		buf, ct, err := payload.encode()
		if err != nil {
			return fmt.Errorf("encoding form: %w", err)
		}
		reader = buf
		contentType = ct
	default:
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if method != http.MethodGet {
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Debug("request failed", "method", method, "path", path, "error", err)
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	c.log.Debug("request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode >= 400 {
		return &Error{Status: resp.StatusCode, Message: errorMessage(resp.StatusCode, data)}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// errorMessage extracts the server's message field, falling back to the
// status text when the body is missing or not usable.
func errorMessage(status int, data []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return http.StatusText(status)
}
