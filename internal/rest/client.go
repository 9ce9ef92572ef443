// Package rest provides the JSON request plumbing shared by every resource
// client. All requests flow through the authenticated pipeline transport of
// the http.Client it is built with, so bearer attachment and forced-logout
// handling have already happened by the time an error surfaces here.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Chu-rill/hotel-management-client/internal/logutil"
	"github.com/Chu-rill/hotel-management-client/pkg/models"
)

// maxResponseBody bounds how much of a response is read into memory.
const maxResponseBody = 8 << 20

// Client issues JSON requests against the hotel API and maps failures onto
// the client error taxonomy: transport failures become TransportError, 401
// becomes AuthenticationError, any other non-2xx becomes ServerError.
type Client struct {
	base *url.URL
	http *http.Client
	log  *slog.Logger
}

// New builds a Client for the given base URL, e.g.
// "http://localhost:3000/api/v1". The http.Client is expected to carry the
// pipeline transport.
func New(baseURL string, httpClient *http.Client, logger *slog.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("rest: invalid base url %q: %w", baseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("rest: base url %q must be absolute", baseURL)
	}

	return &Client{
		base: base,
		http: httpClient,
		log:  logutil.WithFields(logger, "component", "rest"),
	}, nil
}

// Get issues a GET and decodes the response body into out when non-nil.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Patch issues a PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	defer logutil.NewTimingLogger(c.log, time.Now(), "api call", "method", method, "path", path)()

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("rest: encoding %s %s body: %w", method, path, err)
		}
		payload = bytes.NewReader(raw)
	}

	target := c.base.JoinPath(strings.TrimLeft(path, "/"))
	req, err := http.NewRequestWithContext(ctx, method, target.String(), payload)
	if err != nil {
		return fmt.Errorf("rest: building %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return models.NewTransportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return models.NewTransportError(err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return models.NewAuthenticationError(failureMessage(resp.StatusCode, raw))
	}
	if resp.StatusCode >= 400 {
		return models.NewServerError(resp.StatusCode, failureMessage(resp.StatusCode, raw))
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return models.NewServerError(resp.StatusCode,
			fmt.Sprintf("undecodable response for %s %s: %v", method, path, err))
	}

	return nil
}

// failureMessage mirrors the pipeline's extraction rule so the typed error
// carries the same text the user was already notified with.
func failureMessage(status int, raw []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return body.Message
	}
	if txt := http.StatusText(status); txt != "" {
		return txt
	}
	return "Something went wrong"
}
