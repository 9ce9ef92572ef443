// Package pipeline makes token attachment and expiry handling transparent to
// every caller issuing a request against the hotel API.
//
// It is implemented as an http.RoundTripper with two ordered stages: the
// attach stage runs before the request is sent (bearer credential, request
// id), the inspect stage runs after the response is received (failure message
// extraction, forced logout on 401). Side effects always run before the
// response or error is handed back to the caller.
package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Chu-rill/hotel-management-client/internal/logutil"
	"github.com/Chu-rill/hotel-management-client/pkg/session"
	"github.com/google/uuid"
)

// LoginView is the navigation target of a forced logout.
const LoginView = "/login"

// genericFailureMessage is shown when neither the response body nor the
// transport error yields anything human readable.
const genericFailureMessage = "Something went wrong"

// maxErrorBody bounds how much of a failure body is read for message extraction.
const maxErrorBody = 1 << 20

// Transport decorates a base http.RoundTripper with the authenticated
// request pipeline. It is safe for concurrent use.
type Transport struct {
	base      http.RoundTripper
	sessions  *session.Context
	notifier  Notifier
	navigator Navigator
	log       *slog.Logger
}

// NewTransport builds the pipeline around base. A nil base falls back to
// http.DefaultTransport.
func NewTransport(base http.RoundTripper, sessions *session.Context, notifier Notifier, navigator Navigator, logger *slog.Logger) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{
		base:      base,
		sessions:  sessions,
		notifier:  notifier,
		navigator: navigator,
		log:       logutil.WithFields(logger, "component", "pipeline"),
	}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	defer logutil.NewTimingLogger(t.log, time.Now(), "request completed", "method", req.Method, "path", req.URL.Path)()

	// Attach stage. Clone before mutating: RoundTrippers must not modify
	// the caller's request.
	req = req.Clone(req.Context())
	if tok := t.sessions.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	if req.Header.Get("X-Request-ID") == "" {
		req.Header.Set("X-Request-ID", uuid.NewString())
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.log.Debug("transport failure", "method", req.Method, "path", req.URL.Path, "err", err)
		t.notifier.Notify(genericFailureMessage)
		return nil, err
	}

	// Inspect stage. Successful responses pass through untouched.
	if resp.StatusCode < 400 {
		return resp, nil
	}

	msg := t.extractMessage(resp)
	t.notifier.Notify(msg)

	if resp.StatusCode == http.StatusUnauthorized {
		t.forceLogout(req.Context())
	}

	return resp, nil
}

// extractMessage pulls a human-readable failure reason out of the response
// body, falling back to the HTTP status text and finally a generic message.
// The body is restored so the caller can still decode it.
func (t *Transport) extractMessage(resp *http.Response) string {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(raw))
	if err != nil {
		return genericFailureMessage
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return body.Message
	}

	if txt := http.StatusText(resp.StatusCode); txt != "" {
		return txt
	}
	return genericFailureMessage
}

// forceLogout clears the session context (which write-through clears the
// persistent store) and issues the hard navigation back to the login view.
func (t *Transport) forceLogout(ctx context.Context) {
	t.log.Info("received unauthorized response, forcing logout")

	// The triggering request may already be cancelled; the logout still
	// has to complete.
	if err := t.sessions.Write(context.WithoutCancel(ctx), nil); err != nil {
		t.log.Error("failed to clear session on forced logout", "err", err)
	}

	t.navigator.Reset(LoginView)
}
