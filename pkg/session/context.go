package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/Chu-rill/hotel-management-client/internal/logutil"
	"github.com/Chu-rill/hotel-management-client/internal/sessionstore"
)

// Context is the single in-process source of truth for "who is logged in
// right now". It owns the in-memory session for the lifetime of the running
// application and keeps the persistent store in sync on every mutation:
// every Write persists before it becomes visible, and the persisted value is
// loaded exactly once, at construction.
//
// Exactly one Context should exist per running application.
type Context struct {
	mu      sync.RWMutex
	current *Session
	store   sessionstore.Store
	log     *slog.Logger

	subs    map[int]func(*Session)
	nextSub int
}

// NewContext builds the session context and adopts any previously persisted
// session. A missing or malformed persisted session yields a logged-out
// initial state, never an error; malformed state is additionally cleared so
// it cannot resurface on the next start.
func NewContext(ctx context.Context, store sessionstore.Store, logger *slog.Logger) *Context {
	c := &Context{
		store: store,
		log:   logutil.WithFields(logger, "component", "session"),
		subs:  make(map[int]func(*Session)),
	}

	rec, err := store.Load(ctx)
	switch {
	case errors.Is(err, sessionstore.ErrMalformedSession):
		c.log.Warn("discarding malformed persisted session", "err", err)
		if clearErr := store.Clear(ctx); clearErr != nil {
			c.log.Error("failed to clear malformed persisted session", "err", clearErr)
		}
	case err != nil:
		// Treat an unreadable store the same as an absent session so the
		// client can still run pre-login flows.
		c.log.Error("failed to load persisted session, starting logged out", "err", err)
	case rec != nil:
		c.current = &Session{Token: rec.Token, User: rec.User}
		c.log.Debug("adopted persisted session", "user_id", rec.User.ID)
		if exp, ok := TokenExpiry(rec.Token); ok {
			c.log.Debug("persisted token expiry", "expires_at", exp)
		}
	}

	return c
}

// Read returns the current session, or nil when unauthenticated.
// It never blocks on I/O and never fails. The returned value is a copy;
// mutating it does not affect the context.
func (c *Context) Read() *Session {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.current == nil {
		return nil
	}
	cp := *c.current
	return &cp
}

// Write replaces the session wholesale. Passing nil logs the user out.
//
// The mutation is written through to the persistent store first; only when
// persistence succeeds does the in-memory value change and subscribers get
// notified, synchronously, before Write returns. A failed persist leaves
// the previous session fully intact.
//
// Write(nil) on an already logged-out context is a no-op and stays idempotent.
func (c *Context) Write(ctx context.Context, s *Session) error {
	if s != nil && !s.Valid() {
		return errors.New("session: refusing to write session without token and user")
	}

	c.mu.Lock()

	var err error
	if s == nil {
		err = c.store.Clear(ctx)
	} else {
		err = c.store.Save(ctx, sessionstore.Record{Token: s.Token, User: s.User})
	}
	if err != nil {
		c.mu.Unlock()
		return logutil.LogAndWrapErr(c.log, "failed to persist session", err)
	}

	if s == nil {
		c.current = nil
	} else {
		cp := *s
		c.current = &cp
	}

	// Snapshot subscribers and the new value, then notify outside the lock
	// so a subscriber may call Read without deadlocking.
	fns := make([]func(*Session), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	val := c.current
	if val != nil {
		cp := *val
		val = &cp
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(val)
	}

	return nil
}

// Token returns the current bearer token, or "" when unauthenticated.
func (c *Context) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.current == nil {
		return ""
	}
	return c.current.Token
}

// Subscribe registers fn to run synchronously after every successful Write.
// The returned function removes the subscription.
func (c *Context) Subscribe(fn func(*Session)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}
