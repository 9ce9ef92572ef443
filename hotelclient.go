// Package hotelclient is a Go client for the hotel-booking management API:
// credential flows (login, signup, OTP), a persistent session with
// write-through storage, an authenticated request pipeline, route guarding,
// and typed clients for the hotel, room, booking and admin user resources.
package hotelclient

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Chu-rill/hotel-management-client/database"
	"github.com/Chu-rill/hotel-management-client/internal/rest"
	"github.com/Chu-rill/hotel-management-client/internal/sessionstore"
	"github.com/Chu-rill/hotel-management-client/pkg/authflow"
	"github.com/Chu-rill/hotel-management-client/pkg/bookings"
	"github.com/Chu-rill/hotel-management-client/pkg/guard"
	"github.com/Chu-rill/hotel-management-client/pkg/hotels"
	"github.com/Chu-rill/hotel-management-client/pkg/pipeline"
	"github.com/Chu-rill/hotel-management-client/pkg/session"
	"github.com/Chu-rill/hotel-management-client/pkg/users"
)

// DefaultBaseURL is where the hotel API listens in development.
const DefaultBaseURL = "http://localhost:3000/api/v1"

// defaultHTTPTimeout bounds every API call unless a custom client is supplied.
const defaultHTTPTimeout = 30 * time.Second

// Client is the assembled hotel-management client. Exactly one instance
// should exist per running application; it owns the session for its lifetime.
type Client struct {
	logger   *slog.Logger
	Sessions *session.Context
	Auth     *authflow.Flows
	Guard    *guard.Guard
	Hotels   *hotels.Service
	Bookings *bookings.Service
	Users    *users.Service

	// Hold information to initialize components after configuration
	db               *sql.DB
	sessionsInMemory bool // determines if the session store is held in memory only
	baseURL          string
	httpClient       *http.Client
	notifier         pipeline.Notifier
	navigator        pipeline.Navigator
}

type Option func(*Client)

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSqliteDB persists the session in the given SQLite database so it
// survives restarts. Migrations are applied during New.
func WithSqliteDB(db *sql.DB) Option {
	return func(c *Client) {
		c.db = db
	}
}

// WithInMemorySessionStore keeps the session in process memory only.
func WithInMemorySessionStore() Option {
	return func(c *Client) {
		c.sessionsInMemory = true
	}
}

// WithBaseURL points the client at a different API root.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithHTTPClient supplies the underlying http.Client; its transport becomes
// the base the request pipeline wraps.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithNotifier routes the transient failure notifications, one per failed
// call, to the application's UI.
func WithNotifier(n pipeline.Notifier) Option {
	return func(c *Client) {
		c.notifier = n
	}
}

// WithNavigator receives the hard navigation issued on forced logout.
func WithNavigator(n pipeline.Navigator) Option {
	return func(c *Client) {
		c.navigator = n
	}
}

// New assembles the client: session store, session context, authenticated
// request pipeline, credential flows, route guard and resource services.
// One of WithSqliteDB or WithInMemorySessionStore must be provided.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		logger:  slog.Default(),
		baseURL: DefaultBaseURL,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.notifier == nil {
		c.notifier = pipeline.NewLogNotifier(c.logger)
	}
	if c.navigator == nil {
		c.navigator = pipeline.NewLogNavigator(c.logger)
	}

	c.logger.Info("starting hotel client", "base_url", c.baseURL)

	store, err := c.buildSessionStore()
	if err != nil {
		return nil, err
	}

	c.Sessions = session.NewContext(context.Background(), store, c.logger)
	c.logger.Debug("session context loaded", "authenticated", c.Sessions.Read() != nil)

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	base := c.httpClient.Transport
	c.httpClient.Transport = pipeline.NewTransport(base, c.Sessions, c.notifier, c.navigator, c.logger)

	restClient, err := rest.New(c.baseURL, c.httpClient, c.logger)
	if err != nil {
		return nil, err
	}

	c.Auth = authflow.New(restClient, c.Sessions, c.logger)
	c.Hotels = hotels.New(restClient, c.logger)
	c.Bookings = bookings.New(restClient, c.logger)
	c.Users = users.New(restClient, c.logger)

	c.Guard = guard.New(c.Sessions, c.logger)
	c.Guard.ApplyDefaultPolicies()
	c.logger.Debug("route guard loaded")

	return c, nil
}

func (c *Client) buildSessionStore() (sessionstore.Store, error) {
	switch {
	case c.db != nil:
		if err := c.db.Ping(); err != nil {
			return nil, fmt.Errorf("unable to ping session database: %w", err)
		}
		if err := database.RunSqliteMigrations(c.db); err != nil {
			return nil, fmt.Errorf("unable to run session migrations: %w", err)
		}
		c.logger.Debug("sqlite session store ready")
		return sessionstore.NewSqlite(c.db, c.logger), nil

	case c.sessionsInMemory:
		return sessionstore.NewInMemory(c.logger), nil

	default:
		return nil, fmt.Errorf("a session store is required: use WithSqliteDB or WithInMemorySessionStore")
	}
}
