// Package guard decides, per navigation, whether a view may be rendered or
// the user must be redirected, based solely on the already-loaded session
// context. Decisions are synchronous; no network round-trip happens at
// navigation time. Session validity is only re-checked reactively, by the
// request pipeline, on subsequent API calls.
package guard

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/Chu-rill/hotel-management-client/internal/logutil"
	"github.com/Chu-rill/hotel-management-client/pkg/models"
	"github.com/Chu-rill/hotel-management-client/pkg/session"
)

// Well-known views used as redirect targets.
const (
	HomeView  = "/"
	LoginView = "/login"
)

// State is the guard's two-state view of the session context.
type State int

const (
	Unauthenticated State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

type kind int

const (
	kindPublic kind = iota
	kindRequireAuth
	kindRequireGuest
)

// Requirement is the access rule attached to a view path.
type Requirement struct {
	kind    kind
	minRole models.Role
}

// Public marks a view reachable in any state.
func Public() Requirement {
	return Requirement{kind: kindPublic}
}

// RequireAuth marks a view reachable only with a session whose role is at
// least min.
func RequireAuth(min models.Role) Requirement {
	return Requirement{kind: kindRequireAuth, minRole: min}
}

// RequireGuest marks an auth-only view (login, signup, OTP): reachable only
// without a session.
func RequireGuest() Requirement {
	return Requirement{kind: kindRequireGuest}
}

// Decision is the guard's verdict for one navigation request.
type Decision struct {
	Allow      bool
	RedirectTo string // set when Allow is false
}

// Guard gates which views are reachable based on the session context.
type Guard struct {
	log      *slog.Logger
	sessions *session.Context

	mu       sync.RWMutex
	policies map[string]Requirement
}

// New returns a Guard with no policies; unmatched paths are treated as
// public. Call ApplyDefaultPolicies for the standard application routes.
func New(sessions *session.Context, logger *slog.Logger) *Guard {
	return &Guard{
		log:      logutil.WithFields(logger, "component", "guard"),
		sessions: sessions,
		policies: make(map[string]Requirement),
	}
}

// ApplyDefaultPolicies registers the application's route table: browsing is
// public, the credential flows are guest-only, bookings need a user session
// and the admin area needs an administrator.
func (g *Guard) ApplyDefaultPolicies() {
	g.SetPolicy("/", Public())
	g.SetPolicy("/about", Public())
	g.SetPolicy("/contact", Public())
	g.SetPolicy("/hotels", Public())
	g.SetPolicy("/login", RequireGuest())
	g.SetPolicy("/signup", RequireGuest())
	g.SetPolicy("/otp", RequireGuest())
	g.SetPolicy("/resend-otp", RequireGuest())
	g.SetPolicy("/bookings", RequireAuth(models.RoleUser))
	g.SetPolicy("/admin", RequireAuth(models.RoleAdmin))
}

// SetPolicy attaches a requirement to a view path. The requirement also
// covers sub-paths unless a more specific policy exists.
func (g *Guard) SetPolicy(path string, req Requirement) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	g.policies[path] = req
}

// CurrentState reports whether the session context holds a session.
func (g *Guard) CurrentState() State {
	if g.sessions.Read() != nil {
		return Authenticated
	}
	return Unauthenticated
}

// Decide resolves one navigation request. Protected view without a session
// redirects to login; guest-only view with a session redirects home; a role
// below the view's minimum redirects home; everything else renders as-is.
func (g *Guard) Decide(path string) Decision {
	req, matched := g.findMatchingPolicy(path)
	if !matched {
		return Decision{Allow: true}
	}

	current := g.sessions.Read()

	switch req.kind {
	case kindRequireGuest:
		if current != nil {
			g.log.Debug("guest-only view requested while authenticated", "path", path)
			return Decision{RedirectTo: HomeView}
		}
		return Decision{Allow: true}

	case kindRequireAuth:
		if current == nil {
			g.log.Debug("protected view requested while unauthenticated", "path", path)
			return Decision{RedirectTo: LoginView}
		}
		if !current.User.Role.AtLeast(req.minRole) {
			g.log.Debug("view requires higher role", "path", path, "role", current.User.Role)
			return Decision{RedirectTo: HomeView}
		}
		return Decision{Allow: true}

	default:
		return Decision{Allow: true}
	}
}

// findMatchingPolicy finds the most specific policy for a view path by
// walking its prefixes from longest to shortest.
func (g *Guard) findMatchingPolicy(path string) (Requirement, bool) {
	pathsToCheck := buildPrefixes(path)

	g.mu.RLock()
	defer g.mu.RUnlock()

	for _, p := range pathsToCheck {
		if req, ok := g.policies[p]; ok {
			return req, true
		}
	}

	return Requirement{}, false
}

// buildPrefixes returns a list of paths to check from most specific to least specific.
// For "/a/b/c" it returns ["/a/b/c", "/a/b", "/a", "/"].
func buildPrefixes(path string) []string {
	if path == "" || path == "/" {
		return []string{"/"}
	}

	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) == 1 && segments[0] == "" {
		return []string{"/"}
	}

	prefixes := make([]string, 0, len(segments)+1)
	for i := len(segments); i > 0; i-- {
		prefixes = append(prefixes, "/"+strings.Join(segments[:i], "/"))
	}

	prefixes = append(prefixes, "/")
	return prefixes
}
