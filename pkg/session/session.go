package session

import (
	"time"

	"github.com/Chu-rill/hotel-management-client/pkg/models"
	"github.com/golang-jwt/jwt/v5"
)

// Session is the pair of bearer token and user profile representing an
// authenticated identity. The token is opaque to the client: it is stored
// and attached to requests verbatim, never interpreted for control flow.
type Session struct {
	Token string
	User  models.User
}

// Valid reports whether the session satisfies the presence invariant:
// a session always carries a token together with a user identifier.
func (s *Session) Valid() bool {
	return s != nil && s.Token != "" && s.User.ID != ""
}

// TokenExpiry makes a best-effort attempt to read the expiry claim out of
// the bearer token, which the hotel API happens to issue as a JWT. The
// signature is NOT verified; the result is informational only (status
// display, startup logging) and must never gate authentication decisions.
// The second return value is false when the token is not a decodable JWT
// or carries no expiry claim.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}

	return exp.Time, true
}
