// Package authflow implements the credential acquisition flows of the hotel
// API: login, signup, OTP verification and OTP resend. Each flow validates
// its input before submission, guards against duplicate concurrent
// submission with an advisory busy flag, and on success writes the issued
// session atomically into the session context. Failures never mutate the
// session.
package authflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Chu-rill/hotel-management-client/internal/logutil"
	"github.com/Chu-rill/hotel-management-client/internal/rest"
	"github.com/Chu-rill/hotel-management-client/pkg/models"
	"github.com/Chu-rill/hotel-management-client/pkg/session"
)

// ResendCooldown is how long repeat OTP resends are blocked client-side
// after a successful resend, bounding the request rate from one client.
const ResendCooldown = 60 * time.Second

// ErrInFlight is returned when a flow is submitted while a previous
// submission of the same flow has not completed. The guard is advisory,
// not a server-enforced idempotency guarantee.
var ErrInFlight = errors.New("authflow: submission already in progress")

var ErrCooldown = &CooldownError{}

// CooldownError reports a resend attempted inside the cooldown window.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("authflow: resend blocked for another %s", e.Remaining.Round(time.Second))
}

func (e *CooldownError) Is(target error) bool {
	_, ok := target.(*CooldownError)
	return ok
}

// PendingIdentity is what signup returns: an account awaiting OTP
// verification. It carries the submitted email forward to the verify step;
// it is short-lived transfer state, never part of the persisted session.
type PendingIdentity struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Phone    *string     `json:"phone,omitempty"`
	Role     models.Role `json:"role"`
}

// Flows bundles the credential acquisition flows over the shared REST
// client and session context.
type Flows struct {
	rest     *rest.Client
	sessions *session.Context
	log      *slog.Logger
	now      func() time.Time

	loginBusy  atomic.Bool
	signupBusy atomic.Bool
	verifyBusy atomic.Bool
	resendBusy atomic.Bool

	mu         sync.Mutex
	lastResend time.Time
}

// New builds the flows. The session context receives the issued sessions.
func New(restClient *rest.Client, sessions *session.Context, logger *slog.Logger) *Flows {
	return &Flows{
		rest:     restClient,
		sessions: sessions,
		log:      logutil.WithFields(logger, "component", "authflow"),
		now:      time.Now,
	}
}

// authResponse is the shape the API returns for login and OTP verification.
type authResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    models.User `json:"data"`
}

// Login exchanges credentials for a session. On success the token and
// profile are written into the session context (and thereby persisted)
// before Login returns.
//
// A successful response without a token is reported as a ServerError: the
// API promised authentication and did not deliver it, and silently staying
// logged out would be indistinguishable from a client bug.
func (f *Flows) Login(ctx context.Context, email, password string) (*models.User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	if !f.loginBusy.CompareAndSwap(false, true) {
		return nil, ErrInFlight
	}
	defer f.loginBusy.Store(false)

	var resp authResponse
	err := f.rest.Post(ctx, "auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}

	return f.adoptSession(ctx, resp)
}

// Signup registers a new account. It does not establish a session; the
// caller is expected to continue to VerifyOTP with the returned identity.
func (f *Flows) Signup(ctx context.Context, username, email, password string) (*PendingIdentity, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	if !f.signupBusy.CompareAndSwap(false, true) {
		return nil, ErrInFlight
	}
	defer f.signupBusy.Store(false)

	var resp struct {
		Message string          `json:"message"`
		Data    PendingIdentity `json:"data"`
	}
	err := f.rest.Post(ctx, "auth/signup", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}

	f.log.Info("signup accepted, awaiting verification", "email", resp.Data.Email)
	return &resp.Data, nil
}

// VerifyOTP confirms the one-time code sent after signup. On success it
// behaves exactly like Login: the issued session is written through the
// session context.
func (f *Flows) VerifyOTP(ctx context.Context, email, otp string) (*models.User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validateOTP(otp); err != nil {
		return nil, err
	}

	if !f.verifyBusy.CompareAndSwap(false, true) {
		return nil, ErrInFlight
	}
	defer f.verifyBusy.Store(false)

	var resp authResponse
	err := f.rest.Post(ctx, "auth/validateOTP", map[string]string{
		"email": email,
		"OTP":   otp,
	}, &resp)
	if err != nil {
		return nil, err
	}

	return f.adoptSession(ctx, resp)
}

// ResendOTP asks the API to send a fresh code. It has no session side
// effect. Repeat submission inside the cooldown window is blocked without
// issuing a network call.
func (f *Flows) ResendOTP(ctx context.Context, email string) (string, error) {
	if err := validateEmail(email); err != nil {
		return "", err
	}

	if remaining := f.resendAvailableIn(); remaining > 0 {
		return "", &CooldownError{Remaining: remaining}
	}

	if !f.resendBusy.CompareAndSwap(false, true) {
		return "", ErrInFlight
	}
	defer f.resendBusy.Store(false)

	var resp struct {
		Message string `json:"message"`
	}
	err := f.rest.Post(ctx, "auth/resendOTP", map[string]string{"email": email}, &resp)
	if err != nil {
		return "", err
	}

	f.mu.Lock()
	f.lastResend = f.now()
	f.mu.Unlock()

	if resp.Message == "" {
		resp.Message = "OTP resent"
	}
	return resp.Message, nil
}

// ResendAvailableIn reports how long until the next resend is allowed;
// zero means a resend may be submitted now.
func (f *Flows) ResendAvailableIn() time.Duration {
	return f.resendAvailableIn()
}

func (f *Flows) resendAvailableIn() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.lastResend.IsZero() {
		return 0
	}
	remaining := ResendCooldown - f.now().Sub(f.lastResend)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Logout clears the session in memory and in storage.
func (f *Flows) Logout(ctx context.Context) error {
	return f.sessions.Write(ctx, nil)
}

// adoptSession applies the shared completion contract of login-like flows.
func (f *Flows) adoptSession(ctx context.Context, resp authResponse) (*models.User, error) {
	if resp.Token == "" {
		return nil, models.NewServerError(http.StatusOK, "authentication succeeded without a credential token")
	}

	s := &session.Session{Token: resp.Token, User: resp.User}
	if err := f.sessions.Write(ctx, s); err != nil {
		return nil, err
	}

	f.log.Info("session established", "user_id", resp.User.ID, "role", resp.User.Role)
	return &resp.User, nil
}
