package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoleIsValid(t *testing.T) {
	tests := []struct {
		name string
		role Role
		want bool
	}{
		{name: "user role", role: RoleUser, want: true},
		{name: "admin role", role: RoleAdmin, want: true},
		{name: "unknown role", role: Role("SUPERUSER"), want: false},
		{name: "empty role", role: Role(""), want: false},
		{name: "lowercase is not valid", role: Role("user"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.role.IsValid())
		})
	}
}

func TestRoleAtLeast(t *testing.T) {
	require.True(t, RoleAdmin.AtLeast(RoleUser))
	require.True(t, RoleAdmin.AtLeast(RoleAdmin))
	require.True(t, RoleUser.AtLeast(RoleUser))
	require.False(t, RoleUser.AtLeast(RoleAdmin))
	require.False(t, Role("SUPERUSER").AtLeast(RoleUser))
	require.False(t, RoleUser.AtLeast(Role("SUPERUSER")))
}

func TestRoleUnmarshalText(t *testing.T) {
	var r Role
	require.NoError(t, r.UnmarshalText([]byte("ADMIN")))
	require.Equal(t, RoleAdmin, r)

	require.Error(t, r.UnmarshalText([]byte("nope")))
}

func TestListRolesOrdered(t *testing.T) {
	require.Equal(t, []string{"USER", "ADMIN"}, ListRoles())
}

func TestUserIsAdmin(t *testing.T) {
	require.True(t, User{Role: RoleAdmin}.IsAdmin())
	require.False(t, User{Role: RoleUser}.IsAdmin())
}

func TestBookingStatusUnmarshal(t *testing.T) {
	var b Booking
	require.NoError(t, json.Unmarshal([]byte(`{"id":"b1","status":"confirmed"}`), &b))
	require.Equal(t, BookingConfirmed, b.Status)

	require.Error(t, json.Unmarshal([]byte(`{"id":"b1","status":"teleported"}`), &b))
}

func TestErrorTaxonomyIs(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{name: "validation", err: NewValidationError("email", "bad"), target: ErrValidation},
		{name: "authentication", err: NewAuthenticationError("expired"), target: ErrAuthentication},
		{name: "transport", err: NewTransportError(errors.New("refused")), target: ErrTransport},
		{name: "server", err: NewServerError(500, "boom"), target: ErrServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.err, tt.target)
		})
	}

	// the categories stay distinct
	require.NotErrorIs(t, NewServerError(500, "boom"), ErrAuthentication)
	require.NotErrorIs(t, NewValidationError("email", "bad"), ErrServer)
}

func TestValidationErrorMessage(t *testing.T) {
	err := NewValidationError("password", "Password must be at least 6 characters")
	require.Equal(t, "password: Password must be at least 6 characters", err.Error())

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "password", verr.Field)
}

func TestTransportErrorUnwraps(t *testing.T) {
	inner := errors.New("connection refused")
	err := NewTransportError(inner)
	require.ErrorIs(t, err, inner)
}
