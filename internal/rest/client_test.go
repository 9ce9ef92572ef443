package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Chu-rill/hotel-management-client/pkg/models"
	"github.com/stretchr/testify/require"
)

func noopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewRejectsRelativeBaseURL(t *testing.T) {
	_, err := New("/api/v1", http.DefaultClient, noopLogger())
	require.Error(t, err)
}

func TestGetDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/hotels", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Accept"))
		json.NewEncoder(w).Encode(map[string]any{
			"statusCode": 200,
			"data":       []map[string]any{{"id": "h1", "name": "Grand"}},
		})
	}))
	defer srv.Close()

	client, err := New(srv.URL+"/api/v1", srv.Client(), noopLogger())
	require.NoError(t, err)

	var out struct {
		Data []models.Hotel `json:"data"`
	}
	require.NoError(t, client.Get(context.Background(), "/hotels", &out))
	require.Len(t, out.Data, 1)
	require.Equal(t, "Grand", out.Data[0].Name)
}

func TestPostSendsJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "a@b.com", body["email"])
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client, err := New(srv.URL, srv.Client(), noopLogger())
	require.NoError(t, err)

	err = client.Post(context.Background(), "auth/resendOTP", map[string]string{"email": "a@b.com"}, nil)
	require.NoError(t, err)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantMsg string
	}{
		{
			name:    "401 maps to AuthenticationError",
			status:  http.StatusUnauthorized,
			body:    `{"message":"Invalid credentials"}`,
			wantErr: models.ErrAuthentication,
			wantMsg: "Invalid credentials",
		},
		{
			name:    "500 maps to ServerError with body message",
			status:  http.StatusInternalServerError,
			body:    `{"message":"database exploded"}`,
			wantErr: models.ErrServer,
			wantMsg: "database exploded",
		},
		{
			name:    "404 without message falls back to status text",
			status:  http.StatusNotFound,
			body:    ``,
			wantErr: models.ErrServer,
			wantMsg: "Not Found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client, err := New(srv.URL, srv.Client(), noopLogger())
			require.NoError(t, err)

			err = client.Get(context.Background(), "/whatever", nil)
			require.ErrorIs(t, err, tt.wantErr)
			require.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestTransportErrorMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client, err := New(srv.URL, http.DefaultClient, noopLogger())
	require.NoError(t, err)

	err = client.Get(context.Background(), "/hotels", nil)
	require.ErrorIs(t, err, models.ErrTransport)
}
