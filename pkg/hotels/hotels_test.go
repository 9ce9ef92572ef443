package hotels

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Chu-rill/hotel-management-client/internal/rest"
	"github.com/Chu-rill/hotel-management-client/internal/sessionstore"
	"github.com/Chu-rill/hotel-management-client/pkg/models"
	"github.com/Chu-rill/hotel-management-client/pkg/pipeline"
	"github.com/Chu-rill/hotel-management-client/pkg/session"
	"github.com/stretchr/testify/require"
)

func noopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService(t *testing.T, token string, handler http.HandlerFunc) *Service {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	ctx := context.Background()
	sessions := session.NewContext(ctx, sessionstore.NewInMemory(noopLogger()), noopLogger())
	if token != "" {
		user := models.User{ID: "1", Username: "admin", Email: "a@b.com", Role: models.RoleAdmin}
		require.NoError(t, sessions.Write(ctx, &session.Session{Token: token, User: user}))
	}

	httpClient := &http.Client{
		Transport: pipeline.NewTransport(nil, sessions,
			pipeline.NewLogNotifier(noopLogger()), pipeline.NewLogNavigator(noopLogger()), noopLogger()),
	}
	restClient, err := rest.New(srv.URL, httpClient, noopLogger())
	require.NoError(t, err)

	return New(restClient, noopLogger())
}

func TestListDecodesHotels(t *testing.T) {
	svc := newService(t, "", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/hotels", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"id": "h1", "name": "Grand", "location": "Lagos"},
				{"id": "h2", "name": "Palms", "location": "Abuja"},
			},
		})
	})

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Grand", got[0].Name)
	require.Equal(t, "Abuja", got[1].Location)
}

func TestCreateCarriesAdminToken(t *testing.T) {
	svc := newService(t, "admintok", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/admin/hotels", r.URL.Path)
		require.Equal(t, "Bearer admintok", r.Header.Get("Authorization"))

		var params models.CreateHotelParams
		require.NoError(t, json.NewDecoder(r.Body).Decode(&params))
		require.Equal(t, "Grand", params.Name)

		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"id": "h1", "name": "Grand"},
		})
	})

	got, err := svc.Create(context.Background(), models.CreateHotelParams{Name: "Grand", Location: "Lagos"})
	require.NoError(t, err)
	require.Equal(t, "h1", got.ID)
}

func TestGetRoomBuildsNestedPath(t *testing.T) {
	svc := newService(t, "", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/hotels/h1/rooms/r9", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"id": "r9", "title": "Deluxe", "price": 120.0},
		})
	})

	got, err := svc.GetRoom(context.Background(), "h1", "r9")
	require.NoError(t, err)
	require.Equal(t, "Deluxe", got.Title)
}

func TestGetSurfacesServerError(t *testing.T) {
	svc := newService(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"hotel not found"}`))
	})

	_, err := svc.Get(context.Background(), "nope")
	require.ErrorIs(t, err, models.ErrServer)
	require.Contains(t, err.Error(), "hotel not found")
}
