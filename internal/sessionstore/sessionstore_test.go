package sessionstore

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/Chu-rill/hotel-management-client/database"
	"github.com/Chu-rill/hotel-management-client/pkg/models"
	"github.com/stretchr/testify/require"
)

func noopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.RunSqliteMigrations(db))
	return db
}

func testUser() models.User {
	return models.User{
		ID:       "u-1",
		Username: "alice",
		Email:    "a@b.com",
		Role:     models.RoleUser,
	}
}

func TestSqliteStoreRoundTrip(t *testing.T) {
	db := newTestDB(t)
	store := NewSqlite(db, noopLogger())
	ctx := context.Background()

	// empty store loads as no session
	rec, err := store.Load(ctx)
	require.NoError(t, err)
	require.Nil(t, rec)

	require.NoError(t, store.Save(ctx, Record{Token: "tok1", User: testUser()}))

	rec, err = store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.Equal(t, "tok1", rec.Token)
	require.Equal(t, "alice", rec.User.Username)
	require.Equal(t, models.RoleUser, rec.User.Role)
}

func TestSqliteStoreSaveReplacesWholesale(t *testing.T) {
	db := newTestDB(t)
	store := NewSqlite(db, noopLogger())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, Record{Token: "tok1", User: testUser()}))

	second := testUser()
	second.ID = "u-2"
	second.Username = "bob"
	require.NoError(t, store.Save(ctx, Record{Token: "tok2", User: second}))

	rec, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok2", rec.Token)
	require.Equal(t, "bob", rec.User.Username)
}

func TestSqliteStoreClearIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	store := NewSqlite(db, noopLogger())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, Record{Token: "tok1", User: testUser()}))

	require.NoError(t, store.Clear(ctx))
	rec, err := store.Load(ctx)
	require.NoError(t, err)
	require.Nil(t, rec)

	// clearing an already empty store succeeds and stays empty
	require.NoError(t, store.Clear(ctx))
	rec, err = store.Load(ctx)
	require.NoError(t, err)
	require.Nil(t, rec)
}

func TestSqliteStoreRejectsEmptyToken(t *testing.T) {
	db := newTestDB(t)
	store := NewSqlite(db, noopLogger())

	err := store.Save(context.Background(), Record{User: testUser()})
	require.ErrorIs(t, err, ErrMalformedSession)
}

func TestSqliteStoreDetectsOutOfSyncEntries(t *testing.T) {
	db := newTestDB(t)
	store := NewSqlite(db, noopLogger())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, Record{Token: "tok1", User: testUser()}))

	// drop one of the two entries behind the store's back
	_, err := db.Exec(`DELETE FROM session_state WHERE key = ?`, keyUser)
	require.NoError(t, err)

	_, err = store.Load(ctx)
	require.ErrorIs(t, err, ErrMalformedSession)
}

func TestSqliteStoreDetectsUndecodableUser(t *testing.T) {
	db := newTestDB(t)
	store := NewSqlite(db, noopLogger())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, Record{Token: "tok1", User: testUser()}))

	_, err := db.Exec(`UPDATE session_state SET value = 'not json' WHERE key = ?`, keyUser)
	require.NoError(t, err)

	_, err = store.Load(ctx)
	require.ErrorIs(t, err, ErrMalformedSession)
}

func TestInMemoryStore(t *testing.T) {
	store := NewInMemory(noopLogger())
	ctx := context.Background()

	rec, err := store.Load(ctx)
	require.NoError(t, err)
	require.Nil(t, rec)

	require.NoError(t, store.Save(ctx, Record{Token: "tok1", User: testUser()}))

	rec, err = store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok1", rec.Token)

	// returned record is a copy, mutating it does not affect the store
	rec.Token = "mutated"
	again, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok1", again.Token)

	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))
	rec, err = store.Load(ctx)
	require.NoError(t, err)
	require.Nil(t, rec)
}

func TestInMemoryStoreRejectsEmptyToken(t *testing.T) {
	store := NewInMemory(noopLogger())
	err := store.Save(context.Background(), Record{User: testUser()})
	require.ErrorIs(t, err, ErrMalformedSession)
}
