package sessionstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/Chu-rill/hotel-management-client/internal/logutil"
	"github.com/Chu-rill/hotel-management-client/pkg/models"
)

type sqliteSessionStore struct {
	db  *sql.DB
	log *slog.Logger
}

// NewSqlite returns a Store backed by the session_state table of the given
// SQLite database. The table is created by database.RunSqliteMigrations,
// which callers are expected to have run beforehand.
func NewSqlite(db *sql.DB, logger *slog.Logger) Store {
	return &sqliteSessionStore{
		db:  db,
		log: logutil.WithFields(logger, "store", "sqlite"),
	}
}

func (s *sqliteSessionStore) Load(ctx context.Context) (*Record, error) {
	defer logutil.NewTimingLogger(s.log, time.Now(), "executed sql query", "method", "load session")()

	// Check for context cancellation/deadline early.
	select {
	case <-ctx.Done():
		s.log.Info("context cancelled during session load", "error", ctx.Err())
		return nil, ctx.Err()
	default:
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value FROM session_state WHERE key IN (?, ?)`, keyToken, keyUser)
	if err != nil {
		return nil, logutil.LogAndWrapErr(s.log, "failed to load session", err)
	}
	defer rows.Close()

	entries := make(map[string]string, 2)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, logutil.LogAndWrapErr(s.log, "failed to scan session row", err)
		}
		entries[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, logutil.LogAndWrapErr(s.log, "failed to read session rows", err)
	}

	token, hasToken := entries[keyToken]
	rawUser, hasUser := entries[keyUser]

	if !hasToken && !hasUser {
		return nil, nil
	}

	// One entry without the other means a broken write happened at some
	// point. Report it as malformed rather than inventing a half-session.
	if hasToken != hasUser {
		return nil, newMalformedSessionError("token and user entries out of sync")
	}
	if token == "" {
		return nil, newMalformedSessionError("empty token entry")
	}

	var user models.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		return nil, newMalformedSessionError("undecodable user entry: " + err.Error())
	}

	return &Record{Token: token, User: user}, nil
}

func (s *sqliteSessionStore) Save(ctx context.Context, rec Record) error {
	defer logutil.NewTimingLogger(s.log, time.Now(), "executed sql query", "method", "save session")()

	// Check for context cancellation/deadline early.
	select {
	case <-ctx.Done():
		s.log.Info("context cancelled during session save", "error", ctx.Err())
		return ctx.Err()
	default:
	}

	if rec.Token == "" {
		return newMalformedSessionError("refusing to save session with empty token")
	}

	rawUser, err := json.Marshal(rec.User)
	if err != nil {
		return logutil.LogAndWrapErr(s.log, "failed to encode user profile", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return logutil.LogAndWrapErr(s.log, "failed to begin session save", err)
	}
	defer tx.Rollback()

	const upsert = `INSERT INTO session_state (key, value, updated_at)
		VALUES (?, ?, strftime('%s', 'now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	if _, err := tx.ExecContext(ctx, upsert, keyToken, rec.Token); err != nil {
		return logutil.LogAndWrapErr(s.log, "failed to save session token", err)
	}
	if _, err := tx.ExecContext(ctx, upsert, keyUser, string(rawUser)); err != nil {
		return logutil.LogAndWrapErr(s.log, "failed to save session user", err)
	}

	if err := tx.Commit(); err != nil {
		return logutil.LogAndWrapErr(s.log, "failed to commit session save", err)
	}

	s.log.Debug("persisted session", "user_id", rec.User.ID)
	return nil
}

func (s *sqliteSessionStore) Clear(ctx context.Context) error {
	defer logutil.NewTimingLogger(s.log, time.Now(), "executed sql query", "method", "clear session")()

	// Check for context cancellation/deadline early.
	select {
	case <-ctx.Done():
		s.log.Info("context cancelled during session clear", "error", ctx.Err())
		return ctx.Err()
	default:
	}

	_, err := s.db.ExecContext(ctx,
		`DELETE FROM session_state WHERE key IN (?, ?)`, keyToken, keyUser)
	if err != nil {
		return logutil.LogAndWrapErr(s.log, "failed to clear session", err)
	}

	s.log.Debug("cleared persisted session")
	return nil
}
