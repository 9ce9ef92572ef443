package sessionstore

import (
	"context"
	"log/slog"
	"sync"
)

type inMemorySessionStore struct {
	rec   *Record
	mutex *sync.Mutex
	log   *slog.Logger
}

// NewInMemory returns a Store that keeps the session in process memory only.
// Nothing survives a restart; intended for tests and ephemeral runs.
func NewInMemory(logger *slog.Logger) Store {
	return &inMemorySessionStore{
		mutex: new(sync.Mutex),
		log:   logger,
	}
}

func (s *inMemorySessionStore) Load(ctx context.Context) (*Record, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	// Check for context cancellation/deadline early.
	select {
	case <-ctx.Done():
		s.log.Info("context cancelled during session load", "error", ctx.Err())
		return nil, ctx.Err()
	default:
	}

	if s.rec == nil {
		return nil, nil
	}

	cp := *s.rec
	return &cp, nil
}

func (s *inMemorySessionStore) Save(ctx context.Context, rec Record) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

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

	cp := rec
	s.rec = &cp

	s.log.Debug("stored session", "user_id", rec.User.ID)
	return nil
}

func (s *inMemorySessionStore) Clear(ctx context.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	// Check for context cancellation/deadline early.
	select {
	case <-ctx.Done():
		s.log.Info("context cancelled during session clear", "error", ctx.Err())
		return ctx.Err()
	default:
	}

	s.rec = nil

	s.log.Debug("cleared session")
	return nil
}
