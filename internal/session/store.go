package session

import (
	"context"
	"sync"
	"time"

	"tableside/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Store keeps live sessions in memory. Each session has its own lock, so
// operations on one table never wait on another.
type Store struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*entry
	ttl     time.Duration
	now     func() time.Time
	logger  zerolog.Logger
}

type entry struct {
	mu      sync.Mutex
	session *Session
	removed bool
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock overrides the store's time source.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// NewStore creates a store expiring sessions idle for longer than ttl.
func NewStore(ttl time.Duration, logger zerolog.Logger, opts ...StoreOption) *Store {
	s := &Store{
		entries: make(map[uuid.UUID]*entry),
		ttl:     ttl,
		now:     time.Now,
		logger:  logger.With().Str("component", "session-store").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the store's current time.
func (s *Store) Now() time.Time {
	return s.now()
}

// Create registers a new session. The store takes ownership of sess.
func (s *Store) Create(sess *Session) *Session {
	s.mu.Lock()
	s.entries[sess.ID] = &entry{session: sess}
	s.mu.Unlock()

	s.logger.Debug().
		Str("session_id", sess.ID.String()).
		Str("table", sess.TableNumber).
		Msg("session created")

	return sess.Clone()
}

// Get returns a snapshot of a live session.
func (s *Store) Get(id uuid.UUID) (*Session, error) {
	e, ok := s.lookup(id)
	if !ok {
		return nil, model.ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.removed || s.expired(e.session) {
		return nil, model.ErrSessionNotFound
	}
	return e.session.Clone(), nil
}

// Update runs fn on a working copy of the session under the session lock.
// The copy replaces the stored session only when fn succeeds, so a failed
// operation leaves no partial changes behind.
func (s *Store) Update(id uuid.UUID, fn func(*Session) error) (*Session, error) {
	e, ok := s.lookup(id)
	if !ok {
		return nil, model.ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.removed || s.expired(e.session) {
		return nil, model.ErrSessionNotFound
	}

	work := e.session.Clone()
	if err := fn(work); err != nil {
		return nil, err
	}
	work.UpdatedAt = s.now()
	e.session = work

	return work.Clone(), nil
}

// Delete removes a session.
func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	e, ok := s.entries[id]
	delete(s.entries, id)
	s.mu.Unlock()

	if ok {
		e.mu.Lock()
		e.removed = true
		e.mu.Unlock()
	}
}

// Len returns the number of stored sessions, expired or not.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Sweep drops expired sessions and returns how many were removed. The store
// lock is never held while waiting on a session lock.
func (s *Store) Sweep() int {
	s.mu.RLock()
	candidates := make(map[uuid.UUID]*entry, len(s.entries))
	for id, e := range s.entries {
		candidates[id] = e
	}
	s.mu.RUnlock()

	var expired []uuid.UUID
	for id, e := range candidates {
		e.mu.Lock()
		if !e.removed && s.expired(e.session) {
			e.removed = true
			expired = append(expired, id)
		}
		e.mu.Unlock()
	}
	if len(expired) == 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for _, id := range expired {
		if e, ok := s.entries[id]; ok && e == candidates[id] {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// Run sweeps expired sessions every interval until ctx is cancelled.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", interval).Dur("ttl", s.ttl).Msg("session sweeper started")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("session sweeper stopped")
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Info().Int("expired", n).Int("live", s.Len()).Msg("expired sessions removed")
			}
		}
	}
}

func (s *Store) lookup(id uuid.UUID) (*entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	return e, ok
}

func (s *Store) expired(sess *Session) bool {
	return s.now().Sub(sess.UpdatedAt) > s.ttl
}
