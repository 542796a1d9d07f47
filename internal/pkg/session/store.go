// Package session keeps authenticated sessions in process memory.
package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
)

// Session links an opaque session id to an authenticated user.
type Session struct {
	ID        string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Store is a time-bounded session set. Expired sessions are never returned
// and are removed by a background sweep every cleanupInterval.
type Store struct {
	cache  *cache.Cache
	ttl    time.Duration
	now    func() time.Time
	logger zerolog.Logger
}

// NewStore creates a session store whose entries live for ttl from creation.
func NewStore(ttl, cleanupInterval time.Duration, logger zerolog.Logger) *Store {
	s := &Store{
		cache:  cache.New(ttl, cleanupInterval),
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
	s.cache.OnEvicted(func(id string, _ interface{}) {
		s.logger.Debug().Str("sessionId", id).Msg("Session removed")
	})
	return s
}

// Create opens a new session for userID.
func (s *Store) Create(userID int64) *Session {
	now := s.now()
	sess := &Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	s.cache.Set(sess.ID, sess, s.ttl)
	return sess
}

// Get returns the live session with the given id.
func (s *Store) Get(id string) (*Session, bool) {
	x, found := s.cache.Get(id)
	if !found {
		return nil, false
	}
	sess := x.(*Session)
	if sess.Expired(s.now()) {
		return nil, false
	}
	return sess, true
}

// Destroy removes the session. Unknown ids are ignored.
func (s *Store) Destroy(id string) {
	s.cache.Delete(id)
}

// Prune removes all expired sessions immediately.
func (s *Store) Prune() {
	s.cache.DeleteExpired()
}

// Len returns the number of stored sessions, including expired ones that
// have not been swept yet.
func (s *Store) Len() int {
	return s.cache.ItemCount()
}
