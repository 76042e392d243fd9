package sessionstore

import (
	"time"

	"points_checker/internal/app/port"
	"points_checker/internal/domain/entity"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// Store keeps sessions in memory with a sliding expiry.
// Nothing survives a restart.
type Store struct {
	cache  *gocache.Cache
	logger port.Logger
	newID  func() string
}

// NewStore creates a store whose sessions expire after ttl without activity.
// Expired sessions are swept every cleanupInterval.
func NewStore(ttl, cleanupInterval time.Duration, logger port.Logger) *Store {
	return &Store{
		cache:  gocache.New(ttl, cleanupInterval),
		logger: logger,
		newID:  uuid.NewString,
	}
}

var _ port.SessionStore = (*Store)(nil)

// OnEvicted registers f to run whenever a session expires or is deleted.
func (s *Store) OnEvicted(f func(sessionID string)) {
	s.cache.OnEvicted(func(key string, _ interface{}) {
		s.logger.Debug("Session evicted", "session_id", key)
		f(key)
	})
}

// Get implements port.SessionStore.
func (s *Store) Get(id string) (*entity.Session, bool) {
	if id == "" {
		return nil, false
	}
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	session := v.(*entity.Session)
	s.cache.Set(id, session, gocache.DefaultExpiration)
	return session, true
}

// GetOrCreate implements port.SessionStore.
func (s *Store) GetOrCreate(id string) (*entity.Session, bool) {
	if session, ok := s.Get(id); ok {
		return session, false
	}
	session := entity.NewSession(s.newID())
	s.cache.Set(session.ID, session, gocache.DefaultExpiration)
	s.logger.Debug("Session created", "session_id", session.ID)
	return session, true
}

// Delete implements port.SessionStore.
func (s *Store) Delete(id string) {
	s.cache.Delete(id)
}

// Count implements port.SessionStore. Expired but not yet swept sessions are included.
func (s *Store) Count() int {
	return s.cache.ItemCount()
}
