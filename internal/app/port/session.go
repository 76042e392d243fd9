package port

import "points_checker/internal/domain/entity"

// SessionStore keeps visitor sessions alive between requests.
type SessionStore interface {
	// Get returns the session with id and refreshes its expiry.
	Get(id string) (*entity.Session, bool)
	// GetOrCreate returns the session with id, creating a new one (with a new id) when missing.
	GetOrCreate(id string) (session *entity.Session, created bool)
	Delete(id string)
	Count() int
}
