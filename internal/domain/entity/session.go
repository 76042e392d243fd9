package entity

import (
	"sync"
	"time"
)

// Session holds per-visitor UI state: whether a successful check already
// happened and whether the donation modal is currently shown.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu             sync.Mutex
	hasFetchedOnce bool
	showModal      bool
}

// NewSession creates a session with the modal hidden and the latch open.
func NewSession(id string) *Session {
	return &Session{ID: id, CreatedAt: time.Now()}
}

// LatchFirstSuccess shows the modal and closes the latch the first time it is
// called. It returns true only on that first call.
func (s *Session) LatchFirstSuccess() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasFetchedOnce {
		return false
	}
	s.hasFetchedOnce = true
	s.showModal = true
	return true
}

// HasFetchedOnce reports whether the latch is closed.
func (s *Session) HasFetchedOnce() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasFetchedOnce
}

// ModalVisible reports whether the modal should be rendered.
func (s *Session) ModalVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.showModal
}

// DismissModal hides the modal. The latch stays closed.
func (s *Session) DismissModal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showModal = false
}
