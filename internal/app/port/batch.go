package port

import "points_checker/internal/domain/entity"

// BatchService owns the current batch of every session.
type BatchService interface {
	// Submit cancels the running batch of the session, if any, and starts a new one.
	Submit(sessionID string, wallets []entity.Wallet) (*entity.Batch, error)
	// Current returns the latest batch submitted by the session.
	Current(sessionID string) (*entity.Batch, bool)
	// Subscribe streams snapshots of the current batch until it finishes.
	// The returned func releases the subscription.
	Subscribe(sessionID string) (<-chan entity.BatchSnapshot, func(), error)
	// Wait blocks until the current batch of the session stops running.
	Wait(sessionID string) (entity.BatchSnapshot, error)
	DismissModal(sessionID string) error
	// Forget cancels and drops everything held for the session.
	Forget(sessionID string)
	Shutdown()
}
