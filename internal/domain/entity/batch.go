package entity

import (
	"sync"
	"time"
)

// BatchStatus describes where a batch is in its lifecycle.
type BatchStatus string

const (
	// BatchRunning means addresses are still being checked.
	BatchRunning BatchStatus = "running"
	// BatchDone means every address has been resolved.
	BatchDone BatchStatus = "done"
	// BatchCancelled means the batch was superseded or shut down before finishing.
	BatchCancelled BatchStatus = "cancelled"
)

// Batch is the set of addresses parsed from one submission together with the
// results gathered so far. Reads and writes may come from different goroutines.
type Batch struct {
	ID        string
	Addresses []Wallet

	mu         sync.RWMutex
	pending    []string
	results    *ResultSet
	status     BatchStatus
	startedAt  time.Time
	finishedAt time.Time
}

// BatchSnapshot is an immutable copy of a batch's state.
type BatchSnapshot struct {
	ID         string        `json:"id"`
	Status     BatchStatus   `json:"status"`
	Addresses  []string      `json:"addresses"`
	Pending    []string      `json:"pending"`
	Results    []FetchResult `json:"results"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt *time.Time    `json:"finished_at,omitempty"`
}

// BatchOutcome summarizes a finished (or cancelled) run.
type BatchOutcome struct {
	BatchID        string `json:"batch_id"`
	Total          int    `json:"total"`
	Succeeded      int    `json:"succeeded"`
	Failed         int    `json:"failed"`
	ModalTriggered bool   `json:"modal_triggered"`
	Cancelled      bool   `json:"cancelled"`
}

// NewBatch creates a running batch. Every address starts out pending.
func NewBatch(id string, wallets []Wallet) *Batch {
	return &Batch{
		ID:        id,
		Addresses: wallets,
		pending:   Addresses(wallets),
		results:   NewResultSet(),
		status:    BatchRunning,
		startedAt: time.Now(),
	}
}

// Resolve stores r and drops the first pending entry for its address.
func (b *Batch) Resolve(r FetchResult) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.results.Set(r)
	for i, addr := range b.pending {
		if addr == r.Address {
			b.pending = append(b.pending[:i:i], b.pending[i+1:]...)
			break
		}
	}
}

// Finish moves the batch to a terminal status and clears the pending list.
// Finishing an already finished batch is a no-op.
func (b *Batch) Finish(status BatchStatus) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.status != BatchRunning {
		return
	}
	b.status = status
	b.pending = nil
	b.finishedAt = time.Now()
}

// Status returns the current status.
func (b *Batch) Status() BatchStatus {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.status
}

// HasSuccess reports whether any address of the batch was fetched successfully.
func (b *Batch) HasSuccess() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.results.HasSuccess()
}

// Snapshot copies the current state.
func (b *Batch) Snapshot() BatchSnapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	snap := BatchSnapshot{
		ID:        b.ID,
		Status:    b.status,
		Addresses: Addresses(b.Addresses),
		Pending:   append([]string{}, b.pending...),
		Results:   b.results.Results(),
		StartedAt: b.startedAt,
	}
	if !b.finishedAt.IsZero() {
		finished := b.finishedAt
		snap.FinishedAt = &finished
	}
	return snap
}

// Running reports whether the snapshot was taken before the batch finished.
func (s BatchSnapshot) Running() bool {
	return s.Status == BatchRunning
}
