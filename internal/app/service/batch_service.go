package service

import (
	"context"
	"errors"
	"sync"

	"points_checker/internal/app/port"
	"points_checker/internal/domain/entity"
	"points_checker/internal/pkg/metrics"

	"github.com/google/uuid"
)

var (
	// ErrSessionNotFound is returned when the session expired or never existed.
	ErrSessionNotFound = errors.New("session not found")
	// ErrNoBatch is returned when the session has not submitted anything yet.
	ErrNoBatch = errors.New("no batch submitted in this session")
	// ErrShuttingDown is returned for submissions after Shutdown.
	ErrShuttingDown = errors.New("batch service is shutting down")
)

// batchRun is one pipeline goroutine and the subscribers watching it.
type batchRun struct {
	batch  *entity.Batch
	cancel context.CancelFunc
	done   chan struct{}

	subMu       sync.Mutex
	subscribers map[chan entity.BatchSnapshot]struct{}
	finished    bool
}

// BatchServiceImpl implements port.BatchService. Each session has at most one
// current batch; submitting again cancels the previous one and starts over
// with empty results.
type BatchServiceImpl struct {
	points   port.PointsService
	sessions port.SessionStore
	logger   port.Logger
	newID    func() string

	baseCtx    context.Context
	baseCancel context.CancelFunc

	mu      sync.Mutex
	runs    map[string]*batchRun
	closing bool
}

// NewBatchService creates a new instance of BatchServiceImpl.
func NewBatchService(ps port.PointsService, ss port.SessionStore, l port.Logger) *BatchServiceImpl {
	ctx, cancel := context.WithCancel(context.Background())
	return &BatchServiceImpl{
		points:     ps,
		sessions:   ss,
		logger:     l,
		newID:      uuid.NewString,
		baseCtx:    ctx,
		baseCancel: cancel,
		runs:       make(map[string]*batchRun),
	}
}

var _ port.BatchService = (*BatchServiceImpl)(nil)

// Submit implements port.BatchService.
func (s *BatchServiceImpl) Submit(sessionID string, wallets []entity.Wallet) (*entity.Batch, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	batch := entity.NewBatch(s.newID(), wallets)
	ctx, cancel := context.WithCancel(s.baseCtx)
	run := &batchRun{
		batch:       batch,
		cancel:      cancel,
		done:        make(chan struct{}),
		subscribers: make(map[chan entity.BatchSnapshot]struct{}),
	}

	s.mu.Lock()
	if s.closing {
		s.mu.Unlock()
		cancel()
		return nil, ErrShuttingDown
	}
	prev := s.runs[sessionID]
	s.runs[sessionID] = run
	s.mu.Unlock()

	if prev != nil {
		s.logger.Info("Superseding running batch", "session_id", sessionID, "previous_batch_id", prev.batch.ID)
		prev.cancel()
	}

	metrics.BatchSize.Observe(float64(len(wallets)))
	s.logger.Debug("Batch submitted", "session_id", sessionID, "batch_id", batch.ID, "addresses", len(wallets))

	go func() {
		defer close(run.done)
		defer cancel()
		s.points.Run(ctx, session, batch, run.publish)
		run.finish(batch.Snapshot())
	}()

	return batch, nil
}

// Current implements port.BatchService.
func (s *BatchServiceImpl) Current(sessionID string) (*entity.Batch, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.runs[sessionID]
	if !ok {
		return nil, false
	}
	return run.batch, true
}

// Subscribe implements port.BatchService. The channel first carries the
// current snapshot, then one per resolved address, and is closed once the
// batch stops running. Slow readers only ever miss intermediate snapshots,
// never the last one.
func (s *BatchServiceImpl) Subscribe(sessionID string) (<-chan entity.BatchSnapshot, func(), error) {
	run, err := s.currentRun(sessionID)
	if err != nil {
		return nil, nil, err
	}

	ch := make(chan entity.BatchSnapshot, 1)
	run.subMu.Lock()
	defer run.subMu.Unlock()

	ch <- run.batch.Snapshot()
	if run.finished {
		close(ch)
		return ch, func() {}, nil
	}
	run.subscribers[ch] = struct{}{}

	unsubscribe := func() {
		run.subMu.Lock()
		defer run.subMu.Unlock()
		if _, ok := run.subscribers[ch]; ok {
			delete(run.subscribers, ch)
			close(ch)
		}
	}
	return ch, unsubscribe, nil
}

// Wait implements port.BatchService.
func (s *BatchServiceImpl) Wait(sessionID string) (entity.BatchSnapshot, error) {
	run, err := s.currentRun(sessionID)
	if err != nil {
		return entity.BatchSnapshot{}, err
	}
	<-run.done
	return run.batch.Snapshot(), nil
}

// DismissModal implements port.BatchService.
func (s *BatchServiceImpl) DismissModal(sessionID string) error {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return ErrSessionNotFound
	}
	session.DismissModal()
	return nil
}

// Forget implements port.BatchService. It is wired to session expiry.
func (s *BatchServiceImpl) Forget(sessionID string) {
	s.mu.Lock()
	run, ok := s.runs[sessionID]
	delete(s.runs, sessionID)
	s.mu.Unlock()

	if ok {
		run.cancel()
		s.logger.Debug("Session batch dropped", "session_id", sessionID, "batch_id", run.batch.ID)
	}
}

// Shutdown implements port.BatchService. It cancels every running batch and
// waits for their goroutines to return.
func (s *BatchServiceImpl) Shutdown() {
	s.mu.Lock()
	s.closing = true
	runs := make([]*batchRun, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, run)
	}
	s.mu.Unlock()

	s.baseCancel()
	for _, run := range runs {
		<-run.done
	}
	s.logger.Info("Batch service stopped", "batches", len(runs))
}

func (s *BatchServiceImpl) currentRun(sessionID string) (*batchRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.runs[sessionID]
	if !ok {
		return nil, ErrNoBatch
	}
	return run, nil
}

// publish replaces whatever snapshot a subscriber has not read yet.
func (r *batchRun) publish(snap entity.BatchSnapshot) {
	r.subMu.Lock()
	defer r.subMu.Unlock()
	for ch := range r.subscribers {
		offer(ch, snap)
	}
}

func (r *batchRun) finish(last entity.BatchSnapshot) {
	r.subMu.Lock()
	defer r.subMu.Unlock()
	r.finished = true
	for ch := range r.subscribers {
		offer(ch, last)
		close(ch)
		delete(r.subscribers, ch)
	}
}

// offer puts snap into a one-slot channel, dropping a stale unread value first.
// Callers hold subMu, so nobody else writes ch concurrently.
func offer(ch chan entity.BatchSnapshot, snap entity.BatchSnapshot) {
	select {
	case ch <- snap:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	ch <- snap
}
