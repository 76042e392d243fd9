package service

import (
	"context"
	"time"

	"points_checker/internal/app/port"
	"points_checker/internal/domain/entity"
	"points_checker/internal/pkg/metrics"
)

// PointsServiceImpl implements port.PointsService.
type PointsServiceImpl struct {
	client port.PointsClient
	logger port.Logger
}

// NewPointsService creates a new instance of PointsServiceImpl.
func NewPointsService(c port.PointsClient, l port.Logger) port.PointsService {
	return &PointsServiceImpl{client: c, logger: l}
}

// Run checks every address of batch strictly one after another, in input order.
// Each address resolves to either the remote body or an error message; a
// failure never stops the remaining addresses. observer (optional) gets a
// snapshot right after each address resolves.
//
// When ctx is cancelled the loop stops before the next address and the batch
// ends up cancelled. Otherwise, if at least one address succeeded, the
// session latch is tripped so the modal shows once per session.
func (s *PointsServiceImpl) Run(
	ctx context.Context,
	session *entity.Session,
	batch *entity.Batch,
	observer port.BatchObserver,
) entity.BatchOutcome {
	log := s.logger.With("batch_id", batch.ID)
	outcome := entity.BatchOutcome{BatchID: batch.ID, Total: len(batch.Addresses)}
	log.Info("Batch started", "addresses", outcome.Total)

	for i, w := range batch.Addresses {
		if err := ctx.Err(); err != nil {
			return s.cancel(log, batch, outcome, i)
		}

		start := time.Now()
		payload, err := s.client.FetchPoints(ctx, w.Address)
		metrics.FetchDuration.Observe(time.Since(start).Seconds())

		// The client may finish a request after ctx ended. Its answer belongs
		// to a superseded batch and is dropped.
		if ctx.Err() != nil {
			return s.cancel(log, batch, outcome, i)
		}

		var result entity.FetchResult
		if err != nil {
			log.Warn("Address check failed", "index", i, "address", w.Address, "error", err)
			result = entity.NewErrorResult(w.Address, err.Error())
			outcome.Failed++
			metrics.FetchTotal.WithLabelValues(metrics.StatusError).Inc()
		} else {
			log.Debug("Address checked", "index", i, "address", w.Address)
			result = entity.NewSuccessResult(w.Address, payload)
			outcome.Succeeded++
			metrics.FetchTotal.WithLabelValues(metrics.StatusSuccess).Inc()
		}

		batch.Resolve(result)
		if observer != nil {
			observer(batch.Snapshot())
		}
	}

	if ctx.Err() != nil {
		return s.cancel(log, batch, outcome, len(batch.Addresses))
	}

	// The latch goes before Finish so a reader never sees a finished batch
	// without the modal it triggered.
	if batch.HasSuccess() && session != nil && session.LatchFirstSuccess() {
		outcome.ModalTriggered = true
		log.Info("First successful batch in session, showing modal", "session_id", session.ID)
	}
	batch.Finish(entity.BatchDone)
	metrics.BatchesTotal.WithLabelValues(string(entity.BatchDone)).Inc()

	log.Info("Batch finished",
		"total", outcome.Total,
		"succeeded", outcome.Succeeded,
		"failed", outcome.Failed,
		"modal_triggered", outcome.ModalTriggered)
	return outcome
}

func (s *PointsServiceImpl) cancel(log port.Logger, batch *entity.Batch, outcome entity.BatchOutcome, index int) entity.BatchOutcome {
	batch.Finish(entity.BatchCancelled)
	metrics.BatchesTotal.WithLabelValues(string(entity.BatchCancelled)).Inc()
	outcome.Cancelled = true
	log.Info("Batch cancelled", "resolved", index, "total", outcome.Total)
	return outcome
}
