package port

import (
	"context"

	"points_checker/internal/domain/entity"
)

// PointsClient fetches the points document of a single address from the remote API.
type PointsClient interface {
	// FetchPoints returns the decoded JSON body for address.
	// Transport, non-2xx status and decode failures are all returned as errors.
	FetchPoints(ctx context.Context, address string) (any, error)
}

// BatchObserver is notified with a fresh snapshot after every resolved address.
type BatchObserver func(snapshot entity.BatchSnapshot)

// PointsService checks the addresses of a batch one at a time, in order.
type PointsService interface {
	Run(ctx context.Context, session *entity.Session, batch *entity.Batch, observer BatchObserver) entity.BatchOutcome
}
