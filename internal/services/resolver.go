package services

import (
	"context"
	"errors"
	"fmt"
	"lga-distance/internal/domain"
	"lga-distance/internal/platform/metrics"
	"lga-distance/internal/platform/obs"
	"lga-distance/internal/ports"

	"go.uber.org/zap"
)

// DistanceResolver queries a distance-matrix provider in fixed-size batches.
//
// Batches run one after another. A batch whose query fails is replaced by
// StatusError outcomes so the result stays index-aligned with the origins;
// the failure is logged and the next batch proceeds. Nothing is retried.
type DistanceResolver struct {
	Provider  ports.DistanceMatrixProvider
	BatchSize int
	Logger    *zap.Logger
	Metrics   *metrics.RunCollector
}

// Resolve returns one outcome per origin, in origin order.
// Errors are reserved for a missing provider or a non-positive batch size.
func (r *DistanceResolver) Resolve(
	ctx context.Context,
	origins []domain.Coordinates,
	destination domain.Coordinates,
) (_ []domain.DistanceOutcome, err error) {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	defer obs.Time(ctx, logger, "resolver.Resolve")(&err)

	if r.Provider == nil {
		return nil, errors.New("resolve distances: no distance provider")
	}
	if r.BatchSize <= 0 {
		return nil, fmt.Errorf("resolve distances: batch size must be positive, got %d", r.BatchSize)
	}

	outcomes := make([]domain.DistanceOutcome, 0, len(origins))
	for start := 0; start < len(origins); start += r.BatchSize {
		end := min(start+r.BatchSize, len(origins))
		batch := origins[start:end]
		batchNo := start/r.BatchSize + 1

		results, err := r.Provider.GetDistances(ctx, batch, destination)
		if err == nil && len(results) != len(batch) {
			err = fmt.Errorf("provider returned %d results for %d origins", len(results), len(batch))
		}
		if err != nil {
			qerr := &domain.BatchQueryError{Batch: batchNo, Size: len(batch), Err: err}
			logger.Warn("distance batch failed",
				zap.String("run_id", obs.RunID(ctx)),
				zap.Int("batch", batchNo),
				zap.Int("size", len(batch)),
				zap.Error(qerr),
			)
			r.Metrics.ObserveBatch(true)
			outcomes = append(outcomes, domain.FailedOutcomes(len(batch))...)
			continue
		}

		r.Metrics.ObserveBatch(false)
		for _, res := range results {
			outcomes = append(outcomes, domain.DistanceOutcome{
				Status:         res.Status,
				DistanceMeters: res.DistanceMeters,
			})
		}
	}

	return outcomes, nil
}
