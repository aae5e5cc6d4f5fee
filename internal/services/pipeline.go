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

type RunRequest struct {
	InputPath   string
	StateFilter string
	Destination domain.Coordinates
	DetailPath  string
	SummaryPath string
}

// Pipeline runs one weighted-distance computation end to end:
// load, extract, resolve, aggregate, then write both tables.
type Pipeline struct {
	Loader   ports.RegionLoader
	Resolver *DistanceResolver
	Writer   ports.ReportWriter
	Logger   *zap.Logger
	Metrics  *metrics.RunCollector
}

func (p *Pipeline) Run(ctx context.Context, req RunRequest) (_ *domain.WeightedReport, err error) {
	if p.Loader == nil || p.Resolver == nil || p.Writer == nil {
		return nil, errors.New("run pipeline: loader, resolver and writer are required")
	}
	if p.Resolver.Provider == nil {
		return nil, errors.New("run pipeline: resolver has no distance provider")
	}

	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	defer obs.Time(ctx, logger, "pipeline.Run")(&err)

	logger.Info("weighted distance run started",
		zap.String("run_id", obs.RunID(ctx)),
		zap.String("input", req.InputPath),
		zap.String("state_filter", req.StateFilter),
		zap.Stringer("destination", req.Destination),
	)

	set, err := p.Loader.LoadRegions(ctx, req.InputPath, req.StateFilter)
	if err != nil {
		return nil, fmt.Errorf("run pipeline: %w", err)
	}
	p.Metrics.ObserveLoad(len(set.Regions), set.Dropped)

	origins := ExtractCoordinates(set.Regions)

	outcomes, err := p.Resolver.Resolve(ctx, origins, req.Destination)
	if err != nil {
		return nil, fmt.Errorf("run pipeline: %w", err)
	}

	report, err := AggregateWeighted(set.Regions, outcomes)
	if err != nil {
		return nil, fmt.Errorf("run pipeline: %w", err)
	}
	p.Metrics.ObserveResult(report.Unavailable, report.WeightedAverage.InexactFloat64())

	if err := p.Writer.WriteReport(req.DetailPath, req.SummaryPath, report); err != nil {
		return nil, fmt.Errorf("run pipeline: %w", err)
	}

	logger.Info("weighted distance run finished",
		zap.String("run_id", obs.RunID(ctx)),
		zap.Int("regions", len(report.Rows)),
		zap.Int("unavailable", report.Unavailable),
		zap.String("weighted_average_km", report.WeightedAverage.String()),
		zap.String("detail", req.DetailPath),
		zap.String("summary", req.SummaryPath),
	)

	return report, nil
}
