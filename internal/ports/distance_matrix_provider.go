package ports

import (
	"context"
	"lga-distance/internal/domain"
)

// Contract for a distance-matrix service queried with many origins and a
// single destination, driving mode, metric units.
type DistanceMatrixProvider interface {
	// Return one result per origin, in origin order.
	// An error means the whole query failed and no result can be trusted.
	GetDistances(ctx context.Context, origins []domain.Coordinates, destination domain.Coordinates) ([]DistanceResult, error)
}
