package ports

import (
	"context"
	"lga-distance/internal/domain"
)

// Port: a boundary for reading Region records from a tabular source.
type RegionLoader interface {
	// Load regions from path, keeping only rows of stateFilter
	// unless it is domain.AllStates or empty.
	LoadRegions(ctx context.Context, path string, stateFilter string) (*domain.RegionSet, error)
}
