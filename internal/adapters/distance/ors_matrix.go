package distance

import (
	"context"
	"fmt"
	"lga-distance/internal/domain"
	"lga-distance/internal/ports"
	"math"
)

type matrixRequest struct {
	Locations    [][]float64 `json:"locations"`
	Destinations []int       `json:"destinations"`
	Metrics      []string    `json:"metrics"`
	Sources      []int       `json:"sources"`
	Units        string      `json:"units"`
}

type matrixResponse struct {
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

// fetchMatrixColumn retrieves distance and duration from many origins to one
// destination using the OpenRouteService matrix endpoint.
// The destination is appended as the last location.
func (o *ORSDistanceProvider) fetchMatrixColumn(
	ctx context.Context,
	origins []domain.Coordinates,
	destination domain.Coordinates,
) ([]ports.DistanceResult, error) {
	endpoint := fmt.Sprintf("%s/v2/matrix/%s", o.baseURL, o.profile)

	locations := make([][]float64, 0, len(origins)+1)
	sources := make([]int, 0, len(origins))
	for i, c := range origins {
		locations = append(locations, c.CoordsToList())
		sources = append(sources, i)
	}
	locations = append(locations, destination.CoordsToList())

	bodyObj := matrixRequest{
		Locations:    locations,
		Destinations: []int{len(origins)},
		Metrics:      []string{"distance", "duration"},
		Sources:      sources,
		Units:        "m",
	}

	var mr matrixResponse
	if err := o.postJSON(ctx, endpoint, bodyObj, &mr); err != nil {
		return nil, fmt.Errorf("matrix request failed: %w", err)
	}

	if len(mr.Distances) != len(origins) || len(mr.Durations) != len(origins) {
		return nil, fmt.Errorf(
			"row counts do not match origins: distances=%d durations=%d origins=%d",
			len(mr.Distances), len(mr.Durations), len(origins),
		)
	}

	out := make([]ports.DistanceResult, 0, len(origins))
	for i := range origins {
		metersPtr := cellAt(mr.Distances[i])
		secondsPtr := cellAt(mr.Durations[i])

		// ORS reports unroutable pairs as null cells.
		if metersPtr == nil || secondsPtr == nil {
			out = append(out, ports.DistanceResult{Status: ports.StatusZeroResults})
			continue
		}

		// ORS returns float metrics; round to nearest integer for domain consistency.
		out = append(out, ports.DistanceResult{
			Status:          ports.StatusOK,
			DistanceMeters:  int(math.Round(*metersPtr)),
			DurationSeconds: int(math.Round(*secondsPtr)),
		})
	}

	return out, nil
}

func cellAt(row []*float64) *float64 {
	if len(row) != 1 {
		return nil
	}
	return row[0]
}
