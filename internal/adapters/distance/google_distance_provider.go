package distance

import (
	"context"
	"errors"
	"fmt"
	"lga-distance/internal/domain"
	"lga-distance/internal/platform/obs"
	"lga-distance/internal/ports"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"googlemaps.github.io/maps"
)

// distanceMatrixClient is the subset of *maps.Client the provider calls.
type distanceMatrixClient interface {
	DistanceMatrix(ctx context.Context, r *maps.DistanceMatrixRequest) (*maps.DistanceMatrixResponse, error)
}

// GoogleDistanceProvider implements DistanceMatrixProvider using the
// Google Maps Distance Matrix API, driving mode, metric units.
type GoogleDistanceProvider struct {
	client distanceMatrixClient
	logger *zap.Logger
}

// NewGoogleDistanceProvider builds a provider for apiKey. Extra options are
// applied after the defaults, e.g. maps.WithBaseURL in tests.
func NewGoogleDistanceProvider(apiKey string, logger *zap.Logger, opts ...maps.ClientOption) (*GoogleDistanceProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("google maps api key is empty")
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	options := append([]maps.ClientOption{
		maps.WithAPIKey(apiKey),
		maps.WithHTTPClient(&http.Client{Timeout: 30 * time.Second}),
	}, opts...)

	client, err := maps.NewClient(options...)
	if err != nil {
		return nil, fmt.Errorf("create google maps client: %w", err)
	}

	return &GoogleDistanceProvider{client: client, logger: logger}, nil
}

// Compute driving distances from many origins to a single destination.
// Element statuses are passed through unchanged.
func (g *GoogleDistanceProvider) GetDistances(
	ctx context.Context,
	origins []domain.Coordinates,
	destination domain.Coordinates,
) (_ []ports.DistanceResult, err error) {
	defer obs.TimeDebug(ctx, g.logger, "google.GetDistances")(&err)

	if len(origins) == 0 {
		return []ports.DistanceResult{}, nil
	}

	originList := make([]string, 0, len(origins))
	for _, c := range origins {
		originList = append(originList, c.String())
	}

	resp, err := g.client.DistanceMatrix(ctx, &maps.DistanceMatrixRequest{
		Origins:      originList,
		Destinations: []string{destination.String()},
		Mode:         maps.TravelModeDriving,
		Units:        maps.UnitsMetric,
	})
	if err != nil {
		return nil, fmt.Errorf("distance matrix request: %w", err)
	}

	if len(resp.Rows) != len(origins) {
		return nil, fmt.Errorf("distance matrix returned %d rows for %d origins", len(resp.Rows), len(origins))
	}

	out := make([]ports.DistanceResult, 0, len(origins))
	for _, row := range resp.Rows {
		if len(row.Elements) == 0 || row.Elements[0] == nil {
			out = append(out, ports.DistanceResult{Status: ports.StatusNotFound})
			continue
		}

		el := row.Elements[0]
		if el.Status != ports.StatusOK {
			out = append(out, ports.DistanceResult{Status: el.Status})
			continue
		}

		out = append(out, ports.DistanceResult{
			Status:          ports.StatusOK,
			DistanceMeters:  el.Distance.Meters,
			DurationSeconds: int(el.Duration / time.Second),
		})
	}

	return out, nil
}
