package distance

import (
	"context"
	"errors"
	"lga-distance/internal/domain"
	"lga-distance/internal/platform/obs"
	"lga-distance/internal/ports"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultORSBaseURL = "https://api.openrouteservice.org"

// ORSDistanceProvider implements DistanceMatrixProvider using OpenRouteService.
//
// One call maps to one /v2/matrix request with every origin as a source and
// the destination as the only target. Failed requests are not retried.
type ORSDistanceProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
	profile string
	logger  *zap.Logger
}

func NewORSDistanceProvider(apiKey string, baseURL string, logger *zap.Logger) (*ORSDistanceProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("ORS api key is empty")
	}

	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultORSBaseURL
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	provider := &ORSDistanceProvider{
		session: &http.Client{Timeout: 30 * time.Second},
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		profile: "driving-car",
		logger:  logger,
	}

	return provider, nil
}

// Compute driving distances from many origins to a single destination.
func (o *ORSDistanceProvider) GetDistances(
	ctx context.Context,
	origins []domain.Coordinates,
	destination domain.Coordinates,
) (_ []ports.DistanceResult, err error) {
	defer obs.TimeDebug(ctx, o.logger, "ors.GetDistances")(&err)

	if len(origins) == 0 {
		return []ports.DistanceResult{}, nil
	}

	return o.fetchMatrixColumn(ctx, origins, destination)
}
