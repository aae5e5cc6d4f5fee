package distance

import (
	"context"
	"errors"
	"lga-distance/internal/domain"
	"lga-distance/internal/ports"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"googlemaps.github.io/maps"
)

type fakeMatrixClient struct {
	req  *maps.DistanceMatrixRequest
	resp *maps.DistanceMatrixResponse
	err  error
}

func (f *fakeMatrixClient) DistanceMatrix(ctx context.Context, r *maps.DistanceMatrixRequest) (*maps.DistanceMatrixResponse, error) {
	f.req = r
	return f.resp, f.err
}

func TestGoogleGetDistances(t *testing.T) {
	fake := &fakeMatrixClient{resp: &maps.DistanceMatrixResponse{
		Rows: []maps.DistanceMatrixElementsRow{
			{Elements: []*maps.DistanceMatrixElement{{
				Status:   "OK",
				Distance: maps.Distance{Meters: 12345},
				Duration: 15 * time.Minute,
			}}},
			{Elements: []*maps.DistanceMatrixElement{{Status: "ZERO_RESULTS"}}},
			{},
		},
	}}
	provider := &GoogleDistanceProvider{client: fake, logger: zap.NewNop()}

	origins := []domain.Coordinates{{Lat: -36.08, Lon: 146.91}, {Lat: -42, Lon: 147}, {Lat: -20, Lon: 130}}
	results, err := provider.GetDistances(context.Background(), origins, domain.Coordinates{Lat: -33.88, Lon: 151.2})
	require.NoError(t, err)

	assert.Equal(t, []string{"-36.08,146.91", "-42,147", "-20,130"}, fake.req.Origins)
	assert.Equal(t, []string{"-33.88,151.2"}, fake.req.Destinations)
	assert.Equal(t, maps.TravelModeDriving, fake.req.Mode)
	assert.Equal(t, maps.UnitsMetric, fake.req.Units)

	assert.Equal(t, []ports.DistanceResult{
		{Status: ports.StatusOK, DistanceMeters: 12345, DurationSeconds: 900},
		{Status: "ZERO_RESULTS"},
		{Status: ports.StatusNotFound},
	}, results)
}

func TestGoogleGetDistancesErrors(t *testing.T) {
	origins := []domain.Coordinates{{Lat: 1, Lon: 1}}

	failing := &GoogleDistanceProvider{client: &fakeMatrixClient{err: errors.New("OVER_QUERY_LIMIT")}, logger: zap.NewNop()}
	_, err := failing.GetDistances(context.Background(), origins, domain.Coordinates{})
	assert.ErrorContains(t, err, "OVER_QUERY_LIMIT")

	short := &GoogleDistanceProvider{client: &fakeMatrixClient{resp: &maps.DistanceMatrixResponse{}}, logger: zap.NewNop()}
	_, err = short.GetDistances(context.Background(), origins, domain.Coordinates{})
	assert.ErrorContains(t, err, "returned 0 rows for 1 origins")
}

func TestGoogleGetDistancesOverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/maps/api/distancematrix/json", r.URL.Path)
		assert.Equal(t, "driving", r.URL.Query().Get("mode"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "-36.08,146.91", r.URL.Query().Get("origins"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"origin_addresses": ["Albury NSW"],
			"destination_addresses": ["Sydney NSW"],
			"rows": [{"elements": [{"status": "OK", "distance": {"text": "554 km", "value": 554000}, "duration": {"text": "5 hours", "value": 19800}}]}]
		}`))
	}))
	defer srv.Close()

	provider, err := NewGoogleDistanceProvider("AIzaNotReallyAnAPIKey", nil, maps.WithBaseURL(srv.URL))
	require.NoError(t, err)

	results, err := provider.GetDistances(
		context.Background(),
		[]domain.Coordinates{{Lat: -36.08, Lon: 146.91}},
		domain.Coordinates{Lat: -33.88, Lon: 151.2},
	)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, ports.StatusOK, results[0].Status)
	assert.Equal(t, 554000, results[0].DistanceMeters)
}

func TestNewGoogleDistanceProviderRequiresKey(t *testing.T) {
	_, err := NewGoogleDistanceProvider("", nil)
	assert.Error(t, err)
}
