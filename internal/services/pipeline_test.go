package services

import (
	"context"
	"encoding/csv"
	"errors"
	"lga-distance/internal/adapters/distance"
	"lga-distance/internal/adapters/output"
	"lga-distance/internal/adapters/regions"
	"lga-distance/internal/domain"
	"lga-distance/internal/platform/metrics"
	"lga-distance/internal/platform/obs"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pipelineInput = `State,LGA,Name,Population,Latitude,Longitude
NSW,10050,Albury,10,-36.08,146.91
NSW,10130,Armidale,not-a-number,-30.5,151.6
VIC,20110,Alpine,20,-36.7,146.9
TAS,60210,Flinders,30,-40,148
`

type pipelineFixture struct {
	dir      string
	pipeline *Pipeline
	provider *distance.MockDistanceProvider
	metrics  *metrics.RunCollector
	request  RunRequest
}

func newPipelineFixture(t *testing.T, input string) *pipelineFixture {
	t.Helper()
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "lga.csv")
	require.NoError(t, os.WriteFile(inputPath, []byte(input), 0o644))

	// Flinders has no road route.
	provider := distance.NewMockDistanceProvider([]distance.MockPair{
		{From: domain.Coordinates{Lat: -36.08, Lon: 146.91}, To: sydney, Meters: 5000},
		{From: domain.Coordinates{Lat: -36.7, Lon: 146.9}, To: sydney, Meters: 15000},
	})

	collector, err := metrics.NewRunCollector()
	require.NoError(t, err)

	return &pipelineFixture{
		dir:      dir,
		provider: provider,
		metrics:  collector,
		pipeline: &Pipeline{
			Loader:   regions.NewFileRegionLoader(nil),
			Resolver: &DistanceResolver{Provider: provider, BatchSize: 2, Metrics: collector},
			Writer:   output.NewFileReportWriter(),
			Metrics:  collector,
		},
		request: RunRequest{
			InputPath:   inputPath,
			StateFilter: domain.AllStates,
			Destination: sydney,
			DetailPath:  filepath.Join(dir, "results_lga.csv"),
			SummaryPath: filepath.Join(dir, "results_weighted_average.csv"),
		},
	}
}

func readRecords(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestPipelineRun(t *testing.T) {
	fx := newPipelineFixture(t, pipelineInput)

	report, err := fx.pipeline.Run(obs.WithRunID(context.Background()), fx.request)
	require.NoError(t, err)

	// (10*5 + 20*15) / (10+20+30)
	assert.Equal(t, "350", report.TotalWeightedDistance.String())
	assert.Equal(t, "60", report.TotalPopulation.String())
	assert.InDelta(t, 5.833, report.WeightedAverage.InexactFloat64(), 0.001)
	assert.Equal(t, []int{2, 1}, fx.provider.BatchSizes())

	detail := readRecords(t, fx.request.DetailPath)
	require.Len(t, detail, 4)
	assert.Equal(t, output.DetailHeader, detail[0])
	assert.Equal(t, []string{"NSW", "10050", "Albury", "10", "-36.08", "146.91", "5", "50"}, detail[1])
	assert.Equal(t, []string{"VIC", "20110", "Alpine", "20", "-36.7", "146.9", "15", "300"}, detail[2])
	assert.Equal(t, []string{"TAS", "60210", "Flinders", "30", "-40", "148", "N/A", "N/A"}, detail[3])

	summary := readRecords(t, fx.request.SummaryPath)
	require.Len(t, summary, 2)
	assert.Equal(t, []string{output.SummaryHeader}, summary[0])
	assert.Equal(t, []string{report.WeightedAverage.String()}, summary[1])

	assert.Equal(t, 3.0, testutil.ToFloat64(fx.metrics.RowsLoaded))
	assert.Equal(t, 1.0, testutil.ToFloat64(fx.metrics.RowsDropped))
	assert.Equal(t, 1.0, testutil.ToFloat64(fx.metrics.Unavailable))
}

func TestPipelineRunStateFilter(t *testing.T) {
	fx := newPipelineFixture(t, pipelineInput)
	fx.request.StateFilter = "VIC"

	report, err := fx.pipeline.Run(context.Background(), fx.request)
	require.NoError(t, err)

	require.Len(t, report.Rows, 1)
	assert.Equal(t, "Alpine", report.Rows[0].Region.Name)
	assert.Equal(t, "15", report.WeightedAverage.String())
}

func TestPipelineRunFailedBatchStillWrites(t *testing.T) {
	fx := newPipelineFixture(t, pipelineInput)
	fx.provider.FailCalls[1] = errors.New("REQUEST_DENIED")

	report, err := fx.pipeline.Run(context.Background(), fx.request)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Unavailable)
	assert.True(t, report.WeightedAverage.IsZero())

	detail := readRecords(t, fx.request.DetailPath)
	assert.Equal(t, "N/A", detail[1][6])
	assert.Equal(t, "N/A", detail[2][6])
}

func TestPipelineRunZeroPopulationWritesNothing(t *testing.T) {
	fx := newPipelineFixture(t, "State,LGA,Name,Population,Latitude,Longitude\nNSW,10050,Albury,0,-36.08,146.91\n")

	_, err := fx.pipeline.Run(context.Background(), fx.request)
	require.ErrorIs(t, err, domain.ErrZeroPopulation)

	_, statErr := os.Stat(fx.request.DetailPath)
	assert.True(t, os.IsNotExist(statErr), "detail table must not be written")
	_, statErr = os.Stat(fx.request.SummaryPath)
	assert.True(t, os.IsNotExist(statErr), "summary table must not be written")
}

func TestPipelineRunMissingInput(t *testing.T) {
	fx := newPipelineFixture(t, pipelineInput)
	fx.request.InputPath = filepath.Join(fx.dir, "missing.csv")

	_, err := fx.pipeline.Run(context.Background(), fx.request)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPipelineRunRequiresCollaborators(t *testing.T) {
	_, err := (&Pipeline{}).Run(context.Background(), RunRequest{})
	assert.Error(t, err)
}

func TestPipelineRunNilProvider(t *testing.T) {
	fx := newPipelineFixture(t, pipelineInput)
	fx.pipeline.Resolver.Provider = nil

	assert.NotPanics(t, func() {
		_, err := fx.pipeline.Run(context.Background(), fx.request)
		assert.ErrorContains(t, err, "no distance provider")
	})
}

func TestPipelineRunSummaryFailureLeavesNoDetail(t *testing.T) {
	fx := newPipelineFixture(t, pipelineInput)
	fx.request.SummaryPath = filepath.Join(fx.dir, "missing-dir", "results_weighted_average.csv")

	_, err := fx.pipeline.Run(context.Background(), fx.request)
	require.ErrorContains(t, err, "write summary table")

	_, statErr := os.Stat(fx.request.DetailPath)
	assert.True(t, os.IsNotExist(statErr), "detail table must not be left without a summary")
}
