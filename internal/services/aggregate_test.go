package services

import (
	"errors"
	"lga-distance/internal/domain"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func regionsWithPopulation(pops ...int64) []domain.Region {
	out := make([]domain.Region, 0, len(pops))
	for i, p := range pops {
		out = append(out, domain.Region{Name: string(rune('A' + i)), Population: decimal.NewFromInt(p)})
	}
	return out
}

func ok(meters int) domain.DistanceOutcome {
	return domain.DistanceOutcome{Status: domain.StatusOK, DistanceMeters: meters}
}

func TestAggregateWeightedAverage(t *testing.T) {
	report, err := AggregateWeighted(regionsWithPopulation(10, 20), []domain.DistanceOutcome{ok(5000), ok(15000)})
	require.NoError(t, err)

	assert.True(t, report.TotalWeightedDistance.Equal(decimal.NewFromInt(350)))
	assert.True(t, report.TotalPopulation.Equal(decimal.NewFromInt(30)))
	assert.InDelta(t, 11.667, report.WeightedAverage.InexactFloat64(), 0.001)
	assert.Equal(t, 2, report.Resolved)
	assert.Zero(t, report.Unavailable)

	require.Len(t, report.Rows, 2)
	assert.True(t, report.Rows[0].Distance.Equal(decimal.NewFromInt(5)))
	assert.True(t, report.Rows[1].PopulationXDistance.Equal(decimal.NewFromInt(300)))
}

func TestAggregateUnavailableCountsPopulationOnly(t *testing.T) {
	outcomes := []domain.DistanceOutcome{ok(5000), {Status: "ZERO_RESULTS"}, {Status: domain.StatusError}}
	report, err := AggregateWeighted(regionsWithPopulation(10, 20, 30), outcomes)
	require.NoError(t, err)

	assert.True(t, report.TotalWeightedDistance.Equal(decimal.NewFromInt(50)))
	assert.True(t, report.TotalPopulation.Equal(decimal.NewFromInt(60)))
	assert.True(t, report.WeightedAverage.Equal(decimal.RequireFromString("50").Div(decimal.NewFromInt(60))))
	assert.Equal(t, 2, report.Unavailable)

	assert.False(t, report.Rows[1].Available())
	assert.Nil(t, report.Rows[1].PopulationXDistance)
	assert.False(t, report.Rows[2].Available())
}

func TestAggregateAllUnavailableIsZero(t *testing.T) {
	outcomes := domain.FailedOutcomes(2)
	report, err := AggregateWeighted(regionsWithPopulation(10, 20), outcomes)
	require.NoError(t, err)

	assert.True(t, report.WeightedAverage.IsZero())
	assert.Zero(t, report.Resolved)
}

func TestAggregateZeroPopulation(t *testing.T) {
	_, err := AggregateWeighted(regionsWithPopulation(0, 0), []domain.DistanceOutcome{ok(1000), ok(2000)})
	assert.True(t, errors.Is(err, domain.ErrZeroPopulation))

	_, err = AggregateWeighted(nil, nil)
	assert.ErrorIs(t, err, domain.ErrZeroPopulation)
}

func TestAggregateLengthMismatch(t *testing.T) {
	_, err := AggregateWeighted(regionsWithPopulation(10, 20), []domain.DistanceOutcome{ok(1000)})
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrZeroPopulation))
}

func TestAggregateFractionalKilometers(t *testing.T) {
	report, err := AggregateWeighted(regionsWithPopulation(3), []domain.DistanceOutcome{ok(1234)})
	require.NoError(t, err)

	assert.Equal(t, "1.234", report.Rows[0].Distance.String())
	assert.Equal(t, "3.702", report.Rows[0].PopulationXDistance.String())
}
