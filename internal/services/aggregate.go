package services

import (
	"fmt"
	"lga-distance/internal/domain"

	"github.com/shopspring/decimal"
)

var metersPerKilometer = decimal.NewFromInt(1000)

// AggregateWeighted weights each resolved distance by its region's population.
//
// Unresolved regions get no distance and add nothing to the weighted sum,
// but their population still counts toward the total. A zero total
// population makes the average undefined and returns ErrZeroPopulation.
func AggregateWeighted(regions []domain.Region, outcomes []domain.DistanceOutcome) (*domain.WeightedReport, error) {
	if len(regions) != len(outcomes) {
		return nil, fmt.Errorf("aggregate weighted: %d regions but %d distance outcomes", len(regions), len(outcomes))
	}

	report := &domain.WeightedReport{
		Rows:                  make([]domain.WeightedRow, 0, len(regions)),
		TotalPopulation:       decimal.Zero,
		TotalWeightedDistance: decimal.Zero,
	}

	for i, region := range regions {
		report.TotalPopulation = report.TotalPopulation.Add(region.Population)

		outcome := outcomes[i]
		if !outcome.OK() {
			report.Unavailable++
			report.Rows = append(report.Rows, domain.WeightedRow{Region: region})
			continue
		}

		km := decimal.NewFromInt(int64(outcome.DistanceMeters)).Div(metersPerKilometer)
		weighted := region.Population.Mul(km)
		report.TotalWeightedDistance = report.TotalWeightedDistance.Add(weighted)
		report.Resolved++
		report.Rows = append(report.Rows, domain.WeightedRow{
			Region:              region,
			Distance:            &km,
			PopulationXDistance: &weighted,
		})
	}

	if report.TotalPopulation.IsZero() {
		return nil, fmt.Errorf("aggregate weighted: %w", domain.ErrZeroPopulation)
	}

	report.WeightedAverage = report.TotalWeightedDistance.Div(report.TotalPopulation)

	return report, nil
}
