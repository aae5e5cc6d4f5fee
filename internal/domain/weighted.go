package domain

import "github.com/shopspring/decimal"

// WeightedRow is one line of the detail table.
// Distance and PopulationXDistance are nil when the distance is not available.
type WeightedRow struct {
	Region              Region
	Distance            *decimal.Decimal
	PopulationXDistance *decimal.Decimal
}

func (r WeightedRow) Available() bool { return r.Distance != nil }

// WeightedReport is the aggregated result of a run.
//
// TotalPopulation counts every region, resolved or not, while
// TotalWeightedDistance only sums regions with an available distance.
type WeightedReport struct {
	Rows                  []WeightedRow
	TotalPopulation       decimal.Decimal
	TotalWeightedDistance decimal.Decimal
	WeightedAverage       decimal.Decimal
	Resolved              int
	Unavailable           int
}
