package domain

import "github.com/shopspring/decimal"

// AllStates is the state filter value that keeps every region.
const AllStates = "Australia"

// Represents one Local Government Area loaded from the input table.
// A Region is created once at load time and never modified afterward.
type Region struct {
	State      string
	LGA        string
	Name       string
	Population decimal.Decimal
	Lat        float64
	Lng        float64
}

// Coordinates returns the region's location for distance queries.
func (r Region) Coordinates() Coordinates {
	return Coordinates{Lat: r.Lat, Lon: r.Lng}
}

// RegionSet is the ordered output of a region load.
// Dropped counts rows that failed to parse; they are otherwise not reported.
type RegionSet struct {
	Regions []Region
	Dropped int
}
