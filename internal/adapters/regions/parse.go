package regions

import (
	"errors"
	"fmt"
	"lga-distance/internal/domain"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Input column names.
const (
	ColState      = "State"
	ColLGA        = "LGA"
	ColName       = "Name"
	ColPopulation = "Population"
	ColLatitude   = "Latitude"
	ColLongitude  = "Longitude"
)

var requiredColumns = []string{ColState, ColLGA, ColName, ColPopulation, ColLatitude, ColLongitude}

// columnIndex maps a header name to its position. Later duplicates win.
type columnIndex map[string]int

func indexHeader(header []string) columnIndex {
	idx := make(columnIndex, len(header))
	for i, name := range header {
		idx[name] = i
	}
	return idx
}

// cell returns the value of column name in record.
// ok is false when the header lacks the column or the record is too short.
func (c columnIndex) cell(record []string, name string) (string, bool) {
	i, ok := c[name]
	if !ok || i >= len(record) {
		return "", false
	}
	return record[i], true
}

// keep reports whether a record passes the state filter.
func (c columnIndex) keep(record []string, stateFilter string) bool {
	if stateFilter == "" || stateFilter == domain.AllStates {
		return true
	}
	state, ok := c.cell(record, ColState)
	return ok && state == stateFilter
}

// parseRegion validates one record. Any missing column or non-numeric
// population/coordinate rejects the whole row.
func (c columnIndex) parseRegion(record []string) (domain.Region, error) {
	values := make(map[string]string, len(requiredColumns))
	for _, name := range requiredColumns {
		v, ok := c.cell(record, name)
		if !ok {
			return domain.Region{}, fmt.Errorf("parse region: missing column %q", name)
		}
		values[name] = v
	}

	population, err := decimal.NewFromString(strings.TrimSpace(values[ColPopulation]))
	if err != nil {
		return domain.Region{}, fmt.Errorf("parse region: population %q: %w", values[ColPopulation], err)
	}

	lat, err := parseCoordinate(values[ColLatitude])
	if err != nil {
		return domain.Region{}, fmt.Errorf("parse region: latitude: %w", err)
	}

	lng, err := parseCoordinate(values[ColLongitude])
	if err != nil {
		return domain.Region{}, fmt.Errorf("parse region: longitude: %w", err)
	}

	return domain.Region{
		State:      values[ColState],
		LGA:        values[ColLGA],
		Name:       values[ColName],
		Population: population,
		Lat:        lat,
		Lng:        lng,
	}, nil
}

func parseCoordinate(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("coordinate must be finite")
	}
	return v, nil
}
