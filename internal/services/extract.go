package services

import "lga-distance/internal/domain"

// ExtractCoordinates projects regions to their coordinates, one per region, same order.
func ExtractCoordinates(regions []domain.Region) []domain.Coordinates {
	out := make([]domain.Coordinates, 0, len(regions))
	for _, r := range regions {
		out = append(out, r.Coordinates())
	}
	return out
}
