package ports

// Element statuses reported by distance-matrix services.
const (
	StatusOK          = "OK"
	StatusNotFound    = "NOT_FOUND"
	StatusZeroResults = "ZERO_RESULTS"
)

// Distance and travel duration from one origin to the destination.
// DistanceMeters and DurationSeconds are only meaningful when Status is StatusOK.
type DistanceResult struct {
	Status          string
	DistanceMeters  int
	DurationSeconds int
}
