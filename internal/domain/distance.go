package domain

// StatusOK marks a resolved distance; any other status means "not available".
const StatusOK = "OK"

// StatusError marks every origin of a batch whose query failed as a whole.
const StatusError = "ERROR"

// DistanceOutcome is the per-region result of a distance lookup.
// Outcomes are index-aligned with the region list they were resolved for.
type DistanceOutcome struct {
	Status         string
	DistanceMeters int
}

func (o DistanceOutcome) OK() bool { return o.Status == StatusOK }

// FailedOutcomes returns n outcomes marked with StatusError.
func FailedOutcomes(n int) []DistanceOutcome {
	out := make([]DistanceOutcome, n)
	for i := range out {
		out[i] = DistanceOutcome{Status: StatusError}
	}
	return out
}
