package distance

import (
	"context"
	"lga-distance/internal/domain"
	"lga-distance/internal/ports"
)

type MockPair struct {
	From, To domain.Coordinates
	Meters   int
	Seconds  int
}

// MockDistanceProvider answers from a fixed table of origin/destination pairs.
// Unknown pairs come back as NOT_FOUND elements. Calls listed in FailCalls
// (1-based) return the given error instead of results.
type MockDistanceProvider struct {
	m          map[string]ports.DistanceResult
	FailCalls  map[int]error
	batchSizes []int
}

func NewMockDistanceProvider(pairs []MockPair) *MockDistanceProvider {
	m := make(map[string]ports.DistanceResult, len(pairs))
	for _, p := range pairs {
		m[p.From.String()+"|"+p.To.String()] = ports.DistanceResult{
			Status:          ports.StatusOK,
			DistanceMeters:  p.Meters,
			DurationSeconds: p.Seconds,
		}
	}
	return &MockDistanceProvider{m: m, FailCalls: map[int]error{}}
}

func (p *MockDistanceProvider) GetDistances(
	ctx context.Context,
	origins []domain.Coordinates,
	destination domain.Coordinates,
) ([]ports.DistanceResult, error) {
	p.batchSizes = append(p.batchSizes, len(origins))

	if err, ok := p.FailCalls[len(p.batchSizes)]; ok {
		return nil, err
	}

	out := make([]ports.DistanceResult, 0, len(origins))
	for _, o := range origins {
		r, ok := p.m[o.String()+"|"+destination.String()]
		if !ok {
			r = ports.DistanceResult{Status: ports.StatusNotFound}
		}
		out = append(out, r)
	}

	return out, nil
}

// BatchSizes returns the number of origins of every call so far, in call order.
func (p *MockDistanceProvider) BatchSizes() []int {
	return append([]int(nil), p.batchSizes...)
}
