package domain

import (
	"errors"
	"fmt"
)

// ErrZeroPopulation reports that the weighted average is undefined because
// the loaded regions have no population at all.
var ErrZeroPopulation = errors.New("total population is zero")

// BatchQueryError describes a distance-matrix query that failed for a whole batch.
// Batch is 1-based.
type BatchQueryError struct {
	Batch int
	Size  int
	Err   error
}

func (e *BatchQueryError) Error() string {
	return fmt.Sprintf("error in batch %d (%d origins): %v", e.Batch, e.Size, e.Err)
}

func (e *BatchQueryError) Unwrap() error { return e.Err }
