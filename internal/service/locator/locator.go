// Package locator finds the candidate point closest to a query coordinate.
//
// The search is a single linear pass over the candidates using the haversine
// distance. It holds no state and is safe for concurrent use.
package locator

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNoCandidates is returned when there is nothing to search.
	ErrNoCandidates = errors.New("no candidates")
	// ErrInvalidInput is returned for coordinates that are not finite numbers.
	ErrInvalidInput = errors.New("invalid coordinate")
)

// Coordinate is a latitude/longitude pair in degrees.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// Valid reports whether both components are finite.
// Range checks are left to the caller.
func (c Coordinate) Valid() bool {
	return isFinite(c.Latitude) && isFinite(c.Longitude)
}

// InRange reports whether the coordinate lies within [-90,90] x [-180,180].
func (c Coordinate) InRange() bool {
	return c.Valid() &&
		c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// Candidate is a searchable coordinate carrying an opaque payload.
type Candidate[T any] struct {
	Coordinate
	Payload T
}

// Result is the outcome of a successful search.
type Result[T any] struct {
	Nearest    Candidate[T]
	Index      int // position of Nearest in the input
	DistanceKm float64
}

// CandidateError reports a malformed candidate.
type CandidateError struct {
	Index      int
	Coordinate Coordinate
}

func (e *CandidateError) Error() string {
	return fmt.Sprintf("candidate %d: %v (lat=%v, lon=%v)", e.Index, ErrInvalidInput, e.Coordinate.Latitude, e.Coordinate.Longitude)
}

func (e *CandidateError) Unwrap() error {
	return ErrInvalidInput
}

// LocateNearest returns the candidate with the smallest distance to query.
// Among equally distant candidates the first one wins. Candidates are read, never modified.
func LocateNearest[T any](query Coordinate, candidates []Candidate[T]) (Result[T], error) {
	if !query.Valid() {
		return Result[T]{}, fmt.Errorf("query: %w", ErrInvalidInput)
	}
	if len(candidates) == 0 {
		return Result[T]{}, ErrNoCandidates
	}

	best := -1
	bestDistance := math.Inf(1)
	for i := range candidates {
		c := candidates[i].Coordinate
		if !c.Valid() {
			return Result[T]{}, &CandidateError{Index: i, Coordinate: c}
		}

		// strict improvement only, so the first of equal minimums is kept
		if d := Distance(query, c); d < bestDistance {
			best = i
			bestDistance = d
		}
	}

	return Result[T]{
		Nearest:    candidates[best],
		Index:      best,
		DistanceKm: bestDistance,
	}, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
