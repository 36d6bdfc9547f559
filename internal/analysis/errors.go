package analysis

import (
	"errors"
	"fmt"

	"github.com/richard-senior/venuegoals/internal/matches"
)

var (
	// ErrConstantSample is returned when a test needs spread in the data and
	// every observation is identical
	ErrConstantSample = errors.New("all observations are identical")
	// ErrTooFewValues is returned by the normality test below its minimum size
	ErrTooFewValues = errors.New("too few observations")
)

// InsufficientDataError means a group is too small for a two-sample
// procedure
type InsufficientDataError struct {
	Test  string
	Venue matches.VenueType
	N     int
	Min   int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: %s group has %d observation(s), need at least %d", e.Test, e.Venue, e.N, e.Min)
}

// checkSizes returns an *InsufficientDataError for the first group below min
func checkSizes(test string, min int, home, neutral []float64) error {
	if len(home) < min {
		return &InsufficientDataError{Test: test, Venue: matches.Home, N: len(home), Min: min}
	}
	if len(neutral) < min {
		return &InsufficientDataError{Test: test, Venue: matches.Neutral, N: len(neutral), Min: min}
	}
	return nil
}
