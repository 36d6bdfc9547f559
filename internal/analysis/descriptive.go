// Package analysis compares total goals between home-venue and
// neutral-venue matches.
package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/richard-senior/venuegoals/internal/matches"
)

// GroupSummary describes total goals for one venue type. StdDev is the
// sample standard deviation and is NaN for a single observation.
type GroupSummary struct {
	Venue    matches.VenueType `json:"venue"`
	Count    int               `json:"count"`
	Mean     float64           `json:"mean"`
	StdDev   float64           `json:"stdDev"`
	Median   float64           `json:"median"`
	Min      float64           `json:"min"`
	Max      float64           `json:"max"`
	Q1       float64           `json:"q1"`
	Q3       float64           `json:"q3"`
	HomeWins int               `json:"homeWins"`
	AwayWins int               `json:"awayWins"`
	Draws    int               `json:"draws"`
}

// Summarize computes the summary of a single group. ok is false for an
// empty group.
func Summarize(venue matches.VenueType, ms []matches.ProcessedMatch) (GroupSummary, bool) {
	if len(ms) == 0 {
		return GroupSummary{Venue: venue}, false
	}
	xs := matches.TotalGoals(ms)
	sort.Float64s(xs)

	mean, sd := stat.MeanStdDev(xs, nil)
	if len(xs) < 2 {
		sd = math.NaN()
	}
	med, err := mstats.Median(xs)
	if err != nil {
		return GroupSummary{Venue: venue}, false
	}
	sample := stats.Sample{Xs: xs, Sorted: true}

	s := GroupSummary{
		Venue:  venue,
		Count:  len(xs),
		Mean:   mean,
		StdDev: sd,
		Median: med,
		Min:    floats.Min(xs),
		Max:    floats.Max(xs),
		Q1:     sample.Quantile(0.25),
		Q3:     sample.Quantile(0.75),
	}
	for _, m := range ms {
		switch m.Outcome {
		case matches.HomeWin:
			s.HomeWins++
		case matches.AwayWin:
			s.AwayWins++
		default:
			s.Draws++
		}
	}
	return s, true
}

// Describe summarizes every venue type that has at least one match. Empty
// groups are left out and reported in notes.
func Describe(ms []matches.ProcessedMatch) (summaries []GroupSummary, notes []string) {
	groups := matches.GroupByVenue(ms)
	for _, venue := range matches.VenueTypes {
		s, ok := Summarize(venue, groups[venue])
		if !ok {
			notes = append(notes, fmt.Sprintf("%s group has no matches; summary omitted", venue))
			continue
		}
		summaries = append(summaries, s)
	}
	return summaries, notes
}

