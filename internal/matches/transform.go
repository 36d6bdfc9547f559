package matches

import (
	"strings"
	"time"
)

// DefaultDateLayouts are tried in order when no layouts are passed to
// Transform. month/day/year first, then ISO.
var DefaultDateLayouts = []string{"1/2/2006", "2006-01-02"}

// ParseDate tries each layout in turn. A date that matches none of them is
// returned as absent rather than as an error.
func ParseDate(s string, layouts ...string) Date {
	if len(layouts) == 0 {
		layouts = DefaultDateLayouts
	}
	v := strings.TrimSpace(s)
	if v == "" {
		return Date{}
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return Date{Time: t, Valid: true}
		}
	}
	return Date{}
}

// Process derives the analysis columns for a single record
func Process(rec MatchRecord, layouts ...string) ProcessedMatch {
	venue := Home
	if rec.Neutral {
		venue = Neutral
	}
	diff := rec.HomeScore - rec.AwayScore
	return ProcessedMatch{
		MatchRecord:    rec,
		ParsedDate:     ParseDate(rec.Date, layouts...),
		VenueType:      venue,
		TotalGoals:     rec.HomeScore + rec.AwayScore,
		GoalDifference: diff,
		Outcome:        OutcomeOf(diff),
	}
}

// Transform enriches every record. It has no side effects and returns a new
// slice; the input is not modified.
func Transform(records []MatchRecord, layouts ...string) []ProcessedMatch {
	out := make([]ProcessedMatch, len(records))
	for i, rec := range records {
		out[i] = Process(rec, layouts...)
	}
	return out
}

// Partition splits matches by venue type. Every match lands in exactly one
// of the two slices and input order is kept.
func Partition(ms []ProcessedMatch) (home, neutral []ProcessedMatch) {
	for _, m := range ms {
		if m.VenueType == Neutral {
			neutral = append(neutral, m)
		} else {
			home = append(home, m)
		}
	}
	return home, neutral
}

// GroupByVenue is Partition keyed by venue type
func GroupByVenue(ms []ProcessedMatch) map[VenueType][]ProcessedMatch {
	home, neutral := Partition(ms)
	return map[VenueType][]ProcessedMatch{Home: home, Neutral: neutral}
}

// TotalGoals extracts total goals as floats for the statistics code
func TotalGoals(ms []ProcessedMatch) []float64 {
	xs := make([]float64, len(ms))
	for i, m := range ms {
		xs[i] = float64(m.TotalGoals)
	}
	return xs
}

// MissingDates counts matches whose date did not parse
func MissingDates(ms []ProcessedMatch) int {
	n := 0
	for _, m := range ms {
		if !m.ParsedDate.Valid {
			n++
		}
	}
	return n
}
