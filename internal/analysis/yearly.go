package analysis

import (
	"sort"

	"github.com/richard-senior/venuegoals/internal/matches"
)

// YearlyPoint is the mean total goals of one venue type in one year
type YearlyPoint struct {
	Year  int               `json:"year"`
	Venue matches.VenueType `json:"venue"`
	Mean  float64           `json:"mean"`
	Count int               `json:"count"`
}

// YearlySeries holds the per-year means ordered by year then venue type,
// and the number of matches left out because their date was missing
type YearlySeries struct {
	Points   []YearlyPoint `json:"points"`
	Excluded int           `json:"excluded"`
}

// ForVenue returns the points of a single venue type in year order
func (s YearlySeries) ForVenue(v matches.VenueType) []YearlyPoint {
	var out []YearlyPoint
	for _, p := range s.Points {
		if p.Venue == v {
			out = append(out, p)
		}
	}
	return out
}

// YearlyMeans averages total goals per (year, venue type). Matches without
// a valid date are excluded and counted.
func YearlyMeans(ms []matches.ProcessedMatch) YearlySeries {
	type key struct {
		year  int
		venue matches.VenueType
	}
	sums := map[key]int{}
	counts := map[key]int{}
	var series YearlySeries

	for _, m := range ms {
		year, ok := m.Year()
		if !ok {
			series.Excluded++
			continue
		}
		k := key{year, m.VenueType}
		sums[k] += m.TotalGoals
		counts[k]++
	}

	for k, n := range counts {
		series.Points = append(series.Points, YearlyPoint{
			Year:  k.year,
			Venue: k.venue,
			Mean:  float64(sums[k]) / float64(n),
			Count: n,
		})
	}
	sort.Slice(series.Points, func(i, j int) bool {
		a, b := series.Points[i], series.Points[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Venue < b.Venue
	})
	return series
}
