package analysis

import (
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/richard-senior/venuegoals/internal/matches"
)

// PoissonRange is the number of goal counts (0..PoissonRange-1) per side
// in the outcome matrix
const PoissonRange = 11

// PoissonCheck compares the outcome shares of a venue type with those implied
// by independent Poisson scores for each side, using the observed mean goals
// as the rates
type PoissonCheck struct {
	Venue      matches.VenueType `json:"venue"`
	HomeLambda float64           `json:"homeLambda"`
	AwayLambda float64           `json:"awayLambda"`

	// Poisson implied probabilities
	HomeWin float64 `json:"homeWin"`
	Draw    float64 `json:"draw"`
	AwayWin float64 `json:"awayWin"`
	Over2p5 float64 `json:"over2p5"`

	// Observed shares
	ObservedHomeWin float64 `json:"observedHomeWin"`
	ObservedDraw    float64 `json:"observedDraw"`
	ObservedAwayWin float64 `json:"observedAwayWin"`
	ObservedOver2p5 float64 `json:"observedOver2p5"`
}

// PoissonModel runs the check for every venue type with at least one match
func PoissonModel(ms []matches.ProcessedMatch) []PoissonCheck {
	groups := matches.GroupByVenue(ms)
	var out []PoissonCheck
	for _, venue := range matches.VenueTypes {
		if g := groups[venue]; len(g) > 0 {
			out = append(out, poissonCheck(venue, g))
		}
	}
	return out
}

func poissonCheck(venue matches.VenueType, ms []matches.ProcessedMatch) PoissonCheck {
	n := float64(len(ms))
	c := PoissonCheck{Venue: venue}
	var over int
	for _, m := range ms {
		c.HomeLambda += float64(m.HomeScore)
		c.AwayLambda += float64(m.AwayScore)
		switch m.Outcome {
		case matches.HomeWin:
			c.ObservedHomeWin++
		case matches.Draw:
			c.ObservedDraw++
		case matches.AwayWin:
			c.ObservedAwayWin++
		}
		if m.TotalGoals > 2 {
			over++
		}
	}
	c.HomeLambda /= n
	c.AwayLambda /= n
	c.ObservedHomeWin /= n
	c.ObservedDraw /= n
	c.ObservedAwayWin /= n
	c.ObservedOver2p5 = float64(over) / n

	matrix := scoreMatrix(goalProbabilities(c.HomeLambda), goalProbabilities(c.AwayLambda))
	c.HomeWin, c.Draw, c.AwayWin = outcomeProbabilities(matrix)
	c.Over2p5 = overProbability(matrix, 2.5)
	return c
}

// goalProbabilities is P(k goals) for k in [0, PoissonRange)
func goalProbabilities(lambda float64) []float64 {
	probs := make([]float64, PoissonRange)
	if lambda == 0 {
		probs[0] = 1
		return probs
	}
	dist := distuv.Poisson{Lambda: lambda}
	for k := range probs {
		probs[k] = dist.Prob(float64(k))
	}
	return probs
}

// scoreMatrix is the outer product: matrix[i][j] = P(home scores i, away scores j)
func scoreMatrix(homeProbs, awayProbs []float64) [][]float64 {
	matrix := make([][]float64, len(homeProbs))
	for i := range homeProbs {
		matrix[i] = make([]float64, len(awayProbs))
		for j := range awayProbs {
			matrix[i][j] = homeProbs[i] * awayProbs[j]
		}
	}
	return matrix
}

func outcomeProbabilities(matrix [][]float64) (homeWin, draw, awayWin float64) {
	for i := range matrix {
		for j, p := range matrix[i] {
			if i > j {
				homeWin += p
			} else if i == j {
				draw += p
			} else {
				awayWin += p
			}
		}
	}
	return homeWin, draw, awayWin
}

func overProbability(matrix [][]float64, threshold float64) float64 {
	var p float64
	for i := range matrix {
		for j := range matrix[i] {
			if float64(i+j) > threshold {
				p += matrix[i][j]
			}
		}
	}
	return p
}
