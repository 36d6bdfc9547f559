package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// EffectSize is Cohen's d for mean(x) - mean(y) using the pooled standard
// deviation
type EffectSize struct {
	D         float64  `json:"d"`
	CI        Interval `json:"ci"`
	Magnitude string   `json:"magnitude"`
}

// CohensD computes the standardised mean difference and its confidence
// interval. The interval uses the large-sample standard error of d with a t
// quantile on n1+n2-2 degrees of freedom.
func CohensD(x, y []float64, level float64) (*EffectSize, error) {
	n1, n2 := float64(len(x)), float64(len(y))
	if n1 < 2 || n2 < 2 {
		return nil, fmt.Errorf("cohen's d: %w", ErrTooFewValues)
	}
	mx, vx := stat.MeanVariance(x, nil)
	my, vy := stat.MeanVariance(y, nil)
	df := n1 + n2 - 2
	pooled := math.Sqrt(((n1-1)*vx + (n2-1)*vy) / df)
	if pooled == 0 {
		return nil, fmt.Errorf("cohen's d: %w", ErrConstantSample)
	}

	d := (mx - my) / pooled
	se := math.Sqrt(((n1+n2)/(n1*n2) + 0.5*d*d/df) * ((n1 + n2) / df))
	q := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}.Quantile(1 - (1-level)/2)

	return &EffectSize{
		D:         d,
		CI:        Interval{Level: level, Lower: d - q*se, Upper: d + q*se},
		Magnitude: Magnitude(d),
	}, nil
}

// Magnitude labels |d| using Cohen's conventional thresholds
func Magnitude(d float64) string {
	switch a := math.Abs(d); {
	case a < 0.2:
		return "negligible"
	case a < 0.5:
		return "small"
	case a < 0.8:
		return "medium"
	default:
		return "large"
	}
}
