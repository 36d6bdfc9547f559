package analysis

import (
	"fmt"
	"math"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// LeveneResult is a median-centred (Brown-Forsythe) Levene test
type LeveneResult struct {
	F   float64 `json:"f"`
	DF1 float64 `json:"df1"`
	DF2 float64 `json:"df2"`
	P   float64 `json:"p"`
}

// Levene tests equality of variances across groups using absolute
// deviations from each group's median
func Levene(groups ...[]float64) (*LeveneResult, error) {
	k := len(groups)
	if k < 2 {
		return nil, fmt.Errorf("levene: need at least two groups, got %d", k)
	}

	devs := make([][]float64, k)
	total := 0
	for i, g := range groups {
		if len(g) < 2 {
			return nil, fmt.Errorf("levene: group %d has %d observation(s): %w", i, len(g), ErrTooFewValues)
		}
		med, err := mstats.Median(g)
		if err != nil {
			return nil, fmt.Errorf("levene: group %d: %w", i, err)
		}
		devs[i] = make([]float64, len(g))
		for j, v := range g {
			devs[i][j] = math.Abs(v - med)
		}
		total += len(g)
	}

	var all []float64
	for _, d := range devs {
		all = append(all, d...)
	}
	grand := stat.Mean(all, nil)

	var between, within float64
	for _, d := range devs {
		m := stat.Mean(d, nil)
		between += float64(len(d)) * (m - grand) * (m - grand)
		for _, v := range d {
			within += (v - m) * (v - m)
		}
	}
	if within == 0 {
		return nil, fmt.Errorf("levene: %w", ErrConstantSample)
	}

	df1 := float64(k - 1)
	df2 := float64(total - k)
	f := (between / df1) / (within / df2)
	return &LeveneResult{
		F:   f,
		DF1: df1,
		DF2: df2,
		P:   distuv.F{D1: df1, D2: df2}.Survival(f),
	}, nil
}
