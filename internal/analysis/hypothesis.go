package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Interval is a two-sided confidence interval
type Interval struct {
	Level float64 `json:"level"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Width of the interval
func (i Interval) Width() float64 {
	return i.Upper - i.Lower
}

// WelchResult is a two-sided Welch two-sample t-test of mean(x) - mean(y)
type WelchResult struct {
	T     float64  `json:"t"`
	DF    float64  `json:"df"`
	P     float64  `json:"p"`
	MeanX float64  `json:"meanX"`
	MeanY float64  `json:"meanY"`
	CI    Interval `json:"ci"`
}

// Difference is mean(x) - mean(y)
func (r *WelchResult) Difference() float64 {
	return r.MeanX - r.MeanY
}

// WelchTTest compares the means of x and y without assuming equal variances.
// Degrees of freedom use the Welch-Satterthwaite approximation.
func WelchTTest(x, y []float64, level float64) (*WelchResult, error) {
	if len(x) < 2 || len(y) < 2 {
		return nil, fmt.Errorf("welch: %w", ErrTooFewValues)
	}
	res, err := stats.TwoSampleWelchTTest(&stats.Sample{Xs: x}, &stats.Sample{Xs: y}, stats.LocationDiffers)
	if err != nil {
		if errors.Is(err, stats.ErrZeroVariance) {
			return nil, fmt.Errorf("welch: %w", ErrConstantSample)
		}
		return nil, fmt.Errorf("welch: %w", err)
	}

	mx, vx := stat.MeanVariance(x, nil)
	my, vy := stat.MeanVariance(y, nil)
	se := math.Sqrt(vx/float64(len(x)) + vy/float64(len(y)))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: res.DoF}
	q := dist.Quantile(1 - (1-level)/2)
	diff := mx - my

	return &WelchResult{
		T:     res.T,
		DF:    res.DoF,
		P:     math.Min(1, 2*dist.Survival(math.Abs(res.T))),
		MeanX: mx,
		MeanY: my,
		CI:    Interval{Level: level, Lower: diff - q*se, Upper: diff + q*se},
	}, nil
}

// RankSumResult is a two-sided Wilcoxon rank-sum (Mann-Whitney) test.
// W is the rank sum of x minus its minimum n1(n1+1)/2, i.e. U for x.
type RankSumResult struct {
	W  float64 `json:"w"`
	P  float64 `json:"p"`
	N1 int     `json:"n1"`
	N2 int     `json:"n2"`
}

// RankSumTest runs the Wilcoxon rank-sum test on x and y. The p-value is
// exact for small samples without ties and otherwise uses the normal
// approximation with tie and continuity correction. It does not depend on
// the order of x and y.
func RankSumTest(x, y []float64) (*RankSumResult, error) {
	if len(x) == 0 || len(y) == 0 {
		return nil, fmt.Errorf("rank-sum: %w", ErrTooFewValues)
	}
	// the normal approximation only keeps its precision in the lower tail,
	// so test with the sample whose U is at most half of n1*n2 first
	u := rankSumU(x, y)
	first, second := x, y
	if u > float64(len(x)*len(y))/2 {
		first, second = y, x
	}
	res, err := stats.MannWhitneyUTest(first, second, stats.LocationDiffers)
	if err != nil {
		if errors.Is(err, stats.ErrSamplesEqual) {
			return nil, fmt.Errorf("rank-sum: %w", ErrConstantSample)
		}
		return nil, fmt.Errorf("rank-sum: %w", err)
	}
	return &RankSumResult{
		W:  u,
		P:  res.P,
		N1: len(x),
		N2: len(y),
	}, nil
}

// rankSumU computes U for x from mid-ranks of the pooled sample
func rankSumU(x, y []float64) float64 {
	type obs struct {
		v     float64
		fromX bool
	}
	pooled := make([]obs, 0, len(x)+len(y))
	for _, v := range x {
		pooled = append(pooled, obs{v, true})
	}
	for _, v := range y {
		pooled = append(pooled, obs{v, false})
	}
	sort.SliceStable(pooled, func(i, j int) bool { return pooled[i].v < pooled[j].v })

	var r1 float64
	for i := 0; i < len(pooled); {
		j := i
		for j < len(pooled) && pooled[j].v == pooled[i].v {
			j++
		}
		// ranks i+1..j share their mean
		rank := float64(i+1+j) / 2
		for k := i; k < j; k++ {
			if pooled[k].fromX {
				r1 += rank
			}
		}
		i = j
	}
	n1 := float64(len(x))
	return r1 - n1*(n1+1)/2
}
