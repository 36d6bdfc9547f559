package analysis

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/richard-senior/venuegoals/internal/matches"
)

// NormalityResult is either Computed or NotApplicable
type NormalityResult interface {
	isNormalityResult()
}

// Computed holds a Shapiro-Wilk statistic and its p-value
type Computed struct {
	W float64 `json:"w"`
	P float64 `json:"p"`
}

// NotApplicable explains why a normality test was not run
type NotApplicable struct {
	Reason string `json:"reason"`
}

func (Computed) isNormalityResult()      {}
func (NotApplicable) isNormalityResult() {}

// GroupNormality pairs a venue type with its normality result
type GroupNormality struct {
	Venue  matches.VenueType `json:"venue"`
	N      int               `json:"n"`
	Result NormalityResult   `json:"result"`
}

// CheckNormality runs Shapiro-Wilk when minN <= len(xs) <= maxN
func CheckNormality(xs []float64, minN, maxN int) NormalityResult {
	n := len(xs)
	if n < minN || n > maxN {
		return NotApplicable{Reason: fmt.Sprintf("sample size %d outside [%d, %d]", n, minN, maxN)}
	}
	w, p, err := ShapiroWilk(xs)
	if err != nil {
		return NotApplicable{Reason: err.Error()}
	}
	return Computed{W: w, P: p}
}

// Coefficients of Royston's (1995) approximation
var (
	swC1 = []float64{0, 0.221157, -0.147981, -2.071190, 4.434685, -2.706056}
	swC2 = []float64{0, 0.042981, -0.293762, -1.752461, 5.682633, -3.582633}
	swC3 = []float64{0.5440, -0.39978, 0.025054, -6.714e-4}
	swC4 = []float64{1.3822, -0.77857, 0.062767, -0.0020322}
	swC5 = []float64{-1.5861, -0.31082, -0.083751, 0.0038915}
	swC6 = []float64{-0.4803, -0.082676, 0.0030302}
	swG  = []float64{-2.273, 0.459}
)

// ShapiroWilk returns the W statistic and p-value for xs (n >= 3)
func ShapiroWilk(xs []float64) (w, p float64, err error) {
	n := len(xs)
	if n < 3 {
		return 0, 0, fmt.Errorf("shapiro-wilk: %w (%d < 3)", ErrTooFewValues, n)
	}
	x := append([]float64(nil), xs...)
	sort.Float64s(x)
	if x[n-1]-x[0] < 1e-19 {
		return 0, 0, fmt.Errorf("shapiro-wilk: %w", ErrConstantSample)
	}

	a := shapiroCoefficients(n)

	mean := 0.0
	for _, v := range x {
		mean += v
	}
	mean /= float64(n)

	var num, ssq float64
	for i, v := range x {
		num += a[i] * v
		ssq += (v - mean) * (v - mean)
	}
	w = num * num / ssq
	if w > 1 {
		w = 1
	}
	return w, shapiroPValue(w, n), nil
}

func shapiroCoefficients(n int) []float64 {
	a := make([]float64, n)
	if n == 3 {
		a[0], a[2] = -math.Sqrt2/2, math.Sqrt2/2
		return a
	}

	m := make([]float64, n)
	var mm float64
	for i := range m {
		m[i] = distuv.UnitNormal.Quantile((float64(i+1) - 0.375) / (float64(n) + 0.25))
		mm += m[i] * m[i]
	}
	u := 1 / math.Sqrt(float64(n))
	an := m[n-1]/math.Sqrt(mm) + poly(swC1, u)

	if n > 5 {
		an1 := m[n-2]/math.Sqrt(mm) + poly(swC2, u)
		phi := (mm - 2*m[n-1]*m[n-1] - 2*m[n-2]*m[n-2]) / (1 - 2*an*an - 2*an1*an1)
		for i := 2; i < n-2; i++ {
			a[i] = m[i] / math.Sqrt(phi)
		}
		a[0], a[1], a[n-2], a[n-1] = -an, -an1, an1, an
		return a
	}

	phi := (mm - 2*m[n-1]*m[n-1]) / (1 - 2*an*an)
	for i := 1; i < n-1; i++ {
		a[i] = m[i] / math.Sqrt(phi)
	}
	a[0], a[n-1] = -an, an
	return a
}

func shapiroPValue(w float64, n int) float64 {
	fn := float64(n)
	if n == 3 {
		p := 6 / math.Pi * (math.Asin(math.Sqrt(w)) - math.Asin(math.Sqrt(0.75)))
		return math.Max(0, math.Min(1, p))
	}

	y := math.Log(1 - w)
	var mu, sigma float64
	if n <= 11 {
		gamma := poly(swG, fn)
		if y >= gamma {
			return 0
		}
		y = -math.Log(gamma - y)
		mu = poly(swC3, fn)
		sigma = math.Exp(poly(swC4, fn))
	} else {
		ln := math.Log(fn)
		mu = poly(swC5, ln)
		sigma = math.Exp(poly(swC6, ln))
	}
	return distuv.Normal{Mu: mu, Sigma: sigma}.Survival(y)
}

// poly evaluates c[0] + c[1]x + c[2]x^2 + ...
func poly(c []float64, x float64) float64 {
	r := 0.0
	for i := len(c) - 1; i >= 0; i-- {
		r = r*x + c[i]
	}
	return r
}
