// Package report renders the charts and the console report for an analysis.
package report

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/richard-senior/venuegoals/internal/analysis"
	"github.com/richard-senior/venuegoals/internal/logger"
	"github.com/richard-senior/venuegoals/internal/matches"
)

// Size of a rendered chart in inches
type Size struct {
	Width  float64
	Height float64
}

var (
	barColor     = color.RGBA{R: 135, G: 206, B: 235, A: 255}
	densityColor = color.RGBA{R: 200, G: 30, B: 30, A: 255}
	normalColor  = color.RGBA{R: 30, G: 30, B: 200, A: 255}
)

func venueColor(v matches.VenueType) color.Color {
	return plotutil.Color(int(v))
}

// DistributionPlot draws a unit-width histogram of total goals scaled to a
// density, the kernel density estimate and the normal curve with the sample
// mean and standard deviation
func DistributionPlot(ms []matches.ProcessedMatch, path string, size Size) (Artifact, error) {
	xs := matches.TotalGoals(ms)
	if len(xs) == 0 {
		return Artifact{}, &RenderError{Path: path, Err: fmt.Errorf("no matches to plot")}
	}

	p := plot.New()
	p.Title.Text = "Distribution of total goals per match"
	p.X.Label.Text = "Total goals"
	p.Y.Label.Text = "Density"

	hist := &plotter.Histogram{
		Bins:      unitBins(xs),
		Width:     1,
		FillColor: barColor,
		LineStyle: plotter.DefaultLineStyle,
	}
	hist.Normalize(1)
	p.Add(hist)

	lo, hi := floats.Min(xs)-0.5, floats.Max(xs)+0.5

	// both curves need a spread to be defined
	if len(xs) > 1 {
		mean, sd := stat.MeanStdDev(xs, nil)
		if sd > 0 {
			kde := &stats.KDE{Sample: stats.Sample{Xs: xs}}
			density := plotter.NewFunction(kde.PDF)
			density.XMin, density.XMax, density.Samples = lo, hi, 200
			density.Color = densityColor
			density.Width = vg.Points(2)

			norm := distuv.Normal{Mu: mean, Sigma: sd}
			normal := plotter.NewFunction(norm.Prob)
			normal.XMin, normal.XMax, normal.Samples = lo, hi, 200
			normal.Color = normalColor
			normal.Width = vg.Points(2)
			normal.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}

			p.Add(density, normal)
			p.Legend.Add("Density", density)
			p.Legend.Add("Normal", normal)
		}
	}
	p.Legend.Top = true

	return save(p, path, size)
}

// unitBins builds one bin per integer value from min to max, centred on the
// value
func unitBins(xs []float64) []plotter.HistogramBin {
	lo, hi := int(floats.Min(xs)), int(floats.Max(xs))
	bins := make([]plotter.HistogramBin, hi-lo+1)
	for i := range bins {
		v := float64(lo + i)
		bins[i] = plotter.HistogramBin{Min: v - 0.5, Max: v + 0.5}
	}
	for _, x := range xs {
		bins[int(x)-lo].Weight++
	}
	return bins
}

// VenueComparisonPlot draws a box plot of total goals per venue type with a
// jittered scatter of the individual matches. The jitter only moves points
// horizontally on the chart.
func VenueComparisonPlot(ms []matches.ProcessedMatch, path string, size Size, seed uint64, jitter float64) (Artifact, error) {
	groups := matches.GroupByVenue(ms)

	p := plot.New()
	p.Title.Text = "Total goals by venue type"
	p.Y.Label.Text = "Total goals"

	rng := rand.New(rand.NewPCG(seed, seed))
	var names []string
	for i, venue := range matches.VenueTypes {
		names = append(names, venue.String())
		xs := matches.TotalGoals(groups[venue])
		if len(xs) == 0 {
			continue
		}

		pts := make(plotter.XYs, len(xs))
		for j, x := range xs {
			pts[j].X = float64(i) + (rng.Float64()*2-1)*jitter
			pts[j].Y = x
		}
		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return Artifact{}, &RenderError{Path: path, Err: err}
		}
		scatter.GlyphStyle.Radius = vg.Points(1)
		c := venueColor(venue)
		if rgba, ok := c.(color.RGBA); ok {
			rgba.A = 90
			c = rgba
		}
		scatter.GlyphStyle.Color = c
		p.Add(scatter)

		box, err := plotter.NewBoxPlot(vg.Points(40), float64(i), plotter.Values(xs))
		if err != nil {
			return Artifact{}, &RenderError{Path: path, Err: err}
		}
		box.FillColor = color.Transparent
		p.Add(box)
	}
	p.NominalX(names...)

	return save(p, path, size)
}

// TemporalPlot draws the yearly mean of total goals with one line per venue
// type
func TemporalPlot(series analysis.YearlySeries, path string, size Size) (Artifact, error) {
	if len(series.Points) == 0 {
		return Artifact{}, &RenderError{Path: path, Err: fmt.Errorf("no dated matches to plot")}
	}
	if series.Excluded > 0 {
		logger.Warn("Temporal plot excludes matches without a valid date:", series.Excluded)
	}

	p := plot.New()
	p.Title.Text = "Mean total goals per year"
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Mean total goals"

	for _, venue := range matches.VenueTypes {
		points := series.ForVenue(venue)
		if len(points) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(points))
		for i, pt := range points {
			xys[i].X = float64(pt.Year)
			xys[i].Y = pt.Mean
		}
		line, dots, err := plotter.NewLinePoints(xys)
		if err != nil {
			return Artifact{}, &RenderError{Path: path, Err: err}
		}
		line.Color = venueColor(venue)
		dots.Color = venueColor(venue)
		dots.Radius = vg.Points(1.5)
		p.Add(line, dots)
		p.Legend.Add(venue.String(), line, dots)
	}
	p.Legend.Top = true

	return save(p, path, size)
}

func save(p *plot.Plot, path string, size Size) (Artifact, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return Artifact{}, &RenderError{Path: path, Err: err}
	}
	if err := p.Save(vg.Length(size.Width)*vg.Inch, vg.Length(size.Height)*vg.Inch, path); err != nil {
		return Artifact{}, &RenderError{Path: path, Err: err}
	}
	art, err := inspectImage(path)
	if err != nil {
		return Artifact{}, &RenderError{Path: path, Err: err}
	}
	logger.Info("Wrote chart", path)
	return art, nil
}
