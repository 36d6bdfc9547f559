// Package pipeline runs the load, transform, analyze and report stages in
// order.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/richard-senior/venuegoals/internal/analysis"
	"github.com/richard-senior/venuegoals/internal/config"
	"github.com/richard-senior/venuegoals/internal/logger"
	"github.com/richard-senior/venuegoals/internal/matches"
	"github.com/richard-senior/venuegoals/internal/report"
	"github.com/richard-senior/venuegoals/internal/snapshot"
)

// Result is what a run produced. Artifacts lists the charts that were
// written successfully.
type Result struct {
	Matches   []matches.ProcessedMatch
	Analysis  *analysis.Analysis
	Artifacts []report.Artifact
	Snapshot  string
}

// Run executes every stage against cfg and writes the text report to w.
// A failure to load the input stops the run. Later stages run even when an
// earlier one failed and the returned error joins every failure.
func Run(ctx context.Context, cfg *config.Config, w io.Writer) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Info("Loading matches from", cfg.InputPath)
	records, err := matches.LoadMatches(cfg.InputPath)
	if err != nil {
		return nil, err
	}
	res := &Result{Matches: matches.Transform(records, cfg.DateLayouts...)}
	logger.Info("Transformed matches:", len(res.Matches))
	if missing := matches.MissingDates(res.Matches); missing > 0 {
		logger.Warn("Matches with an unparseable date:", missing)
	}

	var errs []error
	if err := ctx.Err(); err != nil {
		return res, err
	}

	res.Analysis, err = analysis.Analyze(res.Matches, analysis.Options{
		ConfidenceLevel: cfg.ConfidenceLevel,
		ShapiroMinN:     cfg.ShapiroMinN,
		ShapiroMaxN:     cfg.ShapiroMaxN,
		MinTestN:        cfg.MinTestN,
	})
	if err != nil {
		errs = append(errs, err)
	}
	// the summaries are rendered as JSON, skip the work unless it is shown
	if logger.GetLevel() <= logger.DEBUG {
		logger.Debug("Group summaries", res.Analysis.Summaries)
	}

	size := report.Size{Width: cfg.PlotWidth, Height: cfg.PlotHeight}
	renders := []func() (report.Artifact, error){
		func() (report.Artifact, error) {
			return report.DistributionPlot(res.Matches, cfg.Path(cfg.DistributionFile), size)
		},
		func() (report.Artifact, error) {
			return report.VenueComparisonPlot(res.Matches, cfg.Path(cfg.VenueFile), size, cfg.JitterSeed, cfg.JitterWidth)
		},
		func() (report.Artifact, error) {
			return report.TemporalPlot(res.Analysis.Yearly, cfg.Path(cfg.TemporalFile), size)
		},
	}
	for _, render := range renders {
		if err := ctx.Err(); err != nil {
			return res, errors.Join(append(errs, err)...)
		}
		art, err := render()
		if err != nil {
			logger.Error("Chart failed:", err)
			errs = append(errs, err)
			continue
		}
		res.Artifacts = append(res.Artifacts, art)
	}

	if err := report.WriteReport(w, res.Analysis, cfg.Alpha); err != nil {
		errs = append(errs, &report.RenderError{Path: "report", Err: err})
	}

	if cfg.Snapshot {
		path := cfg.Path(cfg.SnapshotFile)
		if err := snapshot.Save(ctx, path, res.Analysis); err != nil {
			logger.Error("Snapshot failed:", err)
			errs = append(errs, err)
		} else {
			res.Snapshot = path
		}
	}

	return res, errors.Join(errs...)
}
