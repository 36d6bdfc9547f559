// Package snapshot stores a completed analysis in a SQLite file and reads it
// back.
package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/richard-senior/venuegoals/internal/analysis"
	"github.com/richard-senior/venuegoals/internal/logger"
	"github.com/richard-senior/venuegoals/internal/matches"
)

const (
	testLevene  = "levene"
	testWelch   = "welch"
	testRankSum = "ranksum"
	testCohen   = "cohen_d"
)

// Save writes a to the database at path, replacing any analysis stored
// there before. Everything is written in one transaction.
func Save(ctx context.Context, path string, a *analysis.Analysis) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	db, err := openDB(path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, t := range tables {
		if err := createTable(ctx, tx, t); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+t.TableName()); err != nil {
			return fmt.Errorf("failed to clear %s: %w", t.TableName(), err)
		}
	}

	for _, row := range rowsOf(a) {
		if err := insert(ctx, tx, row); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	logger.Info("Saved analysis snapshot", path)
	return nil
}

func rowsOf(a *analysis.Analysis) []Persistable {
	rows := []Persistable{runRow{ID: 1, Matches: a.Matches, Excluded: a.Yearly.Excluded}}

	for _, s := range a.Summaries {
		rows = append(rows, summaryRow{
			Venue: s.Venue.String(), Count: s.Count, Mean: s.Mean, StdDev: nullable(s.StdDev),
			Median: s.Median, Min: s.Min, Max: s.Max, Q1: s.Q1, Q3: s.Q3,
			HomeWins: s.HomeWins, AwayWins: s.AwayWins, Draws: s.Draws,
		})
	}

	for _, g := range a.Normality {
		row := normalityRow{Venue: g.Venue.String(), N: g.N}
		switch r := g.Result.(type) {
		case analysis.Computed:
			row.Computed, row.W, row.P = true, nullable(r.W), nullable(r.P)
		case analysis.NotApplicable:
			row.Reason = r.Reason
		}
		rows = append(rows, row)
	}

	if l := a.Levene; l != nil {
		rows = append(rows, testRow{Name: testLevene, Statistic: nullable(l.F), DF1: nullable(l.DF1), DF2: nullable(l.DF2), P: nullable(l.P)})
	}
	if w := a.Welch; w != nil {
		rows = append(rows, testRow{
			Name: testWelch, Statistic: nullable(w.T), DF1: nullable(w.DF), P: nullable(w.P),
			MeanX: nullable(w.MeanX), MeanY: nullable(w.MeanY),
			Level: nullable(w.CI.Level), Lower: nullable(w.CI.Lower), Upper: nullable(w.CI.Upper),
		})
	}
	if r := a.RankSum; r != nil {
		rows = append(rows, testRow{
			Name: testRankSum, Statistic: nullable(r.W), P: nullable(r.P),
			N1: sql.NullInt64{Int64: int64(r.N1), Valid: true}, N2: sql.NullInt64{Int64: int64(r.N2), Valid: true},
		})
	}
	if e := a.Effect; e != nil {
		rows = append(rows, testRow{
			Name: testCohen, Statistic: nullable(e.D),
			Level: nullable(e.CI.Level), Lower: nullable(e.CI.Lower), Upper: nullable(e.CI.Upper),
			Magnitude: sql.NullString{String: e.Magnitude, Valid: true},
		})
	}

	for _, c := range a.Poisson {
		rows = append(rows, poissonRow{
			Venue: c.Venue.String(), HomeLambda: c.HomeLambda, AwayLambda: c.AwayLambda,
			HomeWin: c.HomeWin, Draw: c.Draw, AwayWin: c.AwayWin, Over2p5: c.Over2p5,
			ObservedHomeWin: c.ObservedHomeWin, ObservedDraw: c.ObservedDraw,
			ObservedAwayWin: c.ObservedAwayWin, ObservedOver2p5: c.ObservedOver2p5,
		})
	}

	for _, p := range a.Yearly.Points {
		rows = append(rows, yearlyRow{Year: p.Year, Venue: p.Venue.String(), Mean: p.Mean, Count: p.Count})
	}

	seq := 0
	for _, n := range a.Notes {
		rows = append(rows, noteRow{Seq: seq, Text: n})
		seq++
	}
	for _, f := range a.Failures {
		rows = append(rows, noteRow{Seq: seq, Failure: true, Text: f})
		seq++
	}
	return rows
}

// Load reads back the analysis written by Save
func Load(ctx context.Context, path string) (*analysis.Analysis, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	runs, err := findAll[runRow](ctx, db, "id")
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("snapshot %s holds no analysis", path)
	}
	a := &analysis.Analysis{Matches: runs[0].Matches}
	a.Yearly.Excluded = runs[0].Excluded

	summaries, err := findAll[summaryRow](ctx, db, "venue")
	if err != nil {
		return nil, err
	}
	for _, s := range summaries {
		venue, err := matches.ParseVenueType(s.Venue)
		if err != nil {
			return nil, fmt.Errorf("group_summary: %w", err)
		}
		a.Summaries = append(a.Summaries, analysis.GroupSummary{
			Venue: venue, Count: s.Count, Mean: s.Mean, StdDev: value(s.StdDev),
			Median: s.Median, Min: s.Min, Max: s.Max, Q1: s.Q1, Q3: s.Q3,
			HomeWins: s.HomeWins, AwayWins: s.AwayWins, Draws: s.Draws,
		})
	}
	sort.SliceStable(a.Summaries, func(i, j int) bool { return a.Summaries[i].Venue < a.Summaries[j].Venue })

	normality, err := findAll[normalityRow](ctx, db, "venue")
	if err != nil {
		return nil, err
	}
	for _, n := range normality {
		venue, err := matches.ParseVenueType(n.Venue)
		if err != nil {
			return nil, fmt.Errorf("normality: %w", err)
		}
		g := analysis.GroupNormality{Venue: venue, N: n.N}
		if n.Computed {
			g.Result = analysis.Computed{W: value(n.W), P: value(n.P)}
		} else {
			g.Result = analysis.NotApplicable{Reason: n.Reason}
		}
		a.Normality = append(a.Normality, g)
	}
	sort.SliceStable(a.Normality, func(i, j int) bool { return a.Normality[i].Venue < a.Normality[j].Venue })

	tests, err := findAll[testRow](ctx, db, "test")
	if err != nil {
		return nil, err
	}
	for _, t := range tests {
		ci := analysis.Interval{Level: value(t.Level), Lower: value(t.Lower), Upper: value(t.Upper)}
		switch t.Name {
		case testLevene:
			a.Levene = &analysis.LeveneResult{F: value(t.Statistic), DF1: value(t.DF1), DF2: value(t.DF2), P: value(t.P)}
		case testWelch:
			a.Welch = &analysis.WelchResult{T: value(t.Statistic), DF: value(t.DF1), P: value(t.P), MeanX: value(t.MeanX), MeanY: value(t.MeanY), CI: ci}
		case testRankSum:
			a.RankSum = &analysis.RankSumResult{W: value(t.Statistic), P: value(t.P), N1: int(t.N1.Int64), N2: int(t.N2.Int64)}
		case testCohen:
			a.Effect = &analysis.EffectSize{D: value(t.Statistic), CI: ci, Magnitude: t.Magnitude.String}
		default:
			logger.Warn("Ignoring unknown test in snapshot", t.Name)
		}
	}

	poisson, err := findAll[poissonRow](ctx, db, "venue")
	if err != nil {
		return nil, err
	}
	for _, p := range poisson {
		venue, err := matches.ParseVenueType(p.Venue)
		if err != nil {
			return nil, fmt.Errorf("poisson_model: %w", err)
		}
		a.Poisson = append(a.Poisson, analysis.PoissonCheck{
			Venue: venue, HomeLambda: p.HomeLambda, AwayLambda: p.AwayLambda,
			HomeWin: p.HomeWin, Draw: p.Draw, AwayWin: p.AwayWin, Over2p5: p.Over2p5,
			ObservedHomeWin: p.ObservedHomeWin, ObservedDraw: p.ObservedDraw,
			ObservedAwayWin: p.ObservedAwayWin, ObservedOver2p5: p.ObservedOver2p5,
		})
	}
	sort.SliceStable(a.Poisson, func(i, j int) bool { return a.Poisson[i].Venue < a.Poisson[j].Venue })

	yearly, err := findAll[yearlyRow](ctx, db, "year")
	if err != nil {
		return nil, err
	}
	for _, y := range yearly {
		venue, err := matches.ParseVenueType(y.Venue)
		if err != nil {
			return nil, fmt.Errorf("yearly_mean: %w", err)
		}
		a.Yearly.Points = append(a.Yearly.Points, analysis.YearlyPoint{Year: y.Year, Venue: venue, Mean: y.Mean, Count: y.Count})
	}
	sort.SliceStable(a.Yearly.Points, func(i, j int) bool {
		p, q := a.Yearly.Points[i], a.Yearly.Points[j]
		if p.Year != q.Year {
			return p.Year < q.Year
		}
		return p.Venue < q.Venue
	})

	notes, err := findAll[noteRow](ctx, db, "seq")
	if err != nil {
		return nil, err
	}
	for _, n := range notes {
		if n.Failure {
			a.Failures = append(a.Failures, n.Text)
		} else {
			a.Notes = append(a.Notes, n.Text)
		}
	}

	logger.Debug("Loaded analysis snapshot", path)
	return a, nil
}
