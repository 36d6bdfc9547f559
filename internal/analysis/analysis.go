package analysis

import (
	"errors"
	"fmt"

	"github.com/richard-senior/venuegoals/internal/logger"
	"github.com/richard-senior/venuegoals/internal/matches"
)

// Options controls the statistical procedures
type Options struct {
	ConfidenceLevel float64
	ShapiroMinN     int
	ShapiroMaxN     int
	MinTestN        int
}

// DefaultOptions mirrors config.DefaultConfig
func DefaultOptions() Options {
	return Options{
		ConfidenceLevel: 0.95,
		ShapiroMinN:     3,
		ShapiroMaxN:     5000,
		MinTestN:        2,
	}
}

// Analysis is the complete, read-only outcome of Analyze. Pointers for the
// tests are nil when the test could not be run; the reason is in Failures.
type Analysis struct {
	Matches   int              `json:"matches"`
	Summaries []GroupSummary   `json:"summaries"`
	Normality []GroupNormality `json:"normality"`
	Levene    *LeveneResult    `json:"levene,omitempty"`
	Welch     *WelchResult     `json:"welch,omitempty"`
	RankSum   *RankSumResult   `json:"rankSum,omitempty"`
	Effect    *EffectSize      `json:"effect,omitempty"`
	Poisson   []PoissonCheck   `json:"poisson,omitempty"`
	Yearly    YearlySeries     `json:"yearly"`
	Notes     []string         `json:"notes,omitempty"`
	Failures  []string         `json:"failures,omitempty"`
}

// Summary returns the summary of a venue type if it was computed
func (a *Analysis) Summary(v matches.VenueType) (GroupSummary, bool) {
	for _, s := range a.Summaries {
		if s.Venue == v {
			return s, true
		}
	}
	return GroupSummary{}, false
}

// Analyze runs the descriptive summary, the assumption checks, both
// hypothesis tests and the effect size. Home is the first sample throughout.
// Each procedure runs independently; the returned error joins every failure
// and the Analysis is returned regardless.
func Analyze(ms []matches.ProcessedMatch, opts Options) (*Analysis, error) {
	a := &Analysis{Matches: len(ms)}
	a.Summaries, a.Notes = Describe(ms)

	homeMatches, neutralMatches := matches.Partition(ms)
	home := matches.TotalGoals(homeMatches)
	neutral := matches.TotalGoals(neutralMatches)
	logger.Debug("Group sizes home/neutral:", len(home), len(neutral))

	a.Normality = []GroupNormality{
		{Venue: matches.Home, N: len(home), Result: CheckNormality(home, opts.ShapiroMinN, opts.ShapiroMaxN)},
		{Venue: matches.Neutral, N: len(neutral), Result: CheckNormality(neutral, opts.ShapiroMinN, opts.ShapiroMaxN)},
	}

	a.Poisson = PoissonModel(ms)

	a.Yearly = YearlyMeans(ms)
	if a.Yearly.Excluded > 0 {
		note := fmt.Sprintf("%d match(es) without a valid date excluded from the yearly series", a.Yearly.Excluded)
		logger.Warn(note)
		a.Notes = append(a.Notes, note)
	}

	var errs []error
	fail := func(err error) {
		logger.Error("Analysis step failed:", err)
		a.Failures = append(a.Failures, err.Error())
		errs = append(errs, err)
	}

	if err := checkSizes("levene", opts.MinTestN, home, neutral); err != nil {
		fail(err)
	} else if a.Levene, err = Levene(home, neutral); err != nil {
		fail(err)
	}

	if err := checkSizes("welch t-test", opts.MinTestN, home, neutral); err != nil {
		fail(err)
	} else if a.Welch, err = WelchTTest(home, neutral, opts.ConfidenceLevel); err != nil {
		fail(err)
	}

	if err := checkSizes("wilcoxon rank-sum", opts.MinTestN, home, neutral); err != nil {
		fail(err)
	} else if a.RankSum, err = RankSumTest(home, neutral); err != nil {
		fail(err)
	}

	if err := checkSizes("cohen's d", opts.MinTestN, home, neutral); err != nil {
		fail(err)
	} else if a.Effect, err = CohensD(home, neutral, opts.ConfidenceLevel); err != nil {
		fail(err)
	}

	return a, errors.Join(errs...)
}
