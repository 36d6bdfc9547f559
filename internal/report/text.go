package report

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/fatih/color"

	"github.com/richard-senior/venuegoals/internal/analysis"
)

var (
	heading = color.New(color.FgCyan, color.Bold)
	good    = color.New(color.FgGreen)
	warn    = color.New(color.FgYellow)
)

// WriteReport prints the structured analysis report: descriptive summary,
// assumption checks, hypothesis tests, effect size, the Poisson model check
// and any notes
func WriteReport(w io.Writer, a *analysis.Analysis, alpha float64) error {
	b := bufio.NewWriter(w)

	section(b, "DESCRIPTIVE STATISTICS")
	fmt.Fprintf(b, "Matches analysed: %d\n", a.Matches)
	if len(a.Summaries) > 0 {
		fmt.Fprintf(b, "%-8s %6s %8s %8s %7s %5s %5s %6s %6s %6s\n",
			"Venue", "N", "Mean", "SD", "Median", "Min", "Max", "HomeW", "AwayW", "Draws")
		for _, s := range a.Summaries {
			fmt.Fprintf(b, "%-8s %6d %8.3f %8s %7.1f %5.0f %5.0f %6d %6d %6d\n",
				s.Venue, s.Count, s.Mean, num(s.StdDev), s.Median, s.Min, s.Max, s.HomeWins, s.AwayWins, s.Draws)
		}
	}

	section(b, "ASSUMPTION TESTS")
	fmt.Fprintln(b, "Shapiro-Wilk normality test (total goals):")
	for _, g := range a.Normality {
		switch r := g.Result.(type) {
		case analysis.Computed:
			fmt.Fprintf(b, "  %-8s n=%-6d W = %.4f, p = %s %s\n", g.Venue, g.N, r.W, pval(r.P), verdict(r.P, alpha, "non-normal", "no evidence against normality"))
		case analysis.NotApplicable:
			fmt.Fprintf(b, "  %-8s n=%-6d not computed: %s\n", g.Venue, g.N, r.Reason)
		}
	}
	fmt.Fprintln(b, "Levene's test (median-centred) for equal variances:")
	if l := a.Levene; l != nil {
		fmt.Fprintf(b, "  F(%.0f, %.0f) = %.4f, p = %s %s\n", l.DF1, l.DF2, l.F, pval(l.P), verdict(l.P, alpha, "variances differ", "no evidence variances differ"))
	} else {
		fmt.Fprintln(b, "  not computed")
	}

	section(b, "HYPOTHESIS TESTS (two-sided, Home vs Neutral)")
	fmt.Fprintln(b, "Welch two-sample t-test:")
	if r := a.Welch; r != nil {
		fmt.Fprintf(b, "  t = %.4f, df = %.2f, p = %s %s\n", r.T, r.DF, pval(r.P), verdict(r.P, alpha, "means differ", "no significant difference in means"))
		fmt.Fprintf(b, "  mean Home = %.4f, mean Neutral = %.4f, difference = %.4f\n", r.MeanX, r.MeanY, r.Difference())
		fmt.Fprintf(b, "  %.0f%% CI of difference: [%.4f, %.4f]\n", r.CI.Level*100, r.CI.Lower, r.CI.Upper)
	} else {
		fmt.Fprintln(b, "  not computed")
	}
	fmt.Fprintln(b, "Wilcoxon rank-sum test:")
	if r := a.RankSum; r != nil {
		fmt.Fprintf(b, "  W = %.1f, p = %s %s\n", r.W, pval(r.P), verdict(r.P, alpha, "distributions differ", "no significant difference in distributions"))
	} else {
		fmt.Fprintln(b, "  not computed")
	}

	section(b, "EFFECT SIZE")
	if e := a.Effect; e != nil {
		fmt.Fprintf(b, "Cohen's d = %.4f (%s)\n", e.D, e.Magnitude)
		fmt.Fprintf(b, "%.0f%% CI: [%.4f, %.4f]\n", e.CI.Level*100, e.CI.Lower, e.CI.Upper)
	} else {
		fmt.Fprintln(b, "not computed")
	}

	if len(a.Poisson) > 0 {
		section(b, "POISSON MODEL (expected vs observed)")
		fmt.Fprintf(b, "%-8s %7s %7s %15s %15s %15s %15s\n", "Venue", "lHome", "lAway", "Home win", "Draw", "Away win", "Over 2.5")
		for _, c := range a.Poisson {
			fmt.Fprintf(b, "%-8s %7.3f %7.3f %s %s %s %s\n", c.Venue, c.HomeLambda, c.AwayLambda,
				share(c.HomeWin, c.ObservedHomeWin), share(c.Draw, c.ObservedDraw),
				share(c.AwayWin, c.ObservedAwayWin), share(c.Over2p5, c.ObservedOver2p5))
		}
	}

	if len(a.Notes) > 0 || len(a.Failures) > 0 {
		section(b, "NOTES")
		for _, n := range a.Notes {
			fmt.Fprintf(b, "- %s\n", n)
		}
		for _, f := range a.Failures {
			warn.Fprintf(b, "- failed: %s\n", f)
		}
	}
	return b.Flush()
}

func section(w io.Writer, title string) {
	fmt.Fprintln(w)
	heading.Fprintf(w, "=== %s ===\n", title)
}

func verdict(p, alpha float64, reject, keep string) string {
	if p < alpha {
		return warn.Sprintf("(%s at alpha=%g)", reject, alpha)
	}
	return good.Sprintf("(%s at alpha=%g)", keep, alpha)
}

func share(expected, observed float64) string {
	return fmt.Sprintf("%6.1f%% /%6.1f%%", expected*100, observed*100)
}

// pval keeps full precision
func pval(p float64) string {
	return strconv.FormatFloat(p, 'g', -1, 64)
}

func num(v float64) string {
	if math.IsNaN(v) {
		return "NA"
	}
	return strconv.FormatFloat(v, 'f', 3, 64)
}
