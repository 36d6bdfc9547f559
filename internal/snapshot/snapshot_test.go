package snapshot

import (
	"context"
	"database/sql"
	"math"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richard-senior/venuegoals/internal/analysis"
	"github.com/richard-senior/venuegoals/internal/matches"
)

func sample(n int) []matches.ProcessedMatch {
	records := make([]matches.MatchRecord, n)
	for i := range records {
		records[i] = matches.MatchRecord{
			Row:       i + 2,
			Date:      []string{"3/4/1990", "1991-07-01", "bad"}[i%3],
			HomeTeam:  "A",
			AwayTeam:  "B",
			HomeScore: (i * 5) % 4,
			AwayScore: i % 3,
			Neutral:   i%4 == 1,
		}
	}
	return matches.Transform(records)
}

func TestRoundTrip(t *testing.T) {
	a, err := analysis.Analyze(sample(60), analysis.DefaultOptions())
	require.NoError(t, err)
	require.NotEmpty(t, a.Notes)

	path := filepath.Join(t.TempDir(), "out", "analysis.db")
	ctx := context.Background()
	require.NoError(t, Save(ctx, path, a))

	loaded, err := Load(ctx, path)
	require.NoError(t, err)
	if diff := cmp.Diff(a, loaded, cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("snapshot round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTripWithFailures(t *testing.T) {
	// one neutral match: the two-sample procedures fail and the neutral
	// standard deviation is undefined
	ms := append(sample(8), matches.Process(matches.MatchRecord{Date: "1/1/2000", HomeTeam: "C", AwayTeam: "D", HomeScore: 2, Neutral: true}))
	var filtered []matches.ProcessedMatch
	for _, m := range ms {
		if m.VenueType == matches.Home || m.HomeTeam == "C" {
			filtered = append(filtered, m)
		}
	}
	a, err := analysis.Analyze(filtered, analysis.DefaultOptions())
	require.Error(t, err)
	require.Nil(t, a.Welch)
	neutral, ok := a.Summary(matches.Neutral)
	require.True(t, ok)
	require.True(t, math.IsNaN(neutral.StdDev))

	path := filepath.Join(t.TempDir(), "analysis.db")
	ctx := context.Background()
	require.NoError(t, Save(ctx, path, a))
	loaded, err := Load(ctx, path)
	require.NoError(t, err)
	if diff := cmp.Diff(a, loaded, cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("snapshot round trip mismatch (-want +got):\n%s", diff)
	}
	assert.Nil(t, loaded.Welch)
	assert.Equal(t, a.Failures, loaded.Failures)
}

func TestSaveReplaces(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "analysis.db")

	first, err := analysis.Analyze(sample(30), analysis.DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, Save(ctx, path, first))

	second, err := analysis.Analyze(sample(90), analysis.DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, Save(ctx, path, second))

	loaded, err := Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 90, loaded.Matches)
	assert.Len(t, loaded.Summaries, 2)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.db"))
	assert.Error(t, err)
}

func TestGenerateSQL(t *testing.T) {
	got := generateCreateTableSQL(yearlyRow{}, "yearly_mean")
	assert.Equal(t, "CREATE TABLE IF NOT EXISTS yearly_mean (year INTEGER NOT NULL, venue TEXT NOT NULL, mean REAL NOT NULL, n INTEGER NOT NULL, PRIMARY KEY (year, venue))", got)

	assert.Equal(t,
		[]string{"CREATE INDEX IF NOT EXISTS idx_yearly_mean_year ON yearly_mean(year)"},
		generateIndexSQL(yearlyRow{}, "yearly_mean"))

	columns, placeholders, values := getInsertData(noteRow{Seq: 3, Text: "x"})
	assert.Equal(t, []string{"seq", "failure", "text"}, columns)
	assert.Equal(t, []string{"?", "?", "?"}, placeholders)
	assert.Equal(t, []any{3, false, "x"}, values)
}

func TestNullable(t *testing.T) {
	assert.Equal(t, sql.NullFloat64{}, nullable(math.NaN()))
	assert.True(t, math.IsNaN(value(sql.NullFloat64{})))
	assert.Equal(t, 2.5, value(nullable(2.5)))
}
