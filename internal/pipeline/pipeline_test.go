package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richard-senior/venuegoals/internal/analysis"
	"github.com/richard-senior/venuegoals/internal/config"
	"github.com/richard-senior/venuegoals/internal/matches"
	"github.com/richard-senior/venuegoals/internal/snapshot"
)

func init() {
	color.NoColor = true
}

func writeResults(t *testing.T, rows int) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("date,home_team,away_team,home_score,away_score,tournament,city,country,neutral\n")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&b, "%d/%d/%d,Team%d,Team%d,%d,%d,Friendly,City,Country,%s\n",
			i%12+1, i%28+1, 1990+i%20, i, i+1, (i*7)%5, (i*3)%4, strings.ToUpper(fmt.Sprint(i%5 == 0)))
	}
	path := filepath.Join(t.TempDir(), "results.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))
	return path
}

func testConfig(t *testing.T, input string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.InputPath = input
	cfg.OutputDir = filepath.Join(t.TempDir(), "output")
	cfg.PlotWidth, cfg.PlotHeight = 4, 3
	return cfg
}

func TestRun(t *testing.T) {
	cfg := testConfig(t, writeResults(t, 200))
	var out bytes.Buffer

	res, err := Run(context.Background(), cfg, &out)
	require.NoError(t, err)
	require.Len(t, res.Matches, 200)
	require.Len(t, res.Artifacts, 3)
	for i, name := range []string{cfg.DistributionFile, cfg.VenueFile, cfg.TemporalFile} {
		assert.Equal(t, cfg.Path(name), res.Artifacts[i].Path)
		assert.Equal(t, "png", res.Artifacts[i].Kind)
	}

	assert.Contains(t, out.String(), "DESCRIPTIVE STATISTICS")
	assert.Contains(t, out.String(), "Welch two-sample t-test")

	require.Equal(t, cfg.Path(cfg.SnapshotFile), res.Snapshot)
	loaded, err := snapshot.Load(context.Background(), res.Snapshot)
	require.NoError(t, err)
	assert.Equal(t, res.Analysis.Summaries, loaded.Summaries)
}

func TestRunWithoutSnapshot(t *testing.T) {
	cfg := testConfig(t, writeResults(t, 50))
	cfg.Snapshot = false

	res, err := Run(context.Background(), cfg, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Empty(t, res.Snapshot)
	_, err = os.Stat(cfg.Path(cfg.SnapshotFile))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestRunMissingInput(t *testing.T) {
	cfg := testConfig(t, filepath.Join(t.TempDir(), "missing.csv"))

	res, err := Run(context.Background(), cfg, &bytes.Buffer{})
	assert.Nil(t, res)
	var loadErr *matches.DataLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestRunInvalidConfig(t *testing.T) {
	cfg := testConfig(t, "x.csv")
	cfg.Alpha = 2
	_, err := Run(context.Background(), cfg, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestRunInsufficientData(t *testing.T) {
	content := "date,home_team,away_team,home_score,away_score,neutral\n" +
		"1/1/2000,A,B,2,1,FALSE\n" +
		"1/1/2001,C,D,0,0,TRUE\n"
	path := filepath.Join(t.TempDir(), "results.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	cfg := testConfig(t, path)

	var out bytes.Buffer
	res, err := Run(context.Background(), cfg, &out)
	require.Error(t, err)
	var insufficient *analysis.InsufficientDataError
	assert.ErrorAs(t, err, &insufficient)

	require.NotNil(t, res)
	assert.Len(t, res.Analysis.Summaries, 2)
	assert.Len(t, res.Artifacts, 3)
	assert.Contains(t, out.String(), "not computed")
}

func TestRunCancelled(t *testing.T) {
	cfg := testConfig(t, writeResults(t, 20))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, cfg, &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
}
