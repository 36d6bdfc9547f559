package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richard-senior/venuegoals/internal/logger"
)

const results = `date,home_team,away_team,home_score,away_score,neutral
1/5/2001,A,B,1,0,FALSE
2/5/2001,C,D,2,2,TRUE
3/5/2002,E,F,0,3,FALSE
4/5/2002,G,H,4,1,TRUE
5/5/2003,I,J,1,1,FALSE
6/5/2003,K,L,0,1,TRUE
7/5/2004,M,N,3,2,FALSE
8/5/2004,O,P,2,0,TRUE
`

func TestRootCommand(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() {
		logger.Close()
		logger.SetWriters(os.Stderr, os.Stderr)
		logger.SetLevel(logger.INFO)
	})
	dir := t.TempDir()
	input := filepath.Join(dir, "results.csv")
	require.NoError(t, os.WriteFile(input, []byte(results), 0644))
	output := filepath.Join(dir, "out")

	var stdout bytes.Buffer
	cmd := newRootCommand(&stdout)
	cmd.SetArgs([]string{"-i", input, "-o", output, "--seed", "7", "--snapshot=false", "--log-file", filepath.Join(dir, "run.log")})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, stdout.String(), "HYPOTHESIS TESTS")
	for _, name := range []string{"distribution.png", "venue_comparison.png", "temporal.png"} {
		assert.FileExists(t, filepath.Join(output, name))
	}
	assert.NoFileExists(t, filepath.Join(output, "analysis.db"))
	assert.FileExists(t, filepath.Join(dir, "run.log"))
}

func TestRootCommandRequiresInput(t *testing.T) {
	cmd := newRootCommand(&bytes.Buffer{})
	cmd.SetArgs([]string{"-o", t.TempDir()})
	assert.Error(t, cmd.Execute())
}

func TestRootCommandRejectsBadAlpha(t *testing.T) {
	cmd := newRootCommand(&bytes.Buffer{})
	cmd.SetArgs([]string{"-i", "x.csv", "--alpha", "1.5"})
	assert.Error(t, cmd.Execute())
}
