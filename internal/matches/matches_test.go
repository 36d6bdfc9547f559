package matches

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `date,home_team,away_team,home_score,away_score,tournament,city,country,neutral
11/30/1872,Scotland,England,0,0,Friendly,Glasgow,Scotland,FALSE
3/8/1873,England,Scotland,4,2,Friendly,London,England,FALSE
6/15/2019,Brazil,Bolivia,3,0,Copa América,São Paulo,Brazil,FALSE
7/1/2019,Argentina,Chile,1,2,Copa América,São Paulo,Brazil,TRUE
not a date,Qatar,Japan,1,3,Friendly,Doha,Qatar,TRUE
`

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "results.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadMatches(t *testing.T) {
	recs, err := LoadMatches(writeCSV(t, sampleCSV))
	require.NoError(t, err)
	require.Len(t, recs, 5)

	want := MatchRecord{
		Row:        5,
		Date:       "7/1/2019",
		HomeTeam:   "Argentina",
		AwayTeam:   "Chile",
		HomeScore:  1,
		AwayScore:  2,
		Neutral:    true,
		Tournament: "Copa América",
		City:       "São Paulo",
		Country:    "Brazil",
	}
	if diff := cmp.Diff(want, recs[3]); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "not a date", recs[4].Date)
}

func TestLoadMatchesHeaderIsCaseInsensitive(t *testing.T) {
	content := " Date ,HOME_TEAM,Away_Team,home_score,away_score,Neutral\n1/2/2000,A,B,1,1,1\n"
	recs, err := LoadMatches(writeCSV(t, content))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.True(t, recs[0].Neutral)
	assert.Empty(t, recs[0].Tournament)
}

func TestLoadMatchesMissingFile(t *testing.T) {
	_, err := LoadMatches(filepath.Join(t.TempDir(), "nope.csv"))
	var dle *DataLoadError
	require.ErrorAs(t, err, &dle)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoadMatchesStripsByteOrderMark(t *testing.T) {
	content := "\ufeffdate,home_team,away_team,home_score,away_score,neutral\n1/2/2000,A,B,2,1,FALSE\n"
	recs, err := LoadMatches(writeCSV(t, content))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "1/2/2000", recs[0].Date)
	assert.Equal(t, 2, recs[0].HomeScore)
}

func TestLoadMatchesEmptyFile(t *testing.T) {
	for name, content := range map[string]string{
		"no content":  "",
		"header only": "date,home_team,away_team,home_score,away_score,neutral\n",
		"blank lines": "date,home_team,away_team,home_score,away_score,neutral\n\n\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadMatches(writeCSV(t, content))
			require.ErrorIs(t, err, ErrEmptyFile)
			var dle *DataLoadError
			assert.ErrorAs(t, err, &dle)
		})
	}
}

func TestLoadMatchesMissingColumn(t *testing.T) {
	content := "date,home_team,away_team,home_score,away_score\n1/2/2000,A,B,1,1\n"
	_, err := LoadMatches(writeCSV(t, content))
	require.ErrorIs(t, err, ErrMissingColumn)
	var dle *DataLoadError
	require.ErrorAs(t, err, &dle)
	assert.Equal(t, ColNeutral, dle.Column)
}

func TestLoadMatchesRejectsBadRows(t *testing.T) {
	header := "date,home_team,away_team,home_score,away_score,neutral\n"
	cases := []struct {
		name   string
		row    string
		err    error
		column string
	}{
		{"non numeric score", "1/2/2000,A,B,x,1,FALSE\n", ErrInvalidScore, ColHomeScore},
		{"negative score", "1/2/2000,A,B,1,-1,FALSE\n", ErrInvalidScore, ColAwayScore},
		{"fractional score", "1/2/2000,A,B,1.5,1,FALSE\n", ErrInvalidScore, ColHomeScore},
		{"bad flag", "1/2/2000,A,B,1,1,maybe\n", ErrInvalidFlag, ColNeutral},
		{"missing team", "1/2/2000,,B,1,1,FALSE\n", ErrInvalidRow, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			content := header + "1/1/2000,X,Y,0,0,FALSE\n" + tc.row
			recs, err := LoadMatches(writeCSV(t, content))
			assert.Nil(t, recs)
			require.ErrorIs(t, err, tc.err)
			var dle *DataLoadError
			require.ErrorAs(t, err, &dle)
			assert.Equal(t, 3, dle.Row)
			assert.Equal(t, tc.column, dle.Column)
		})
	}
}

func TestParseScoreAcceptsWholeFloats(t *testing.T) {
	n, err := parseScore(" 3.0 ")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestParseFlag(t *testing.T) {
	for in, want := range map[string]bool{
		"TRUE": true, "true": true, "T": true, "1": true, "yes": true,
		"FALSE": false, "false": false, "F": false, "0": false, "No": false,
	} {
		got, err := parseFlag(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestTransformDerivesColumns(t *testing.T) {
	recs, err := LoadMatches(writeCSV(t, sampleCSV))
	require.NoError(t, err)
	ms := Transform(recs)
	require.Len(t, ms, len(recs))

	for i, m := range ms {
		assert.Equal(t, recs[i].HomeScore+recs[i].AwayScore, m.TotalGoals)
		assert.GreaterOrEqual(t, m.TotalGoals, 0)
		assert.Equal(t, recs[i].HomeScore-recs[i].AwayScore, m.GoalDifference)
		switch {
		case m.GoalDifference > 0:
			assert.Equal(t, HomeWin, m.Outcome)
		case m.GoalDifference < 0:
			assert.Equal(t, AwayWin, m.Outcome)
		default:
			assert.Equal(t, Draw, m.Outcome)
		}
		if recs[i].Neutral {
			assert.Equal(t, Neutral, m.VenueType)
		} else {
			assert.Equal(t, Home, m.VenueType)
		}
	}

	year, ok := ms[1].Year()
	assert.True(t, ok)
	assert.Equal(t, 1873, year)

	_, ok = ms[4].Year()
	assert.False(t, ok)
	assert.Equal(t, "NA", ms[4].ParsedDate.String())
	assert.Equal(t, 1, MissingDates(ms))
}

func TestTransformDoesNotModifyInput(t *testing.T) {
	recs := []MatchRecord{{Date: "1/2/2000", HomeTeam: "A", AwayTeam: "B", HomeScore: 2, AwayScore: 1}}
	before := append([]MatchRecord(nil), recs...)
	_ = Transform(recs)
	if diff := cmp.Diff(before, recs); diff != "" {
		t.Errorf("input changed (-before +after):\n%s", diff)
	}
}

func TestParseDateLayouts(t *testing.T) {
	d := ParseDate("2019-06-15")
	require.True(t, d.Valid)
	assert.Equal(t, 2019, d.Time.Year())

	d = ParseDate("6/15/2019")
	require.True(t, d.Valid)
	assert.Equal(t, "2019-06-15", d.String())

	assert.False(t, ParseDate("15/6/2019").Valid)
	assert.False(t, ParseDate("").Valid)
	assert.False(t, ParseDate("2019-06-15", "1/2/2006").Valid)
}

func TestPartitionIsExact(t *testing.T) {
	var recs []MatchRecord
	for i := 0; i < 50; i++ {
		recs = append(recs, MatchRecord{HomeTeam: "A", AwayTeam: "B", HomeScore: i % 4, AwayScore: i % 3, Neutral: i%3 == 0})
	}
	ms := Transform(recs)
	home, neutral := Partition(ms)

	assert.Len(t, neutral, 17)
	assert.Equal(t, len(ms), len(home)+len(neutral))
	for _, m := range home {
		assert.Equal(t, Home, m.VenueType)
	}
	for _, m := range neutral {
		assert.Equal(t, Neutral, m.VenueType)
	}

	groups := GroupByVenue(ms)
	assert.Len(t, groups[Home], len(home))
	assert.Len(t, groups[Neutral], len(neutral))
}

func TestOutcomeAndVenueStrings(t *testing.T) {
	assert.Equal(t, "Draw", OutcomeOf(0).String())
	assert.Equal(t, "Home Win", OutcomeOf(2).String())
	assert.Equal(t, "Away Win", OutcomeOf(-1).String())

	for _, v := range VenueTypes {
		got, err := ParseVenueType(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
	_, err := ParseVenueType("Away")
	assert.Error(t, err)
}
