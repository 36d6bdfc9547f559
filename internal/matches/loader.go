package matches

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/go-playground/validator/v10"

	"github.com/richard-senior/venuegoals/internal/logger"
)

// Column names in the input file
const (
	ColDate       = "date"
	ColHomeTeam   = "home_team"
	ColAwayTeam   = "away_team"
	ColHomeScore  = "home_score"
	ColAwayScore  = "away_score"
	ColNeutral    = "neutral"
	ColTournament = "tournament"
	ColCity       = "city"
	ColCountry    = "country"
)

// RequiredColumns must all be present in the header
var RequiredColumns = []string{ColDate, ColHomeTeam, ColAwayTeam, ColHomeScore, ColAwayScore, ColNeutral}

var optionalColumns = []string{ColTournament, ColCity, ColCountry}

var validate = validator.New()

// LoadMatches reads every match in the CSV at path. Either all rows load or
// a *DataLoadError is returned.
func LoadMatches(path string) ([]MatchRecord, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &DataLoadError{Path: path, Err: err}
	}
	// a header with no rows is rejected here, gota only reports it as a
	// generic load error
	if lines := bytes.SplitN(bytes.TrimSpace(content), []byte("\n"), 2); len(lines) < 2 {
		return nil, &DataLoadError{Path: path, Err: ErrEmptyFile}
	}

	df := dataframe.ReadCSV(bytes.NewReader(content),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return nil, &DataLoadError{Path: path, Err: df.Err}
	}

	columns, err := resolveColumns(df.Names())
	if err != nil {
		return nil, &DataLoadError{Path: path, Column: err.Error(), Err: ErrMissingColumn}
	}

	cells := make(map[string][]string, len(columns))
	for key, name := range columns {
		cells[key] = df.Col(name).Records()
	}

	n := df.Nrow()
	logger.Debug("Parsing match rows", n)

	records := make([]MatchRecord, 0, n)
	for i := 0; i < n; i++ {
		line := i + 2
		rec := MatchRecord{
			Row:      line,
			Date:     strings.TrimSpace(cells[ColDate][i]),
			HomeTeam: strings.TrimSpace(cells[ColHomeTeam][i]),
			AwayTeam: strings.TrimSpace(cells[ColAwayTeam][i]),
		}
		if rec.HomeScore, err = parseScore(cells[ColHomeScore][i]); err != nil {
			return nil, &DataLoadError{Path: path, Row: line, Column: ColHomeScore, Err: err}
		}
		if rec.AwayScore, err = parseScore(cells[ColAwayScore][i]); err != nil {
			return nil, &DataLoadError{Path: path, Row: line, Column: ColAwayScore, Err: err}
		}
		if rec.Neutral, err = parseFlag(cells[ColNeutral][i]); err != nil {
			return nil, &DataLoadError{Path: path, Row: line, Column: ColNeutral, Err: err}
		}
		if v, ok := cells[ColTournament]; ok {
			rec.Tournament = strings.TrimSpace(v[i])
		}
		if v, ok := cells[ColCity]; ok {
			rec.City = strings.TrimSpace(v[i])
		}
		if v, ok := cells[ColCountry]; ok {
			rec.Country = strings.TrimSpace(v[i])
		}
		if err := validate.Struct(rec); err != nil {
			return nil, &DataLoadError{Path: path, Row: line, Err: fmt.Errorf("%w: %v", ErrInvalidRow, err)}
		}
		records = append(records, rec)
	}

	logger.Info("Loaded matches", len(records), path)
	return records, nil
}

// resolveColumns maps the canonical column names onto the header as written
// in the file. Matching ignores case, surrounding whitespace and a leading
// byte order mark.
func resolveColumns(names []string) (map[string]string, error) {
	byKey := make(map[string]string, len(names))
	for _, name := range names {
		key := strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		byKey[strings.ToLower(key)] = name
	}

	resolved := make(map[string]string, len(RequiredColumns)+len(optionalColumns))
	var missing []string
	for _, col := range RequiredColumns {
		name, ok := byKey[col]
		if !ok {
			missing = append(missing, col)
			continue
		}
		resolved[col] = name
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%s", strings.Join(missing, ","))
	}
	for _, col := range optionalColumns {
		if name, ok := byKey[col]; ok {
			resolved[col] = name
		}
	}
	return resolved, nil
}
