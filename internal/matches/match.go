// Package matches loads international football results and derives the
// per-match columns the analysis works on.
package matches

import (
	"fmt"
	"time"
)

// VenueType says whether a match was played at one side's home ground or at a
// neutral site
type VenueType int

const (
	Home VenueType = iota
	Neutral
)

// VenueTypes lists every venue type in report order
var VenueTypes = []VenueType{Home, Neutral}

func (v VenueType) String() string {
	switch v {
	case Home:
		return "Home"
	case Neutral:
		return "Neutral"
	default:
		return fmt.Sprintf("VenueType(%d)", int(v))
	}
}

// ParseVenueType is the inverse of String
func ParseVenueType(s string) (VenueType, error) {
	switch s {
	case "Home":
		return Home, nil
	case "Neutral":
		return Neutral, nil
	}
	return 0, fmt.Errorf("unknown venue type %q", s)
}

// Outcome is the result of a match from the home side's point of view
type Outcome int

const (
	HomeWin Outcome = iota
	AwayWin
	Draw
)

func (o Outcome) String() string {
	switch o {
	case HomeWin:
		return "Home Win"
	case AwayWin:
		return "Away Win"
	case Draw:
		return "Draw"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// OutcomeOf derives the outcome from a goal difference
func OutcomeOf(goalDifference int) Outcome {
	if goalDifference > 0 {
		return HomeWin
	} else if goalDifference < 0 {
		return AwayWin
	}
	return Draw
}

// MatchRecord is one row of the input file
type MatchRecord struct {
	Row        int    `json:"row"`
	Date       string `json:"date"`
	HomeTeam   string `json:"homeTeam" validate:"required"`
	AwayTeam   string `json:"awayTeam" validate:"required"`
	HomeScore  int    `json:"homeScore" validate:"gte=0"`
	AwayScore  int    `json:"awayScore" validate:"gte=0"`
	Neutral    bool   `json:"neutral"`
	Tournament string `json:"tournament,omitempty"`
	City       string `json:"city,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Date is a calendar date that may be absent because the source text did not
// parse
type Date struct {
	Time  time.Time
	Valid bool
}

// Year returns the year and whether the date is present
func (d Date) Year() (int, bool) {
	if !d.Valid {
		return 0, false
	}
	return d.Time.Year(), true
}

func (d Date) String() string {
	if !d.Valid {
		return "NA"
	}
	return d.Time.Format("2006-01-02")
}

// ProcessedMatch is a MatchRecord with its derived columns.
// Values are built once by Transform and only read afterwards.
type ProcessedMatch struct {
	MatchRecord
	ParsedDate     Date      `json:"parsedDate"`
	VenueType      VenueType `json:"venueType"`
	TotalGoals     int       `json:"totalGoals"`
	GoalDifference int       `json:"goalDifference"`
	Outcome        Outcome   `json:"outcome"`
}

// Year is the match year, absent when the date did not parse
func (m ProcessedMatch) Year() (int, bool) {
	return m.ParsedDate.Year()
}
