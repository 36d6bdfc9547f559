package snapshot

import (
	"database/sql"
	"math"
)

type runRow struct {
	ID       int `column:"id" dbtype:"INTEGER NOT NULL" primary:"true"`
	Matches  int `column:"matches" dbtype:"INTEGER NOT NULL"`
	Excluded int `column:"excluded_dates" dbtype:"INTEGER NOT NULL"`
}

func (runRow) TableName() string { return "run" }

type summaryRow struct {
	Venue    string          `column:"venue" dbtype:"TEXT NOT NULL" primary:"true"`
	Count    int             `column:"n" dbtype:"INTEGER NOT NULL"`
	Mean     float64         `column:"mean" dbtype:"REAL NOT NULL"`
	StdDev   sql.NullFloat64 `column:"sd" dbtype:"REAL"`
	Median   float64         `column:"median" dbtype:"REAL NOT NULL"`
	Min      float64         `column:"min" dbtype:"REAL NOT NULL"`
	Max      float64         `column:"max" dbtype:"REAL NOT NULL"`
	Q1       float64         `column:"q1" dbtype:"REAL NOT NULL"`
	Q3       float64         `column:"q3" dbtype:"REAL NOT NULL"`
	HomeWins int             `column:"home_wins" dbtype:"INTEGER NOT NULL"`
	AwayWins int             `column:"away_wins" dbtype:"INTEGER NOT NULL"`
	Draws    int             `column:"draws" dbtype:"INTEGER NOT NULL"`
}

func (summaryRow) TableName() string { return "group_summary" }

type normalityRow struct {
	Venue    string          `column:"venue" dbtype:"TEXT NOT NULL" primary:"true"`
	N        int             `column:"n" dbtype:"INTEGER NOT NULL"`
	Computed bool            `column:"computed" dbtype:"INTEGER NOT NULL"`
	W        sql.NullFloat64 `column:"w" dbtype:"REAL"`
	P        sql.NullFloat64 `column:"p_value" dbtype:"REAL"`
	Reason   string          `column:"reason" dbtype:"TEXT NOT NULL DEFAULT ''"`
}

func (normalityRow) TableName() string { return "normality" }

// testRow holds any of the two-sample procedures; columns that do not apply
// to a test are NULL
type testRow struct {
	Name      string          `column:"test" dbtype:"TEXT NOT NULL" primary:"true"`
	Statistic sql.NullFloat64 `column:"statistic" dbtype:"REAL"`
	DF1       sql.NullFloat64 `column:"df1" dbtype:"REAL"`
	DF2       sql.NullFloat64 `column:"df2" dbtype:"REAL"`
	P         sql.NullFloat64 `column:"p_value" dbtype:"REAL"`
	MeanX     sql.NullFloat64 `column:"mean_x" dbtype:"REAL"`
	MeanY     sql.NullFloat64 `column:"mean_y" dbtype:"REAL"`
	N1        sql.NullInt64   `column:"n1" dbtype:"INTEGER"`
	N2        sql.NullInt64   `column:"n2" dbtype:"INTEGER"`
	Level     sql.NullFloat64 `column:"ci_level" dbtype:"REAL"`
	Lower     sql.NullFloat64 `column:"ci_lower" dbtype:"REAL"`
	Upper     sql.NullFloat64 `column:"ci_upper" dbtype:"REAL"`
	Magnitude sql.NullString  `column:"magnitude" dbtype:"TEXT"`
}

func (testRow) TableName() string { return "test_result" }

type yearlyRow struct {
	Year  int     `column:"year" dbtype:"INTEGER NOT NULL" primary:"true" index:"true"`
	Venue string  `column:"venue" dbtype:"TEXT NOT NULL" primary:"true"`
	Mean  float64 `column:"mean" dbtype:"REAL NOT NULL"`
	Count int     `column:"n" dbtype:"INTEGER NOT NULL"`
}

func (yearlyRow) TableName() string { return "yearly_mean" }

type poissonRow struct {
	Venue           string  `column:"venue" dbtype:"TEXT NOT NULL" primary:"true"`
	HomeLambda      float64 `column:"home_lambda" dbtype:"REAL NOT NULL"`
	AwayLambda      float64 `column:"away_lambda" dbtype:"REAL NOT NULL"`
	HomeWin         float64 `column:"home_win" dbtype:"REAL NOT NULL"`
	Draw            float64 `column:"draw" dbtype:"REAL NOT NULL"`
	AwayWin         float64 `column:"away_win" dbtype:"REAL NOT NULL"`
	Over2p5         float64 `column:"over_2_5" dbtype:"REAL NOT NULL"`
	ObservedHomeWin float64 `column:"observed_home_win" dbtype:"REAL NOT NULL"`
	ObservedDraw    float64 `column:"observed_draw" dbtype:"REAL NOT NULL"`
	ObservedAwayWin float64 `column:"observed_away_win" dbtype:"REAL NOT NULL"`
	ObservedOver2p5 float64 `column:"observed_over_2_5" dbtype:"REAL NOT NULL"`
}

func (poissonRow) TableName() string { return "poisson_model" }

type noteRow struct {
	Seq     int    `column:"seq" dbtype:"INTEGER NOT NULL" primary:"true"`
	Failure bool   `column:"failure" dbtype:"INTEGER NOT NULL" index:"true"`
	Text    string `column:"text" dbtype:"TEXT NOT NULL"`
}

func (noteRow) TableName() string { return "note" }

var tables = []Persistable{runRow{}, summaryRow{}, normalityRow{}, testRow{}, poissonRow{}, yearlyRow{}, noteRow{}}

// NaN is stored as NULL
func nullable(v float64) sql.NullFloat64 {
	if math.IsNaN(v) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

func value(n sql.NullFloat64) float64 {
	if !n.Valid {
		return math.NaN()
	}
	return n.Float64
}
