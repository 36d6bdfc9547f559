package config

import (
	"fmt"
	"path/filepath"
)

// Config contains every parameter that influences a run of the analysis.
// This centralizes all magic numbers and constants for easy adjustment
type Config struct {
	// === INPUT / OUTPUT ===
	InputPath        string // CSV of match results
	OutputDir        string // Directory receiving plots and the snapshot
	DistributionFile string // default: distribution.png
	VenueFile        string // default: venue_comparison.png
	TemporalFile     string // default: temporal.png
	SnapshotFile     string // default: analysis.db
	Snapshot         bool   // Persist the analysis to SQLite (default: true)

	// === DATA PARSING ===
	DateLayouts []string // Tried in order (default: 1/2/2006, 2006-01-02)

	// === STATISTICS ===
	Alpha           float64 // Significance level used in the report (default: 0.05)
	ConfidenceLevel float64 // Confidence level for intervals (default: 0.95)
	ShapiroMinN     int     // Smallest group tested for normality (default: 3)
	ShapiroMaxN     int     // Largest group tested for normality (default: 5000)
	MinTestN        int     // Minimum observations per group for two-sample tests (default: 2)

	// === PLOTTING ===
	PlotWidth   float64 // inches (default: 8)
	PlotHeight  float64 // inches (default: 5)
	JitterSeed  uint64  // default: 42
	JitterWidth float64 // Horizontal spread of jittered points (default: 0.2)
}

// DefaultConfig returns the default configuration with all standard values
func DefaultConfig() *Config {
	return &Config{
		OutputDir:        "output",
		DistributionFile: "distribution.png",
		VenueFile:        "venue_comparison.png",
		TemporalFile:     "temporal.png",
		SnapshotFile:     "analysis.db",
		Snapshot:         true,

		DateLayouts: []string{"1/2/2006", "2006-01-02"},

		Alpha:           0.05,
		ConfidenceLevel: 0.95,
		ShapiroMinN:     3,
		ShapiroMaxN:     5000,
		MinTestN:        2,

		PlotWidth:   8,
		PlotHeight:  5,
		JitterSeed:  42,
		JitterWidth: 0.2,
	}
}

// Validate ensures all configuration values are within reasonable ranges
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("input path is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	if c.Alpha <= 0 || c.Alpha >= 1 {
		return fmt.Errorf("alpha must be between 0 and 1, got: %f", c.Alpha)
	}
	if c.ConfidenceLevel <= 0 || c.ConfidenceLevel >= 1 {
		return fmt.Errorf("confidence level must be between 0 and 1, got: %f", c.ConfidenceLevel)
	}
	if c.ShapiroMinN < 3 {
		return fmt.Errorf("ShapiroMinN must be at least 3, got: %d", c.ShapiroMinN)
	}
	if c.ShapiroMaxN < c.ShapiroMinN {
		return fmt.Errorf("ShapiroMaxN (%d) must not be below ShapiroMinN (%d)", c.ShapiroMaxN, c.ShapiroMinN)
	}
	if c.MinTestN < 2 {
		return fmt.Errorf("MinTestN must be at least 2, got: %d", c.MinTestN)
	}
	if len(c.DateLayouts) == 0 {
		return fmt.Errorf("at least one date layout is required")
	}
	if c.PlotWidth <= 0 || c.PlotHeight <= 0 {
		return fmt.Errorf("plot dimensions must be positive, got: %gx%g", c.PlotWidth, c.PlotHeight)
	}
	if c.JitterWidth < 0 || c.JitterWidth > 0.5 {
		return fmt.Errorf("JitterWidth should be between 0 and 0.5, got: %f", c.JitterWidth)
	}
	return nil
}

// Path joins name onto the output directory
func (c *Config) Path(name string) string {
	return filepath.Join(c.OutputDir, name)
}
