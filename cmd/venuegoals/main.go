// Command venuegoals compares the number of goals scored in international
// football matches played at home venues with those at neutral venues.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/richard-senior/venuegoals/internal/config"
	"github.com/richard-senior/venuegoals/internal/logger"
	"github.com/richard-senior/venuegoals/internal/pipeline"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(os.Stdout).ExecuteContext(ctx); err != nil {
		logger.Error("venuegoals failed:", err)
		logger.Close()
		os.Exit(1)
	}
	logger.Close()
}

func newRootCommand(stdout io.Writer) *cobra.Command {
	cfg := config.DefaultConfig()
	var (
		debug   bool
		logPath string
	)

	cmd := &cobra.Command{
		Use:           "venuegoals",
		Short:         "Compare total goals per match at home and neutral venues",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if debug {
				logger.SetLevel(logger.DEBUG)
			}
			if logPath != "" {
				if err := logger.SetLogOutput(logger.OutputFile, logPath); err != nil {
					return err
				}
				logger.SetShowDateTime(true)
			}
			logger.Info("Starting venuegoals analysis")

			res, err := pipeline.Run(cmd.Context(), cfg, stdout)
			if err != nil {
				return err
			}
			logger.Highlight("Analysis complete, charts written:", len(res.Artifacts))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfg.InputPath, "input", "i", "", "CSV file of match results (required)")
	flags.StringVarP(&cfg.OutputDir, "output", "o", cfg.OutputDir, "Directory for charts and the snapshot")
	flags.Float64Var(&cfg.Alpha, "alpha", cfg.Alpha, "Significance level")
	flags.Float64Var(&cfg.ConfidenceLevel, "confidence", cfg.ConfidenceLevel, "Confidence level of the intervals")
	flags.Uint64Var(&cfg.JitterSeed, "seed", cfg.JitterSeed, "Seed for the jitter of the venue comparison chart")
	flags.BoolVar(&cfg.Snapshot, "snapshot", cfg.Snapshot, "Save the analysis to a SQLite file in the output directory")
	flags.BoolVar(&debug, "debug", false, "Enable debug logging")
	flags.StringVar(&logPath, "log-file", "", "Write logs to this file instead of the console")
	cmd.MarkFlagRequired("input")

	return cmd
}
