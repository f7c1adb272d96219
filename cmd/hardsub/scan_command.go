package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"hardsub/internal/analysis"
	"hardsub/internal/config"
	"hardsub/internal/decisions"
	"hardsub/internal/deps"
	"hardsub/internal/logging"
)

const (
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var noStore bool

	cmd := &cobra.Command{
		Use:   "scan <video>",
		Short: "Detect burned-in subtitles in a video file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := checkRequiredBinaries(cfg); err != nil {
				return err
			}

			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}
			engine, err := ctx.newEngine(logger)
			if err != nil {
				return err
			}

			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}

			report, err := engine.Scan(cmd.Context(), path)
			if err != nil {
				return err
			}

			if !noStore {
				if err := storeReport(cmd.Context(), cfg, report); err != nil {
					logger.Warn("could not persist decision", logging.Error(err))
				}
			}

			if jsonOutput {
				return writeJSON(cmd, report)
			}
			renderReport(cmd, report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the full report as JSON")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "Skip recording the verdict in the decision database")
	return cmd
}

func checkRequiredBinaries(cfg *config.Config) error {
	statuses := deps.CheckBinaries(deps.Requirements(cfg))
	missing := deps.MissingRequired(statuses)
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s (run 'hardsub deps' for details)", strings.Join(missing, ", "))
}

func storeReport(ctx context.Context, cfg *config.Config, report *analysis.Report) error {
	store, err := decisions.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.SaveReport(ctx, report)
}

func renderReport(cmd *cobra.Command, report *analysis.Report) {
	out := cmd.OutOrStdout()
	colorize := isTerminal(out)

	verdict := "no subtitles detected"
	color := ansiRed
	if report.HasSubtitles {
		verdict = "subtitles present"
		color = ansiGreen
	}
	line := fmt.Sprintf("Verdict: %s (confidence %.1f)", verdict, report.Confidence)
	if colorize {
		line = color + line + ansiReset
	}
	fmt.Fprintln(out, line)
	fmt.Fprintf(out, "Reason: %s\n", report.Reason)
	fmt.Fprintf(out, "Conflict: %s  Uncertainty: %s\n", conflictLabel(report), report.Uncertainty)
	fmt.Fprintf(out, "Source: %s (%dx%d, %.1fs)\n", report.Source, report.Media.Width, report.Media.Height, report.Media.DurationSeconds)
	fmt.Fprintf(out, "Frames: %d planned, %d extracted, %d with text\n",
		report.Sampling.FramesPlanned, report.Sampling.FramesExtracted, report.Sampling.FramesWithText)
	if report.Sampling.DurationAssumed {
		fmt.Fprintln(out, "Note: container duration was missing; only the leading window was scanned")
	}
	fmt.Fprintf(out, "Scan ID: %s\n\n", report.ScanID)

	voteRows := make([][]string, 0, len(report.Votes))
	for _, vote := range report.Votes {
		voteRows = append(voteRows, []string{
			vote.Strategy,
			yesNo(vote.HasSubtitles),
			fmt.Sprintf("%.2f", vote.Confidence),
			fmt.Sprintf("%.1f", vote.Weight),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Strategy", "Subtitles", "Confidence", "Weight"},
		voteRows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
	))

	strategyRows := make([][]string, 0, len(report.Strategies))
	for _, summary := range report.Strategies {
		status := "ok"
		if !summary.Completed {
			status = "failed: " + summary.Error
		}
		strategyRows = append(strategyRows, []string{
			summary.Name,
			status,
			fmt.Sprintf("%d", summary.Tracks.Subtitle),
			fmt.Sprintf("%d", summary.Tracks.StaticOverlay),
			fmt.Sprintf("%d", summary.Tracks.Screencast),
			fmt.Sprintf("%d", summary.Tracks.Ambiguous),
			fmt.Sprintf("%d", summary.DroppedMalformed+summary.DroppedFiltered),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Strategy", "Status", "Subtitle", "Static", "Screencast", "Ambiguous", "Dropped"},
		strategyRows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight},
	))
}

func conflictLabel(report *analysis.Report) string {
	if !report.Conflict {
		return "none"
	}
	return report.ConflictSeverity
}
