package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hardsub/internal/config"
	"hardsub/internal/media/ffprobe"
	"hardsub/internal/sampling"
)

// sample shows the plan a scan would execute without extracting anything, so
// configuration changes can be checked cheaply.
func newSampleCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample <video>",
		Short: "Show the frame timestamps and regions a scan would use",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}

			result, err := ffprobe.Inspect(cmd.Context(), cfg.FFprobeBinary(), path)
			if err != nil {
				return err
			}
			width, height, hasVideo := result.VideoDimensions()
			if !hasVideo {
				return fmt.Errorf("no video stream in %s", path)
			}

			duration := result.DurationSeconds()
			assumed := false
			if duration <= 0 {
				duration = cfg.Sampling.DefaultDurationSeconds
				assumed = true
			}

			out := cmd.OutOrStdout()
			timestamps := sampling.SampleTimestamps(duration, cfg.Sampling.MaxTemporalSamples)
			fmt.Fprintf(out, "Sampling %d frame(s) over %.2fs", len(timestamps), duration)
			if assumed {
				fmt.Fprint(out, " (assumed window)")
			}
			fmt.Fprintln(out)

			tsRows := make([][]string, 0, len(timestamps))
			for i, ts := range timestamps {
				tsRows = append(tsRows, []string{fmt.Sprintf("%d", i), fmt.Sprintf("%.3f", ts)})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Frame", "Timestamp (s)"},
				tsRows,
				[]columnAlignment{alignRight, alignRight},
			))

			roiRows := make([][]string, 0, len(cfg.Sampling.Regions))
			for _, name := range cfg.Sampling.Regions {
				region, err := sampling.ParseRegion(name)
				if err != nil {
					return err
				}
				roi, err := sampling.ResolveROI(width, height, region, cfg.Sampling.ROIPercentage)
				if err != nil {
					return err
				}
				roiRows = append(roiRows, []string{
					region.String(),
					fmt.Sprintf("%d,%d", roi.Rect.X, roi.Rect.Y),
					fmt.Sprintf("%dx%d", roi.Rect.Width, roi.Rect.Height),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Region", "Origin", "Size"},
				roiRows,
				[]columnAlignment{alignLeft, alignRight, alignRight},
			))
			return nil
		},
	}
	return cmd
}
