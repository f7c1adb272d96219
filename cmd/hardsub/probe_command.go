package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hardsub/internal/config"
	"hardsub/internal/media/ffprobe"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "probe <video>",
		Short: "Show the metadata the sampler would use",
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
			duration := result.DurationSeconds()

			if jsonOutput {
				return writeJSON(cmd, map[string]any{
					"path":             path,
					"has_video":        hasVideo,
					"width":            width,
					"height":           height,
					"duration_seconds": duration,
					"format":           result.Format.FormatName,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Path: %s\n", path)
			fmt.Fprintf(out, "Container: %s\n", result.Format.FormatName)
			fmt.Fprintf(out, "Video stream: %s\n", yesNo(hasVideo))
			if hasVideo {
				fmt.Fprintf(out, "Resolution: %dx%d\n", width, height)
			}
			if duration > 0 {
				fmt.Fprintf(out, "Duration: %.2fs\n", duration)
			} else {
				fmt.Fprintf(out, "Duration: unknown (scans fall back to the first %.0fs)\n", cfg.Sampling.DefaultDurationSeconds)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit probe results as JSON")
	return cmd
}
