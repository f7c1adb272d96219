package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hardsub/internal/decisions"
)

func newDecisionsCommand(ctx *commandContext) *cobra.Command {
	decisionsCmd := &cobra.Command{
		Use:   "decisions",
		Short: "Inspect stored scan verdicts",
	}

	decisionsCmd.AddCommand(newDecisionsListCommand(ctx))
	decisionsCmd.AddCommand(newDecisionsShowCommand(ctx))
	decisionsCmd.AddCommand(newDecisionsClearCommand(ctx))

	return decisionsCmd
}

func (c *commandContext) withStore(fn func(*decisions.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := decisions.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func newDecisionsListCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent verdicts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *decisions.Store) error {
				records, err := store.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, records)
				}

				out := cmd.OutOrStdout()
				if len(records) == 0 {
					fmt.Fprintln(out, "No decisions recorded yet")
					return nil
				}
				rows := make([][]string, 0, len(records))
				for _, record := range records {
					rows = append(rows, []string{
						record.CreatedAt.Local().Format("2006-01-02 15:04"),
						record.ID,
						record.Source,
						yesNo(record.HasSubtitles),
						fmt.Sprintf("%.1f", record.Confidence),
						conflictText(record),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"When", "Scan ID", "Source", "Subtitles", "Confidence", "Conflict"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum rows to show (0 for all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit decisions as JSON")
	return cmd
}

func newDecisionsShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <scan-id>",
		Short: "Show one verdict in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *decisions.Store) error {
				record, found, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !found {
					return fmt.Errorf("no decision with scan id %s", args[0])
				}
				if jsonOutput {
					return writeJSON(cmd, record)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Scan ID: %s\n", record.ID)
				fmt.Fprintf(out, "Source: %s\n", record.Source)
				fmt.Fprintf(out, "Scanned: %s\n", record.CreatedAt.Local().Format("2006-01-02 15:04:05"))
				fmt.Fprintf(out, "Subtitles: %s (confidence %.1f)\n", yesNo(record.HasSubtitles), record.Confidence)
				fmt.Fprintf(out, "Reason: %s\n", record.Reason)
				fmt.Fprintf(out, "Conflict: %s  Uncertainty: %s\n", conflictText(record), record.Uncertainty)
				if len(record.Votes) > 0 {
					rows := make([][]string, 0, len(record.Votes))
					for _, vote := range record.Votes {
						rows = append(rows, []string{
							vote.Strategy,
							yesNo(vote.HasSubtitles),
							fmt.Sprintf("%.2f", vote.Confidence),
							fmt.Sprintf("%.1f", vote.Weight),
						})
					}
					fmt.Fprintln(out, renderTable(
						[]string{"Strategy", "Subtitles", "Confidence", "Weight"},
						rows,
						[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
					))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the decision as JSON")
	return cmd
}

func newDecisionsClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all stored verdicts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *decisions.Store) error {
				removed, err := store.Clear(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d decision(s)\n", removed)
				return nil
			})
		},
	}
}

func conflictText(record decisions.Record) string {
	if !record.Conflict {
		return "none"
	}
	return record.ConflictSeverity
}
