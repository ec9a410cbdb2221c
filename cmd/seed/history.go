package main

import (
	"fmt"

	"github.com/seedbed-dev/seedbed/internal"
	"github.com/spf13/cobra"
)

func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Audit history of the store",
		Long:  `Opt-in git-backed audit trail. After "history init" every mutation is committed; log and diff read the trail back.`,
	}

	cmd.AddCommand(
		newHistoryInitCmd(),
		newHistoryLogCmd(),
		newHistoryDiffCmd(),
	)
	return cmd
}

func newHistoryInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Enable audit history for this store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			base := resolveBase(cmd)
			if internal.HistoryEnabled(base) {
				return fmt.Errorf("history already initialized: %s", base)
			}
			if err := internal.InitHistory(base); err != nil {
				return fmt.Errorf("init history: %w", err)
			}
			return printJSON(cmd, map[string]any{"success": true})
		},
	}
}

func newHistoryLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Print recent audit commits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hist, err := internal.OpenHistory(resolveBase(cmd))
			if err != nil {
				return err
			}
			limit, _ := cmd.Flags().GetInt("limit")
			commits, err := hist.Log(limit)
			if err != nil {
				return fmt.Errorf("history log: %w", err)
			}
			return printJSON(cmd, commits)
		},
	}
	cmd.Flags().Int("limit", 20, "Maximum commits to print (0 for all)")
	return cmd
}

func newHistoryDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <ref>",
		Short: "Show changes between a ref and the current store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hist, err := internal.OpenHistory(resolveBase(cmd))
			if err != nil {
				return err
			}
			patch, err := hist.Diff(args[0])
			if err != nil {
				return fmt.Errorf("history diff: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), patch)
			return nil
		},
	}
}
