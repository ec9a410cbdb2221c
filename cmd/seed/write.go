package main

import (
	"encoding/json"
	"fmt"

	"github.com/seedbed-dev/seedbed/internal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewWriteCmd(logger *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "write <title> [rationale]",
		Short: "Create a new seed",
		Long:  `Validate, deduplicate and persist a new seed in the current namespace.`,
		Args:  cobra.RangeArgs(1, 2),
		RunE:  makeWriteRunner(logger),
	}

	cmd.Flags().String("anchors", "", "Anchors as a JSON array of {path, context_start_text, context_end_text, line_start, line_end}")
	cmd.Flags().String("options-hint", "", "Optional free-text hint")
	cmd.Flags().Int("ttl", 0, "TTL in hours (default from config)")
	return cmd
}

func makeWriteRunner(logger *zap.Logger) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore(cmd, logger)
		if err != nil {
			return err
		}

		rationale := ""
		if len(args) > 1 {
			rationale = args[1]
		}

		anchors, err := parseAnchors(cmd)
		if err != nil {
			return err
		}

		hint, _ := cmd.Flags().GetString("options-hint")
		ttl, _ := cmd.Flags().GetInt("ttl")

		seed, err := store.Write(internal.WriteRequest{
			Title:       args[0],
			Rationale:   rationale,
			Anchors:     anchors,
			OptionsHint: hint,
			TTLHours:    ttl,
		})
		if err != nil {
			printFailure(cmd, rejectionReason(err))
			return fmt.Errorf("write seed: %w", err)
		}

		return printJSON(cmd, map[string]any{"success": true, "seed": seed})
	}
}

func parseAnchors(cmd *cobra.Command) ([]internal.Anchor, error) {
	raw, _ := cmd.Flags().GetString("anchors")
	if raw == "" {
		return nil, nil
	}
	var anchors []internal.Anchor
	if err := json.Unmarshal([]byte(raw), &anchors); err != nil {
		return nil, fmt.Errorf("parse anchors: %w", err)
	}
	return anchors, nil
}
