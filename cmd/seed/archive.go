package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewArchiveCmd(logger *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "archive <id>",
		Short: "Archive a seed",
		Args:  cobra.ExactArgs(1),
		RunE:  makeFlipRunner(logger, "archive"),
	}
}

func NewUnarchiveCmd(logger *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "unarchive <id>",
		Short: "Restore an archived seed",
		Args:  cobra.ExactArgs(1),
		RunE:  makeFlipRunner(logger, "unarchive"),
	}
}

func makeFlipRunner(logger *zap.Logger, action string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore(cmd, logger)
		if err != nil {
			return err
		}

		var ok bool
		if action == "archive" {
			ok, err = store.Archive(args[0])
		} else {
			ok, err = store.Unarchive(args[0])
		}
		if err != nil {
			return fmt.Errorf("%s seed: %w", action, err)
		}
		if !ok {
			printFailure(cmd, "not found")
			return fmt.Errorf("%s seed: %s not found", action, args[0])
		}

		return printJSON(cmd, map[string]any{"success": true})
	}
}

func NewArchiveAllCmd(logger *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "archive-all",
		Short: "Archive every active seed in the current project",
		Args:  cobra.NoArgs,
		RunE: makeBulkRunner(logger, func(s storeOps) (int, error) {
			return s.ArchiveAll()
		}),
	}
}

func NewArchiveOutdatedCmd(logger *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "archive-outdated",
		Short: "Archive outdated seeds in the current project",
		Args:  cobra.NoArgs,
		RunE: makeBulkRunner(logger, func(s storeOps) (int, error) {
			return s.ArchiveOutdated()
		}),
	}
}

func NewDeleteArchivedCmd(logger *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-archived",
		Short: "Permanently delete every archived seed",
		Args:  cobra.NoArgs,
		RunE: makeBulkRunner(logger, func(s storeOps) (int, error) {
			return s.DeleteArchived()
		}),
	}
}

func NewCleanupCmd(logger *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Permanently delete seeds past their TTL",
		Long:  `Hard-purge every seed whose age exceeds its own ttl_hours, regardless of status.`,
		Args:  cobra.NoArgs,
		RunE: makeBulkRunner(logger, func(s storeOps) (int, error) {
			return s.CleanupExpired()
		}),
	}
}

// storeOps is the slice of the store the bulk commands need.
type storeOps interface {
	ArchiveAll() (int, error)
	ArchiveOutdated() (int, error)
	DeleteArchived() (int, error)
	CleanupExpired() (int, error)
}

func makeBulkRunner(logger *zap.Logger, op func(storeOps) (int, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		store, _, err := openStore(cmd, logger)
		if err != nil {
			return err
		}

		count, err := op(store)
		if err != nil {
			return fmt.Errorf("bulk operation: %w", err)
		}

		return printJSON(cmd, map[string]any{"success": true, "count": count})
	}
}
