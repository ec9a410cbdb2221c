package main

import (
	"fmt"

	"github.com/seedbed-dev/seedbed/internal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewListCmd(logger *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:     "list [filter]",
		Aliases: []string{"ls"},
		Short:   "List seeds in the current project",
		Long:    `List seeds scoped to the current project, annotated with freshness. Filter is one of all|active|outdated|archived; the default comes from config.`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    makeListRunner(logger, internal.ScopeProject),
	}
}

func NewListAllCmd(logger *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "list-all [filter]",
		Short: "List seeds across all namespaces",
		Args:  cobra.MaximumNArgs(1),
		RunE:  makeListRunner(logger, internal.ScopeAll),
	}
}

func makeListRunner(logger *zap.Logger, scope internal.ListScope) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		store, cfg, err := openStore(cmd, logger)
		if err != nil {
			return err
		}

		filter := cfg.DefaultFilter
		if len(args) > 0 {
			if !internal.ValidFilter(args[0]) {
				return fmt.Errorf("unknown filter %q", args[0])
			}
			filter = internal.Filter(args[0])
		}

		seeds, err := store.List(filter, scope)
		if err != nil {
			return fmt.Errorf("list seeds: %w", err)
		}

		return printJSON(cmd, seeds)
	}
}
