package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewDeleteCmd(logger *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Permanently delete a seed",
		Args:    cobra.ExactArgs(1),
		RunE:    makeDeleteRunner(logger),
	}
}

func makeDeleteRunner(logger *zap.Logger) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore(cmd, logger)
		if err != nil {
			return err
		}

		ok, err := store.Delete(args[0])
		if err != nil {
			return fmt.Errorf("delete seed: %w", err)
		}
		if !ok {
			printFailure(cmd, "not found")
			return fmt.Errorf("delete seed: %s not found", args[0])
		}

		return printJSON(cmd, map[string]any{"success": true})
	}
}
