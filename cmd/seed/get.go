package main

import (
	"errors"
	"fmt"

	"github.com/seedbed-dev/seedbed/internal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewGetCmd(logger *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Print a single seed",
		Long:  `Look a seed up by id across all namespaces. Prints null when it does not exist.`,
		Args:  cobra.ExactArgs(1),
		RunE:  makeGetRunner(logger),
	}
}

func makeGetRunner(logger *zap.Logger) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore(cmd, logger)
		if err != nil {
			return err
		}

		seed, err := store.Get(args[0])
		if errors.Is(err, internal.ErrNotFound) {
			fmt.Fprintln(cmd.OutOrStdout(), "null")
			return nil
		}
		if err != nil {
			return fmt.Errorf("get seed: %w", err)
		}

		return printJSON(cmd, seed)
	}
}
