package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewConcludeCmd(logger *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conclude <id> <conclusion>",
		Short: "Append an investigation conclusion to a seed",
		Long:  `Append an expansion record to the seed's ledger. The ledger is append-only; repeated conclusions accumulate.`,
		Args:  cobra.ExactArgs(2),
		RunE:  makeConcludeRunner(logger),
	}

	cmd.Flags().String("result-path", "", "Path to the expansion output written by the caller")
	return cmd
}

func makeConcludeRunner(logger *zap.Logger) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore(cmd, logger)
		if err != nil {
			return err
		}

		resultPath, _ := cmd.Flags().GetString("result-path")

		ok, err := store.Conclude(args[0], args[1], resultPath)
		if err != nil {
			return fmt.Errorf("conclude seed: %w", err)
		}
		if !ok {
			printFailure(cmd, "not found")
			return fmt.Errorf("conclude seed: %s not found", args[0])
		}

		return printJSON(cmd, map[string]any{"success": true})
	}
}
