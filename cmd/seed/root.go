package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewRootCmd(version string, logger *zap.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "seed",
		Short:         "Transient insight records for coding sessions",
		Long:          `A file-based store for session insight records: create, list, archive and conclude seeds scoped to the current conversation or project.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	addPersistentFlags(rootCmd)
	addSubcommands(rootCmd, logger)

	return rootCmd
}

func addPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("base", "", "Store root directory (default $SEED_HOME or ~/.seeds)")
	cmd.PersistentFlags().String("session", "", "Explicit session identity override")
}

func addSubcommands(root *cobra.Command, logger *zap.Logger) {
	root.AddCommand(
		NewWriteCmd(logger),
		NewGetCmd(logger),
		NewListCmd(logger),
		NewListAllCmd(logger),
		NewDeleteCmd(logger),
		NewArchiveCmd(logger),
		NewUnarchiveCmd(logger),
		NewConcludeCmd(logger),
		NewArchiveAllCmd(logger),
		NewArchiveOutdatedCmd(logger),
		NewDeleteArchivedCmd(logger),
		NewCleanupCmd(logger),
		NewHistoryCmd(),
		NewWatchCmd(logger),
	)
	root.AddCommand(configCommands(logger)...)
}
