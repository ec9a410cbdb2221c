package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/seedbed-dev/seedbed/internal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	envBase      = "SEED_HOME"
	envSessionID = "SEED_SESSION_ID"
)

// resolveBase picks the store root: --base flag, then $SEED_HOME, then
// ~/.seeds.
func resolveBase(cmd *cobra.Command) string {
	if base, _ := cmd.Flags().GetString("base"); base != "" {
		return base
	}
	if base := os.Getenv(envBase); base != "" {
		return base
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".seeds")
}

// openStore wires a store for this invocation: config is loaded once,
// identity resolved from flag > env > working directory, and history
// attached when initialized.
func openStore(cmd *cobra.Command, logger *zap.Logger) (*internal.Store, *internal.Config, error) {
	root := internal.Root{Base: resolveBase(cmd)}

	cfg, err := internal.LoadConfig(root.ConfigPath())
	if err != nil {
		return nil, nil, err
	}

	override, _ := cmd.Flags().GetString("session")
	wd, _ := os.Getwd()
	session := internal.ResolveSessionID(override, os.Getenv(envSessionID), wd)

	projectHash := ""
	if wd != "" {
		projectHash = internal.ProjectHash(wd)
	}

	var hist *internal.History
	if internal.HistoryEnabled(root.Base) {
		hist, err = internal.OpenHistory(root.Base)
		if err != nil {
			logger.Warn("open history", zap.Error(err))
			hist = nil
		}
	}

	return internal.NewStore(root, session, projectHash, cfg, hist, logger), cfg, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printFailure emits the structured rejection on stdout; the caller still
// returns an error so the process exits non-zero.
func printFailure(cmd *cobra.Command, reason string) {
	_ = printJSON(cmd, map[string]any{"success": false, "reason": reason})
}

// rejectionReason maps store errors onto the stable reason strings external
// callers match on.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, internal.ErrStoreDisabled):
		return "disabled"
	case errors.Is(err, internal.ErrDuplicateSeed):
		return "duplicate"
	default:
		return err.Error()
	}
}
