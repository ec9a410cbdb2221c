package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"go.uber.org/zap"
)

// version is set via ldflags at build time
var version = "dev"

func main() {
	ctx := context.Background()

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	rootCmd := NewRootCmd(version, logger)
	if err := fang.Execute(ctx, rootCmd); err != nil {
		os.Exit(1)
	}
}

// newLogger writes structured warnings to stderr so stdout stays parseable
// by external callers.
func newLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
