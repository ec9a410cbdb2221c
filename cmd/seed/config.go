package main

import (
	"fmt"
	"strconv"

	"github.com/seedbed-dev/seedbed/internal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// configCommands builds the settings surface. Each command reads the config
// file fresh and, for mutations, writes the single current value back:
// cycling is a read-then-write over one file, deterministic per call but not
// serialized across processes.
func configCommands(logger *zap.Logger) []*cobra.Command {
	return []*cobra.Command{
		newConfigGetCmd("get-filter", "Print the default listing filter", func(cfg *internal.Config) string {
			return string(cfg.DefaultFilter)
		}),
		newConfigSetCmd("set-filter <filter>", "Set the default listing filter", func(cfg *internal.Config, v string) error {
			if !internal.ValidFilter(v) {
				return fmt.Errorf("unknown filter %q", v)
			}
			cfg.DefaultFilter = internal.Filter(v)
			return nil
		}),
		newConfigCycleCmd("cycle-filter", "Advance the default filter", func(cfg *internal.Config) string {
			cfg.DefaultFilter = internal.NextFilter(cfg.DefaultFilter)
			return string(cfg.DefaultFilter)
		}),

		newConfigGetCmd("get-context-turns", "Print the context turn count", func(cfg *internal.Config) string {
			return strconv.Itoa(cfg.ContextTurns)
		}),
		newConfigSetCmd("set-context-turns <n>", "Set the context turn count", func(cfg *internal.Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return fmt.Errorf("invalid turn count %q", v)
			}
			cfg.ContextTurns = n
			return nil
		}),
		newConfigCycleCmd("cycle-context-turns", "Advance the context turn preset", func(cfg *internal.Config) string {
			cfg.ContextTurns = internal.NextContextTurns(cfg.ContextTurns)
			return strconv.Itoa(cfg.ContextTurns)
		}),

		newConfigGetCmd("get-mode", "Print the expansion mode", func(cfg *internal.Config) string {
			return cfg.ExpansionMode
		}),
		newConfigSetCmd("set-mode <mode>", "Set the expansion mode", func(cfg *internal.Config, v string) error {
			cfg.ExpansionMode = v
			return nil
		}),

		newConfigGetCmd("get-permissions", "Print the skip-permissions toggle", func(cfg *internal.Config) string {
			return strconv.FormatBool(cfg.SkipPermissions)
		}),
		newConfigSetCmd("set-permissions <bool>", "Set the skip-permissions toggle", func(cfg *internal.Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid boolean %q", v)
			}
			cfg.SkipPermissions = b
			return nil
		}),

		newConfigGetCmd("get-model", "Print the configured model", func(cfg *internal.Config) string {
			return cfg.Model
		}),
		newConfigSetCmd("set-model <model>", "Set the configured model", func(cfg *internal.Config, v string) error {
			cfg.Model = v
			return nil
		}),
	}
}

func newConfigGetCmd(use, short string, read func(*internal.Config) string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), read(cfg))
			return nil
		},
	}
}

func newConfigSetCmd(use, short string, apply func(*internal.Config, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := apply(cfg, args[0]); err != nil {
				printFailure(cmd, err.Error())
				return err
			}
			if err := saveConfig(cmd, cfg); err != nil {
				return err
			}
			return printJSON(cmd, map[string]any{"success": true})
		},
	}
}

func newConfigCycleCmd(use, short string, advance func(*internal.Config) string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			next := advance(cfg)
			if err := saveConfig(cmd, cfg); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), next)
			return nil
		},
	}
}

func loadConfig(cmd *cobra.Command) (*internal.Config, error) {
	root := internal.Root{Base: resolveBase(cmd)}
	return internal.LoadConfig(root.ConfigPath())
}

func saveConfig(cmd *cobra.Command, cfg *internal.Config) error {
	root := internal.Root{Base: resolveBase(cmd)}
	return internal.SaveConfig(root.ConfigPath(), cfg)
}
