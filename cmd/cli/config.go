// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"fmt"
	"strconv"

	"birthday-manager/internal/config"
	"birthday-manager/internal/logger"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// dimColor is used for less important/secondary text in the CLI output
var dimColor = color.New(color.Faint)

// configCmd is the parent command for all configuration-related subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage birthday-manager configuration",
	Long: `Provides subcommands to manage the birthday-manager configuration,
stored in ~/.config/birthday-manager/config.yaml.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, err := config.DefaultConfigPath()
		if err != nil {
			fail(cmd, err)
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fail(cmd, fmt.Errorf("marshalling configuration: %w", err))
		}
		dimColor.Fprintf(cmd.OutOrStdout(), "# %s (defaults filled in)\n", configPath)
		fmt.Fprint(cmd.OutOrStdout(), string(data))
	},
}

var configSetDaysCmd = &cobra.Command{
	Use:   "set-days <days>",
	Short: "Set the default look-ahead window for upcoming birthdays",
	Example: `  bm config set-days 14
  bm config set-days 0    # back to the default (7)`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		days, err := strconv.Atoi(args[0])
		if err != nil || days < 0 {
			fail(cmd, fmt.Errorf("days must be a non-negative number, got %q", args[0]))
		}

		loaded, err := config.LoadConfig()
		if err != nil {
			fail(cmd, fmt.Errorf("loading configuration: %w", err))
		}
		loaded.UpcomingDays = days
		if err := config.SaveConfig(loaded); err != nil {
			fail(cmd, fmt.Errorf("saving configuration: %w", err))
		}

		successColor.Fprintf(cmd.OutOrStdout(), "Upcoming window set to %d days.\n", loaded.WithDefaults().UpcomingDays)
	},
}

var configSetLogLevelCmd = &cobra.Command{
	Use:       "set-log-level <level>",
	Short:     "Set the log level (debug, info, warn, error)",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"debug", "info", "warn", "error"},
	Run: func(cmd *cobra.Command, args []string) {
		level := args[0]
		if err := logger.SetLevel(level); err != nil {
			fail(cmd, err)
		}

		loaded, err := config.LoadConfig()
		if err != nil {
			fail(cmd, fmt.Errorf("loading configuration: %w", err))
		}
		loaded.LogLevel = level
		if err := config.SaveConfig(loaded); err != nil {
			fail(cmd, fmt.Errorf("saving configuration: %w", err))
		}

		successColor.Fprintf(cmd.OutOrStdout(), "Log level set to: %s\n", level)
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetDaysCmd)
	configCmd.AddCommand(configSetLogLevelCmd)

	rootCmd.AddCommand(configCmd)
}
