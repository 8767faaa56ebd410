// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"fmt"
	"os"

	"birthday-manager/internal/config"
	"birthday-manager/internal/logger"
	"birthday-manager/internal/store"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	cfg             config.Config
	dataFileFlag    string
	statusColor     = color.New(color.FgCyan)
	errorColor      = color.New(color.FgRed)
	successColor    = color.New(color.FgGreen)
	todayColor      = color.New(color.FgYellow, color.Bold)
	identifierColor = color.New(color.FgBlue)
)

var rootCmd = &cobra.Command{
	Use:   "bm",
	Short: "Birthday Manager CLI",
	Long: `A small tool to keep track of birthdays.

Entries are stored one per line in a plain text file
(~/.config/birthday-manager/birthdays.txt unless configured otherwise).
Run without arguments to open the interactive interface.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.EnsureConfigDir(); err != nil {
			return fmt.Errorf("failed to ensure config directory: %w", err)
		}
		loaded, err := config.LoadConfig()
		if err != nil {
			return err
		}
		cfg = loaded.WithDefaults()

		logger.InitLogger(false)
		if err := logger.SetLevel(cfg.LogLevel); err != nil {
			logger.Warn("Ignoring configured log level", "error", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		logger.Close()
		return nil
	},
}

func RunCLI() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dataFileFlag, "file", "f", "", "birthday file to use instead of the configured one")
}

// openStore loads the birthday file selected by config and --file.
func openStore() (*store.Store, error) {
	return store.Open(cfg, dataFileFlag)
}

// fail prints err and exits with status 1.
func fail(cmd *cobra.Command, err error) {
	errorColor.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	os.Exit(1)
}
