// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"fmt"
	"os"
	"strings"

	"birthday-manager/internal/config"

	"github.com/spf13/cobra"
)

var configSetDataFileCmd = &cobra.Command{
	Use:   "set-data-file <path>",
	Short: "Set the file birthdays are stored in",
	Long: `Sets the file bm reads and writes birthdays from.
Use an absolute path or a path starting with '~/' (e.g., '~/Documents/birthdays.txt').
To revert to the default location, set the path to an empty string: bm config set-data-file ""`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dataFilePath := args[0]

		loaded, err := config.LoadConfig()
		if err != nil {
			fail(cmd, fmt.Errorf("loading configuration: %w", err))
		}

		if dataFilePath != "" && !strings.HasPrefix(dataFilePath, "/") && !strings.HasPrefix(dataFilePath, "~/") {
			fail(cmd, fmt.Errorf("path must be absolute or start with '~/'"))
		}

		loaded.DataFile = dataFilePath

		err = config.SaveConfig(loaded)
		if err != nil {
			fail(cmd, fmt.Errorf("saving configuration: %w", err))
		}

		if dataFilePath == "" {
			successColor.Fprintln(cmd.OutOrStdout(), "Data file reset to the default location.")
		} else {
			successColor.Fprintf(cmd.OutOrStdout(), "Data file set to: %s\n", dataFilePath)
		}
	},
}

var configGetDataFileCmd = &cobra.Command{
	Use:   "get-data-file",
	Short: "Show which birthday file is in use",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if cfg.DataFile != "" {
			fmt.Fprintf(out, "Configured data file: %s\n", identifierColor.Sprint(cfg.DataFile))
		} else {
			fmt.Fprintln(out, "Data file not explicitly configured, using the default location.")
		}

		activePath := dataFileFlag
		source := "(from --file)"
		if activePath == "" {
			var err error
			activePath, err = cfg.DataPath()
			if err != nil {
				fail(cmd, fmt.Errorf("determining data file: %w", err))
			}
			source = "(from config)"
			if cfg.DataFile == "" {
				source = "(default)"
			}
		}

		successColor.Fprintf(out, "Effective path being used: %s %s\n", activePath, source)
		if _, err := os.Stat(activePath); os.IsNotExist(err) {
			fmt.Fprintln(out, "The file does not exist yet; it will be created on the first save.")
		}
	},
}

func init() {
	configCmd.AddCommand(configSetDataFileCmd)
	configCmd.AddCommand(configGetDataFileCmd)
}
