// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"birthday-manager/internal/birthday"
	"birthday-manager/internal/logger"
	"birthday-manager/internal/store"

	"github.com/spf13/cobra"
)

var (
	upcomingDaysFlag int
	importReplace    bool
)

func init() {
	upcomingCmd.Flags().IntVarP(&upcomingDaysFlag, "days", "d", 0, "days to look ahead (default from config)")
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "replace all entries instead of appending")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(upcomingCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all birthdays with their index",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore()
		if err != nil {
			fail(cmd, err)
		}
		printList(cmd.OutOrStdout(), s)
	},
}

var upcomingCmd = &cobra.Command{
	Use:     "upcoming",
	Aliases: []string{"up"},
	Short:   "Show birthdays in the next few days",
	Long: `Shows the birthdays falling between today and the given number of days ahead,
both days included. The default window comes from upcoming_days in the config (7).`,
	Example: "  bm upcoming\n  bm upcoming --days 30",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore()
		if err != nil {
			fail(cmd, err)
		}
		if err := runUpcoming(cmd.OutOrStdout(), s, upcomingDaysFlag); err != nil {
			fail(cmd, err)
		}
	},
}

var addCmd = &cobra.Command{
	Use:     "add <name> <date-of-birth> [description]",
	Short:   "Add a birthday",
	Long:    `Adds a birthday to the end of the list. The date is expected as MM-DD-YYYY unless input_layout is configured.`,
	Example: "  bm add Alice 05-04-1990 sister\n  bm add \"Uncle Bob\" 01-12-1965",
	Args:    cobra.RangeArgs(2, 3),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore()
		if err != nil {
			fail(cmd, err)
		}
		e, err := runAdd(s, args)
		if err != nil {
			fail(cmd, err)
		}
		successColor.Fprintf(cmd.OutOrStdout(), "Added #%d: %s\n", s.Len()-1, e.Format(s.Config.DateLayout))
	},
}

var editCmd = &cobra.Command{
	Use:               "edit <index> <name> <date-of-birth> [description]",
	Short:             "Replace the birthday at an index",
	Example:           "  bm edit 0 Alice 05-04-1990 \"older sister\"",
	Args:              cobra.RangeArgs(3, 4),
	ValidArgsFunction: indexCompletionFunc,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore()
		if err != nil {
			fail(cmd, err)
		}
		index, e, err := runEdit(s, args)
		if err != nil {
			fail(cmd, err)
		}
		successColor.Fprintf(cmd.OutOrStdout(), "Updated #%d: %s\n", index, e.Format(s.Config.DateLayout))
	},
}

var removeCmd = &cobra.Command{
	Use:               "remove <index>",
	Aliases:           []string{"rm"},
	Short:             "Remove the birthday at an index",
	Example:           "  bm remove 2\n  bm rm 0",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: indexCompletionFunc,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore()
		if err != nil {
			fail(cmd, err)
		}
		e, err := runRemove(s, args[0])
		if err != nil {
			fail(cmd, err)
		}
		successColor.Fprintf(cmd.OutOrStdout(), "Removed: %s\n", e.Format(s.Config.DateLayout))
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Append birthdays from another file",
	Long: `Reads a file in the birthday line format (name,date,description) and appends its
entries. Importing the same file twice adds its entries twice. Lines that do not
parse are skipped. With --replace the current entries are discarded first.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore()
		if err != nil {
			fail(cmd, err)
		}
		added, err := runImport(s, args[0], importReplace)
		if err != nil {
			fail(cmd, err)
		}
		successColor.Fprintf(cmd.OutOrStdout(), "Imported %d entries (%d total).\n", added, s.Len())
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write all birthdays to another file",
	Long:  `Writes every entry to the given file in the birthday line format, overwriting it. Use '-' for stdout.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore()
		if err != nil {
			fail(cmd, err)
		}
		if args[0] == "-" {
			if err := s.Manager.Save(cmd.OutOrStdout()); err != nil {
				fail(cmd, err)
			}
			return
		}
		if err := s.SaveTo(args[0]); err != nil {
			fail(cmd, err)
		}
		successColor.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", s.Len(), args[0])
	},
}

func printList(w io.Writer, s *store.Store) {
	entries := s.List()
	if len(entries) == 0 {
		fmt.Fprintln(w, "No birthdays recorded.")
		return
	}
	for i, e := range entries {
		fmt.Fprintf(w, "%s %s\n", identifierColor.Sprintf("%3d", i), e.Format(s.Config.DateLayout))
	}
}

func runUpcoming(w io.Writer, s *store.Store, days int) error {
	if days < 0 {
		return fmt.Errorf("days must not be negative, got %d", days)
	}
	if days == 0 {
		days = s.Config.UpcomingDays
	}

	upcoming := s.Upcoming(days)
	if len(upcoming) == 0 {
		fmt.Fprintln(w, "No upcoming birthdays.")
		return nil
	}

	now := time.Now()
	statusColor.Fprintf(w, "Upcoming birthdays (next %d days):\n", days)
	fmt.Fprintln(w, now.Format(time.DateTime))
	for _, e := range upcoming {
		line := e.Format(s.Config.DateLayout)
		if e.DateOfBirth.Month() == now.Month() && e.DateOfBirth.Day() == now.Day() {
			line = todayColor.Sprint(line + " (today!)")
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

// entryFromArgs builds an entry from name, date and optional description,
// rejecting dates that do not parse.
func entryFromArgs(s *store.Store, args []string) (birthday.Entry, error) {
	name := strings.TrimSpace(args[0])
	if name == "" {
		return birthday.Entry{}, fmt.Errorf("name must not be empty")
	}
	dob, err := s.ParseDate(args[1])
	if err != nil {
		return birthday.Entry{}, fmt.Errorf("invalid date of birth %q: %w", args[1], err)
	}
	description := ""
	if len(args) > 2 {
		description = args[2]
	}
	return birthday.NewEntry(name, dob, description), nil
}

// parseIndex converts raw to an index and checks it against the list; the
// manager itself ignores out-of-range indices without reporting them.
func parseIndex(s *store.Store, raw string) (int, error) {
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", raw)
	}
	if _, ok := s.Get(index); !ok {
		return 0, fmt.Errorf("no entry at index %d (have %d entries)", index, s.Len())
	}
	return index, nil
}

func runAdd(s *store.Store, args []string) (birthday.Entry, error) {
	e, err := entryFromArgs(s, args)
	if err != nil {
		return e, err
	}
	s.Add(e)
	logger.Debug("Entry added", "name", e.Name)
	return e, s.Save()
}

func runEdit(s *store.Store, args []string) (int, birthday.Entry, error) {
	index, err := parseIndex(s, args[0])
	if err != nil {
		return 0, birthday.Entry{}, err
	}
	e, err := entryFromArgs(s, args[1:])
	if err != nil {
		return index, e, err
	}
	s.EditAt(index, e)
	logger.Debug("Entry edited", "index", index, "name", e.Name)
	return index, e, s.Save()
}

func runRemove(s *store.Store, raw string) (birthday.Entry, error) {
	index, err := parseIndex(s, raw)
	if err != nil {
		return birthday.Entry{}, err
	}
	e, _ := s.Get(index)
	s.RemoveAt(index)
	logger.Debug("Entry removed", "index", index, "name", e.Name)
	return e, s.Save()
}

func runImport(s *store.Store, path string, replace bool) (int, error) {
	if _, err := os.Stat(path); err != nil {
		return 0, fmt.Errorf("cannot read import file: %w", err)
	}
	before := s.Len()
	if replace {
		if err := s.ReplaceFrom(path); err != nil {
			return 0, err
		}
		before = 0
	} else if err := s.LoadFrom(path); err != nil {
		return 0, err
	}
	return s.Len() - before, s.Save()
}
