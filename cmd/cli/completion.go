// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"fmt"
	"strconv"
	"strings"

	"birthday-manager/internal/config"
	"birthday-manager/internal/store"

	"github.com/spf13/cobra"
)

// indexCompletionFunc completes the first argument of edit/remove with entry
// indices, described by the entry's name.
func indexCompletionFunc(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	// Completion may run before the root pre-run hook, so load config here.
	// Errors are ignored; completion just offers nothing.
	completionCfg, err := config.LoadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	s, err := store.Open(completionCfg, dataFileFlag)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	return indexSuggestions(s, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// indexSuggestions lists "index\tname" pairs whose index starts with toComplete.
func indexSuggestions(s *store.Store, toComplete string) []string {
	suggestions := []string{}
	for i, e := range s.List() {
		index := strconv.Itoa(i)
		if strings.HasPrefix(index, toComplete) {
			suggestions = append(suggestions, fmt.Sprintf("%s\t%s", index, e.Name))
		}
	}
	return suggestions
}
