// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"birthday-manager/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// saveEntriesCmd writes the store back to its data file. The write happens
// here, on the update goroutine, because the manager is not safe for
// concurrent use; only the result is delivered as a message.
func saveEntriesCmd(s *store.Store, quit bool) tea.Cmd {
	err := s.Save()
	msg := entriesSavedMsg{err: err, count: s.Len(), quit: quit}
	return func() tea.Msg {
		return msg
	}
}
