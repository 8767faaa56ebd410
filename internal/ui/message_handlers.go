// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"fmt"

	"birthday-manager/internal/logger"

	tea "github.com/charmbracelet/bubbletea"
)

// --- Message Handlers ---
// These functions handle specific message types received by the model's Update function.

func handleWindowSizeMsg(m *model, msg tea.WindowSizeMsg) tea.Cmd {
	m.width = msg.Width
	m.height = msg.Height
	return nil
}

// handleEntriesSavedMsg records the save outcome. A failed save-and-quit
// keeps the program running so the entries are not lost.
func handleEntriesSavedMsg(m *model, msg entriesSavedMsg) tea.Cmd {
	if msg.err != nil {
		m.lastError = fmt.Errorf("failed to save birthdays: %w", msg.err)
		m.statusMessage = ""
		logger.Error("Failed to save birthdays", "path", m.store.Path, "error", msg.err)
		return nil
	}

	m.lastError = nil
	m.dirty = false
	m.statusMessage = fmt.Sprintf("Saved %d entries", msg.count)
	if msg.quit {
		return tea.Quit
	}
	return nil
}
