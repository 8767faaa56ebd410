// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package tui

import (
	"fmt"
	"os"

	"birthday-manager/internal/config"
	"birthday-manager/internal/logger"
	"birthday-manager/internal/store"
	"birthday-manager/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// RunTUI loads the birthday file and runs the Bubble Tea TUI application.
func RunTUI() {
	if err := config.EnsureConfigDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Error preparing config directory: %v\n", err)
		os.Exit(1)
	}
	loaded, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	cfg := loaded.WithDefaults()

	logger.InitLogger(true)
	defer logger.Close()
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		logger.Warn("Ignoring configured log level", "error", err)
	}

	s, err := store.Open(cfg, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading birthdays: %v\n", err)
		os.Exit(1)
	}

	m := ui.InitialModel(s)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Close()
		fmt.Fprintf(os.Stderr, "Alas, there's been an error: %v\n", err)
		os.Exit(1)
	}
}
