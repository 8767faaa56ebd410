// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package ui implements the interactive terminal front end on Bubble Tea.
package ui

import (
	"birthday-manager/internal/birthday"
	"birthday-manager/internal/store"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type model struct {
	store  *store.Store
	keymap KeyMap

	currentState state
	cursor       int
	upcoming     []birthday.Entry // snapshot shown in stateUpcoming

	// Add/edit form
	formInputs     []textinput.Model
	formFocusIndex int
	formError      error
	editIndex      int // index being edited, -1 when adding

	dirty         bool // unsaved changes
	statusMessage string
	lastError     error

	width  int
	height int
}

// InitialModel creates the TUI model over an already loaded store.
func InitialModel(s *store.Store) model {
	return model{
		store:        s,
		keymap:       DefaultKeyMap,
		currentState: stateEntryList,
		editIndex:    -1,
	}
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cmds = append(cmds, handleWindowSizeMsg(m, msg))

	case tea.KeyMsg:
		switch m.currentState {
		case stateEntryList:
			cmds = append(cmds, m.handleEntryListKeys(msg)...)
		case stateUpcoming:
			cmds = append(cmds, m.handleUpcomingKeys(msg)...)
		case stateAddForm, stateEditForm:
			cmds = append(cmds, m.handleFormKeys(msg)...)
		case stateRemoveConfirm:
			cmds = append(cmds, m.handleRemoveConfirmKeys(msg)...)
		}

	case entriesSavedMsg:
		cmds = append(cmds, handleEntriesSavedMsg(m, msg))
	}

	return m, tea.Batch(cmds...)
}

func (m *model) View() string {
	header := titleStyle.Render("Birthday Manager") + " " + dimStyle.Render(m.store.Path)

	var body, footer string
	switch m.currentState {
	case stateEntryList:
		body, footer = m.renderEntryListView()
	case stateUpcoming:
		body, footer = m.renderUpcomingView()
	case stateAddForm, stateEditForm:
		body, footer = m.renderFormView()
	case stateRemoveConfirm:
		body, footer = m.renderRemoveConfirmView()
	}

	if m.width > 0 {
		bodyHeight := m.height - headerHeight - lipgloss.Height(footer) - 2 // border
		if bodyHeight < 1 {
			bodyHeight = 1
		}
		body = mainContentBorderStyle.Width(m.width - 2).Height(bodyHeight).Render(body)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
