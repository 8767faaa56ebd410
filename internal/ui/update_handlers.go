// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"fmt"

	"birthday-manager/internal/logger"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// --- Update Handlers ---
// These methods handle key presses and logic for specific UI states.

// handleGlobalKeys handles the quit and save keys shared by the list views.
func (m *model) handleGlobalKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keymap.ForceQuit):
		logger.Info("Quitting without saving", "dirty", m.dirty)
		return tea.Quit, true
	case key.Matches(msg, m.keymap.Quit):
		return saveEntriesCmd(m.store, true), true
	case key.Matches(msg, m.keymap.Save):
		return saveEntriesCmd(m.store, false), true
	}
	return nil, false
}

func (m *model) handleEntryListKeys(msg tea.KeyMsg) []tea.Cmd {
	var cmds []tea.Cmd
	if cmd, handled := m.handleGlobalKeys(msg); handled {
		return append(cmds, cmd)
	}

	count := m.store.Len()
	switch {
	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keymap.Down):
		if m.cursor < count-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keymap.Home):
		m.cursor = 0
	case key.Matches(msg, m.keymap.End):
		if count > 0 {
			m.cursor = count - 1
		}
	case key.Matches(msg, m.keymap.Add):
		m.openForm(-1)
		cmds = append(cmds, textinput.Blink)
	case key.Matches(msg, m.keymap.Edit):
		if _, ok := m.store.Get(m.cursor); ok {
			m.openForm(m.cursor)
			cmds = append(cmds, textinput.Blink)
		}
	case key.Matches(msg, m.keymap.Remove):
		if _, ok := m.store.Get(m.cursor); ok {
			m.currentState = stateRemoveConfirm
		}
	case key.Matches(msg, m.keymap.Upcoming):
		m.upcoming = m.store.Upcoming(m.store.Config.UpcomingDays)
		m.currentState = stateUpcoming
	}
	return cmds
}

func (m *model) handleUpcomingKeys(msg tea.KeyMsg) []tea.Cmd {
	if cmd, handled := m.handleGlobalKeys(msg); handled {
		return []tea.Cmd{cmd}
	}
	switch {
	case key.Matches(msg, m.keymap.Esc), key.Matches(msg, m.keymap.Upcoming):
		m.currentState = stateEntryList
		m.upcoming = nil
	}
	return nil
}

// openForm switches to the add form (index < 0) or the edit form for index.
func (m *model) openForm(index int) {
	m.editIndex = index
	m.formError = nil
	m.statusMessage = ""
	if e, ok := m.store.Get(index); ok {
		m.formInputs = createEntryForm(&e, m.store.Config.InputLayout)
		m.currentState = stateEditForm
	} else {
		m.editIndex = -1
		m.formInputs = createEntryForm(nil, m.store.Config.InputLayout)
		m.currentState = stateAddForm
	}
	m.focusFormField(nameField)
}

func (m *model) closeForm() {
	m.formInputs = nil
	m.formError = nil
	m.editIndex = -1
	m.currentState = stateEntryList
}

func (m *model) handleFormKeys(msg tea.KeyMsg) []tea.Cmd {
	var cmds []tea.Cmd

	switch {
	case key.Matches(msg, m.keymap.ForceQuit):
		return append(cmds, tea.Quit)
	case key.Matches(msg, m.keymap.Esc):
		m.closeForm()
		return cmds
	case key.Matches(msg, m.keymap.NextField):
		m.focusFormField((m.formFocusIndex + 1) % formFieldCount)
		m.formError = nil
		return cmds
	case key.Matches(msg, m.keymap.PrevField):
		m.focusFormField((m.formFocusIndex - 1 + formFieldCount) % formFieldCount)
		m.formError = nil
		return cmds
	case key.Matches(msg, m.keymap.Enter):
		// Enter advances through the fields and submits from the last one.
		if m.formFocusIndex < formFieldCount-1 {
			m.focusFormField(m.formFocusIndex + 1)
			return cmds
		}
		m.submitForm()
		return cmds
	}

	var cmd tea.Cmd
	m.formInputs[m.formFocusIndex], cmd = m.formInputs[m.formFocusIndex].Update(msg)
	return append(cmds, cmd)
}

// submitForm validates the form and applies it to the store. On a validation
// error the form stays open with the error shown.
func (m *model) submitForm() {
	entry, err := m.buildEntryFromForm()
	if err != nil {
		m.formError = err
		if m.formInputs[nameField].Value() != "" {
			m.focusFormField(dateField)
		}
		return
	}

	if m.currentState == stateEditForm {
		m.store.EditAt(m.editIndex, entry)
		m.statusMessage = fmt.Sprintf("Updated %s", entry.Name)
		logger.Info("Entry edited", "index", m.editIndex, "name", entry.Name)
	} else {
		m.store.Add(entry)
		m.cursor = m.store.Len() - 1
		m.statusMessage = fmt.Sprintf("Added %s", entry.Name)
		logger.Info("Entry added", "name", entry.Name)
	}
	m.dirty = true
	m.closeForm()
}

func (m *model) handleRemoveConfirmKeys(msg tea.KeyMsg) []tea.Cmd {
	switch {
	case key.Matches(msg, m.keymap.ForceQuit):
		return []tea.Cmd{tea.Quit}
	case key.Matches(msg, m.keymap.Yes):
		if e, ok := m.store.Get(m.cursor); ok {
			m.store.RemoveAt(m.cursor)
			m.dirty = true
			m.statusMessage = fmt.Sprintf("Removed %s", e.Name)
			logger.Info("Entry removed", "index", m.cursor, "name", e.Name)
		}
		if m.cursor >= m.store.Len() && m.cursor > 0 {
			m.cursor = m.store.Len() - 1
		}
		m.currentState = stateEntryList
	case key.Matches(msg, m.keymap.No), key.Matches(msg, m.keymap.Esc):
		m.currentState = stateEntryList
	}
	return nil
}
