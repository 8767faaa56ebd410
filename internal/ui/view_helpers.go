// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"fmt"
	"strings"
	"time"

	"birthday-manager/internal/birthday"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// --- State-Specific View Renderers ---
// These functions generate the body and footer content for specific UI states.
// The main View() method combines these with the header.

// renderHelp joins key bindings into a single footer line.
func (m *model) renderHelp(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, footerKeyStyle.Render(h.Key)+footerStyle.Render(": "+h.Desc))
	}
	help := strings.Join(parts, footerSeparatorStyle.Render(" | "))
	if m.width > 0 {
		return lipgloss.NewStyle().Width(m.width).Render(help)
	}
	return help
}

// renderStatusLine shows the last error or status message, if any.
func (m *model) renderStatusLine(b *strings.Builder) {
	switch {
	case m.lastError != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.lastError)) + "\n")
	case m.statusMessage != "":
		b.WriteString(successStyle.Render(m.statusMessage) + "\n")
	}
	if m.dirty {
		b.WriteString(dimStyle.Render("(unsaved changes)") + "\n")
	}
}

func (m *model) renderEntry(e birthday.Entry) string {
	line := e.Format(m.store.Config.DateLayout)
	if _, month, day := time.Now().Date(); e.DateOfBirth.Month() == month && e.DateOfBirth.Day() == day {
		return todayStyle.Render(line)
	}
	return line
}

func (m *model) renderEntryListView() (string, string) {
	bodyContent := strings.Builder{}
	entries := m.store.List()
	if len(entries) == 0 {
		bodyContent.WriteString(statusStyle.Render("No birthdays yet. Press 'a' to add one."))
	}
	for i, e := range entries {
		cursor := "  "
		if m.cursor == i {
			cursor = cursorStyle.Render("> ")
		}
		fmt.Fprintf(&bodyContent, "%s%s %s\n", cursor, identifierColor.Render(fmt.Sprintf("%3d", i)), m.renderEntry(e))
	}

	footerContent := strings.Builder{}
	footerContent.WriteString("\n")
	m.renderStatusLine(&footerContent)
	footerContent.WriteString(m.renderHelp(m.keymap.Up, m.keymap.Down, m.keymap.Add, m.keymap.Edit,
		m.keymap.Remove, m.keymap.Upcoming, m.keymap.Save, m.keymap.Quit, m.keymap.ForceQuit))

	return bodyContent.String(), footerContent.String()
}

func (m *model) renderUpcomingView() (string, string) {
	bodyContent := strings.Builder{}
	title := fmt.Sprintf("Upcoming birthdays (next %d days)", m.store.Config.UpcomingDays)
	bodyContent.WriteString(titleStyle.Render(title) + "\n")
	bodyContent.WriteString(dimStyle.Render(time.Now().Format(time.DateTime)) + "\n\n")
	if len(m.upcoming) == 0 {
		bodyContent.WriteString(statusStyle.Render("No upcoming birthdays."))
	}
	for _, e := range m.upcoming {
		bodyContent.WriteString("  " + m.renderEntry(e) + "\n")
	}

	footerContent := strings.Builder{}
	footerContent.WriteString("\n")
	m.renderStatusLine(&footerContent)
	footerContent.WriteString(m.renderHelp(m.keymap.Esc, m.keymap.Save, m.keymap.Quit, m.keymap.ForceQuit))

	return bodyContent.String(), footerContent.String()
}

func (m *model) renderFormView() (string, string) {
	bodyContent := strings.Builder{}
	title := "Add Birthday"
	if m.currentState == stateEditForm {
		title = fmt.Sprintf("Edit Birthday #%d", m.editIndex)
	}
	bodyContent.WriteString(titleStyle.Render(title) + "\n\n")

	labels := [formFieldCount]string{"Name", "Date of birth", "Description"}
	for i, input := range m.formInputs {
		focus := "  "
		if i == m.formFocusIndex {
			focus = cursorStyle.Render("> ")
		}
		fmt.Fprintf(&bodyContent, "%s%-14s %s\n", focus, labels[i]+":", input.View())
	}

	footerContent := strings.Builder{}
	footerContent.WriteString("\n")
	if m.formError != nil {
		footerContent.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.formError)) + "\n")
	}
	footerContent.WriteString(m.renderHelp(m.keymap.NextField, m.keymap.PrevField, m.keymap.Enter, m.keymap.Esc))

	return bodyContent.String(), footerContent.String()
}

func (m *model) renderRemoveConfirmView() (string, string) {
	bodyContent := strings.Builder{}
	if e, ok := m.store.Get(m.cursor); ok {
		bodyContent.WriteString(errorStyle.Render("Remove this birthday?") + "\n\n")
		bodyContent.WriteString("  " + e.Format(m.store.Config.DateLayout) + "\n")
	} else {
		bodyContent.WriteString(errorStyle.Render("Error: No entry selected."))
	}

	footerContent := strings.Builder{}
	footerContent.WriteString("\n")
	footerContent.WriteString(m.renderHelp(m.keymap.Yes, m.keymap.No))

	return bodyContent.String(), footerContent.String()
}
