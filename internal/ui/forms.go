// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"fmt"
	"strings"

	"birthday-manager/internal/birthday"

	"github.com/charmbracelet/bubbles/textinput"
)

// layoutHint turns a Go time layout into the MM-DD-YYYY style shown to users.
var layoutHint = strings.NewReplacer("2006", "YYYY", "01", "MM", "02", "DD", "1", "M", "2", "D").Replace

// --- Form Creation ---

// createEntryForm builds the name/date/description inputs. When existing is
// non-nil the inputs are pre-filled from it (edit form).
func createEntryForm(existing *birthday.Entry, inputLayout string) []textinput.Model {
	inputs := make([]textinput.Model, formFieldCount)
	var t textinput.Model

	t = textinput.New()
	t.Placeholder = "Name"
	t.Focus() // Initial focus
	t.CharLimit = 100
	t.Width = 40
	inputs[nameField] = t

	t = textinput.New()
	t.Placeholder = fmt.Sprintf("Date of birth (%s)", layoutHint(inputLayout))
	t.CharLimit = 30
	t.Width = 20
	inputs[dateField] = t

	t = textinput.New()
	t.Placeholder = "Description (optional)"
	t.CharLimit = 200
	t.Width = 60
	inputs[descriptionField] = t

	if existing != nil {
		inputs[nameField].SetValue(existing.Name)
		inputs[dateField].SetValue(existing.DateOfBirth.Format(inputLayout))
		inputs[descriptionField].SetValue(existing.Description)
	}

	return inputs
}

// --- Form Processing ---

// buildEntryFromForm validates the form and returns the entry it describes.
// An unparseable date is rejected here so the manager never receives one.
func (m *model) buildEntryFromForm() (birthday.Entry, error) {
	name := strings.TrimSpace(m.formInputs[nameField].Value())
	if name == "" {
		return birthday.Entry{}, fmt.Errorf("name is required")
	}

	rawDate := strings.TrimSpace(m.formInputs[dateField].Value())
	if rawDate == "" {
		return birthday.Entry{}, fmt.Errorf("date of birth is required")
	}
	dob, err := m.store.ParseDate(rawDate)
	if err != nil {
		return birthday.Entry{}, fmt.Errorf("invalid date of birth, expected %s", layoutHint(m.store.Config.InputLayout))
	}

	description := strings.TrimSpace(m.formInputs[descriptionField].Value())
	return birthday.NewEntry(name, dob, description), nil
}

// focusFormField moves focus to index, blurring every other input.
func (m *model) focusFormField(index int) {
	m.formFocusIndex = index
	for i := range m.formInputs {
		if i == index {
			m.formInputs[i].Focus()
		} else {
			m.formInputs[i].Blur()
		}
	}
}
