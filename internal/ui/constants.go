// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

// state represents the different views or modes of the TUI.
type state int

const (
	stateEntryList state = iota
	stateUpcoming
	stateAddForm
	stateEditForm
	stateRemoveConfirm
)

// Form field positions, shared by the add and edit forms.
const (
	nameField = iota
	dateField
	descriptionField
	formFieldCount
)

const headerHeight = 1 // Height reserved for the main title header.
