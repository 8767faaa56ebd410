// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package birthday holds the birthday records, the ordered collection that
// manages them, and the flat-file line format they are persisted in.
package birthday

import (
	"fmt"
	"time"
)

// DefaultShortDateLayout is the short date form used for display and for the
// date column of the data file unless configured otherwise.
const DefaultShortDateLayout = "01/02/2006"

// DefaultInputLayout is the layout user-entered dates are expected in (MM-dd-yyyy).
const DefaultInputLayout = "01-02-2006"

// Entry is a single birthday record.
type Entry struct {
	// Name identifies the person; it is not required to be unique.
	Name string `json:"name"`

	// DateOfBirth only contributes its month and day to recurrence checks.
	DateOfBirth time.Time `json:"date_of_birth"`

	// Description is free text and may be empty.
	Description string `json:"description"`
}

// NewEntry builds an Entry, dropping any time-of-day from dob.
func NewEntry(name string, dob time.Time, description string) Entry {
	return Entry{
		Name:        name,
		DateOfBirth: calendarDate(dob),
		Description: description,
	}
}

// String renders the entry as "<name> - <short date> (<description>)".
func (e Entry) String() string {
	return e.Format(DefaultShortDateLayout)
}

// Format renders the entry like String, with the date written using layout.
func (e Entry) Format(layout string) string {
	return fmt.Sprintf("%s - %s (%s)", e.Name, e.DateOfBirth.Format(layout), e.Description)
}

// calendarDate strips the clock part of t, keeping the year, month and day as written.
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
