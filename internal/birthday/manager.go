// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package birthday

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"time"

	"birthday-manager/internal/logger"
)

// Manager owns an ordered, index-addressable list of entries and its
// persistence. It is not safe for concurrent use.
type Manager struct {
	entries []Entry
	codec   Codec
	now     func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock replaces the wall clock used by Upcoming.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithDateLayout sets the layout used for the date column of the data file.
func WithDateLayout(layout string) Option {
	return func(m *Manager) { m.codec = NewCodec(layout) }
}

// NewManager returns an empty Manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		codec: NewCodec(DefaultShortDateLayout),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Add appends e to the end of the list.
func (m *Manager) Add(e Entry) {
	m.entries = append(m.entries, e)
}

// RemoveAt deletes the entry at index. Out-of-range indices are ignored.
func (m *Manager) RemoveAt(index int) {
	if !m.inBounds(index) {
		return
	}
	m.entries = slices.Delete(m.entries, index, index+1)
}

// EditAt replaces the entry at index with e. Out-of-range indices are ignored.
func (m *Manager) EditAt(index int, e Entry) {
	if !m.inBounds(index) {
		return
	}
	m.entries[index] = e
}

// Get returns the entry at index and whether index was in range.
func (m *Manager) Get(index int) (Entry, bool) {
	if !m.inBounds(index) {
		return Entry{}, false
	}
	return m.entries[index], true
}

// Len returns the number of entries.
func (m *Manager) Len() int {
	return len(m.entries)
}

// Set replaces all entries with a copy of entries.
func (m *Manager) Set(entries []Entry) {
	m.entries = slices.Clone(entries)
}

// List returns a copy of all entries in their current order.
func (m *Manager) List() []Entry {
	return slices.Clone(m.entries)
}

// Upcoming is UpcomingFrom with the current time as the reference.
func (m *Manager) Upcoming(daysAhead int) []Entry {
	return m.UpcomingFrom(daysAhead, m.now())
}

// UpcomingFrom returns the entries whose birthday, moved to ref's year, falls
// between ref's date and daysAhead days later, both ends included. Dates are
// compared without their time of day. A birthday that does not exist in ref's
// year (29 February outside a leap year) is left out.
func (m *Manager) UpcomingFrom(daysAhead int, ref time.Time) []Entry {
	var upcoming []Entry
	if daysAhead < 0 {
		return upcoming
	}

	year, month, day := ref.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, daysAhead)

	for _, e := range m.entries {
		candidate, ok := birthdayIn(year, e.DateOfBirth)
		if !ok {
			continue
		}
		if !candidate.Before(start) && !candidate.After(end) {
			upcoming = append(upcoming, e)
		}
	}
	return upcoming
}

// birthdayIn moves dob to year. ok is false when the month/day pair does
// not exist in that year.
func birthdayIn(year int, dob time.Time) (time.Time, bool) {
	_, month, day := dob.Date()
	candidate := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if candidate.Month() != month || candidate.Day() != day {
		return time.Time{}, false
	}
	return candidate, true
}

// Load appends every entry decoded from r and returns how many were added.
// Nothing is added when reading fails.
func (m *Manager) Load(r io.Reader) (int, error) {
	entries, skipped, err := m.codec.Decode(r)
	if err != nil {
		return 0, err
	}
	m.entries = append(m.entries, entries...)
	if skipped > 0 {
		logger.Debug("Skipped malformed birthday lines", "count", skipped)
	}
	return len(entries), nil
}

// Replace swaps the entries in memory for those decoded from r. On a read
// error the current entries are kept.
func (m *Manager) Replace(r io.Reader) (int, error) {
	fresh := &Manager{codec: m.codec, now: m.now}
	n, err := fresh.Load(r)
	if err != nil {
		return 0, err
	}
	m.entries = fresh.entries
	return n, nil
}

// Save writes every entry to w, one line each.
func (m *Manager) Save(w io.Writer) error {
	return m.codec.Encode(w, m.entries)
}

// LoadFrom appends the entries stored at path to those already in memory,
// so loading the same file twice duplicates its entries. A missing file
// adds nothing and is not an error.
func (m *Manager) LoadFrom(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("Birthday file not found, starting empty", "path", path)
			return nil
		}
		return fmt.Errorf("failed to open birthday file %s: %w", path, err)
	}
	defer f.Close()

	n, err := m.Load(f)
	if err != nil {
		return fmt.Errorf("failed to load birthday file %s: %w", path, err)
	}
	logger.Debug("Loaded birthdays", "path", path, "count", n)
	return nil
}

// ReplaceFrom swaps the entries in memory for those stored at path. On error
// the current entries are kept.
func (m *Manager) ReplaceFrom(path string) error {
	fresh := &Manager{codec: m.codec, now: m.now}
	if err := fresh.LoadFrom(path); err != nil {
		return err
	}
	m.entries = fresh.entries
	return nil
}

// SaveTo truncates path and writes every entry to it. A failure part way
// through leaves the file incomplete.
func (m *Manager) SaveTo(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create birthday file %s: %w", path, err)
	}

	if err := m.Save(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to save birthday file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close birthday file %s: %w", path, err)
	}
	logger.Debug("Saved birthdays", "path", path, "count", len(m.entries))
	return nil
}

func (m *Manager) inBounds(index int) bool {
	return index >= 0 && index < len(m.entries)
}
