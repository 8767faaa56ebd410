// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package birthday

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"
)

// fieldSeparator is the only delimiter of the data file. Values are never
// quoted, so a comma inside a name or description does not survive a round trip.
const fieldSeparator = ","

// maxLineLength bounds a single data line; longer lines are skipped.
const maxLineLength = 64 * 1024

// fallbackLayouts are tried, in order, after any caller supplied layouts.
var fallbackLayouts = []string{
	"01/02/2006",
	"1/2/2006",
	"2006-01-02",
	"01-02-2006",
	"02.01.2006",
	"2.1.2006",
	"2006/01/02",
	time.RFC3339,
}

// ParseDate parses value with the given layouts first, then with the
// fallback set. The result is a calendar date at midnight UTC.
func ParseDate(value string, layouts ...string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range slices.Concat(layouts, fallbackLayouts) {
		if layout == "" {
			continue
		}
		if t, err := time.Parse(layout, value); err == nil {
			return calendarDate(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", value)
}

// ValidateDateLayout reports whether layout can be used for the date column:
// its output must not contain the field separator or a line break, and a
// formatted date must read back as the same day.
func ValidateDateLayout(layout string) error {
	sample := time.Date(1990, time.December, 31, 0, 0, 0, 0, time.UTC)
	formatted := sample.Format(layout)
	if strings.ContainsAny(formatted, fieldSeparator+"\r\n") {
		return fmt.Errorf("date layout %q writes %q, which breaks the line format", layout, formatted)
	}
	parsed, err := time.Parse(layout, formatted)
	if err != nil || !calendarDate(parsed).Equal(sample) {
		return fmt.Errorf("date layout %q does not read back the dates it writes", layout)
	}
	return nil
}

// Codec reads and writes entries in the line format
// "<name>,<short date>,<description>".
type Codec struct {
	// Layout is used to write the date column and is the first layout tried
	// when reading it back.
	Layout string
}

// NewCodec returns a Codec writing dates with layout, or with
// DefaultShortDateLayout when layout is empty.
func NewCodec(layout string) Codec {
	if layout == "" {
		layout = DefaultShortDateLayout
	}
	return Codec{Layout: layout}
}

// EncodeLine renders one entry without a trailing newline.
func (c Codec) EncodeLine(e Entry) string {
	return strings.Join([]string{e.Name, e.DateOfBirth.Format(c.Layout), e.Description}, fieldSeparator)
}

// DecodeLine parses one line. ok is false when the line has fewer than three
// fields or the date field does not parse; fields past the third are ignored.
func (c Codec) DecodeLine(line string) (e Entry, ok bool) {
	parts := strings.Split(line, fieldSeparator)
	if len(parts) < 3 {
		return Entry{}, false
	}
	dob, err := ParseDate(parts[1], c.Layout)
	if err != nil {
		return Entry{}, false
	}
	return Entry{Name: parts[0], DateOfBirth: dob, Description: parts[2]}, true
}

// Decode reads every line from r. Lines that do not decode, including lines
// longer than maxLineLength, are counted in skipped and otherwise ignored.
// On a read error no entries are returned.
func (c Codec) Decode(r io.Reader) (entries []Entry, skipped int, err error) {
	br := bufio.NewReader(r)
	for {
		line, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, skipped, fmt.Errorf("failed to read entries: %w", readErr)
		}

		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
		switch {
		case strings.TrimSpace(line) == "":
		case len(line) > maxLineLength:
			skipped++
		default:
			if e, ok := c.DecodeLine(line); ok {
				entries = append(entries, e)
			} else {
				skipped++
			}
		}

		if readErr == io.EOF {
			return entries, skipped, nil
		}
	}
}

// Encode writes one line per entry to w.
func (c Codec) Encode(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := fmt.Fprintln(bw, c.EncodeLine(e)); err != nil {
			return fmt.Errorf("failed to write entry %q: %w", e.Name, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush entries: %w", err)
	}
	return nil
}
