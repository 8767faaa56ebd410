// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

// entriesSavedMsg reports the result of writing the data file. quit is
// carried through so a save-and-quit only exits once the write succeeded.
type entriesSavedMsg struct {
	err   error
	count int
	quit  bool
}
