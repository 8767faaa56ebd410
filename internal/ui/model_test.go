package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"birthday-manager/internal/config"
	"birthday-manager/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestModel(t *testing.T, contents string) (*model, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "birthdays.txt")
	if contents != "" {
		if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
			t.Fatal(err)
		}
	}
	s, err := store.Open(config.Config{}, path)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	m := InitialModel(s)
	return &m, path
}

func press(m *model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "ctrl+c":
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd = m.Update(msg)
	}
	return cmd
}

func TestAddEntryThroughForm(t *testing.T) {
	m, _ := newTestModel(t, "")

	press(m, "a")
	if m.currentState != stateAddForm {
		t.Fatalf("expected add form, got state %d", m.currentState)
	}
	press(m, "Dan", "enter", "12-31-2001", "enter", "cousin", "enter")

	if m.currentState != stateEntryList {
		t.Fatalf("expected to return to list, got state %d (form error: %v)", m.currentState, m.formError)
	}
	e, ok := m.store.Get(0)
	if !ok || e.Name != "Dan" || e.Description != "cousin" || e.DateOfBirth.Day() != 31 {
		t.Fatalf("unexpected entry %+v", e)
	}
	if !m.dirty {
		t.Fatal("expected unsaved changes to be tracked")
	}
}

func TestAddFormRejectsInvalidDate(t *testing.T) {
	m, _ := newTestModel(t, "")

	press(m, "a", "Dan", "tab", "31-31-2001", "tab", "enter")

	if m.currentState != stateAddForm {
		t.Fatalf("expected form to stay open, got state %d", m.currentState)
	}
	if m.formError == nil {
		t.Fatal("expected a form error")
	}
	if m.formFocusIndex != dateField {
		t.Fatalf("expected focus on the date field, got %d", m.formFocusIndex)
	}
	if m.store.Len() != 0 {
		t.Fatalf("invalid entry reached the store")
	}
}

func TestEditEntry(t *testing.T) {
	m, _ := newTestModel(t, "Alice,05/04/1990,sister\nBob,01/12/1985,\n")

	press(m, "down", "e")
	if m.currentState != stateEditForm || m.editIndex != 1 {
		t.Fatalf("expected edit form for index 1, got state %d index %d", m.currentState, m.editIndex)
	}
	if got := m.formInputs[dateField].Value(); got != "01-12-1985" {
		t.Fatalf("expected pre-filled date, got %q", got)
	}
	m.formInputs[nameField].SetValue("Robert")
	press(m, "tab", "tab", "enter")

	if e, _ := m.store.Get(1); e.Name != "Robert" {
		t.Fatalf("expected edited name, got %+v", e)
	}
	if e, _ := m.store.Get(0); e.Name != "Alice" {
		t.Fatalf("edit touched another entry: %+v", e)
	}
}

func TestRemoveEntryWithConfirmation(t *testing.T) {
	m, _ := newTestModel(t, "Alice,05/04/1990,sister\nBob,01/12/1985,\n")

	press(m, "G", "d", "n")
	if m.store.Len() != 2 {
		t.Fatal("entry removed despite declining")
	}

	press(m, "d", "y")
	if m.store.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", m.store.Len())
	}
	if m.cursor != 0 {
		t.Fatalf("expected cursor to move back into range, got %d", m.cursor)
	}
}

func TestUpcomingView(t *testing.T) {
	m, _ := newTestModel(t, "Alice,05/04/1990,sister\n")

	press(m, "u")
	if m.currentState != stateUpcoming {
		t.Fatalf("expected upcoming view, got state %d", m.currentState)
	}
	view := m.View()
	if !strings.Contains(view, "Upcoming birthdays") {
		t.Fatalf("unexpected view:\n%s", view)
	}

	press(m, "esc")
	if m.currentState != stateEntryList {
		t.Fatalf("expected list view, got state %d", m.currentState)
	}
}

func TestQuitSavesBeforeExiting(t *testing.T) {
	m, path := newTestModel(t, "")
	press(m, "a", "Eve", "tab", "01-01-1999", "tab", "enter")

	cmd := press(m, "q")
	if cmd == nil {
		t.Fatal("expected a save command")
	}
	_, cmd = m.Update(cmd())
	if cmd == nil {
		t.Fatal("expected quit after saving")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected a quit message")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "Eve,01/01/1999,\n" {
		t.Fatalf("unexpected file contents %q", data)
	}
}

func TestFailedSaveKeepsRunning(t *testing.T) {
	m, _ := newTestModel(t, "")
	m.store.Path = t.TempDir() // a directory cannot be written as a file

	cmd := press(m, "q")
	_, cmd = m.Update(cmd())
	if cmd != nil {
		t.Fatal("expected the program to keep running after a failed save")
	}
	if m.lastError == nil {
		t.Fatal("expected the save error to be shown")
	}
}

func TestCtrlCQuitsWithoutSaving(t *testing.T) {
	m, path := newTestModel(t, "")
	press(m, "a", "Eve", "tab", "01-01-1999", "tab", "enter")

	cmd := press(m, "ctrl+c")
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected a quit message")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no data file to be written, stat returned %v", err)
	}
}
