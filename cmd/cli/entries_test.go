package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"birthday-manager/internal/birthday"
	"birthday-manager/internal/config"
	"birthday-manager/internal/store"
)

const seedData = "Alice,03/01/1990,sister\nBob,03/09/1985,\n"

func openTestStore(t *testing.T, contents string) *store.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "birthdays.txt")
	if contents != "" {
		if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
			t.Fatal(err)
		}
	}
	clock := func() time.Time { return time.Date(2024, time.March, 1, 18, 30, 0, 0, time.UTC) }
	s, err := store.Open(config.Config{}, path, birthday.WithClock(clock))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	return s
}

func fileContents(t *testing.T, s *store.Store) string {
	t.Helper()
	data, err := os.ReadFile(s.Path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestRunAdd(t *testing.T) {
	s := openTestStore(t, seedData)

	e, err := runAdd(s, []string{"Dan", "12-31-2001", "cousin"})
	if err != nil {
		t.Fatalf("runAdd returned error: %v", err)
	}
	if e.Name != "Dan" || e.DateOfBirth.Month() != time.December {
		t.Fatalf("unexpected entry %+v", e)
	}
	if got := fileContents(t, s); got != seedData+"Dan,12/31/2001,cousin\n" {
		t.Fatalf("unexpected file contents %q", got)
	}

	if _, err := runAdd(s, []string{"Eve", "not-a-date"}); err == nil {
		t.Fatal("expected an error for an invalid date")
	}
	if _, err := runAdd(s, []string{"  ", "12-31-2001"}); err == nil {
		t.Fatal("expected an error for an empty name")
	}
	if s.Len() != 3 {
		t.Fatalf("rejected entries reached the store, have %d", s.Len())
	}
}

func TestRunEdit(t *testing.T) {
	s := openTestStore(t, seedData)

	index, e, err := runEdit(s, []string{"1", "Robert", "03-09-1985", "renamed"})
	if err != nil {
		t.Fatalf("runEdit returned error: %v", err)
	}
	if index != 1 || e.Name != "Robert" {
		t.Fatalf("unexpected result %d %+v", index, e)
	}
	want := "Alice,03/01/1990,sister\nRobert,03/09/1985,renamed\n"
	if got := fileContents(t, s); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	if _, _, err := runEdit(s, []string{"5", "Nobody", "03-09-1985"}); err == nil {
		t.Fatal("expected an error for an out-of-range index")
	}
}

func TestRunRemove(t *testing.T) {
	s := openTestStore(t, seedData)

	e, err := runRemove(s, "0")
	if err != nil {
		t.Fatalf("runRemove returned error: %v", err)
	}
	if e.Name != "Alice" {
		t.Fatalf("expected Alice to be removed, got %+v", e)
	}
	if got := fileContents(t, s); got != "Bob,03/09/1985,\n" {
		t.Fatalf("unexpected file contents %q", got)
	}

	if _, err := runRemove(s, "1"); err == nil {
		t.Fatal("expected an error for an out-of-range index")
	}
}

func TestParseIndex(t *testing.T) {
	s := openTestStore(t, seedData)

	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"0", 0, false},
		{"1", 1, false},
		{"2", 0, true},
		{"-1", 0, true},
		{"one", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseIndex(s, tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseIndex(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Fatalf("parseIndex(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestRunUpcoming(t *testing.T) {
	s := openTestStore(t, seedData)

	var out bytes.Buffer
	if err := runUpcoming(&out, s, 7); err != nil {
		t.Fatalf("runUpcoming returned error: %v", err)
	}
	if !strings.Contains(out.String(), "Alice - 03/01/1990 (sister)") {
		t.Fatalf("expected Alice in output:\n%s", out.String())
	}
	if strings.Contains(out.String(), "Bob") {
		t.Fatalf("Bob is outside a 7 day window:\n%s", out.String())
	}

	out.Reset()
	if err := runUpcoming(&out, s, 8); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Bob") {
		t.Fatalf("expected the far edge to be included:\n%s", out.String())
	}

	if err := runUpcoming(&out, s, -1); err == nil {
		t.Fatal("expected an error for negative days")
	}
}

func TestRunUpcomingEmpty(t *testing.T) {
	s := openTestStore(t, "")

	var out bytes.Buffer
	if err := runUpcoming(&out, s, 0); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) != "No upcoming birthdays." {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestPrintList(t *testing.T) {
	s := openTestStore(t, seedData)

	var out bytes.Buffer
	printList(&out, s)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", out.String())
	}
	if !strings.Contains(lines[1], "1") || !strings.Contains(lines[1], "Bob - 03/09/1985 ()") {
		t.Fatalf("unexpected second line %q", lines[1])
	}

	empty := openTestStore(t, "")
	out.Reset()
	printList(&out, empty)
	if strings.TrimSpace(out.String()) != "No birthdays recorded." {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRunImport(t *testing.T) {
	s := openTestStore(t, seedData)
	importPath := filepath.Join(t.TempDir(), "more.txt")
	if err := os.WriteFile(importPath, []byte("Carol,03/05/2001,neighbour\nbroken\n"), 0600); err != nil {
		t.Fatal(err)
	}

	added, err := runImport(s, importPath, false)
	if err != nil {
		t.Fatalf("runImport returned error: %v", err)
	}
	if added != 1 || s.Len() != 3 {
		t.Fatalf("expected 1 added and 3 total, got %d and %d", added, s.Len())
	}

	added, err = runImport(s, importPath, true)
	if err != nil {
		t.Fatal(err)
	}
	if added != 1 || s.Len() != 1 {
		t.Fatalf("expected replace to leave 1 entry, got %d added and %d total", added, s.Len())
	}
	if got := fileContents(t, s); got != "Carol,03/05/2001,neighbour\n" {
		t.Fatalf("unexpected file contents %q", got)
	}

	if _, err := runImport(s, filepath.Join(t.TempDir(), "missing.txt"), false); err == nil {
		t.Fatal("expected an error for a missing import file")
	}
}

func TestIndexSuggestions(t *testing.T) {
	s := openTestStore(t, seedData)

	got := indexSuggestions(s, "")
	if len(got) != 2 || got[0] != "0\tAlice" || got[1] != "1\tBob" {
		t.Fatalf("unexpected suggestions %q", got)
	}
	if got := indexSuggestions(s, "1"); len(got) != 1 || got[0] != "1\tBob" {
		t.Fatalf("unexpected filtered suggestions %q", got)
	}
}
