package birthday

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func names(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

func equalNames(t *testing.T, got []Entry, want ...string) {
	t.Helper()
	g := names(got)
	if len(g) != len(want) {
		t.Fatalf("expected %v, got %v", want, g)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, g)
		}
	}
}

func seeded(entries ...Entry) *Manager {
	m := NewManager()
	for _, e := range entries {
		m.Add(e)
	}
	return m
}

func TestAddKeepsInsertionOrder(t *testing.T) {
	alice := NewEntry("Alice", date(1990, time.May, 4), "sister")
	bob := NewEntry("Bob", date(1985, time.January, 12), "")
	carol := NewEntry("Carol", date(2001, time.December, 31), "neighbour")
	m := seeded(alice, bob, carol)

	got := m.List()
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	for i, want := range []Entry{alice, bob, carol} {
		if got[i] != want {
			t.Fatalf("entry %d: expected %+v, got %+v", i, want, got[i])
		}
	}
}

func TestListReturnsCopy(t *testing.T) {
	m := seeded(NewEntry("Alice", date(1990, time.May, 4), ""))
	list := m.List()
	list[0].Name = "Mallory"

	if e, _ := m.Get(0); e.Name != "Alice" {
		t.Fatalf("List exposed internal storage: got %q", e.Name)
	}
}

func TestRemoveAt(t *testing.T) {
	tests := []struct {
		name  string
		index int
		want  []string
	}{
		{"first", 0, []string{"b", "c"}},
		{"middle", 1, []string{"a", "c"}},
		{"last", 2, []string{"a", "b"}},
		{"negative", -1, []string{"a", "b", "c"}},
		{"past end", 3, []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := seeded(
				NewEntry("a", date(2000, time.January, 1), ""),
				NewEntry("b", date(2000, time.January, 2), ""),
				NewEntry("c", date(2000, time.January, 3), ""),
			)
			m.RemoveAt(tt.index)
			equalNames(t, m.List(), tt.want...)
		})
	}
}

func TestEditAt(t *testing.T) {
	a := NewEntry("a", date(2000, time.January, 1), "")
	b := NewEntry("b", date(2000, time.January, 2), "")
	c := NewEntry("c", date(2000, time.January, 3), "")
	replacement := NewEntry("z", date(1999, time.July, 9), "edited")

	m := seeded(a, b, c)
	m.EditAt(1, replacement)

	got := m.List()
	if got[0] != a || got[1] != replacement || got[2] != c {
		t.Fatalf("unexpected list after edit: %+v", got)
	}

	m.EditAt(3, a)
	m.EditAt(-1, a)
	if got := m.List(); got[1] != replacement || len(got) != 3 {
		t.Fatalf("out-of-range edit changed the list: %+v", got)
	}
}

func TestGet(t *testing.T) {
	m := seeded(NewEntry("a", date(2000, time.January, 1), ""))
	if _, ok := m.Get(0); !ok {
		t.Fatal("expected index 0 to be in range")
	}
	if _, ok := m.Get(1); ok {
		t.Fatal("expected index 1 to be out of range")
	}
}

func TestUpcomingFromWindow(t *testing.T) {
	m := seeded(
		NewEntry("today", date(2024, time.March, 1), ""),
		NewEntry("last day", date(2024, time.March, 8), ""),
		NewEntry("too late", date(2024, time.March, 9), ""),
		NewEntry("other year", date(2023, time.March, 5), ""),
		NewEntry("yesterday", date(1970, time.February, 28), ""),
	)

	got := m.UpcomingFrom(7, date(2024, time.March, 1))
	equalNames(t, got, "today", "last day", "other year")
}

func TestUpcomingIgnoresTimeOfDay(t *testing.T) {
	m := seeded(NewEntry("today", date(1990, time.March, 1), ""))
	ref := time.Date(2024, time.March, 1, 23, 59, 0, 0, time.UTC)

	equalNames(t, m.UpcomingFrom(0, ref), "today")
}

func TestUpcomingUsesReferenceLocationDate(t *testing.T) {
	m := seeded(NewEntry("local", date(1990, time.March, 2), ""))
	loc := time.FixedZone("UTC+10", 10*60*60)
	// 1 March 20:00 UTC is already 2 March in UTC+10.
	ref := time.Date(2024, time.March, 1, 20, 0, 0, 0, time.UTC).In(loc)

	equalNames(t, m.UpcomingFrom(0, ref), "local")
}

func TestUpcomingLeapDay(t *testing.T) {
	m := seeded(
		NewEntry("leap", date(2000, time.February, 29), ""),
		NewEntry("march", date(2000, time.March, 1), ""),
	)

	equalNames(t, m.UpcomingFrom(7, date(2023, time.February, 25)), "march")
	equalNames(t, m.UpcomingFrom(7, date(2024, time.February, 25)), "leap", "march")
}

func TestUpcomingNegativeDays(t *testing.T) {
	m := seeded(NewEntry("today", date(1990, time.March, 1), ""))
	if got := m.UpcomingFrom(-1, date(2024, time.March, 1)); len(got) != 0 {
		t.Fatalf("expected no entries, got %v", names(got))
	}
}

func TestUpcomingUsesClock(t *testing.T) {
	m := NewManager(WithClock(func() time.Time { return date(2024, time.June, 10) }))
	m.Add(NewEntry("soon", date(1980, time.June, 12), ""))
	m.Add(NewEntry("later", date(1980, time.July, 12), ""))

	equalNames(t, m.Upcoming(7), "soon")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "birthdays.txt")
	original := seeded(
		NewEntry("Alice", date(1990, time.May, 4), "sister"),
		NewEntry("Bob", date(1985, time.January, 12), ""),
		NewEntry("Dmitri", date(1970, time.February, 28), "old friend from school"),
	)
	if err := original.SaveTo(path); err != nil {
		t.Fatalf("SaveTo returned error: %v", err)
	}

	loaded := NewManager()
	if err := loaded.LoadFrom(path); err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}

	want, got := original.List(), loaded.List()
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].Name != want[i].Name || !got[i].DateOfBirth.Equal(want[i].DateOfBirth) || got[i].Description != want[i].Description {
			t.Fatalf("entry %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestSaveToTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "birthdays.txt")
	if err := os.WriteFile(path, []byte("a,01/01/2000,x\nb,01/02/2000,y\nc,01/03/2000,z\n"), 0600); err != nil {
		t.Fatal(err)
	}

	m := seeded(NewEntry("only", date(2000, time.April, 1), ""))
	if err := m.SaveTo(path); err != nil {
		t.Fatalf("SaveTo returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "only,04/01/2000,\n" {
		t.Fatalf("unexpected file contents %q", data)
	}
}

func TestLoadFromAccumulates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "birthdays.txt")
	if err := os.WriteFile(path, []byte("Alice,05/04/1990,sister\n"), 0600); err != nil {
		t.Fatal(err)
	}

	m := NewManager()
	for i := 0; i < 2; i++ {
		if err := m.LoadFrom(path); err != nil {
			t.Fatalf("LoadFrom returned error: %v", err)
		}
	}
	equalNames(t, m.List(), "Alice", "Alice")
}

func TestReplaceFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "birthdays.txt")
	if err := os.WriteFile(path, []byte("Alice,05/04/1990,sister\n"), 0600); err != nil {
		t.Fatal(err)
	}

	m := seeded(NewEntry("Bob", date(1985, time.January, 12), ""))
	if err := m.ReplaceFrom(path); err != nil {
		t.Fatalf("ReplaceFrom returned error: %v", err)
	}
	equalNames(t, m.List(), "Alice")
}

func TestLoadFromMissingFile(t *testing.T) {
	m := seeded(NewEntry("Bob", date(1985, time.January, 12), ""))
	if err := m.LoadFrom(filepath.Join(t.TempDir(), "missing.txt")); err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}
	equalNames(t, m.List(), "Bob")
}

func TestLoadFromDirectoryFails(t *testing.T) {
	m := NewManager()
	if err := m.LoadFrom(t.TempDir()); err == nil {
		t.Fatal("expected an error loading a directory")
	}
}

func TestSaveToMissingDirectoryFails(t *testing.T) {
	m := NewManager()
	if err := m.SaveTo(filepath.Join(t.TempDir(), "nope", "birthdays.txt")); err == nil {
		t.Fatal("expected an error saving into a missing directory")
	}
}

func TestLoadSkipsShortLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "birthdays.txt")
	if err := os.WriteFile(path, []byte("Alice,05/04/1990,sister\nBob,01/12/1985\n"), 0600); err != nil {
		t.Fatal(err)
	}

	m := NewManager()
	if err := m.LoadFrom(path); err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}
	equalNames(t, m.List(), "Alice")
}

func TestWithDateLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "birthdays.txt")
	m := NewManager(WithDateLayout("02.01.2006"))
	m.Add(NewEntry("Olga", date(1992, time.November, 3), "cousin"))
	if err := m.SaveTo(path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "Olga,03.11.1992,cousin\n" {
		t.Fatalf("unexpected file contents %q", data)
	}
}

func TestLoadFromOverlongLineKeepsOtherEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "birthdays.txt")
	contents := "Alice,05/04/1990,sister\n" + strings.Repeat("junk", 20000) + "\nBob,01/12/1985,\n"
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatal(err)
	}

	m := NewManager()
	if err := m.LoadFrom(path); err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}
	equalNames(t, m.List(), "Alice", "Bob")
}

func TestLoadReadErrorLeavesEntriesUnchanged(t *testing.T) {
	m := seeded(NewEntry("Bob", date(1985, time.January, 12), ""))

	n, err := m.Load(&failingReader{data: "Zed,05/04/1990,x\nAmy,"})
	if err == nil {
		t.Fatal("expected a read error")
	}
	if n != 0 {
		t.Fatalf("expected 0 entries added, got %d", n)
	}
	equalNames(t, m.List(), "Bob")
}

func TestSet(t *testing.T) {
	m := seeded(NewEntry("Bob", date(1985, time.January, 12), ""))
	replacement := []Entry{NewEntry("Alice", date(1990, time.May, 4), "sister")}

	m.Set(replacement)
	replacement[0].Name = "changed"
	equalNames(t, m.List(), "Alice")
}
