package storefront

import (
	"strings"
	"testing"
)

// memoryRecorder captures replay output for assertions.
type memoryRecorder struct {
	events   []string
	failures []string
}

func (m *memoryRecorder) Event(msg string)   { m.events = append(m.events, msg) }
func (m *memoryRecorder) Failure(msg string) { m.failures = append(m.failures, msg) }

func TestReplay(t *testing.T) {
	reg := market(t)
	lines := []string{
		"this is not a record", // fatal parse error
		record("04", pad25("Overwatch"), pad15("Blizzard"), pad15("Michael")), // no session yet
		"",
		record("00", pad15("TheGreatAdmin"), "AA", "010000.00"),
		record("01", pad15("Valve"), "SS", "000050.00"),
		record("06", pad15("Nobody"), "  ", "000010.00"), // unknown account
		record("10", pad15("TheGreatAdmin"), "  ", "000000.00"),
		record("07", pad15("TheGreatAdmin"), "  ", "000000.00"), // after logout
	}
	rec := &memoryRecorder{}
	stats, err := Replay(reg, NewSession(), strings.NewReader(strings.Join(lines, "\n")), rec, rec)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}

	if stats.Applied != 3 {
		t.Errorf("Applied = %d, want 3", stats.Applied)
	}
	if stats.Failed != 2 {
		t.Errorf("Failed = %d, want 2", stats.Failed)
	}
	if stats.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", stats.Skipped)
	}

	// One event per applied record, one failure per failed record. The
	// sessionless skips are silent.
	if len(rec.events) != stats.Applied {
		t.Errorf("recorded %d events, want %d", len(rec.events), stats.Applied)
	}
	if len(rec.failures) != stats.Failed {
		t.Errorf("recorded %d failures, want %d", len(rec.failures), stats.Failed)
	}

	// The batch ran through the failures: the account got created.
	if !reg.Has("Valve") {
		t.Error("the create record should have been applied")
	}
}

func TestReplayContinuesAfterConstraintError(t *testing.T) {
	reg := market(t)
	lines := []string{
		record("00", pad15("Michael"), "BS", "000100.00"),
		record("01", pad15("Valve"), "SS", "000050.00"), // buyers cannot create
		record("06", pad15("Michael"), "  ", "000500.00"),
		record("10", pad15("Michael"), "  ", "000000.00"),
	}
	stats, err := Replay(reg, NewSession(), strings.NewReader(strings.Join(lines, "\n")), nil, nil)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if stats.Applied != 3 || stats.Failed != 1 {
		t.Errorf("stats = %+v, want 3 applied, 1 failed", stats)
	}
	if got := reg.Account("Michael").Balance().Wire(); got != "600.00" {
		t.Errorf("balance = %s, want 600.00", got)
	}
}
