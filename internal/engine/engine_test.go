package engine

import (
	"fmt"
	"testing"
	"time"
)

var testEpoch = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// newTestEngine wires a fixed clock and sequential IDs over a seeded
// snapshot so tests are fully deterministic.
func newTestEngine(t *testing.T) (*Engine, *FixedClock) {
	t.Helper()
	clock := &FixedClock{T: testEpoch}
	n := 0
	eng := New(NewSeedSnapshot(testEpoch), WithClock(clock), WithIDFunc(func() string {
		n++
		return fmt.Sprintf("id-%03d", n)
	}))
	return eng, clock
}

func mustStart(t *testing.T, eng *Engine, title string) *Round {
	t.Helper()
	round, err := eng.StartRound(eng.Snapshot().Games[0].ID, title)
	if err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	return round
}

func mustIngest(t *testing.T, eng *Engine, roundID string, raw RawEvent) *Event {
	t.Helper()
	ev, err := eng.Ingest(roundID, raw)
	if err != nil {
		t.Fatalf("Ingest(%+v): %v", raw, err)
	}
	return ev
}
