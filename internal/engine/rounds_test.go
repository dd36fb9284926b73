package engine

import (
	"errors"
	"testing"
	"time"
)

func TestStartRound(t *testing.T) {
	eng, _ := newTestEngine(t)
	game := eng.Snapshot().Games[0]

	round, err := eng.StartRound(game.ID, "round #1")
	if err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	if round.Status != RoundRunning {
		t.Fatalf("status = %s, want running", round.Status)
	}
	if want := testEpoch.Add(time.Duration(game.DurationSec) * time.Second); !round.EndsAt.Equal(want) {
		t.Fatalf("endsAt = %v, want %v", round.EndsAt, want)
	}
	if len(round.Events) != 0 || len(round.Leaderboard) != 0 || round.Winner != nil {
		t.Fatal("new round must start empty")
	}

	live := eng.Snapshot().Live
	if !live.IsLive || live.RoundID != round.ID || live.GameID != game.ID {
		t.Fatalf("live pointer does not mirror round: %+v", live)
	}
	if eng.Snapshot().Rounds[0] != round {
		t.Fatal("new round should head the round history")
	}
}

func TestStartRoundDefaultsTitleToGameName(t *testing.T) {
	eng, _ := newTestEngine(t)
	game := eng.Snapshot().Games[0]

	round, err := eng.StartRound(game.ID, "")
	if err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	if round.Title != game.Name {
		t.Fatalf("title = %q, want %q", round.Title, game.Name)
	}
}

func TestStartRoundUnknownGame(t *testing.T) {
	eng, _ := newTestEngine(t)
	if _, err := eng.StartRound("missing", ""); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("err = %v, want ErrGameNotFound", err)
	}
}

func TestStartRoundWhileLiveRejected(t *testing.T) {
	eng, _ := newTestEngine(t)
	mustStart(t, eng, "first")

	if _, err := eng.StartRound(eng.Snapshot().Games[1].ID, "second"); !errors.Is(err, ErrRoundLive) {
		t.Fatalf("err = %v, want ErrRoundLive", err)
	}

	running := 0
	for _, r := range eng.Snapshot().Rounds {
		if r.Status == RoundRunning {
			running++
		}
	}
	if running != 1 {
		t.Fatalf("running rounds = %d, want exactly 1", running)
	}
}

func TestEndRound(t *testing.T) {
	eng, _ := newTestEngine(t)
	round := mustStart(t, eng, "end me")
	mustIngest(t, eng, round.ID, RawEvent{Username: "ahmed", Type: EventComment, Value: 1})

	if err := eng.EndRound(round.ID); err != nil {
		t.Fatalf("EndRound: %v", err)
	}
	if round.Status != RoundEnded {
		t.Fatalf("status = %s, want ended", round.Status)
	}
	live := eng.Snapshot().Live
	if live.IsLive || live.RoundID != "" || live.GameID != "" || live.StartedAt != nil || live.EndsAt != nil || live.Title != "" {
		t.Fatalf("live pointer not fully cleared: %+v", live)
	}
}

func TestEndRoundIdempotent(t *testing.T) {
	eng, _ := newTestEngine(t)
	round := mustStart(t, eng, "twice")
	mustIngest(t, eng, round.ID, RawEvent{Username: "ahmed", Type: EventGift, Value: 3})
	if _, err := eng.PickWinner(round.ID, "ahmed"); err != nil {
		t.Fatalf("PickWinner: %v", err)
	}

	if err := eng.EndRound(round.ID); err != nil {
		t.Fatalf("first end: %v", err)
	}
	boardBefore := len(round.Leaderboard)
	winnerBefore := *round.Winner

	if err := eng.EndRound(round.ID); err != nil {
		t.Fatalf("second end: %v", err)
	}
	if round.Status != RoundEnded {
		t.Fatalf("status = %s after second end", round.Status)
	}
	if len(round.Leaderboard) != boardBefore || *round.Winner != winnerBefore {
		t.Fatal("second end must not touch leaderboard or winner")
	}
}

func TestEndRoundUnknown(t *testing.T) {
	eng, _ := newTestEngine(t)
	if err := eng.EndRound("missing"); !errors.Is(err, ErrRoundNotFound) {
		t.Fatalf("err = %v, want ErrRoundNotFound", err)
	}
}

func TestPickWinner(t *testing.T) {
	eng, clock := newTestEngine(t)
	round := mustStart(t, eng, "winner")
	mustIngest(t, eng, round.ID, RawEvent{Username: "ahmed", Type: EventGift, Value: 5})
	clock.T = clock.T.Add(time.Minute)

	winner, err := eng.PickWinner(round.ID, "AHMED")
	if err != nil {
		t.Fatalf("PickWinner: %v", err)
	}
	if winner.Username != "ahmed" || winner.Points != 50 {
		t.Fatalf("winner = %+v, want ahmed with 50", winner)
	}
	if !winner.PickedAt.Equal(clock.T) {
		t.Fatalf("pickedAt = %v, want %v", winner.PickedAt, clock.T)
	}
}

func TestPickWinnerAbsentEntryLeavesStateUnchanged(t *testing.T) {
	eng, _ := newTestEngine(t)
	round := mustStart(t, eng, "ghost")
	mustIngest(t, eng, round.ID, RawEvent{Username: "ahmed", Type: EventComment, Value: 1})

	if _, err := eng.PickWinner(round.ID, "ghost"); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("err = %v, want ErrEntryNotFound", err)
	}
	if round.Winner != nil {
		t.Fatalf("winner = %+v, want nil", round.Winner)
	}
}

func TestPickWinnerOverwritesPreviousSelection(t *testing.T) {
	eng, clock := newTestEngine(t)
	round := mustStart(t, eng, "rejudge")
	mustIngest(t, eng, round.ID, RawEvent{Username: "ahmed", Type: EventGift, Value: 1})
	clock.T = clock.T.Add(time.Second)
	mustIngest(t, eng, round.ID, RawEvent{Username: "noor", Type: EventGift, Value: 2})

	if _, err := eng.PickWinner(round.ID, "ahmed"); err != nil {
		t.Fatalf("first pick: %v", err)
	}
	if _, err := eng.PickWinner(round.ID, "noor"); err != nil {
		t.Fatalf("second pick: %v", err)
	}
	if round.Winner.Username != "noor" {
		t.Fatalf("winner = %s, want noor after re-judge", round.Winner.Username)
	}
}

func TestPickWinnerAfterEnd(t *testing.T) {
	eng, _ := newTestEngine(t)
	round := mustStart(t, eng, "late pick")
	mustIngest(t, eng, round.ID, RawEvent{Username: "ahmed", Type: EventComment, Value: 1})
	if err := eng.EndRound(round.ID); err != nil {
		t.Fatalf("EndRound: %v", err)
	}

	if _, err := eng.PickWinner(round.ID, "ahmed"); err != nil {
		t.Fatalf("PickWinner after end: %v", err)
	}
	if round.Winner == nil || round.Winner.Username != "ahmed" {
		t.Fatalf("winner = %+v, want ahmed", round.Winner)
	}
}

func TestExpiry(t *testing.T) {
	eng, clock := newTestEngine(t)
	game := eng.Snapshot().Games[0]
	round := mustStart(t, eng, "expiring")

	if eng.IsExpired(round) {
		t.Fatal("round expired immediately")
	}
	if id := eng.ExpireLive(); id != "" {
		t.Fatalf("ExpireLive ended %q before time", id)
	}

	clock.T = clock.T.Add(time.Duration(game.DurationSec) * time.Second)
	if !eng.IsExpired(round) {
		t.Fatal("round not expired at endsAt")
	}
	if id := eng.ExpireLive(); id != round.ID {
		t.Fatalf("ExpireLive = %q, want %q", id, round.ID)
	}
	if round.Status != RoundEnded || eng.Snapshot().Live.IsLive {
		t.Fatal("expiry must end the round and clear the live pointer")
	}
	// Ended rounds never report expired again.
	if eng.IsExpired(round) {
		t.Fatal("ended round reported expired")
	}
}

func TestIngestIntoEndedRound(t *testing.T) {
	eng, _ := newTestEngine(t)
	round := mustStart(t, eng, "closed")
	if err := eng.EndRound(round.ID); err != nil {
		t.Fatalf("EndRound: %v", err)
	}

	if _, err := eng.Ingest(round.ID, RawEvent{Username: "ahmed", Type: EventComment, Value: 1}); !errors.Is(err, ErrRoundEnded) {
		t.Fatalf("err = %v, want ErrRoundEnded", err)
	}
	if len(round.Events) != 0 {
		t.Fatal("ended round accepted an event")
	}
}

func TestIngestLive(t *testing.T) {
	eng, _ := newTestEngine(t)

	if _, err := eng.IngestLive(RawEvent{Username: "ahmed", Type: EventComment, Value: 1}); !errors.Is(err, ErrNoLiveRound) {
		t.Fatalf("err = %v, want ErrNoLiveRound", err)
	}

	round := mustStart(t, eng, "live feed")
	ev, err := eng.IngestLive(RawEvent{Username: "ahmed", Type: EventComment, Value: 1})
	if err != nil {
		t.Fatalf("IngestLive: %v", err)
	}
	if len(round.Events) != 1 || round.Events[0].ID != ev.ID {
		t.Fatal("event not appended to the live round")
	}
}

func TestIngestUsesGameScoring(t *testing.T) {
	eng, _ := newTestEngine(t)
	custom := eng.AddGame("Double Comment", GameComments, 30, Scoring{CommentPoints: 2}, true)
	round, err := eng.StartRound(custom.ID, "")
	if err != nil {
		t.Fatalf("StartRound: %v", err)
	}

	ev := mustIngest(t, eng, round.ID, RawEvent{Username: "ahmed", Type: EventComment, Value: 1})
	if ev.Points != 2 {
		t.Fatalf("points = %v, want 2 from game rules", ev.Points)
	}
	// Unset fields fall back to defaults.
	ev = mustIngest(t, eng, round.ID, RawEvent{Username: "ahmed", Type: EventGift, Value: 1})
	if ev.Points != 10 {
		t.Fatalf("points = %v, want default gift scoring", ev.Points)
	}
}

func TestEventsAppendOnly(t *testing.T) {
	eng, clock := newTestEngine(t)
	round := mustStart(t, eng, "audit")

	first := mustIngest(t, eng, round.ID, RawEvent{Username: "ahmed", Type: EventComment, Value: 1, Text: "gg"})
	clock.T = clock.T.Add(time.Second)
	mustIngest(t, eng, round.ID, RawEvent{Username: "noor", Type: EventLike, Value: 50})

	if len(round.Events) != 2 {
		t.Fatalf("events = %d, want 2", len(round.Events))
	}
	if got := round.Events[0]; got.ID != first.ID || got.Text != "gg" || got.Points != first.Points {
		t.Fatalf("earlier event mutated: %+v", got)
	}
}
