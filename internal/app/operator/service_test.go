package operator_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"agency-live/internal/app/operator"
	"agency-live/internal/engine"
	"agency-live/internal/overlay"
	"agency-live/internal/simulate"
	"agency-live/internal/testutil"
)

type capturingPublisher struct {
	mu     sync.Mutex
	frames []overlay.Projection
}

func (p *capturingPublisher) Publish(proj overlay.Projection) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frames = append(p.frames, proj)
}

func (p *capturingPublisher) last() (overlay.Projection, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.frames) == 0 {
		return overlay.Projection{}, false
	}
	return p.frames[len(p.frames)-1], true
}

func (p *capturingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.frames)
}

func newTestService(t *testing.T) (*operator.Service, *capturingPublisher, *engine.FixedClock, func()) {
	t.Helper()
	st, cleanup := testutil.OpenTestStore(t)
	pub := &capturingPublisher{}
	clock := &engine.FixedClock{T: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	svc := operator.NewService(st, pub, clock)
	return svc, pub, clock, cleanup
}

func seedGameID(t *testing.T, svc *operator.Service) string {
	t.Helper()
	g, err := svc.CreateGame(context.Background(), "Test Battle", engine.GameGifts, 60, engine.DefaultScoring(), true)
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	return g.ID
}

func TestStartIngestEndPublishes(t *testing.T) {
	svc, pub, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	gameID := seedGameID(t, svc)
	round, err := svc.StartRound(ctx, gameID, "Friday Night")
	if err != nil {
		t.Fatalf("StartRound: %v", err)
	}

	if _, err := svc.Ingest(ctx, engine.RawEvent{Username: "ahmed", Type: engine.EventGift, Value: 5}); err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	proj, ok := pub.last()
	if !ok {
		t.Fatal("nothing published")
	}
	if !proj.Live.IsLive || proj.Round == nil || proj.Round.ID != round.ID {
		t.Fatalf("projection does not show the live round: %+v", proj)
	}
	if len(proj.Round.Leaderboard) != 1 || proj.Round.Leaderboard[0].Points != 50 {
		t.Fatalf("leaderboard = %+v", proj.Round.Leaderboard)
	}

	if err := svc.EndRound(ctx, round.ID); err != nil {
		t.Fatalf("EndRound: %v", err)
	}
	proj, _ = pub.last()
	if proj.Live.IsLive {
		t.Fatal("projection still live after end")
	}
}

func TestStartRejectedWhileLive(t *testing.T) {
	svc, _, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	gameID := seedGameID(t, svc)
	if _, err := svc.StartRound(ctx, gameID, ""); err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	if _, err := svc.StartRound(ctx, gameID, ""); !errors.Is(err, engine.ErrRoundLive) {
		t.Fatalf("second start error = %v, want ErrRoundLive", err)
	}
}

func TestFailedMutationIsNotSaved(t *testing.T) {
	svc, _, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	gameID := seedGameID(t, svc)
	round, err := svc.StartRound(ctx, gameID, "")
	if err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	if err := svc.BanUser(ctx, "troll", "spam"); err != nil {
		t.Fatalf("BanUser: %v", err)
	}

	if _, err := svc.Ingest(ctx, engine.RawEvent{Username: "TROLL", Type: engine.EventComment, Value: 1}); !errors.Is(err, engine.ErrUserBanned) {
		t.Fatalf("ingest error = %v, want ErrUserBanned", err)
	}

	if err := svc.PushOverlay(ctx); err != nil {
		t.Fatalf("PushOverlay: %v", err)
	}
	if _, err := svc.PickWinner(ctx, round.ID, "troll"); !errors.Is(err, engine.ErrEntryNotFound) {
		t.Fatalf("banned user reached the leaderboard: %v", err)
	}
}

func TestBanDoesNotPublish(t *testing.T) {
	svc, pub, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	before := pub.count()
	if err := svc.BanUser(ctx, "troll", ""); err != nil {
		t.Fatalf("BanUser: %v", err)
	}
	if err := svc.UnbanUser(ctx, "troll"); err != nil {
		t.Fatalf("UnbanUser: %v", err)
	}
	if pub.count() != before {
		t.Fatalf("moderation published %d frames", pub.count()-before)
	}
}

func TestExpireTickEndsOverdueRound(t *testing.T) {
	svc, _, clock, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	gameID := seedGameID(t, svc)
	round, err := svc.StartRound(ctx, gameID, "")
	if err != nil {
		t.Fatalf("StartRound: %v", err)
	}

	if ended, err := svc.ExpireTick(ctx); err != nil || ended != "" {
		t.Fatalf("ExpireTick before deadline = (%q, %v)", ended, err)
	}

	clock.T = clock.T.Add(61 * time.Second)
	ended, err := svc.ExpireTick(ctx)
	if err != nil {
		t.Fatalf("ExpireTick: %v", err)
	}
	if ended != round.ID {
		t.Fatalf("ended = %q, want %q", ended, round.ID)
	}
}

func TestResetRestoresSeed(t *testing.T) {
	svc, pub, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	gameID := seedGameID(t, svc)
	if _, err := svc.StartRound(ctx, gameID, ""); err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	if err := svc.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	proj, ok := pub.last()
	if !ok {
		t.Fatal("reset did not publish")
	}
	if proj.Live.IsLive || proj.Round != nil {
		t.Fatalf("projection after reset: %+v", proj)
	}
}

func TestFeedRequiresLiveRound(t *testing.T) {
	svc, _, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	seedGameID(t, svc)
	err := svc.StartFeed(ctx, 10*time.Millisecond, simulate.NewSeeded(1))
	if !errors.Is(err, engine.ErrNoLiveRound) {
		t.Fatalf("StartFeed error = %v, want ErrNoLiveRound", err)
	}
	if svc.FeedRunning() {
		t.Fatal("feed should not be running")
	}
}

func TestFeedFillsLiveRound(t *testing.T) {
	svc, pub, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	gameID := seedGameID(t, svc)
	if _, err := svc.StartRound(ctx, gameID, ""); err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	if err := svc.StartFeed(ctx, 5*time.Millisecond, simulate.NewSeeded(1)); err != nil {
		t.Fatalf("StartFeed: %v", err)
	}
	defer svc.StopFeed()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if proj, ok := pub.last(); ok && proj.Round != nil && len(proj.Round.LastEvents) >= 3 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("feed produced no events within deadline")
}
