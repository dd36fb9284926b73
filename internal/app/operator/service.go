// Package operator is the single logical writer for engagement state. Every
// operation runs load, mutate, save under one mutex so concurrent admin
// actions and the simulation feed never interleave partial writes.
package operator

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"agency-live/internal/engine"
	"agency-live/internal/overlay"
)

// SnapshotStore is the persistence contract the service writes through.
type SnapshotStore interface {
	Load(ctx context.Context) (*engine.Snapshot, error)
	Save(ctx context.Context, snap *engine.Snapshot) error
}

type Service struct {
	mu    sync.Mutex
	store SnapshotStore
	pub   overlay.Publisher
	clock engine.Clock

	feedMu     sync.Mutex
	feedCancel context.CancelFunc

	engineOpts []engine.Option
}

func NewService(st SnapshotStore, pub overlay.Publisher, clock engine.Clock, opts ...engine.Option) *Service {
	if pub == nil {
		pub = overlay.NopPublisher{}
	}
	if clock == nil {
		clock = engine.SystemClock()
	}
	return &Service{
		store:      st,
		pub:        pub,
		clock:      clock,
		engineOpts: append([]engine.Option{engine.WithClock(clock)}, opts...),
	}
}

// mutate is the read-modify-write cycle every operation goes through. When
// fn fails nothing is saved or published. publish=false skips the overlay
// push for operations that do not change what viewers see.
func (s *Service) mutate(ctx context.Context, publish bool, fn func(*engine.Engine) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	eng := engine.New(snap, s.engineOpts...)
	if err := fn(eng); err != nil {
		return err
	}
	if err := s.store.Save(ctx, snap); err != nil {
		return err
	}
	if publish {
		s.pub.Publish(overlay.Project(snap))
	}
	return nil
}

func (s *Service) StartRound(ctx context.Context, gameID, title string) (*engine.Round, error) {
	var round *engine.Round
	err := s.mutate(ctx, true, func(eng *engine.Engine) error {
		r, err := eng.StartRound(gameID, title)
		if err != nil {
			return err
		}
		round = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("round_id", round.ID).Str("game_id", gameID).Msg("round started")
	return round, nil
}

func (s *Service) EndRound(ctx context.Context, roundID string) error {
	err := s.mutate(ctx, true, func(eng *engine.Engine) error {
		return eng.EndRound(roundID)
	})
	if err == nil {
		log.Info().Str("round_id", roundID).Msg("round ended")
	}
	return err
}

func (s *Service) PickWinner(ctx context.Context, roundID, username string) (*engine.WinnerRef, error) {
	var winner *engine.WinnerRef
	err := s.mutate(ctx, true, func(eng *engine.Engine) error {
		w, err := eng.PickWinner(roundID, username)
		if err != nil {
			return err
		}
		winner = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return winner, nil
}

// Ingest feeds one raw audience event into the live round.
func (s *Service) Ingest(ctx context.Context, raw engine.RawEvent) (*engine.Event, error) {
	var ev *engine.Event
	err := s.mutate(ctx, true, func(eng *engine.Engine) error {
		e, err := eng.IngestLive(raw)
		if err != nil {
			return err
		}
		ev = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ev, nil
}

// ExpireTick ends the live round if its deadline passed. Returns the ended
// round id, or "" when nothing was due.
func (s *Service) ExpireTick(ctx context.Context) (string, error) {
	var ended string
	err := s.mutate(ctx, true, func(eng *engine.Engine) error {
		ended = eng.ExpireLive()
		return nil
	})
	if err != nil {
		return "", err
	}
	if ended != "" {
		log.Info().Str("round_id", ended).Msg("round expired")
	}
	return ended, nil
}

// PushOverlay republishes the current projection without changing state.
func (s *Service) PushOverlay(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	s.pub.Publish(overlay.Project(snap))
	return nil
}

func (s *Service) BanUser(ctx context.Context, username, reason string) error {
	return s.mutate(ctx, false, func(eng *engine.Engine) error {
		return eng.Ban(username, reason)
	})
}

func (s *Service) UnbanUser(ctx context.Context, username string) error {
	return s.mutate(ctx, false, func(eng *engine.Engine) error {
		return eng.Unban(username)
	})
}

func (s *Service) CreateGame(ctx context.Context, name string, typ engine.GameType, durationSec int, sc engine.Scoring, active bool) (*engine.Game, error) {
	var game *engine.Game
	err := s.mutate(ctx, false, func(eng *engine.Engine) error {
		game = eng.AddGame(name, typ, durationSec, sc, active)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return game, nil
}

func (s *Service) ToggleGame(ctx context.Context, id string) (*engine.Game, error) {
	var game *engine.Game
	err := s.mutate(ctx, false, func(eng *engine.Engine) error {
		g, err := eng.ToggleGame(id)
		if err != nil {
			return err
		}
		game = g
		return nil
	})
	if err != nil {
		return nil, err
	}
	return game, nil
}

func (s *Service) DeleteGame(ctx context.Context, id string) error {
	return s.mutate(ctx, false, func(eng *engine.Engine) error {
		return eng.RemoveGame(id)
	})
}

func (s *Service) CreateStreamer(ctx context.Context, name, tiktokID string) (*engine.Streamer, error) {
	var st *engine.Streamer
	err := s.mutate(ctx, false, func(eng *engine.Engine) error {
		st = eng.AddStreamer(name, tiktokID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

func (s *Service) ToggleStreamer(ctx context.Context, id string) (*engine.Streamer, error) {
	var st *engine.Streamer
	err := s.mutate(ctx, false, func(eng *engine.Engine) error {
		v, err := eng.ToggleStreamer(id)
		if err != nil {
			return err
		}
		st = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

func (s *Service) DeleteStreamer(ctx context.Context, id string) error {
	return s.mutate(ctx, false, func(eng *engine.Engine) error {
		return eng.RemoveStreamer(id)
	})
}

func (s *Service) RenameAgency(ctx context.Context, name string) error {
	return s.mutate(ctx, false, func(eng *engine.Engine) error {
		eng.RenameAgency(name)
		return nil
	})
}

// Reset replaces all state with the seeded defaults.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := engine.NewSeedSnapshot(s.clock.Now())
	if err := s.store.Save(ctx, snap); err != nil {
		return err
	}
	s.pub.Publish(overlay.Project(snap))
	log.Info().Msg("state reset to seed")
	return nil
}
