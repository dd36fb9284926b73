package operator

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"agency-live/internal/engine"
	"agency-live/internal/simulate"
)

// RunExpiryLoop polls for a live round past its deadline. It blocks until
// ctx is cancelled.
func (s *Service) RunExpiryLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.ExpireTick(ctx); err != nil {
				log.Warn().Err(err).Msg("expiry tick failed")
			}
		}
	}
}

// StartFeed begins pushing synthetic audience events into the live round at
// the given interval. It fails when no round is live, and is a no-op when a
// feed is already running. ctx covers only the liveness check; the feed
// itself runs until StopFeed or until the round goes away.
func (s *Service) StartFeed(ctx context.Context, interval time.Duration, gen *simulate.Generator) error {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	if !snap.Live.IsLive {
		return engine.ErrNoLiveRound
	}

	s.feedMu.Lock()
	defer s.feedMu.Unlock()
	if s.feedCancel != nil {
		return nil
	}
	feedCtx, cancel := context.WithCancel(context.Background())
	s.feedCancel = cancel
	go s.runFeed(feedCtx, interval, gen)
	log.Info().Dur("interval", interval).Msg("feed started")
	return nil
}

// StopFeed halts the synthetic feed if one is running.
func (s *Service) StopFeed() {
	s.feedMu.Lock()
	defer s.feedMu.Unlock()
	if s.feedCancel != nil {
		s.feedCancel()
		s.feedCancel = nil
		log.Info().Msg("feed stopped")
	}
}

// FeedRunning reports whether the synthetic feed is active.
func (s *Service) FeedRunning() bool {
	s.feedMu.Lock()
	defer s.feedMu.Unlock()
	return s.feedCancel != nil
}

func (s *Service) runFeed(ctx context.Context, interval time.Duration, gen *simulate.Generator) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, err := s.Ingest(ctx, gen.Next())
			switch {
			case err == nil:
			case errors.Is(err, engine.ErrUserBanned):
				// Banned spectators are silently dropped from the feed.
			case errors.Is(err, engine.ErrNoLiveRound), errors.Is(err, engine.ErrRoundEnded):
				s.StopFeed()
				return
			default:
				log.Warn().Err(err).Msg("feed ingest failed")
			}
		}
	}
}
