// Package viewer serves read-only queries over the engagement state. It
// never mutates, so it reads through the store without taking the writer's
// lock.
package viewer

import (
	"context"
	"sort"
	"strings"
	"time"

	"agency-live/internal/engine"
	"agency-live/internal/overlay"
)

const dashboardTopSize = 5

type SnapshotLoader interface {
	Load(ctx context.Context) (*engine.Snapshot, error)
}

type Service struct {
	store SnapshotLoader
}

func NewService(st SnapshotLoader) *Service {
	return &Service{store: st}
}

// Dashboard summarizes the agency for the admin landing view, including a
// cross-round aggregate of the most active participants.
func (s *Service) Dashboard(ctx context.Context) (*DashboardResponse, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	active := 0
	for _, st := range snap.Streamers {
		if st.Status == engine.StreamerActive {
			active++
		}
	}

	resp := &DashboardResponse{
		AgencyName:      snap.Agency.Name,
		ActiveStreamers: active,
		TotalStreamers:  len(snap.Streamers),
		TotalRounds:     len(snap.Rounds),
		Live:            snap.Live.IsLive,
		LiveTitle:       snap.Live.Title,
		TopParticipants: topParticipants(snap.Rounds, dashboardTopSize),
	}
	return resp, nil
}

// topParticipants folds every round's events into per-username totals and
// returns the n highest.
func topParticipants(rounds []*engine.Round, n int) []TopParticipant {
	type agg struct {
		display string
		points  float64
		events  int
	}
	totals := map[string]*agg{}
	for _, r := range rounds {
		for _, ev := range r.Events {
			key := strings.ToLower(ev.Username)
			a, ok := totals[key]
			if !ok {
				a = &agg{display: ev.Username}
				totals[key] = a
			}
			a.points += ev.Points
			a.events++
		}
	}

	out := make([]TopParticipant, 0, len(totals))
	for _, a := range totals {
		out = append(out, TopParticipant{Username: a.display, Points: a.points, Events: a.events})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].Username < out[j].Username
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func (s *Service) ListGames(ctx context.Context) (*GamesResponse, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]GameItem, 0, len(snap.Games))
	for _, g := range snap.Games {
		items = append(items, GameItem{
			ID:          g.ID,
			Name:        g.Name,
			Type:        string(g.Type),
			DurationSec: g.DurationSec,
			Active:      g.Active,
		})
	}
	return &GamesResponse{Items: items}, nil
}

func (s *Service) ListRounds(ctx context.Context) (*RoundsResponse, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]RoundItem, 0, len(snap.Rounds))
	for _, r := range snap.Rounds {
		item := RoundItem{
			ID:        r.ID,
			GameID:    r.GameID,
			Title:     r.Title,
			Status:    string(r.Status),
			StartedAt: r.StartedAt.Format(time.RFC3339),
			EndsAt:    r.EndsAt.Format(time.RFC3339),
			Events:    len(r.Events),
			Entries:   len(r.Leaderboard),
		}
		if r.Winner != nil {
			name := r.Winner.Username
			item.Winner = &name
		}
		items = append(items, item)
	}
	return &RoundsResponse{Items: items}, nil
}

func (s *Service) ListBans(ctx context.Context) (*BansResponse, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]BanItem, 0, len(snap.Bans))
	for _, b := range snap.Bans {
		items = append(items, BanItem{
			Username: b.Username,
			Reason:   b.Reason,
			At:       b.CreatedAt.Format(time.RFC3339),
		})
	}
	return &BansResponse{Items: items}, nil
}

func (s *Service) ListStreamers(ctx context.Context) (*StreamersResponse, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]StreamerItem, 0, len(snap.Streamers))
	for _, st := range snap.Streamers {
		items = append(items, StreamerItem{
			ID:       st.ID,
			Name:     st.Name,
			TikTokID: st.TikTokID,
			Status:   st.Status,
			Points:   st.Points,
			Wins:     st.Wins,
		})
	}
	return &StreamersResponse{Items: items}, nil
}

// OverlayState returns the projection an overlay page would have received
// over the socket, for plain HTTP polling and first paint.
func (s *Service) OverlayState(ctx context.Context) (overlay.Projection, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return overlay.Projection{}, err
	}
	return overlay.Project(snap), nil
}
