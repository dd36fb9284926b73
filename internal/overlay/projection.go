// Package overlay derives the read-only state projection consumed by the
// display surface. A projection carries no write capability; the overlay
// page can only render what it is handed.
package overlay

import "agency-live/internal/engine"

const (
	// The overlay shows only the head of the board and the tail of the feed.
	LeaderboardSize = 5
	LastEventsSize  = 6
)

type GameInfo struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Type        engine.GameType `json:"type"`
	DurationSec int             `json:"durationSec"`
}

type RoundView struct {
	ID          string                    `json:"id"`
	Status      engine.RoundStatus        `json:"status"`
	StartedAt   string                    `json:"startedAt"`
	EndsAt      string                    `json:"endsAt"`
	Winner      *engine.WinnerRef         `json:"winner"`
	Leaderboard []engine.LeaderboardEntry `json:"leaderboard"`
	LastEvents  []engine.Event            `json:"lastEvents"`
}

// Projection is the message pushed to the display surface after every
// mutating operation.
type Projection struct {
	Live  engine.LivePointer `json:"live"`
	Game  *GameInfo          `json:"game"`
	Round *RoundView         `json:"round"`
}

// Project derives the overlay view of the current snapshot: the live
// pointer, the live game's descriptor, and a trimmed view of the live
// round. Stateless; safe to call on every mutation.
func Project(snap *engine.Snapshot) Projection {
	p := Projection{Live: snap.Live}

	for _, g := range snap.Games {
		if g.ID == snap.Live.GameID {
			p.Game = &GameInfo{ID: g.ID, Name: g.Name, Type: g.Type, DurationSec: g.DurationSec}
			break
		}
	}
	for _, r := range snap.Rounds {
		if r.ID == snap.Live.RoundID {
			p.Round = projectRound(r)
			break
		}
	}
	return p
}

func projectRound(r *engine.Round) *RoundView {
	top := r.Leaderboard
	if len(top) > LeaderboardSize {
		top = top[:LeaderboardSize]
	}
	last := r.Events
	if len(last) > LastEventsSize {
		last = last[len(last)-LastEventsSize:]
	}

	view := &RoundView{
		ID:          r.ID,
		Status:      r.Status,
		StartedAt:   r.StartedAt.Format(timeLayout),
		EndsAt:      r.EndsAt.Format(timeLayout),
		Winner:      r.Winner,
		Leaderboard: append([]engine.LeaderboardEntry{}, top...),
		LastEvents:  append([]engine.Event{}, last...),
	}
	return view
}

const timeLayout = "2006-01-02T15:04:05.000Z07:00"
