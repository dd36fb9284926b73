package engine

import "time"

const SnapshotVersion = "1.0.0"

// NewSeedSnapshot builds the default state used on first run and whenever a
// persisted document fails to load: two demo games, two agency streamers,
// no rounds, no bans, nothing live.
func NewSeedSnapshot(now time.Time) *Snapshot {
	return &Snapshot{
		Meta:   Meta{CreatedAt: now, Version: SnapshotVersion},
		Agency: Agency{Name: "Agency Live"},
		Streamers: []*Streamer{
			{ID: NewID(), Name: "StreamerOne", TikTokID: "@streamer1", Status: StreamerActive, Points: 120, Wins: 3, CreatedAt: now},
			{ID: NewID(), Name: "ProGamer", TikTokID: "@progamer", Status: StreamerActive, Points: 210, Wins: 5, CreatedAt: now},
		},
		Games: []*Game{
			{ID: NewID(), Name: "Gift Battle", Type: GameGifts, DurationSec: 60, Scoring: DefaultScoring(), Active: true, CreatedAt: now},
			{ID: NewID(), Name: "Lightning Comment", Type: GameComments, DurationSec: 20, Scoring: DefaultScoring(), Active: true, CreatedAt: now},
		},
		Rounds: []*Round{},
		Bans:   []Ban{},
		Live:   LivePointer{},
	}
}
