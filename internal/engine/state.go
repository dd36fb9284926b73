package engine

import "time"

type GameType string

const (
	GameComments GameType = "comments"
	GameLikes    GameType = "likes"
	GameGifts    GameType = "gifts"
	GameHybrid   GameType = "hybrid"
)

type EventType string

const (
	EventComment EventType = "comment"
	EventLike    EventType = "like"
	EventGift    EventType = "gift"
)

type RoundStatus string

const (
	RoundRunning RoundStatus = "running"
	RoundEnded   RoundStatus = "ended"
)

const (
	StreamerActive = "active"
	StreamerPaused = "paused"
)

// Round durations are clamped into this window at game-definition time.
const (
	MinDurationSec = 5
	MaxDurationSec = 600
)

// Scoring holds the per-game point rules. Zero-valued fields fall back to
// the documented defaults at scoring time, so a partially filled document
// still scores.
type Scoring struct {
	CommentPoints     float64 `json:"comment"`
	LikePointsPerUnit float64 `json:"like"`
	GiftPointsPerCoin float64 `json:"giftPointPerCoin"`
}

type Game struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        GameType  `json:"type"`
	DurationSec int       `json:"durationSec"`
	Scoring     Scoring   `json:"scoring"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Event is one scored audience action. Immutable once appended to a round.
type Event struct {
	ID       string    `json:"id"`
	At       time.Time `json:"at"`
	Username string    `json:"username"`
	Type     EventType `json:"type"`
	Value    float64   `json:"value"`
	Text     string    `json:"text,omitempty"`
	Points   float64   `json:"points"`
}

type LeaderboardEntry struct {
	Username string    `json:"username"`
	Points   float64   `json:"points"`
	LastAt   time.Time `json:"lastAt"`
}

type WinnerRef struct {
	Username string    `json:"username"`
	Points   float64   `json:"points"`
	PickedAt time.Time `json:"pickedAt"`
}

type Round struct {
	ID          string             `json:"id"`
	GameID      string             `json:"gameId"`
	GameName    string             `json:"gameName"`
	Title       string             `json:"title"`
	Status      RoundStatus        `json:"status"`
	StartedAt   time.Time          `json:"startedAt"`
	EndsAt      time.Time          `json:"endsAt"`
	Winner      *WinnerRef         `json:"winner"`
	Events      []Event            `json:"events"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

// Ban is a global moderation exclusion, matched case-insensitively.
type Ban struct {
	Username  string    `json:"username"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
}

// LivePointer names the currently running round, if any. At most one round
// is live at a time; when nothing is live every field is cleared.
type LivePointer struct {
	IsLive    bool       `json:"isLive"`
	RoundID   string     `json:"roundId,omitempty"`
	GameID    string     `json:"gameId,omitempty"`
	StartedAt *time.Time `json:"startedAt"`
	EndsAt    *time.Time `json:"endsAt"`
	Title     string     `json:"title"`
}

type Streamer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TikTokID  string    `json:"tiktokId"`
	Status    string    `json:"status"`
	Points    float64   `json:"points"`
	Wins      int       `json:"wins"`
	CreatedAt time.Time `json:"createdAt"`
}

type Meta struct {
	CreatedAt time.Time `json:"createdAt"`
	Version   string    `json:"version"`
}

type Agency struct {
	Name string `json:"name"`
}

// Snapshot is the whole-state document the store persists and the engine
// mutates. Field names are stable; external persistence treats it as one
// opaque blob.
type Snapshot struct {
	Meta      Meta        `json:"meta"`
	Agency    Agency      `json:"agency"`
	Streamers []*Streamer `json:"streamers"`
	Games     []*Game     `json:"games"`
	Rounds    []*Round    `json:"rounds"`
	Bans      []Ban       `json:"bans"`
	Live      LivePointer `json:"live"`
}

// RawEvent is what an event source hands to Ingest before moderation and
// scoring have run.
type RawEvent struct {
	Username string    `json:"username"`
	Type     EventType `json:"type"`
	Value    float64   `json:"value"`
	Text     string    `json:"text,omitempty"`
}
