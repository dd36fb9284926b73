package viewer

type DashboardResponse struct {
	AgencyName      string           `json:"agency_name"`
	ActiveStreamers int              `json:"active_streamers"`
	TotalStreamers  int              `json:"total_streamers"`
	TotalRounds     int              `json:"total_rounds"`
	Live            bool             `json:"live"`
	LiveTitle       string           `json:"live_title,omitempty"`
	TopParticipants []TopParticipant `json:"top_participants"`
}

// TopParticipant aggregates one username's points across every round.
type TopParticipant struct {
	Username string  `json:"username"`
	Points   float64 `json:"points"`
	Events   int     `json:"events"`
}

type GameItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	DurationSec int    `json:"duration_sec"`
	Active      bool   `json:"active"`
}

type GamesResponse struct {
	Items []GameItem `json:"items"`
}

type RoundItem struct {
	ID        string  `json:"id"`
	GameID    string  `json:"game_id"`
	Title     string  `json:"title"`
	Status    string  `json:"status"`
	StartedAt string  `json:"started_at"`
	EndsAt    string  `json:"ends_at"`
	Events    int     `json:"events"`
	Entries   int     `json:"entries"`
	Winner    *string `json:"winner"`
}

type RoundsResponse struct {
	Items []RoundItem `json:"items"`
}

type BanItem struct {
	Username string `json:"username"`
	Reason   string `json:"reason,omitempty"`
	At       string `json:"at"`
}

type BansResponse struct {
	Items []BanItem `json:"items"`
}

type StreamerItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	TikTokID string `json:"tiktok_id"`
	Status   string  `json:"status"`
	Points   float64 `json:"points"`
	Wins     int     `json:"wins"`
}

type StreamersResponse struct {
	Items []StreamerItem `json:"items"`
}
