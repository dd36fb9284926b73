package engine

import "time"

// StartRound creates a running round for the given game and points the live
// pointer at it. Only one round may be live at a time; starting while live
// is rejected.
func (e *Engine) StartRound(gameID, title string) (*Round, error) {
	if e.snap.Live.IsLive {
		return nil, ErrRoundLive
	}
	game, ok := e.GameByID(gameID)
	if !ok {
		return nil, ErrGameNotFound
	}
	if title == "" {
		title = game.Name
	}

	now := e.clock.Now()
	endsAt := now.Add(time.Duration(game.DurationSec) * time.Second)
	round := &Round{
		ID:          e.newID(),
		GameID:      game.ID,
		GameName:    game.Name,
		Title:       title,
		Status:      RoundRunning,
		StartedAt:   now,
		EndsAt:      endsAt,
		Events:      []Event{},
		Leaderboard: []LeaderboardEntry{},
	}
	// Newest round first; the round list doubles as history.
	e.snap.Rounds = append([]*Round{round}, e.snap.Rounds...)

	startedAt := now
	ends := endsAt
	e.snap.Live = LivePointer{
		IsLive:    true,
		RoundID:   round.ID,
		GameID:    game.ID,
		StartedAt: &startedAt,
		EndsAt:    &ends,
		Title:     title,
	}
	return round, nil
}

// EndRound marks the round ended and clears the live pointer when it names
// this round. Ending an already ended round is a no-op, so the expiry tick
// and a manual stop can race harmlessly. Leaderboard and winner are left
// untouched.
func (e *Engine) EndRound(roundID string) error {
	round, ok := e.RoundByID(roundID)
	if !ok {
		return ErrRoundNotFound
	}
	round.Status = RoundEnded
	if e.snap.Live.RoundID == roundID {
		e.snap.Live = LivePointer{}
	}
	return nil
}

// PickWinner records the named leaderboard entry as the round's winner with
// its points frozen at selection time. Callable before or after the round
// ends; a later call overwrites the previous winner.
func (e *Engine) PickWinner(roundID, username string) (*WinnerRef, error) {
	round, ok := e.RoundByID(roundID)
	if !ok {
		return nil, ErrRoundNotFound
	}
	entry := findEntry(round, username)
	if entry == nil {
		return nil, ErrEntryNotFound
	}
	round.Winner = &WinnerRef{
		Username: entry.Username,
		Points:   entry.Points,
		PickedAt: e.clock.Now(),
	}
	return round.Winner, nil
}

// IsExpired reports whether a running round has passed its end time. The
// engine owns no timers; an external driver polls this and calls EndRound.
func (e *Engine) IsExpired(r *Round) bool {
	if r == nil || r.Status != RoundRunning {
		return false
	}
	return !e.clock.Now().Before(r.EndsAt)
}

// ExpireLive ends the live round if its time is up. Returns the ended round
// ID, or "" when nothing was due.
func (e *Engine) ExpireLive() string {
	round, ok := e.LiveRound()
	if !ok || !e.IsExpired(round) {
		return ""
	}
	_ = e.EndRound(round.ID)
	return round.ID
}

// Ingest is the sole write path by which audience events reach a round:
// moderation, then scoring, then leaderboard. Events from banned actors are
// dropped entirely and never touch the audit log.
func (e *Engine) Ingest(roundID string, raw RawEvent) (*Event, error) {
	round, ok := e.RoundByID(roundID)
	if !ok {
		return nil, ErrRoundNotFound
	}
	if round.Status != RoundRunning {
		return nil, ErrRoundEnded
	}
	if e.IsBanned(raw.Username) {
		return nil, ErrUserBanned
	}

	scoring := DefaultScoring()
	if game, ok := e.GameByID(round.GameID); ok {
		scoring = game.Scoring
	}

	ev := Event{
		ID:       e.newID(),
		At:       e.clock.Now(),
		Username: raw.Username,
		Type:     raw.Type,
		Value:    raw.Value,
		Text:     raw.Text,
		Points:   ComputePoints(scoring, raw.Type, raw.Value),
	}
	addEvent(round, ev)
	return &ev, nil
}

// IngestLive ingests into whichever round is currently live.
func (e *Engine) IngestLive(raw RawEvent) (*Event, error) {
	round, ok := e.LiveRound()
	if !ok {
		return nil, ErrNoLiveRound
	}
	return e.Ingest(round.ID, raw)
}
