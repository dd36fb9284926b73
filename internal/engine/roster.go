package engine

// Game and streamer management. These run outside any round; a game edit
// never reaches into rounds already started from it.

// AddGame defines a new game. Duration is clamped into
// [MinDurationSec, MaxDurationSec] rather than rejected; unset scoring
// fields keep their zero value and fall back to defaults at scoring time.
func (e *Engine) AddGame(name string, typ GameType, durationSec int, sc Scoring, active bool) *Game {
	game := &Game{
		ID:          e.newID(),
		Name:        name,
		Type:        typ,
		DurationSec: clampDuration(durationSec),
		Scoring:     sc,
		Active:      active,
		CreatedAt:   e.clock.Now(),
	}
	e.snap.Games = append([]*Game{game}, e.snap.Games...)
	return game
}

func (e *Engine) ToggleGame(id string) (*Game, error) {
	game, ok := e.GameByID(id)
	if !ok {
		return nil, ErrGameNotFound
	}
	game.Active = !game.Active
	return game, nil
}

func (e *Engine) RemoveGame(id string) error {
	for i, g := range e.snap.Games {
		if g.ID == id {
			e.snap.Games = append(e.snap.Games[:i], e.snap.Games[i+1:]...)
			return nil
		}
	}
	return ErrGameNotFound
}

func (e *Engine) AddStreamer(name, tiktokID string) *Streamer {
	s := &Streamer{
		ID:        e.newID(),
		Name:      name,
		TikTokID:  tiktokID,
		Status:    StreamerActive,
		CreatedAt: e.clock.Now(),
	}
	e.snap.Streamers = append([]*Streamer{s}, e.snap.Streamers...)
	return s
}

// ToggleStreamer flips a streamer between active and paused.
func (e *Engine) ToggleStreamer(id string) (*Streamer, error) {
	s, ok := e.streamerByID(id)
	if !ok {
		return nil, ErrStreamerNotFound
	}
	if s.Status == StreamerActive {
		s.Status = StreamerPaused
	} else {
		s.Status = StreamerActive
	}
	return s, nil
}

func (e *Engine) RemoveStreamer(id string) error {
	for i, s := range e.snap.Streamers {
		if s.ID == id {
			e.snap.Streamers = append(e.snap.Streamers[:i], e.snap.Streamers[i+1:]...)
			return nil
		}
	}
	return ErrStreamerNotFound
}

func (e *Engine) RenameAgency(name string) {
	e.snap.Agency.Name = name
}

func clampDuration(sec int) int {
	if sec < MinDurationSec {
		return MinDurationSec
	}
	if sec > MaxDurationSec {
		return MaxDurationSec
	}
	return sec
}
