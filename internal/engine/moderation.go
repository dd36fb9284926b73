package engine

// IsBanned reports whether username is currently excluded, matched
// case-insensitively against the global ban list.
func (e *Engine) IsBanned(username string) bool {
	for _, b := range e.snap.Bans {
		if equalUser(b.Username, username) {
			return true
		}
	}
	return false
}

// Ban adds username to the global ban list. Banning an already banned user
// returns ErrAlreadyBanned and leaves the list unchanged.
func (e *Engine) Ban(username, reason string) error {
	if e.IsBanned(username) {
		return ErrAlreadyBanned
	}
	e.snap.Bans = append([]Ban{{
		Username:  username,
		Reason:    reason,
		CreatedAt: e.clock.Now(),
	}}, e.snap.Bans...)
	return nil
}

// Unban removes every ban matching username. ErrBanNotFound when nothing
// matched.
func (e *Engine) Unban(username string) error {
	kept := e.snap.Bans[:0]
	removed := false
	for _, b := range e.snap.Bans {
		if equalUser(b.Username, username) {
			removed = true
			continue
		}
		kept = append(kept, b)
	}
	if !removed {
		return ErrBanNotFound
	}
	e.snap.Bans = kept
	return nil
}
