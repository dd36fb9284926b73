package engine

import "errors"

var (
	ErrGameNotFound     = errors.New("game_not_found")
	ErrRoundNotFound    = errors.New("round_not_found")
	ErrEntryNotFound    = errors.New("entry_not_found")
	ErrRoundLive        = errors.New("round_already_live")
	ErrRoundEnded       = errors.New("round_ended")
	ErrNoLiveRound      = errors.New("no_live_round")
	ErrUserBanned       = errors.New("user_banned")
	ErrAlreadyBanned    = errors.New("already_banned")
	ErrBanNotFound      = errors.New("ban_not_found")
	ErrStreamerNotFound = errors.New("streamer_not_found")
)
