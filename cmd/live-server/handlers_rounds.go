package main

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"agency-live/internal/app/operator"
	"agency-live/internal/config"
	"agency-live/internal/engine"
	"agency-live/internal/simulate"
)

func startRoundHandler(op *operator.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			GameID string `json:"game_id"`
			Title  string `json:"title"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if body.GameID == "" {
			writeHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		round, err := op.StartRound(r.Context(), body.GameID, body.Title)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true, "round_id": round.ID, "ends_at": round.EndsAt})
	}
}

func endRoundHandler(op *operator.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := op.EndRound(r.Context(), chi.URLParam(r, "round_id")); err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true})
	}
}

func pickWinnerHandler(op *operator.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Username string `json:"username"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if body.Username == "" {
			writeHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		winner, err := op.PickWinner(r.Context(), chi.URLParam(r, "round_id"), body.Username)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true, "winner": winner})
	}
}

func ingestHandler(op *operator.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var raw engine.RawEvent
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			writeHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if raw.Username == "" || raw.Type == "" {
			writeHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		ev, err := op.Ingest(r.Context(), raw)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true, "event": ev})
	}
}

func pushOverlayHandler(op *operator.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := op.PushOverlay(r.Context()); err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true})
	}
}

func feedStartHandler(cfg config.ServerConfig, op *operator.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Seed int64 `json:"seed"`
		}
		// Body is optional; an empty read leaves the zero seed.
		_ = json.NewDecoder(r.Body).Decode(&body)

		gen := simulate.New(nil)
		if body.Seed != 0 {
			gen = simulate.NewSeeded(body.Seed)
		}
		if err := op.StartFeed(r.Context(), cfg.FeedInterval, gen); err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true, "running": true})
	}
}

func feedStopHandler(op *operator.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		op.StopFeed()
		writeJSON(w, map[string]any{"ok": true, "running": false})
	}
}
