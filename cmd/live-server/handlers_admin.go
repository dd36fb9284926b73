package main

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"agency-live/internal/app/operator"
	"agency-live/internal/app/viewer"
	"agency-live/internal/engine"
	"agency-live/internal/store"
)

func healthHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "db": "down"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "db": "up"})
	}
}

func bansHandler(vw *viewer.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := vw.ListBans(r.Context())
		if err != nil {
			writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		writeJSON(w, resp)
	}
}

func banHandler(op *operator.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Username string `json:"username"`
			Reason   string `json:"reason"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if body.Username == "" {
			writeHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		if err := op.BanUser(r.Context(), body.Username, body.Reason); err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true})
	}
}

func unbanHandler(op *operator.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, err := url.PathUnescape(chi.URLParam(r, "username"))
		if err != nil || username == "" {
			writeHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		if err := op.UnbanUser(r.Context(), username); err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true})
	}
}

func createGameHandler(op *operator.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Name        string          `json:"name"`
			Type        engine.GameType `json:"type"`
			DurationSec int             `json:"duration_sec"`
			Scoring     engine.Scoring  `json:"scoring"`
			Active      *bool           `json:"active"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if body.Name == "" || body.Type == "" {
			writeHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		active := true
		if body.Active != nil {
			active = *body.Active
		}
		game, err := op.CreateGame(r.Context(), body.Name, body.Type, body.DurationSec, body.Scoring, active)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true, "game": game})
	}
}

func toggleGameHandler(op *operator.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		game, err := op.ToggleGame(r.Context(), chi.URLParam(r, "game_id"))
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true, "game": game})
	}
}

func deleteGameHandler(op *operator.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := op.DeleteGame(r.Context(), chi.URLParam(r, "game_id")); err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true})
	}
}

func createStreamerHandler(op *operator.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Name     string `json:"name"`
			TikTokID string `json:"tiktok_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if body.Name == "" {
			writeHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		streamer, err := op.CreateStreamer(r.Context(), body.Name, body.TikTokID)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true, "streamer": streamer})
	}
}

func toggleStreamerHandler(op *operator.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		streamer, err := op.ToggleStreamer(r.Context(), chi.URLParam(r, "streamer_id"))
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true, "streamer": streamer})
	}
}

func deleteStreamerHandler(op *operator.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := op.DeleteStreamer(r.Context(), chi.URLParam(r, "streamer_id")); err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true})
	}
}

func renameAgencyHandler(op *operator.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if body.Name == "" {
			writeHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		if err := op.RenameAgency(r.Context(), body.Name); err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, map[string]any{"ok": true})
	}
}

func resetHandler(op *operator.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		op.StopFeed()
		if err := op.Reset(r.Context()); err != nil {
			writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		writeJSON(w, map[string]any{"ok": true})
	}
}
