package main

import (
	"net/http"

	"agency-live/internal/app/viewer"
)

func dashboardHandler(vw *viewer.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := vw.Dashboard(r.Context())
		if err != nil {
			writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		writeJSON(w, resp)
	}
}

func gamesHandler(vw *viewer.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := vw.ListGames(r.Context())
		if err != nil {
			writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		writeJSON(w, resp)
	}
}

func roundsHandler(vw *viewer.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := vw.ListRounds(r.Context())
		if err != nil {
			writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		writeJSON(w, resp)
	}
}

func streamersHandler(vw *viewer.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := vw.ListStreamers(r.Context())
		if err != nil {
			writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		writeJSON(w, resp)
	}
}

// overlayStateHandler serves the same projection the websocket pushes, for
// first paint and plain polling clients.
func overlayStateHandler(vw *viewer.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		proj, err := vw.OverlayState(r.Context())
		if err != nil {
			writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		writeJSON(w, map[string]any{"type": "overlay_state", "data": proj})
	}
}
