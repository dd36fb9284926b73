package main

import (
	"expvar"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"agency-live/internal/app/operator"
	"agency-live/internal/app/viewer"
	"agency-live/internal/config"
	"agency-live/internal/overlayws"
	"agency-live/internal/store"
)

func newRouter(st *store.Store, cfg config.ServerConfig, op *operator.Service, vw *viewer.Service, hub *overlayws.Hub) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(apiLogMiddleware()).Get("/healthz", healthHandler(st))

	r.Route("/api", func(r chi.Router) {
		r.Use(apiLogMiddleware())
		r.Use(bodyCaptureMiddleware(4096))

		r.Get("/public/dashboard", dashboardHandler(vw))
		r.Get("/public/games", gamesHandler(vw))
		r.Get("/public/rounds", roundsHandler(vw))
		r.Get("/public/streamers", streamersHandler(vw))
		r.Get("/public/overlay", overlayStateHandler(vw))

		r.Group(func(r chi.Router) {
			r.Use(adminAuthMiddleware(cfg.AdminAPIKey))

			r.Post("/rounds/start", startRoundHandler(op))
			r.Post("/rounds/{round_id}/end", endRoundHandler(op))
			r.Post("/rounds/{round_id}/winner", pickWinnerHandler(op))
			r.Post("/events", ingestHandler(op))
			r.Post("/overlay/push", pushOverlayHandler(op))

			r.Post("/feed/start", feedStartHandler(cfg, op))
			r.Post("/feed/stop", feedStopHandler(op))

			r.Get("/bans", bansHandler(vw))
			r.Post("/bans", banHandler(op))
			r.Delete("/bans/{username}", unbanHandler(op))

			r.Post("/games", createGameHandler(op))
			r.Post("/games/{game_id}/toggle", toggleGameHandler(op))
			r.Delete("/games/{game_id}", deleteGameHandler(op))

			r.Post("/streamers", createStreamerHandler(op))
			r.Post("/streamers/{streamer_id}/toggle", toggleStreamerHandler(op))
			r.Delete("/streamers/{streamer_id}", deleteStreamerHandler(op))

			r.Post("/agency", renameAgencyHandler(op))
			r.Post("/reset", resetHandler(op))

			r.Get("/debug/vars", expvar.Handler().ServeHTTP)
		})
	})

	r.Get("/ws", hub.HandleWS)

	r.Handle("/*", http.FileServer(http.Dir("web/static")))
	return r
}
