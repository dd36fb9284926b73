package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"agency-live/internal/app/operator"
	"agency-live/internal/app/viewer"
	"agency-live/internal/config"
	"agency-live/internal/engine"
	"agency-live/internal/logging"
	"agency-live/internal/overlayws"
	"agency-live/internal/simulate"
	"agency-live/internal/store"
)

func main() {
	appCfg, err := config.LoadApp()
	if err != nil {
		panic(err)
	}
	logging.Init(appCfg.Log)
	defer logging.Close()
	cfg := appCfg.Server

	st, err := store.New(cfg.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("store init failed")
	}
	defer st.Close()
	if err := st.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("db ping failed")
	}
	if err := st.EnsureSchema(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("ensure schema failed")
	}
	// Seeds on first run.
	if _, err := st.Load(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("load snapshot failed")
	}

	ctx := context.Background()
	hub := overlayws.NewHub()
	go hub.Run(ctx)

	op := operator.NewService(st, hub, engine.SystemClock())
	vw := viewer.NewService(st)

	go op.RunExpiryLoop(ctx, cfg.ExpiryInterval)
	if cfg.FeedAutostart {
		gen := simulate.New(nil)
		if cfg.FeedSeed != 0 {
			gen = simulate.NewSeeded(cfg.FeedSeed)
		}
		if err := op.StartFeed(ctx, cfg.FeedInterval, gen); err != nil {
			log.Warn().Err(err).Msg("feed autostart skipped")
		}
	}

	r := newRouter(st, cfg, op, vw, hub)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	log.Info().Str("addr", cfg.HTTPAddr).Msg("http listening")
	log.Fatal().Err(server.ListenAndServe()).Msg("server stopped")
}
