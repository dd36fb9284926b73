package main

import (
	"context"
	"testing"

	"github.com/go-chi/chi/v5"

	"agency-live/internal/app/operator"
	"agency-live/internal/app/viewer"
	"agency-live/internal/config"
	"agency-live/internal/overlayws"
	"agency-live/internal/store"
)

func newTestRouter(t *testing.T, st *store.Store, cfg config.ServerConfig) (*chi.Mux, *operator.Service) {
	t.Helper()
	hub := overlayws.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	op := operator.NewService(st, hub, nil)
	vw := viewer.NewService(st)
	return newRouter(st, cfg, op, vw, hub), op
}

func seedFirstGameID(t *testing.T, st *store.Store) string {
	t.Helper()
	snap, err := st.Load(context.Background())
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	if len(snap.Games) == 0 {
		t.Fatal("seed snapshot has no games")
	}
	return snap.Games[0].ID
}
