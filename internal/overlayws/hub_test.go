package overlayws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"agency-live/internal/engine"
	"agency-live/internal/overlay"
)

func TestPublishWithoutListenersDoesNotBlock(t *testing.T) {
	hub := NewHub()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < broadcastDepth*2; i++ {
			hub.Publish(overlay.Projection{})
		}
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked with no hub loop running")
	}
}

func TestLateJoinerReceivesLastFrame(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	defer srv.Close()

	snap := engine.NewSeedSnapshot(time.Now().UTC())
	live := time.Now().UTC()
	snap.Live = engine.LivePointer{IsLive: true, RoundID: "r1", GameID: snap.Games[0].ID, StartedAt: &live, EndsAt: &live, Title: "demo"}
	hub.Publish(overlay.Project(snap))

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read replayed frame: %v", err)
	}
	var frame Frame
	if err := json.Unmarshal(payload, &frame); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if frame.Type != "overlay_state" {
		t.Fatalf("frame type = %q, want overlay_state", frame.Type)
	}
	if !frame.Data.Live.IsLive || frame.Data.Live.RoundID != "r1" {
		t.Fatalf("live pointer not replayed: %+v", frame.Data.Live)
	}

	// Subsequent publishes reach the already connected page.
	snap.Live = engine.LivePointer{}
	hub.Publish(overlay.Project(snap))
	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	if _, payload, err = conn.ReadMessage(); err != nil {
		t.Fatalf("read broadcast frame: %v", err)
	}
	if err := json.Unmarshal(payload, &frame); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if frame.Data.Live.IsLive {
		t.Fatal("second frame should show nothing live")
	}
}
