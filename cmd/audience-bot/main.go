// audience-bot is a demo client. In watch mode it dials the overlay socket
// and prints each frame; in feed mode it posts synthetic audience events to
// the ingest endpoint so a human can drive a round without the built-in
// simulator.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"agency-live/internal/config"
	"agency-live/internal/simulate"
)

func main() {
	cfg, err := config.LoadBot()
	if err != nil {
		log.Fatal(err)
	}

	switch cfg.Mode {
	case "feed":
		runFeed(cfg)
	default:
		runWatch(cfg)
	}
}

func runWatch(cfg config.BotConfig) {
	conn, _, err := websocket.DefaultDialer.Dial(cfg.WSURL, nil)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var frame struct {
			Type string `json:"type"`
			Data struct {
				Live struct {
					IsLive bool   `json:"isLive"`
					Title  string `json:"title"`
				} `json:"live"`
				Round *struct {
					Leaderboard []struct {
						Username string  `json:"username"`
						Points   float64 `json:"points"`
					} `json:"leaderboard"`
				} `json:"round"`
			} `json:"data"`
		}
		if err := json.Unmarshal(data, &frame); err != nil || frame.Type != "overlay_state" {
			continue
		}
		if !frame.Data.Live.IsLive {
			fmt.Println("no live round")
			continue
		}
		fmt.Printf("LIVE %q\n", frame.Data.Live.Title)
		if frame.Data.Round != nil {
			for i, e := range frame.Data.Round.Leaderboard {
				fmt.Printf("  %d. %s  %.2f\n", i+1, e.Username, e.Points)
			}
		}
	}
}

func runFeed(cfg config.BotConfig) {
	gen := simulate.New(nil)
	if cfg.FeedSeed != 0 {
		gen = simulate.NewSeeded(cfg.FeedSeed)
	}
	client := &http.Client{Timeout: 5 * time.Second}
	url := cfg.ServerURL + "/api/events"

	for {
		raw := gen.Next()
		payload, _ := json.Marshal(raw)
		req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			log.Fatal(err)
		}
		req.Header.Set("Content-Type", "application/json")
		if cfg.APIKey != "" {
			req.Header.Set("X-Admin-Key", cfg.APIKey)
		}
		resp, err := client.Do(req)
		if err != nil {
			log.Printf("post event: %v", err)
		} else {
			if resp.StatusCode != http.StatusOK {
				log.Printf("post event: status %d", resp.StatusCode)
			}
			resp.Body.Close()
		}
		time.Sleep(cfg.FeedInterval)
	}
}
