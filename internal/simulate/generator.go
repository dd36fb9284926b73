// Package simulate synthesizes audience events for demo rounds. It stands
// in for a live platform feed and only ever talks to the engine through the
// same ingestion contract a real feed would use.
package simulate

import (
	"fmt"
	"math/rand"
	"time"

	"agency-live/internal/engine"
)

var (
	sampleUsers = []string{"ahmed", "noor", "saad", "lena", "faisal", "rana", "moh", "sara", "ali", "huda"}

	commentSnippets = []string{"🔥", "!join", "gg", "top1", "ACE?", "let's go", "ez win", "clutch!", "good luck"}

	giftCoins = []float64{1, 5, 10, 20, 50, 100}
)

// Generator produces raw events with a biased type distribution: mostly
// comments, some like batches, occasionally a gift. Randomness is injected
// so demos can be replayed deterministically.
type Generator struct {
	rnd *rand.Rand
}

// New builds a generator around rnd. A nil rnd gets a time-seeded source.
func New(rnd *rand.Rand) *Generator {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rnd: rnd}
}

// NewSeeded builds a deterministic generator from seed.
func NewSeeded(seed int64) *Generator {
	return New(rand.New(rand.NewSource(seed)))
}

// Next draws one raw event: 60% comment, 30% like, 10% gift.
func (g *Generator) Next() engine.RawEvent {
	username := sampleUsers[g.rnd.Intn(len(sampleUsers))]

	roll := g.rnd.Float64()
	switch {
	case roll < 0.6:
		return engine.RawEvent{
			Username: username,
			Type:     engine.EventComment,
			Value:    1,
			Text:     commentSnippets[g.rnd.Intn(len(commentSnippets))],
		}
	case roll < 0.9:
		likes := float64(50 + g.rnd.Intn(500))
		return engine.RawEvent{
			Username: username,
			Type:     engine.EventLike,
			Value:    likes,
			Text:     fmt.Sprintf("+%.0f likes", likes),
		}
	default:
		coins := giftCoins[g.rnd.Intn(len(giftCoins))]
		return engine.RawEvent{
			Username: username,
			Type:     engine.EventGift,
			Value:    coins,
			Text:     fmt.Sprintf("🎁 gift (%.0f coins)", coins),
		}
	}
}
