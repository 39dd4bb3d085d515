package chart

import (
	"math/rand/v2"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/metaquant/engel-landing/internal/domain"
)

// Generator produces complete chart snapshots for the JSON API. Safe for concurrent use.
type Generator struct {
	clock clockwork.Clock

	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator creates a generator. A nil rng uses a randomly seeded source.
func NewGenerator(rng *rand.Rand, clock clockwork.Clock) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Generator{clock: clock, rng: rng}
}

// Snapshot returns a full series with metrics.
func (g *Generator) Snapshot() domain.ChartFrame {
	g.mu.Lock()
	defer g.mu.Unlock()

	points := NewSeries(g.rng, g.clock.Now())
	metrics := NewMetrics(g.rng)
	return domain.ChartFrame{Points: points, Metrics: &metrics}
}
