// Package reviews serves the testimonial feed: a random sample of a fixed catalog,
// each entry stamped with a display date relative to now.
package reviews

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/metaquant/engel-landing/internal/domain"
)

const (
	DefaultMinSample = 8
	DefaultMaxSample = 12

	dateLayout = "02/01/2006"
	day        = 24 * time.Hour
)

// Sampler picks between min and max distinct reviews per call, in random order.
type Sampler struct {
	pool  []domain.Review
	clock clockwork.Clock
	min   int
	max   int

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSampler creates a sampler over pool. Bounds are clamped to the pool size.
func NewSampler(pool []domain.Review, minSample, maxSample int, rng *rand.Rand, clock clockwork.Clock) (*Sampler, error) {
	if minSample < 0 || maxSample < minSample {
		return nil, fmt.Errorf("invalid sample bounds [%d, %d]", minSample, maxSample)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Sampler{
		pool:  pool,
		clock: clock,
		min:   min(minSample, len(pool)),
		max:   min(maxSample, len(pool)),
		rng:   rng,
	}, nil
}

// Reviews implements domain.ReviewSource.
func (s *Sampler) Reviews(ctx context.Context) ([]domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("sample reviews: %w", err)
	}

	s.mu.Lock()
	n := s.min + s.rng.IntN(s.max-s.min+1)
	perm := s.rng.Perm(len(s.pool))
	s.mu.Unlock()

	now := s.clock.Now()
	out := make([]domain.Review, 0, n)
	for _, idx := range perm[:n] {
		r := s.pool[idx]
		r.Date = now.Add(-time.Duration(r.DaysAgo) * day).Format(dateLayout)
		out = append(out, r)
	}
	return out, nil
}
