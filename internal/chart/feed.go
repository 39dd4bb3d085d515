package chart

import (
	"math/rand/v2"
	"time"

	"github.com/metaquant/engel-landing/internal/domain"
)

// Feed reveals a generated series one point per Next call. Not safe for concurrent use;
// each page view owns its own feed.
type Feed struct {
	rng    *rand.Rand
	points []domain.ChartPoint
	cursor int
}

func NewFeed(rng *rand.Rand, now time.Time) *Feed {
	return &Feed{
		rng:    rng,
		points: NewSeries(rng, now),
	}
}

// Next returns the currently revealed prefix and advances the cursor. The first frame
// is empty and carries no metrics. After the last point the cursor jumps back to 70%.
func (f *Feed) Next() domain.ChartFrame {
	visible := make([]domain.ChartPoint, f.cursor)
	copy(visible, f.points[:f.cursor])

	frame := domain.ChartFrame{Points: visible}
	if len(visible) > 0 {
		m := NewMetrics(f.rng)
		frame.Metrics = &m
	}

	f.cursor++
	if f.cursor >= len(f.points) {
		f.cursor = int(float64(len(f.points)) * loopFraction)
	}
	return frame
}

// Cursor is the number of points the next frame will reveal.
func (f *Feed) Cursor() int {
	return f.cursor
}
