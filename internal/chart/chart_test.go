package chart

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(42, 1024))
}

func TestNewSeries_BoundsAndTimes(t *testing.T) {
	for seed := range uint64(20) {
		points := NewSeries(rand.New(rand.NewPCG(seed, seed+1)), testNow)
		require.Len(t, points, SeriesLength)

		for i, p := range points {
			assert.GreaterOrEqual(t, p.Price, MinPrice)
			assert.LessOrEqual(t, p.Price, MaxPrice)
			assert.GreaterOrEqual(t, p.Volume, 50.0)
			assert.Less(t, p.Volume, 150.0)
			assert.Equal(t, testNow.Add(-time.Duration(SeriesLength-i)*time.Hour), p.Time)
		}
	}
}

func TestNewSeries_StepSize(t *testing.T) {
	points := NewSeries(testRand(), testNow)

	prev := StartPrice
	for _, p := range points {
		assert.LessOrEqual(t, p.Price-prev, 5.0)
		assert.GreaterOrEqual(t, p.Price-prev, -5.0)
		prev = p.Price
	}
}

func TestNewMetrics_Ranges(t *testing.T) {
	rng := testRand()
	for range 100 {
		m := NewMetrics(rng)
		assert.InDelta(t, 94.7, m.WinRate, 0.3)
		assert.InDelta(t, 2.34, m.ProfitFactor, 0.05)
		assert.InDelta(t, 8.2, m.MaxDrawdown, 0.4)
	}
}

func TestFeed_RevealsThenLoops(t *testing.T) {
	f := NewFeed(testRand(), testNow)

	first := f.Next()
	assert.Empty(t, first.Points)
	assert.Nil(t, first.Metrics)

	for want := 1; want < SeriesLength; want++ {
		frame := f.Next()
		require.Len(t, frame.Points, want)
		require.NotNil(t, frame.Metrics)
	}

	assert.Equal(t, 35, f.Cursor())
	assert.Len(t, f.Next().Points, 35)
	assert.Len(t, f.Next().Points, 36)
}

func TestFeed_FramesAreCopies(t *testing.T) {
	f := NewFeed(testRand(), testNow)
	f.Next()
	frame := f.Next()
	require.Len(t, frame.Points, 1)

	frame.Points[0].Price = -1

	assert.NotEqual(t, -1.0, f.Next().Points[0].Price)
}

func TestGenerator_Snapshot(t *testing.T) {
	clock := clockwork.NewFakeClock()
	g := NewGenerator(rand.New(rand.NewPCG(7, 7)), clock)

	frame := g.Snapshot()

	require.Len(t, frame.Points, SeriesLength)
	require.NotNil(t, frame.Metrics)
	assert.True(t, frame.Points[SeriesLength-1].Time.Before(clock.Now()))
	for _, p := range frame.Points {
		assert.GreaterOrEqual(t, p.Price, MinPrice)
		assert.LessOrEqual(t, p.Price, MaxPrice)
	}
}
