// Package chart generates the decorative gold price series shown on the landing page.
//
// The data is random and carries no market meaning. A Feed reveals the series one point
// per frame and loops over its tail, so the chart keeps "moving" indefinitely.
package chart

import (
	"math/rand/v2"
	"time"

	"github.com/metaquant/engel-landing/internal/domain"
)

const (
	SeriesLength = 50
	StartPrice   = 1950.0
	MinPrice     = 1900.0
	MaxPrice     = 2000.0

	maxStep     = 10.0 // price moves within [-maxStep/2, maxStep/2)
	minVolume   = 50.0
	volumeRange = 100.0
	pointStep   = time.Hour

	// Once the whole series has been revealed the feed restarts from this fraction of it.
	loopFraction = 0.7
)

// Base values and jitter widths for the headline performance figures.
const (
	winRateBase      = 94.7
	winRateJitter    = 0.6
	profitFactorBase = 2.34
	profitJitter     = 0.1
	maxDrawdownBase  = 8.2
	drawdownJitter   = 0.8
)

// NewSeries generates SeriesLength hourly points ending just before now.
func NewSeries(rng *rand.Rand, now time.Time) []domain.ChartPoint {
	points := make([]domain.ChartPoint, SeriesLength)
	price := StartPrice

	for i := range points {
		price += (rng.Float64() - 0.5) * maxStep
		price = max(MinPrice, min(MaxPrice, price))

		points[i] = domain.ChartPoint{
			Price:  price,
			Volume: rng.Float64()*volumeRange + minVolume,
			Time:   now.Add(-time.Duration(SeriesLength-i) * pointStep),
		}
	}
	return points
}

// NewMetrics returns the headline metrics with fresh jitter applied.
func NewMetrics(rng *rand.Rand) domain.ChartMetrics {
	return domain.ChartMetrics{
		WinRate:      jitter(rng, winRateBase, winRateJitter),
		ProfitFactor: jitter(rng, profitFactorBase, profitJitter),
		MaxDrawdown:  jitter(rng, maxDrawdownBase, drawdownJitter),
	}
}

func jitter(rng *rand.Rand, base, width float64) float64 {
	return base + (rng.Float64()-0.5)*width
}
