package domain

import "time"

type ChartPoint struct {
	Price  float64   `json:"price"`
	Volume float64   `json:"volume"`
	Time   time.Time `json:"time"`
}

type ChartMetrics struct {
	WinRate      float64 `json:"win_rate"`
	ProfitFactor float64 `json:"profit_factor"`
	MaxDrawdown  float64 `json:"max_drawdown"`
}

// ChartFrame is one redraw of the simulated price chart.
type ChartFrame struct {
	Points  []ChartPoint  `json:"points"`
	Metrics *ChartMetrics `json:"metrics,omitempty"`
}
