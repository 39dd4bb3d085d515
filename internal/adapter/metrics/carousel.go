package metrics

import "github.com/prometheus/client_golang/prometheus"

// CarouselMetrics holds Prometheus metrics for the review carousel and chart feeds.
type CarouselMetrics struct {
	Advances        *prometheus.CounterVec
	ActiveRotators  prometheus.Gauge
	ReviewsSampled  prometheus.Histogram
	ChartFramesSent prometheus.Counter
}

// NewCarouselMetrics creates and registers carousel metrics on the given registry.
func NewCarouselMetrics(reg prometheus.Registerer) *CarouselMetrics {
	m := &CarouselMetrics{
		Advances: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "carousel",
			Name:      "advances_total",
			Help:      "Total number of rendered carousel frames, by trigger.",
		}, []string{"trigger"}),
		ActiveRotators: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "carousel",
			Name:      "active_rotators",
			Help:      "Number of running carousel rotators.",
		}),
		ReviewsSampled: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "reviews",
			Name:      "sample_size",
			Help:      "Number of reviews returned per sample.",
			Buckets:   []float64{0, 4, 8, 10, 12, 16, 20, 30},
		}),
		ChartFramesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "chart",
			Name:      "frames_total",
			Help:      "Total number of chart frames produced.",
		}),
	}

	reg.MustRegister(m.Advances, m.ActiveRotators, m.ReviewsSampled, m.ChartFramesSent)
	return m
}
