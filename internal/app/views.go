package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/metaquant/engel-landing/internal/adapter/metrics"
	"github.com/metaquant/engel-landing/internal/carousel"
	"github.com/metaquant/engel-landing/internal/domain"
)

const (
	defaultChartInterval = 2 * time.Second
	defaultFetchAttempts = 3
)

// ViewOptions configures every view opened by a ViewService.
type ViewOptions struct {
	Carousel      carousel.Options
	ChartInterval time.Duration
	FetchAttempts int
}

// ViewService opens and tracks page views.
type ViewService struct {
	reviews domain.ReviewSource
	opts    ViewOptions
	clock   clockwork.Clock
	metrics *metrics.CarouselMetrics

	mu      sync.Mutex
	views   map[string]*View
	stopped bool
}

// NewViewService creates the view layer. m may be nil.
func NewViewService(reviews domain.ReviewSource, opts ViewOptions, clock clockwork.Clock, m *metrics.CarouselMetrics) *ViewService {
	if opts.ChartInterval <= 0 {
		opts.ChartInterval = defaultChartInterval
	}
	if opts.FetchAttempts < 1 {
		opts.FetchAttempts = defaultFetchAttempts
	}
	return &ViewService{
		reviews: reviews,
		opts:    opts,
		clock:   clock,
		metrics: m,
		views:   make(map[string]*View),
	}
}

// Open starts a view that pushes its frames into sink. The view runs until Close is
// called or ctx is cancelled. After Shutdown it returns ErrShuttingDown.
func (s *ViewService) Open(ctx context.Context, sink domain.FrameSink) (*View, error) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return nil, domain.ErrShuttingDown
	}
	v := newView(ctx, s, sink)
	s.views[v.id] = v
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.ActiveRotators.Inc()
	}

	v.start()
	slog.InfoContext(v.ctx, "View opened", "view_id", v.id)
	return v, nil
}

// Accepting reports whether Open will still start new views.
func (s *ViewService) Accepting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.stopped
}

// Active returns the number of open views.
func (s *ViewService) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.views)
}

// Shutdown closes every open view and refuses new ones.
func (s *ViewService) Shutdown() {
	s.mu.Lock()
	s.stopped = true
	views := make([]*View, 0, len(s.views))
	for _, v := range s.views {
		views = append(views, v)
	}
	s.mu.Unlock()

	for _, v := range views {
		v.Close()
	}
	slog.Info("View service stopped", "closed_views", len(views))
}

func (s *ViewService) forget(v *View) {
	s.mu.Lock()
	_, ok := s.views[v.id]
	delete(s.views, v.id)
	s.mu.Unlock()

	if ok && s.metrics != nil {
		s.metrics.ActiveRotators.Dec()
	}
}
