package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/metaquant/engel-landing/internal/carousel"
	"github.com/metaquant/engel-landing/internal/chart"
	"github.com/metaquant/engel-landing/internal/domain"
	"github.com/metaquant/engel-landing/internal/platform/correlation"
	"github.com/metaquant/engel-landing/internal/platform/retry"
)

// ClientMessage is a frame received from the page.
type ClientMessage struct {
	Type      string `json:"type"`
	Direction int    `json:"direction"`
}

const (
	messageAdvance = "advance"

	fetchBackoff    = 500 * time.Millisecond
	maxFetchBackoff = 4 * time.Second
)

// View is one connected landing page.
type View struct {
	id      string
	service *ViewService
	sink    domain.FrameSink
	rotator *carousel.Rotator[domain.Review]

	ctx    context.Context
	cancel context.CancelFunc

	wg        sync.WaitGroup
	ready     chan struct{}
	closed    chan struct{}
	closeOnce sync.Once
	detached  atomic.Bool
}

func newView(parent context.Context, s *ViewService, sink domain.FrameSink) *View {
	id := uuid.NewString()
	ctx, cancel := context.WithCancel(correlation.WithID(parent, id))

	v := &View{
		id:      id,
		service: s,
		sink:    sink,
		ctx:     ctx,
		cancel:  cancel,
		ready:   make(chan struct{}),
		closed:  make(chan struct{}),
	}
	v.rotator = carousel.NewRotator[domain.Review](s.opts.Carousel, &carouselTarget{view: v}, s.clock)
	return v
}

func (v *View) ID() string {
	return v.id
}

// Ready is closed once the review fetch has resolved, successfully or not.
func (v *View) Ready() <-chan struct{} {
	return v.ready
}

// Done is closed once the view has been torn down.
func (v *View) Done() <-chan struct{} {
	return v.closed
}

// Carousel returns the view's current carousel state.
func (v *View) Carousel() carousel.State[domain.Review] {
	return v.rotator.Snapshot()
}

func (v *View) start() {
	v.wg.Add(3)
	go func() {
		defer v.wg.Done()
		v.rotator.Run(v.ctx)
	}()
	go func() {
		defer v.wg.Done()
		v.runChart()
	}()
	go func() {
		defer v.wg.Done()
		defer close(v.ready)
		v.loadReviews()
	}()
}

// HandleMessage applies one client frame. Invalid frames are answered with an error
// frame and reported as a validation error; the view stays open.
func (v *View) HandleMessage(ctx context.Context, data []byte) error {
	if v.detached.Load() {
		return domain.ErrViewClosed
	}
	ctx = correlation.WithID(ctx, v.id)

	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		v.sendError(ctx, "invalid message")
		return fmt.Errorf("decode client message: %w", err)
	}

	switch msg.Type {
	case messageAdvance:
		_, err := v.rotator.Advance(ctx, carousel.Direction(msg.Direction))
		if errors.Is(err, domain.ErrInvalidDirection) {
			v.sendError(ctx, err.Error())
			return err
		}
		if err != nil {
			return fmt.Errorf("advance carousel: %w", err)
		}
		return nil
	default:
		v.sendError(ctx, fmt.Sprintf("unknown message type %q", msg.Type))
		return fmt.Errorf("%w: %q", domain.ErrUnknownMessage, msg.Type)
	}
}

// Close tears the view down: late ticks are dropped, the rotator and chart timer stop.
// Safe to call more than once.
func (v *View) Close() {
	v.closeOnce.Do(func() {
		v.detached.Store(true)
		v.rotator.Stop()
		v.cancel()
		v.wg.Wait()
		v.service.forget(v)
		close(v.closed)
		slog.InfoContext(v.ctx, "View closed", "view_id", v.id)
	})
}

func (v *View) loadReviews() {
	policy := retry.Policy{
		MaxAttempts:    v.service.opts.FetchAttempts,
		InitialBackoff: fetchBackoff,
		MaxBackoff:     maxFetchBackoff,
		Clock:          v.service.clock,
		OnRetry: func(attempt int, err error, backoff time.Duration) {
			slog.DebugContext(v.ctx, "Review fetch failed, retrying", "attempt", attempt, "backoff", backoff, "error", err)
		},
	}
	items, err := retry.Do(v.ctx, policy, retry.StopOnCancel, v.service.reviews.Reviews)
	if err != nil {
		if v.ctx.Err() == nil {
			slog.WarnContext(v.ctx, "Review fetch failed", "error", err)
			v.sendError(v.ctx, "reviews unavailable")
		}
		return
	}
	if v.service.metrics != nil {
		v.service.metrics.ReviewsSampled.Observe(float64(len(items)))
	}

	if err := v.send(v.ctx, domain.Frame{Type: domain.FrameReviews, Reviews: items}); err != nil {
		slog.DebugContext(v.ctx, "Reviews frame not delivered", "error", err)
	}

	if err := v.rotator.Load(v.ctx, items); err != nil {
		if errors.Is(err, domain.ErrRotatorStopped) || v.ctx.Err() != nil {
			return
		}
		slog.WarnContext(v.ctx, "Carousel load failed", "error", err)
	}
}

func (v *View) runChart() {
	feed := chart.NewFeed(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), v.service.clock.Now())

	v.sendChart(feed)

	ticker := v.service.clock.NewTicker(v.service.opts.ChartInterval)
	defer ticker.Stop()

	for {
		select {
		case <-v.ctx.Done():
			return
		case <-ticker.Chan():
			v.sendChart(feed)
		}
	}
}

func (v *View) sendChart(feed *chart.Feed) {
	frame := feed.Next()
	if err := v.send(v.ctx, domain.Frame{Type: domain.FrameChart, Chart: &frame}); err != nil {
		slog.DebugContext(v.ctx, "Chart frame not delivered", "error", err)
		return
	}
	if v.service.metrics != nil {
		v.service.metrics.ChartFramesSent.Inc()
	}
}

func (v *View) sendError(ctx context.Context, msg string) {
	if err := v.send(ctx, domain.Frame{Type: domain.FrameError, Error: msg}); err != nil {
		slog.DebugContext(ctx, "Error frame not delivered", "error", err)
	}
}

func (v *View) send(ctx context.Context, frame domain.Frame) error {
	if v.detached.Load() {
		return domain.ErrTargetDetached
	}
	return v.sink.Send(ctx, frame)
}

// carouselTarget renders rotator frames into the view's sink.
type carouselTarget struct {
	view *View
}

func (t *carouselTarget) Render(ctx context.Context, frame domain.CarouselFrame) error {
	if err := t.view.send(ctx, domain.Frame{Type: domain.FrameCarousel, Carousel: &frame}); err != nil {
		return err
	}
	if m := t.view.service.metrics; m != nil {
		m.Advances.WithLabelValues(string(frame.Trigger)).Inc()
	}
	return nil
}
