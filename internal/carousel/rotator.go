package carousel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/metaquant/engel-landing/internal/domain"
)

const (
	DefaultInterval = 5 * time.Second

	commandTimeout = 5 * time.Second
	stopTimeout    = 10 * time.Second
)

// Options configures a Rotator. Zero fields fall back to the package defaults.
type Options struct {
	VisibleCount int
	ItemWidth    int
	Interval     time.Duration
}

func (o Options) withDefaults() Options {
	if o.VisibleCount < 1 {
		o.VisibleCount = DefaultVisibleCount
	}
	if o.ItemWidth <= 0 {
		o.ItemWidth = DefaultItemWidth
	}
	if o.Interval <= 0 {
		o.Interval = DefaultInterval
	}
	return o
}

// rotatorCmd is the command interface for the Rotator actor.
type rotatorCmd interface{ isRotatorCmd() }

type baseRotatorCmd struct{}

func (baseRotatorCmd) isRotatorCmd() {}

type loadCmd[T any] struct {
	baseRotatorCmd
	items []T
	reply chan error
}

type advanceCmd struct {
	baseRotatorCmd
	direction Direction
	reply     chan advanceResult
}

type advanceResult struct {
	frame domain.CarouselFrame
	err   error
}

// Rotator owns the carousel state of one page view. Run drives it: the auto-advance
// ticker and manual Advance calls are handled on the same goroutine, so they share
// one index and never race. The ticker starts only once a non-empty item list is loaded
// and is never reset by manual steps.
type Rotator[T any] struct {
	opts   Options
	target domain.RenderTarget
	clock  clockwork.Clock

	cmdCh    chan rotatorCmd
	stopCh   chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	started  atomic.Bool

	mu     sync.RWMutex
	state  State[T]
	loaded bool
}

func NewRotator[T any](opts Options, target domain.RenderTarget, clock clockwork.Clock) *Rotator[T] {
	opts = opts.withDefaults()
	return &Rotator[T]{
		opts:   opts,
		target: target,
		clock:  clock,
		cmdCh:  make(chan rotatorCmd, 16),
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
		state:  New[T](nil, opts.VisibleCount),
	}
}

// Options returns the effective options after defaults were applied.
func (r *Rotator[T]) Options() Options {
	return r.opts
}

// Snapshot returns the current state.
func (r *Rotator[T]) Snapshot() State[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Load installs the item list. It may be called once; the initial frame is rendered
// and the auto-advance ticker started when items is non-empty.
func (r *Rotator[T]) Load(ctx context.Context, items []T) error {
	reply := make(chan error, 1)
	if err := r.send(ctx, loadCmd[T]{items: items, reply: reply}); err != nil {
		return err
	}

	timer := r.clock.NewTimer(commandTimeout)
	defer timer.Stop()

	select {
	case err := <-reply:
		return err
	case <-r.done:
		select {
		case err := <-reply:
			return err
		default:
			return domain.ErrRotatorStopped
		}
	case <-ctx.Done():
		return fmt.Errorf("load carousel items: %w", ctx.Err())
	case <-timer.Chan():
		return fmt.Errorf("load command timed out after %v", commandTimeout)
	}
}

// Advance performs a manual step and returns the resulting frame. Stepping an empty
// carousel is a no-op that renders nothing.
func (r *Rotator[T]) Advance(ctx context.Context, d Direction) (domain.CarouselFrame, error) {
	if !d.Valid() {
		return domain.CarouselFrame{}, fmt.Errorf("%w: got %d", domain.ErrInvalidDirection, d)
	}

	reply := make(chan advanceResult, 1)
	if err := r.send(ctx, advanceCmd{direction: d, reply: reply}); err != nil {
		return domain.CarouselFrame{}, err
	}

	timer := r.clock.NewTimer(commandTimeout)
	defer timer.Stop()

	select {
	case res := <-reply:
		return res.frame, res.err
	case <-r.done:
		select {
		case res := <-reply:
			return res.frame, res.err
		default:
			return domain.CarouselFrame{}, domain.ErrRotatorStopped
		}
	case <-ctx.Done():
		return domain.CarouselFrame{}, fmt.Errorf("advance carousel: %w", ctx.Err())
	case <-timer.Chan():
		return domain.CarouselFrame{}, fmt.Errorf("advance command timed out after %v", commandTimeout)
	}
}

// Stop cancels the rotator. It blocks until Run has returned or the stop timeout
// elapses. Safe to call more than once, and before Run.
func (r *Rotator[T]) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
	if !r.started.Load() {
		return
	}

	timeout := r.clock.NewTimer(stopTimeout)
	defer timeout.Stop()

	select {
	case <-r.done:
	case <-timeout.Chan():
		slog.Warn("Carousel rotator stop timeout exceeded", "timeout", stopTimeout)
	}
}

// Run processes commands and ticks until ctx is cancelled or Stop is called.
func (r *Rotator[T]) Run(ctx context.Context) {
	if !r.started.CompareAndSwap(false, true) {
		return
	}
	defer close(r.done)

	var (
		ticker clockwork.Ticker
		tick   <-chan time.Time
	)
	defer func() {
		if ticker != nil {
			ticker.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopCh:
			return
		case cmd := <-r.cmdCh:
			switch c := cmd.(type) {
			case loadCmd[T]:
				err := r.handleLoad(ctx, c.items)
				if err == nil && ticker == nil && len(c.items) > 0 {
					ticker = r.clock.NewTicker(r.opts.Interval)
					tick = ticker.Chan()
				}
				c.reply <- err
			case advanceCmd:
				frame, err := r.step(ctx, c.direction, domain.TriggerManual)
				c.reply <- advanceResult{frame: frame, err: err}
			default:
				slog.Warn("Rotator received unknown command type", "command_type", fmt.Sprintf("%T", cmd))
			}
		case <-tick:
			if _, err := r.step(ctx, Forward, domain.TriggerAuto); err != nil {
				slog.WarnContext(ctx, "Carousel auto-advance failed", "error", err)
			}
		}
	}
}

func (r *Rotator[T]) send(ctx context.Context, cmd rotatorCmd) error {
	select {
	case <-r.stopCh:
		return domain.ErrRotatorStopped
	default:
	}

	select {
	case r.cmdCh <- cmd:
		return nil
	case <-r.stopCh:
		return domain.ErrRotatorStopped
	case <-ctx.Done():
		return fmt.Errorf("send rotator command: %w", ctx.Err())
	}
}

func (r *Rotator[T]) handleLoad(ctx context.Context, items []T) error {
	r.mu.Lock()
	if r.loaded {
		r.mu.Unlock()
		return domain.ErrItemsAlreadyLoaded
	}
	r.loaded = true
	r.state = New(items, r.opts.VisibleCount)
	state := r.state
	r.mu.Unlock()

	if !state.Empty() {
		r.render(ctx, state.Frame(r.opts.ItemWidth, domain.TriggerLoad))
	}
	return nil
}

func (r *Rotator[T]) step(ctx context.Context, d Direction, trigger domain.Trigger) (domain.CarouselFrame, error) {
	r.mu.Lock()
	next, applied, err := Advance(r.state, d)
	r.state = next
	r.mu.Unlock()

	frame := next.Frame(r.opts.ItemWidth, trigger)
	if err != nil {
		return frame, err
	}
	if applied {
		r.render(ctx, frame)
	}
	return frame, nil
}

func (r *Rotator[T]) render(ctx context.Context, frame domain.CarouselFrame) {
	if r.target == nil {
		return
	}

	err := r.target.Render(ctx, frame)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrTargetDetached):
		slog.DebugContext(ctx, "Carousel render skipped, target detached", "index", frame.Index)
	default:
		slog.WarnContext(ctx, "Carousel render failed", "index", frame.Index, "trigger", frame.Trigger, "error", err)
	}
}
