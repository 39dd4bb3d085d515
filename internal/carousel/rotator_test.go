package carousel

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/metaquant/engel-landing/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTarget struct {
	mu       sync.Mutex
	frames   []domain.CarouselFrame
	detached bool
}

func (r *recordingTarget) Render(_ context.Context, frame domain.CarouselFrame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.detached {
		return domain.ErrTargetDetached
	}
	r.frames = append(r.frames, frame)
	return nil
}

func (r *recordingTarget) detach() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.detached = true
}

func (r *recordingTarget) getFrames() []domain.CarouselFrame {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.CarouselFrame, len(r.frames))
	copy(out, r.frames)
	return out
}

func (r *recordingTarget) count(trigger domain.Trigger) int {
	n := 0
	for _, f := range r.getFrames() {
		if f.Trigger == trigger {
			n++
		}
	}
	return n
}

func startRotator(t *testing.T, target domain.RenderTarget) (*Rotator[int], *clockwork.FakeClock) {
	t.Helper()

	clock := clockwork.NewFakeClock()
	r := NewRotator[int](Options{}, target, clock)

	ctx, cancel := context.WithCancel(context.Background())
	go r.Run(ctx)
	t.Cleanup(func() {
		r.Stop()
		cancel()
	})

	return r, clock
}

func TestRotator_DefaultOptions(t *testing.T) {
	r := NewRotator[int](Options{}, nil, clockwork.NewFakeClock())

	assert.Equal(t, Options{VisibleCount: 3, ItemWidth: 320, Interval: 5 * time.Second}, r.Options())
}

func TestRotator_LoadRendersInitialFrame(t *testing.T) {
	target := &recordingTarget{}
	r, _ := startRotator(t, target)

	require.NoError(t, r.Load(context.Background(), items(10)))

	frames := target.getFrames()
	require.Len(t, frames, 1)
	assert.Equal(t, domain.CarouselFrame{Index: 0, MaxIndex: 7, Count: 10, Offset: 0, Trigger: domain.TriggerLoad}, frames[0])
}

func TestRotator_LoadTwiceFails(t *testing.T) {
	r, _ := startRotator(t, &recordingTarget{})

	require.NoError(t, r.Load(context.Background(), items(4)))
	err := r.Load(context.Background(), items(6))

	require.ErrorIs(t, err, domain.ErrItemsAlreadyLoaded)
	assert.Equal(t, 4, r.Snapshot().Len())
}

func TestRotator_NoTicksBeforeLoad(t *testing.T) {
	target := &recordingTarget{}
	r, clock := startRotator(t, target)

	clock.Advance(20 * time.Second)
	time.Sleep(20 * time.Millisecond)

	assert.Empty(t, target.getFrames())
	assert.Equal(t, 0, r.Snapshot().Index())
}

func TestRotator_EmptyListNeverTicksOrRenders(t *testing.T) {
	target := &recordingTarget{}
	r, clock := startRotator(t, target)

	require.NoError(t, r.Load(context.Background(), nil))
	for range 3 {
		frame, err := r.Advance(context.Background(), Forward)
		require.NoError(t, err)
		assert.Equal(t, 0, frame.Index)
	}
	clock.Advance(15 * time.Second)
	time.Sleep(20 * time.Millisecond)

	assert.Empty(t, target.getFrames())
	assert.Equal(t, 0, r.Snapshot().Index())
}

func TestRotator_AutoAdvanceOncePerInterval(t *testing.T) {
	target := &recordingTarget{}
	r, clock := startRotator(t, target)
	ctx := context.Background()

	require.NoError(t, r.Load(ctx, items(10)))
	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	clock.Advance(4999 * time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, target.count(domain.TriggerAuto), "no tick before the first period elapses")

	clock.Advance(time.Millisecond)
	require.Eventually(t, func() bool { return target.count(domain.TriggerAuto) == 1 }, time.Second, time.Millisecond)

	// manual steps in between must not reset the period
	clock.Advance(3 * time.Second)
	_, err := r.Advance(ctx, Forward)
	require.NoError(t, err)
	_, err = r.Advance(ctx, Backward)
	require.NoError(t, err)
	clock.Advance(2 * time.Second)
	require.Eventually(t, func() bool { return target.count(domain.TriggerAuto) == 2 }, time.Second, time.Millisecond)

	clock.Advance(5 * time.Second)
	require.Eventually(t, func() bool { return target.count(domain.TriggerAuto) == 3 }, time.Second, time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 3, target.count(domain.TriggerAuto))
	assert.Equal(t, 2, target.count(domain.TriggerManual))
	assert.Equal(t, 3, r.Snapshot().Index())
}

func TestRotator_ManualAndAutoShareIndex(t *testing.T) {
	target := &recordingTarget{}
	r, clock := startRotator(t, target)
	ctx := context.Background()

	require.NoError(t, r.Load(ctx, items(10)))

	frame, err := r.Advance(ctx, Backward)
	require.NoError(t, err)
	assert.Equal(t, 7, frame.Index)
	assert.Equal(t, -7*320, frame.Offset)
	assert.Equal(t, domain.TriggerManual, frame.Trigger)

	clock.Advance(5 * time.Second)
	require.Eventually(t, func() bool { return target.count(domain.TriggerAuto) == 1 }, time.Second, time.Millisecond)

	frames := target.getFrames()
	last := frames[len(frames)-1]
	assert.Equal(t, 0, last.Index, "auto step from max index wraps to 0")
	assert.Equal(t, 0, r.Snapshot().Index())
}

func TestRotator_InvalidDirection(t *testing.T) {
	target := &recordingTarget{}
	r, _ := startRotator(t, target)
	require.NoError(t, r.Load(context.Background(), items(10)))

	_, err := r.Advance(context.Background(), Direction(3))

	require.ErrorIs(t, err, domain.ErrInvalidDirection)
	assert.Equal(t, 0, r.Snapshot().Index())
	assert.Len(t, target.getFrames(), 1)
}

func TestRotator_DetachedTargetSkipsRedraw(t *testing.T) {
	target := &recordingTarget{}
	r, _ := startRotator(t, target)
	require.NoError(t, r.Load(context.Background(), items(10)))
	target.detach()

	frame, err := r.Advance(context.Background(), Forward)

	require.NoError(t, err)
	assert.Equal(t, 1, frame.Index)
	assert.Len(t, target.getFrames(), 1, "only the load frame was drawn")
}

func TestRotator_NilTarget(t *testing.T) {
	r, _ := startRotator(t, nil)
	require.NoError(t, r.Load(context.Background(), items(10)))

	frame, err := r.Advance(context.Background(), Forward)

	require.NoError(t, err)
	assert.Equal(t, 1, frame.Index)
}

func TestRotator_StopCancelsTicker(t *testing.T) {
	target := &recordingTarget{}
	r, clock := startRotator(t, target)
	require.NoError(t, r.Load(context.Background(), items(10)))

	r.Stop()
	r.Stop()
	clock.Advance(30 * time.Second)
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, 0, target.count(domain.TriggerAuto))
	_, err := r.Advance(context.Background(), Forward)
	require.ErrorIs(t, err, domain.ErrRotatorStopped)
	require.ErrorIs(t, r.Load(context.Background(), items(3)), domain.ErrRotatorStopped)
}

func TestRotator_StopBeforeRun(t *testing.T) {
	r := NewRotator[int](Options{}, nil, clockwork.NewFakeClock())

	r.Stop()
	r.Run(context.Background())

	_, err := r.Advance(context.Background(), Forward)
	require.ErrorIs(t, err, domain.ErrRotatorStopped)
}
