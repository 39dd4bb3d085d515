package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/metaquant/engel-landing/internal/adapter/metrics"
	"github.com/metaquant/engel-landing/internal/app"
	"github.com/metaquant/engel-landing/internal/domain"
	apperrors "github.com/metaquant/engel-landing/internal/platform/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticReviews []domain.Review

func (s staticReviews) Reviews(context.Context) ([]domain.Review, error) {
	return s, nil
}

type testServer struct {
	url     string
	views   *app.ViewService
	limits  *Limits
	metrics *metrics.WebSocketMetrics
}

func newTestServer(t *testing.T, maxConnections int64) *testServer {
	t.Helper()

	items := make(staticReviews, 5)
	for i := range items {
		items[i] = domain.Review{Name: fmt.Sprintf("reviewer %d", i), Rating: 4}
	}

	views := app.NewViewService(items, app.ViewOptions{}, clockwork.NewFakeClock(), nil)
	limits := NewLimits(maxConnections, 10, 100, 100, clockwork.NewRealClock())
	m := metrics.NewWebSocketMetrics(metrics.NewRegistry())
	h := NewViewHandler(views, limits, nil, m, clockwork.NewRealClock())

	e := echo.New()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if appErr := apperrors.AsStructuredError(err); appErr != nil {
			_ = c.JSON(appErr.HTTPStatus(), appErr.ToResponse())
			return
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
	e.GET("/ws/view", h.Handle)

	srv := httptest.NewServer(e)
	t.Cleanup(func() {
		views.Shutdown()
		srv.Close()
	})

	return &testServer{
		url:     "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/view",
		views:   views,
		limits:  limits,
		metrics: m,
	}
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// readUntil reads frames until match returns true or the deadline passes.
func readUntil(t *testing.T, conn *websocket.Conn, match func(domain.Frame) bool) domain.Frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	for {
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)

		var frame domain.Frame
		require.NoError(t, json.Unmarshal(data, &frame))
		if match(frame) {
			return frame
		}
	}
}

func isCarousel(trigger domain.Trigger) func(domain.Frame) bool {
	return func(f domain.Frame) bool {
		return f.Type == domain.FrameCarousel && f.Carousel.Trigger == trigger
	}
}

func TestViewHandler_StreamsInitialFrames(t *testing.T) {
	ts := newTestServer(t, 10)
	conn := dial(t, ts.url)

	reviews := readUntil(t, conn, func(f domain.Frame) bool { return f.Type == domain.FrameReviews })
	assert.Len(t, reviews.Reviews, 5)

	load := readUntil(t, conn, isCarousel(domain.TriggerLoad))
	assert.Equal(t, 0, load.Carousel.Index)
	assert.Equal(t, 2, load.Carousel.MaxIndex)

	assert.Equal(t, 1, ts.views.Active())
	assert.Equal(t, 1.0, testutil.ToFloat64(ts.metrics.ActiveConnections))
}

func TestViewHandler_ManualAdvance(t *testing.T) {
	ts := newTestServer(t, 10)
	conn := dial(t, ts.url)
	readUntil(t, conn, isCarousel(domain.TriggerLoad))

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"advance","direction":1}`)))
	frame := readUntil(t, conn, isCarousel(domain.TriggerManual))
	assert.Equal(t, 1, frame.Carousel.Index)
	assert.Equal(t, -320, frame.Carousel.Offset)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"advance","direction":-1}`)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"advance","direction":-1}`)))
	readUntil(t, conn, isCarousel(domain.TriggerManual))
	frame = readUntil(t, conn, isCarousel(domain.TriggerManual))
	assert.Equal(t, 2, frame.Carousel.Index, "stepping back from 0 wraps to the last window")
}

func TestViewHandler_InvalidMessageKeepsConnection(t *testing.T) {
	ts := newTestServer(t, 10)
	conn := dial(t, ts.url)
	readUntil(t, conn, isCarousel(domain.TriggerLoad))

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"advance","direction":5}`)))
	errFrame := readUntil(t, conn, func(f domain.Frame) bool { return f.Type == domain.FrameError })
	assert.Contains(t, errFrame.Error, "direction")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"advance","direction":1}`)))
	frame := readUntil(t, conn, isCarousel(domain.TriggerManual))
	assert.Equal(t, 1, frame.Carousel.Index)
}

func TestViewHandler_DisconnectClosesView(t *testing.T) {
	ts := newTestServer(t, 10)
	conn := dial(t, ts.url)
	readUntil(t, conn, isCarousel(domain.TriggerLoad))

	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool {
		return ts.views.Active() == 0 && ts.limits.Current() == 0
	}, 3*time.Second, 10*time.Millisecond)
	assert.Equal(t, 0.0, testutil.ToFloat64(ts.metrics.ActiveConnections))
}

func TestViewHandler_RejectsOverLimit(t *testing.T) {
	ts := newTestServer(t, 1)
	conn := dial(t, ts.url)
	readUntil(t, conn, isCarousel(domain.TriggerLoad))

	_, resp, err := websocket.DefaultDialer.Dial(ts.url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, 1.0, testutil.ToFloat64(ts.metrics.RejectedConnections))
}

func TestViewHandler_ServerShutdownDisconnects(t *testing.T) {
	ts := newTestServer(t, 10)
	conn := dial(t, ts.url)
	readUntil(t, conn, isCarousel(domain.TriggerLoad))

	ts.views.Shutdown()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
			break
		}
	}
	require.Eventually(t, func() bool { return ts.limits.Current() == 0 }, 3*time.Second, 10*time.Millisecond)
}

func TestViewHandler_RefusesUpgradesAfterShutdown(t *testing.T) {
	ts := newTestServer(t, 10)
	ts.views.Shutdown()

	_, resp, err := websocket.DefaultDialer.Dial(ts.url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, 0, ts.views.Active())
	assert.Equal(t, int64(0), ts.limits.Current())
}
