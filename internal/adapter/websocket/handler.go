package websocket

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/metaquant/engel-landing/internal/adapter/metrics"
	"github.com/metaquant/engel-landing/internal/app"
	"github.com/metaquant/engel-landing/internal/domain"
	"github.com/metaquant/engel-landing/internal/platform/correlation"
	apperrors "github.com/metaquant/engel-landing/internal/platform/errors"
)

const maxMessageSize = 1024

// ViewHandler upgrades page connections and binds each one to a new app.View.
type ViewHandler struct {
	views    *app.ViewService
	limits   *Limits
	metrics  *metrics.WebSocketMetrics
	clock    clockwork.Clock
	upgrader websocket.Upgrader
}

// NewViewHandler creates the view socket handler. m may be nil.
func NewViewHandler(views *app.ViewService, limits *Limits, checkOrigin func(*http.Request) bool, m *metrics.WebSocketMetrics, clock clockwork.Clock) *ViewHandler {
	return &ViewHandler{
		views:   views,
		limits:  limits,
		metrics: m,
		clock:   clock,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     checkOrigin,
		},
	}
}

// Handle serves GET /ws/view. It returns once the page disconnects.
func (h *ViewHandler) Handle(c echo.Context) error {
	r := c.Request()
	if !h.views.Accepting() {
		return apperrors.UnavailableError("shutting down")
	}

	ip := c.RealIP()
	if ok, reason := h.limits.Acquire(ip); !ok {
		if h.metrics != nil {
			h.metrics.RejectedConnections.Inc()
		}
		slog.WarnContext(r.Context(), "View connection rejected", "reason", reason, "ip", ip)
		return apperrors.UnavailableError("too many connections").WithContext("reason", string(reason))
	}
	defer h.limits.Release(ip)

	conn, err := h.upgrader.Upgrade(c.Response(), r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		slog.DebugContext(r.Context(), "View upgrade failed", "error", err)
		return nil
	}

	if h.metrics != nil {
		h.metrics.ActiveConnections.Inc()
		defer h.metrics.ActiveConnections.Dec()
	}

	writer := newFrameWriter(conn, h.clock, h.metrics)
	view, err := h.views.Open(r.Context(), writer)
	if err != nil {
		// Shutdown started between the check above and the upgrade.
		writer.stopGraceful("server shutting down")
		return nil
	}
	ctx := correlation.WithID(r.Context(), view.ID())

	// A view closed from elsewhere (server shutdown) must unblock the read loop below.
	go func() {
		<-view.Done()
		writer.stopGraceful("view closed")
	}()

	conn.SetReadLimit(maxMessageSize)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				slog.DebugContext(ctx, "View read failed", "error", err)
			}
			break
		}
		writer.updateReadDeadline()

		if err := view.HandleMessage(ctx, data); err != nil {
			if errors.Is(err, domain.ErrViewClosed) {
				break
			}
			slog.DebugContext(ctx, "Client message rejected", "error", err)
		}
	}

	view.Close()
	writer.stopGraceful("view closed")
	return nil
}
