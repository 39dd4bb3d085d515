package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/metaquant/engel-landing/internal/adapter/metrics"
	"github.com/metaquant/engel-landing/internal/domain"
)

const (
	writeDeadline     = 5 * time.Second
	pingInterval      = 30 * time.Second
	pongDeadline      = 60 * time.Second
	messageBufferSize = 32
)

type outbound struct {
	typ     domain.FrameType
	payload []byte
}

// frameWriter owns all writes to one connection. Frames are queued and written by a
// single goroutine; a full queue drops the frame instead of blocking the view.
type frameWriter struct {
	connection  *websocket.Conn
	clock       clockwork.Clock
	metrics     *metrics.WebSocketMetrics
	sendChannel chan outbound
	doneChannel chan struct{}
	stopOnce    sync.Once
	wg          sync.WaitGroup
}

func newFrameWriter(connection *websocket.Conn, clock clockwork.Clock, m *metrics.WebSocketMetrics) *frameWriter {
	fw := &frameWriter{
		connection:  connection,
		clock:       clock,
		metrics:     m,
		sendChannel: make(chan outbound, messageBufferSize),
		doneChannel: make(chan struct{}),
	}
	fw.configurePongHandler()
	fw.wg.Add(1)
	go fw.run()
	return fw
}

// Send implements domain.FrameSink.
func (fw *frameWriter) Send(_ context.Context, frame domain.Frame) error {
	payload, err := json.Marshal(frame)
	if err != nil {
		return fmt.Errorf("encode %s frame: %w", frame.Type, err)
	}

	select {
	case <-fw.doneChannel:
		return domain.ErrTargetDetached
	default:
	}

	select {
	case fw.sendChannel <- outbound{typ: frame.Type, payload: payload}:
		return nil
	case <-fw.doneChannel:
		return domain.ErrTargetDetached
	default:
		if fw.metrics != nil {
			fw.metrics.FramesDropped.Inc()
		}
		slog.Warn("View send buffer full, frame dropped", "type", frame.Type)
		return nil
	}
}

func (fw *frameWriter) run() {
	ticker := fw.clock.NewTicker(pingInterval)
	defer ticker.Stop()
	defer fw.wg.Done()

	for {
		select {
		case msg := <-fw.sendChannel:
			fw.updateWriteDeadline()
			if err := fw.connection.WriteMessage(websocket.TextMessage, msg.payload); err != nil {
				slog.Debug("View write failed", "error", err)
				return
			}
			if fw.metrics != nil {
				fw.metrics.FramesSent.WithLabelValues(string(msg.typ)).Inc()
			}
		case <-ticker.Chan():
			fw.updateWriteDeadline()
			if err := fw.connection.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-fw.doneChannel:
			return
		}
	}
}

// stopGraceful sends a close frame with reason, then closes the connection.
func (fw *frameWriter) stopGraceful(reason string) {
	fw.stopOnce.Do(func() {
		close(fw.doneChannel)
		// the run goroutine must be gone before we write the close frame
		fw.wg.Wait()

		closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason)
		fw.updateWriteDeadline()
		_ = fw.connection.WriteMessage(websocket.CloseMessage, closeMsg)
		_ = fw.connection.Close()
	})
}

func (fw *frameWriter) configurePongHandler() {
	fw.updateReadDeadline()
	fw.connection.SetPongHandler(func(string) error {
		fw.updateReadDeadline()
		return nil
	})
}

func (fw *frameWriter) updateWriteDeadline() {
	_ = fw.connection.SetWriteDeadline(fw.clock.Now().Add(writeDeadline))
}

func (fw *frameWriter) updateReadDeadline() {
	_ = fw.connection.SetReadDeadline(fw.clock.Now().Add(pongDeadline))
}
