package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/okian/hueblend/internal/display"
	"github.com/okian/hueblend/pkg/metrics"
)

// Websocket timing.
const (
	streamWriteWait  = 10 * time.Second
	streamPongWait   = 60 * time.Second
	streamPingPeriod = streamPongWait * 9 / 10
)

// StreamDependencies defines the interface for live display updates.
type StreamDependencies interface {
	Subscribe(ctx context.Context) (string, <-chan display.Snapshot, func(), error)
}

// StreamHandler pushes display snapshots over a websocket.
type StreamHandler struct {
	deps     StreamDependencies
	upgrader websocket.Upgrader
}

// NewStreamHandler creates a new stream handler.
func NewStreamHandler(deps StreamDependencies) *StreamHandler {
	return &StreamHandler{
		deps: deps,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The page is served from the same binary; any origin may watch.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// HandleStream handles GET /display/stream. Each message is one JSON
// snapshot; the first reflects the state at connect time.
func (h *StreamHandler) HandleStream(w http.ResponseWriter, r *http.Request) {
	const op = "api.display_stream"
	if r.Method != http.MethodGet {
		methodNotAllowed(w, op, http.MethodGet)
		return
	}

	// Subscribe before upgrading so a refusal is still a plain HTTP error.
	_, snapshots, cancel, err := h.deps.Subscribe(r.Context())
	if err != nil {
		writeKindError(w, Wrap(op, err))
		return
	}
	defer cancel()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied.
		return
	}
	defer func() { _ = conn.Close() }()

	closed := make(chan struct{})
	go readUntilClosed(conn, closed)

	ping := time.NewTicker(streamPingPeriod)
	defer ping.Stop()

	for {
		select {
		case snap, ok := <-snapshots:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "display closed"),
					time.Now().Add(streamWriteWait))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteJSON(snap); err != nil {
				return
			}
			metrics.RecordStreamMessage()
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(streamWriteWait)); err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}

// readUntilClosed drains client frames so control messages are handled,
// and closes done once the peer goes away.
func readUntilClosed(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(streamPongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
