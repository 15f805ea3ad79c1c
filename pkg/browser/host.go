// Package browser implements the nav.History capability against a real
// browser tab. A thin JavaScript client connects over WebSocket, mirrors
// pushState/replaceState/history.go calls issued by the host, and reports
// address-bar snapshots back: solicited ones as replies to push/replace,
// unsolicited ones whenever the tab navigates on its own (popstate, or
// hashchange on engines that need the fallback event).
package browser

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/navio-dev/navio/pkg/browser/client"
	"github.com/navio-dev/navio/pkg/nav"
	"github.com/navio-dev/navio/pkg/protocol"
)

// bootstrapPage is the minimal shell served for every page route. The
// client script reconnects to the live endpoint and takes over history.
const bootstrapPage = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>navio</title></head>
<body>
<script src="/navio/client.js"></script>
</body>
</html>
`

// liveConn is one attached browser tab.
type liveConn struct {
	ws   *websocket.Conn
	send chan []byte

	once sync.Once
	done chan struct{}
}

func (c *liveConn) close() {
	c.once.Do(func() {
		close(c.done)
		c.ws.Close()
	})
}

// Host is a nav.History implementation backed by a browser tab over
// WebSocket. At most one tab is attached at a time; a newly connecting
// tab replaces the previous one.
//
// The capability contract has no error path, so Host degrades instead of
// failing: with no tab attached (or a reply timing out) the last known
// snapshot is returned and the operation is dropped, the same way a
// detached platform would simply not move.
type Host struct {
	config  *Config
	logger  *slog.Logger
	journal *Journal

	upgrader websocket.Upgrader

	seq    atomic.Uint64
	notifs chan struct{}

	readyOnce sync.Once
	ready     chan struct{}

	mu      sync.Mutex
	conn    *liveConn
	loc     nav.Location
	pending map[uint64]chan nav.Location
}

// NewHost creates a browser host. A nil config uses DefaultConfig.
func NewHost(config *Config) (*Host, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	h := &Host{
		config:  config,
		logger:  slog.Default().With("component", "browser"),
		journal: NewJournal(config.JournalSize),
		notifs:  make(chan struct{}, 1),
		ready:   make(chan struct{}),
		pending: make(map[uint64]chan nav.Location),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     config.CheckOrigin,
	}
	return h, nil
}

// SetLogger replaces the host logger.
func (h *Host) SetLogger(logger *slog.Logger) {
	h.logger = logger
}

// Journal returns the navigation journal.
func (h *Host) Journal() *Journal {
	return h.journal
}

// Handler returns the HTTP surface of the host:
//
//	GET /navio/client.js  the embedded thin client
//	GET /navio/live       WebSocket upgrade
//	GET /*                application shell
//
// Mount it directly or hang the /navio routes off an existing router.
func (h *Host) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/navio/client.js", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/javascript")
		w.Write(client.JS)
	})
	r.Get("/navio/live", h.handleLive)
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(bootstrapPage))
	})
	return r
}

// WaitReady blocks until a tab has completed its handshake or ctx is done.
func (h *Host) WaitReady(ctx context.Context) error {
	select {
	case <-h.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close detaches the current tab, sending an orderly close frame first.
func (h *Host) Close() {
	h.mu.Lock()
	c := h.conn
	h.mu.Unlock()
	if c == nil {
		return
	}
	if frame, err := protocol.EncodeFrame(protocol.FrameControl, protocol.EncodeControl(&protocol.Control{
		Type:   protocol.ControlClose,
		Reason: protocol.CloseServerShutdown,
	})); err == nil {
		select {
		case c.send <- frame:
		default:
		}
	}
	c.close()
}

// =============================================================================
// nav.History capability
// =============================================================================

// Location returns the last snapshot reported by the tab.
func (h *Host) Location() nav.Location {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loc
}

// PushURL asks the tab to push a new history entry and returns the
// resulting snapshot.
func (h *Host) PushURL(url string) nav.Location {
	return h.request(protocol.NavPush, url)
}

// ReplaceURL asks the tab to replace the current history entry and
// returns the resulting snapshot.
func (h *Host) ReplaceURL(url string) nav.Location {
	return h.request(protocol.NavReplace, url)
}

// Go asks the tab to traverse its history stack. Fire-and-forget: the
// landing location arrives later as an unsolicited report.
func (h *Host) Go(n int) {
	payload := protocol.EncodeNav(&protocol.NavRequest{Op: protocol.NavGo, Steps: int64(n)})
	frame, err := protocol.EncodeFrame(protocol.FrameNav, payload)
	if err != nil {
		h.logger.Error("encode nav frame", "error", err)
		return
	}
	h.sendFrame(frame)
}

// Notifications returns the stream of externally-triggered navigations.
func (h *Host) Notifications() <-chan struct{} {
	return h.notifs
}

// request performs a push or replace round trip.
func (h *Host) request(op protocol.NavOp, url string) nav.Location {
	seq := h.seq.Add(1)
	reply := make(chan nav.Location, 1)

	h.mu.Lock()
	h.pending[seq] = reply
	h.mu.Unlock()

	payload := protocol.EncodeNav(&protocol.NavRequest{Op: op, Seq: seq, URL: url})
	frame, err := protocol.EncodeFrame(protocol.FrameNav, payload)
	if err != nil || !h.sendFrame(frame) {
		h.dropPending(seq)
		return h.Location()
	}

	select {
	case loc := <-reply:
		return loc
	case <-time.After(h.config.ReplyTimeout):
		h.logger.Warn("nav reply timed out", "op", op, "url", url)
		h.dropPending(seq)
		return h.Location()
	}
}

func (h *Host) dropPending(seq uint64) {
	h.mu.Lock()
	delete(h.pending, seq)
	h.mu.Unlock()
}

// sendFrame queues a frame for the attached tab. Returns false when no
// tab is attached or its queue is full.
func (h *Host) sendFrame(frame []byte) bool {
	h.mu.Lock()
	c := h.conn
	h.mu.Unlock()
	if c == nil {
		return false
	}
	select {
	case c.send <- frame:
		return true
	default:
		h.logger.Warn("send queue full, dropping frame")
		return false
	}
}

// =============================================================================
// Connection handling
// =============================================================================

// handleLive upgrades the connection and runs the read loop. The previous
// tab, if any, is detached first.
func (h *Host) handleLive(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("upgrade failed", "error", err)
		return
	}

	c := &liveConn{
		ws:   ws,
		send: make(chan []byte, h.config.SendQueue),
		done: make(chan struct{}),
	}

	h.mu.Lock()
	prev := h.conn
	h.conn = c
	h.mu.Unlock()
	if prev != nil {
		h.logger.Info("tab replaced")
		prev.close()
	}

	go h.writeLoop(c)
	h.readLoop(c)

	h.mu.Lock()
	if h.conn == c {
		h.conn = nil
	}
	h.mu.Unlock()
	c.close()
}

// readLoop reads frames from the tab until the connection drops.
func (h *Host) readLoop(c *liveConn) {
	c.ws.SetReadLimit(h.config.MaxMessageSize)

	for {
		c.ws.SetReadDeadline(time.Now().Add(h.config.ReadTimeout))
		_, msg, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				h.logger.Error("read error", "error", err)
			}
			return
		}

		frame, err := protocol.DecodeFrame(msg)
		if err != nil {
			h.logger.Error("frame decode error", "error", err)
			continue
		}

		switch frame.Type {
		case protocol.FrameHandshake:
			h.handleHandshake(frame.Payload)

		case protocol.FrameLocation:
			h.handleLocation(frame.Payload)

		case protocol.FrameControl:
			if h.handleControl(c, frame.Payload) {
				return
			}

		default:
			h.logger.Warn("unexpected frame type", "type", frame.Type)
		}
	}
}

// writeLoop sends queued frames and heartbeat pings to the tab.
func (h *Host) writeLoop(c *liveConn) {
	ticker := time.NewTicker(h.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case frame := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(h.config.WriteTimeout))
			if err := c.ws.WriteMessage(websocket.BinaryMessage, frame); err != nil {
				h.logger.Error("write error", "error", err)
				c.close()
				return
			}

		case <-ticker.C:
			ping, err := protocol.EncodeFrame(protocol.FrameControl, protocol.EncodeControl(&protocol.Control{
				Type:      protocol.ControlPing,
				Timestamp: uint64(time.Now().UnixMilli()),
			}))
			if err != nil {
				continue
			}
			c.ws.SetWriteDeadline(time.Now().Add(h.config.WriteTimeout))
			if err := c.ws.WriteMessage(websocket.BinaryMessage, ping); err != nil {
				c.close()
				return
			}

		case <-c.done:
			return
		}
	}
}

// handleHandshake records the tab's starting location and marks the host
// ready.
func (h *Host) handleHandshake(payload []byte) {
	hs, err := protocol.DecodeHandshake(payload)
	if err != nil {
		h.logger.Error("handshake decode error", "error", err)
		return
	}

	h.mu.Lock()
	h.loc = hs.Location
	h.mu.Unlock()
	h.journal.Add(hs.Location, false)

	h.logger.Info("tab attached",
		"href", hs.Location.Href,
		"fallback_events", hs.Fallback)
	h.readyOnce.Do(func() { close(h.ready) })
}

// handleLocation routes a location report: solicited reports answer a
// pending push/replace, unsolicited ones are external navigations.
func (h *Host) handleLocation(payload []byte) {
	report, err := protocol.DecodeLocation(payload)
	if err != nil {
		h.logger.Error("location decode error", "error", err)
		return
	}

	h.mu.Lock()
	h.loc = report.Location
	reply := h.pending[report.Seq]
	delete(h.pending, report.Seq)
	h.mu.Unlock()

	if reply != nil {
		h.journal.Add(report.Location, false)
		reply <- report.Location
		return
	}

	h.journal.Add(report.Location, true)
	select {
	case h.notifs <- struct{}{}:
	default:
	}
}

// handleControl answers pings and honors close requests. Returns true
// when the read loop should stop.
func (h *Host) handleControl(c *liveConn, payload []byte) bool {
	ctl, err := protocol.DecodeControl(payload)
	if err != nil {
		h.logger.Error("control decode error", "error", err)
		return false
	}

	switch ctl.Type {
	case protocol.ControlPing:
		pong, err := protocol.EncodeFrame(protocol.FrameControl, protocol.EncodeControl(&protocol.Control{
			Type:      protocol.ControlPong,
			Timestamp: ctl.Timestamp,
		}))
		if err == nil {
			select {
			case c.send <- pong:
			default:
			}
		}

	case protocol.ControlPong:
		h.logger.Debug("received pong")

	case protocol.ControlClose:
		h.logger.Info("tab closing", "reason", ctl.Reason, "message", ctl.Message)
		return true
	}
	return false
}
