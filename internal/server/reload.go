package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/druskus20/bageri/internal/logging"
)

// reloadHub tracks the browsers connected to the live-reload endpoint.
type reloadHub struct {
	logger *logging.Logger

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func newReloadHub(logger *logging.Logger) *reloadHub {
	return &reloadHub{
		logger: logger.WithComponent("server"),
		conns:  make(map[*websocket.Conn]struct{}),
	}
}

// handle upgrades a reload subscription. The connection is held open until
// the client goes away; the read loop exists only to observe the close.
func (h *reloadHub) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		// The dev server binds to loopback only; any local page may connect.
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.logger.Debug("websocket upgrade failed", "reason", err.Error())
		return
	}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	total := len(h.conns)
	h.mu.Unlock()
	h.logger.Debug("reload client connected", "total", total)

	ctx := r.Context()
	for {
		if _, _, err := conn.Read(ctx); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	_ = conn.CloseNow()
	h.logger.Debug("reload client disconnected")
}

// broadcast sends a reload message to every connected client. Clients that
// fail to receive are dropped.
func (h *reloadHub) broadcast() {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	if len(conns) == 0 {
		return
	}
	h.logger.Debug("broadcasting reload", "clients", len(conns))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, c := range conns {
		if err := c.Write(ctx, websocket.MessageText, []byte("reload")); err != nil {
			h.mu.Lock()
			delete(h.conns, c)
			h.mu.Unlock()
			_ = c.CloseNow()
		}
	}
}

// closeAll drops every client, used at shutdown.
func (h *reloadHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns {
		_ = c.Close(websocket.StatusGoingAway, "server shutting down")
		delete(h.conns, c)
	}
}
