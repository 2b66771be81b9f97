package api

import (
	"errors"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"spider-kingdom/internal/lobby"
	"spider-kingdom/internal/protocol"
)

const (
	writeWait      = 5 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 50 * time.Second
	maxMessageSize = 2048
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if IsAllowedOrigin(origin) {
			return true
		}
		log.Printf("⚠️ Rejected WebSocket origin: %s", origin)
		RecordConnectionRejected("origin")
		return false
	},
}

// wsConn adapts a gorilla websocket to the lobby.Conn interface.
// Gorilla connections allow one concurrent writer, so Send serializes
// through a mutex; the lobby tick goroutine and the ping loop both write.
type wsConn struct {
	conn   *websocket.Conn
	mu     sync.Mutex
	closed atomic.Bool
}

func (c *wsConn) Send(data []byte) error {
	if c.closed.Load() {
		return errors.New("connection closed")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		c.closed.Store(true)
		return err
	}
	return nil
}

func (c *wsConn) IsOpen() bool {
	return !c.closed.Load()
}

func (c *wsConn) close() {
	if c.closed.CompareAndSwap(false, true) {
		c.conn.Close()
	}
}

// WebSocketHandler upgrades HTTP requests and bridges them to lobby sessions.
type WebSocketHandler struct {
	manager   *lobby.Manager
	wsLimiter *WebSocketRateLimiter
	maxTotal  int

	active int64 // atomic
}

// NewWebSocketHandler creates a WebSocket handler backed by the lobby manager.
func NewWebSocketHandler(manager *lobby.Manager, maxTotal, maxPerIP int) *WebSocketHandler {
	return &WebSocketHandler{
		manager:   manager,
		wsLimiter: NewWebSocketRateLimiter(maxPerIP),
		maxTotal:  maxTotal,
	}
}

// ServeHTTP handles a WebSocket upgrade request.
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ip := GetClientIP(r)

	if int(atomic.LoadInt64(&h.active)) >= h.maxTotal {
		RecordConnectionRejected("ws_total_limit")
		http.Error(w, "Server at capacity", http.StatusServiceUnavailable)
		return
	}

	if !h.wsLimiter.Allow(ip) {
		RecordConnectionRejected("ws_ip_limit")
		http.Error(w, "Too many connections from this IP", http.StatusTooManyRequests)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.wsLimiter.Release(ip)
		log.Printf("⚠️ WebSocket upgrade failed: %v", err)
		return
	}

	wc := &wsConn{conn: conn}

	session, err := h.manager.Assign(wc)
	if err != nil {
		RecordConnectionRejected("server_full")
		wc.close()
		h.wsLimiter.Release(ip)
		return
	}

	atomic.AddInt64(&h.active, 1)
	UpdateWSConnections(int(atomic.LoadInt64(&h.active)))
	log.Printf("🕷️ Player %s connected from %s (lobby %d)", session.PlayerID, ip, session.LobbyID())

	go h.pingLoop(wc)
	h.readLoop(wc, session)

	session.Close()
	wc.close()
	h.wsLimiter.Release(ip)
	atomic.AddInt64(&h.active, -1)
	UpdateWSConnections(int(atomic.LoadInt64(&h.active)))
	log.Printf("👋 Player %s disconnected", session.PlayerID)
}

func (h *WebSocketHandler) readLoop(wc *wsConn, session *lobby.Session) {
	wc.conn.SetReadLimit(maxMessageSize)
	wc.conn.SetReadDeadline(time.Now().Add(pongWait))
	wc.conn.SetPongHandler(func(string) error {
		wc.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := wc.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("⚠️ WebSocket read error for %s: %v", session.PlayerID, err)
			}
			return
		}

		cmd, err := protocol.Parse(data)
		if err != nil {
			switch {
			case errors.Is(err, protocol.ErrUnknownKind):
				RecordCommandRejected("unknown_kind")
			default:
				RecordCommandRejected("parse")
			}
			continue
		}

		session.Deliver(cmd)
	}
}

func (h *WebSocketHandler) pingLoop(wc *wsConn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for range ticker.C {
		if !wc.IsOpen() {
			return
		}
		wc.mu.Lock()
		wc.conn.SetWriteDeadline(time.Now().Add(writeWait))
		err := wc.conn.WriteMessage(websocket.PingMessage, nil)
		wc.mu.Unlock()
		if err != nil {
			wc.closed.Store(true)
			return
		}
	}
}
