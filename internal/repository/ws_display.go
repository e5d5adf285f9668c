package repository

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"Wallboard/internal/domain/models"
	"Wallboard/pkg/logger"
)

const (
	FramePayloads = "payloads"
	FrameScene    = "scene"
	FrameStatus   = "status"
	FrameClock    = "clock"

	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingInterval = 54 * time.Second
	sendBuffer   = 64
)

// replayOrder is the order in which cached frames are sent to a new client.
var replayOrder = []string{FramePayloads, FrameScene, FrameStatus, FrameClock}

// Frame is the JSON envelope pushed to browser pages.
type Frame struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

// WSDisplay broadcasts every display update to connected websocket clients.
// Clients that fall behind are dropped rather than blocking the scheduler.
type WSDisplay struct {
	log      *logger.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*wsClient]struct{}
	last    map[string][]byte
	closed  bool
}

func NewWSDisplay(log *logger.Logger) *WSDisplay {
	if log == nil {
		log = logger.Nop()
	}
	return &WSDisplay{
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// pages are served from anywhere on the local network
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*wsClient]struct{}),
		last:    make(map[string][]byte),
	}
}

func (d *WSDisplay) Render(p models.ScenePayloads)     { d.broadcast(FramePayloads, p) }
func (d *WSDisplay) ShowScene(v models.SceneView)      { d.broadcast(FrameScene, v) }
func (d *WSDisplay) ShowStatus(s models.StatusReadout) { d.broadcast(FrameStatus, s) }
func (d *WSDisplay) ShowClock(now string)              { d.broadcast(FrameClock, now) }

// Clients returns the number of connected clients.
func (d *WSDisplay) Clients() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.clients)
}

// ServeHTTP upgrades the request and replays the latest frame of each type.
func (d *WSDisplay) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := d.upgrader.Upgrade(w, r, nil)
	if err != nil {
		d.log.Warn("websocket upgrade failed", logger.Error(err))
		return
	}
	c := &wsClient{conn: conn, send: make(chan []byte, sendBuffer)}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		_ = conn.Close()
		return
	}
	for _, typ := range replayOrder {
		if b, ok := d.last[typ]; ok {
			c.send <- b
		}
	}
	d.clients[c] = struct{}{}
	n := len(d.clients)
	d.mu.Unlock()

	d.log.Info("display client connected",
		logger.String("remote", r.RemoteAddr),
		logger.Int("clients", n),
	)

	go d.writePump(c)
	go d.readPump(c)
}

// Close disconnects every client. Later updates are still cached but not sent.
func (d *WSDisplay) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	for c := range d.clients {
		close(c.send)
		delete(d.clients, c)
	}
}

func (d *WSDisplay) broadcast(typ string, data any) {
	b, err := json.Marshal(Frame{Type: typ, Data: data})
	if err != nil {
		d.log.Error("encode display frame", logger.String("type", typ), logger.Error(err))
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.last[typ] = b
	for c := range d.clients {
		select {
		case c.send <- b:
		default:
			close(c.send)
			delete(d.clients, c)
			d.log.Warn("dropping slow display client")
		}
	}
}

func (d *WSDisplay) unregister(c *wsClient) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.clients[c]; ok {
		delete(d.clients, c)
		close(c.send)
	}
}

func (d *WSDisplay) writePump(c *wsClient) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump only watches for disconnects; clients never send commands.
func (d *WSDisplay) readPump(c *wsClient) {
	defer func() {
		d.unregister(c)
		_ = c.conn.Close()
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				d.log.Debug("display client read error", logger.Error(err))
			}
			return
		}
	}
}
