// Package monitor broadcasts live order-parameter frames from a running
// MC/US driver to connected WebSocket clients, and exposes a small HTTP
// surface for health and last-known status.
package monitor

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/Biochemical-Networks/actinringsmc/internal/ring"
	"github.com/gorilla/websocket"
)

// Frame is one broadcast unit: an order-parameters row plus the run
// identifier it belongs to (a single monitor can be shared by a US
// driver running many iterations).
type Frame struct {
	FileBase string         `json:"filebase"`
	Iter     int            `json:"iter"`
	Record   ring.OpsRecord `json:"record"`
}

// Monitor fans out Frames to every connected WebSocket client and keeps
// the most recent one around for the HTTP status endpoint.
type Monitor struct {
	mu         sync.RWMutex
	clients    map[*websocket.Conn]bool
	upgrader   websocket.Upgrader
	broadcast  chan Frame
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	done       chan struct{}
	wg         sync.WaitGroup

	last Frame
	seen bool
}

// NewMonitor starts the broadcaster goroutine and returns a ready
// Monitor.
func NewMonitor() *Monitor {
	m := &Monitor{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan Frame, 256),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
	m.wg.Add(1)
	go m.run()
	return m
}

// Publish enqueues a frame for broadcast. It never blocks the caller
// (the MC driver) for more than a second; a full queue drops the frame
// rather than stall a run.
func (m *Monitor) Publish(f Frame) {
	select {
	case m.broadcast <- f:
	case <-m.done:
	case <-time.After(time.Second):
	}
}

// RegisterClient adds a new WebSocket connection to the broadcast set.
func (m *Monitor) RegisterClient(conn *websocket.Conn) {
	select {
	case m.register <- conn:
	case <-m.done:
	}
}

// UnregisterClient removes a WebSocket connection from the broadcast
// set and closes it.
func (m *Monitor) UnregisterClient(conn *websocket.Conn) {
	select {
	case m.unregister <- conn:
	case <-m.done:
	}
}

// LastFrame returns the most recently broadcast frame, if any.
func (m *Monitor) LastFrame() (Frame, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.last, m.seen
}

func (m *Monitor) run() {
	defer m.wg.Done()
	for {
		select {
		case <-m.done:
			return

		case conn := <-m.register:
			if conn == nil {
				continue
			}
			m.mu.Lock()
			m.clients[conn] = true
			m.mu.Unlock()

		case conn := <-m.unregister:
			if conn == nil {
				continue
			}
			m.mu.Lock()
			if _, ok := m.clients[conn]; ok {
				delete(m.clients, conn)
				conn.Close()
			}
			m.mu.Unlock()

		case frame := <-m.broadcast:
			m.mu.Lock()
			m.last = frame
			m.seen = true
			m.mu.Unlock()

			data, err := json.Marshal(frame)
			if err != nil {
				continue
			}

			m.mu.RLock()
			conns := make([]*websocket.Conn, 0, len(m.clients))
			for conn := range m.clients {
				conns = append(conns, conn)
			}
			m.mu.RUnlock()

			var dead []*websocket.Conn
			for _, conn := range conns {
				conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
				if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
					dead = append(dead, conn)
					conn.Close()
				}
			}
			if len(dead) > 0 {
				m.mu.Lock()
				for _, conn := range dead {
					delete(m.clients, conn)
				}
				m.mu.Unlock()
			}
		}
	}
}

// Close stops the broadcaster goroutine and closes every connected
// client. It only ever closes m.done, never broadcast/register/unregister:
// Publish/RegisterClient/UnregisterClient select on m.done as their exit
// case, so closing those channels too would race a concurrent send
// against the close and could panic.
func (m *Monitor) Close() error {
	close(m.done)

	m.mu.Lock()
	for conn := range m.clients {
		conn.Close()
		delete(m.clients, conn)
	}
	m.mu.Unlock()

	m.wg.Wait()
	return nil
}

// Upgrader exposes the configured websocket.Upgrader for HTTP handlers.
func (m *Monitor) Upgrader() websocket.Upgrader {
	return m.upgrader
}
