package sync

import (
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const defaultWriteTimeout = 2 * time.Second

// Hub fans JSON events out to line-oriented TCP clients and websocket
// clients. A client that fails a write is dropped.
//
// mu guards membership only. Each client has its own write lock so a slow
// peer never blocks Add, Remove or writes to the other clients.
type Hub struct {
	Log          *zap.Logger
	WriteTimeout time.Duration

	mu        sync.Mutex
	clients   map[net.Conn]*sync.Mutex
	wsClients map[*websocket.Conn]*sync.Mutex
}

type Stats struct {
	TCPClients int `json:"tcp_clients"`
	WSClients  int `json:"ws_clients"`
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		Log:          log,
		WriteTimeout: defaultWriteTimeout,
		clients:      make(map[net.Conn]*sync.Mutex),
		wsClients:    make(map[*websocket.Conn]*sync.Mutex),
	}
}

func (h *Hub) Add(conn net.Conn) {
	h.mu.Lock()
	h.clients[conn] = &sync.Mutex{}
	h.mu.Unlock()
}

func (h *Hub) Remove(conn net.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	_ = conn.Close()
}

func (h *Hub) AddWS(ws *websocket.Conn) {
	h.mu.Lock()
	h.wsClients[ws] = &sync.Mutex{}
	h.mu.Unlock()
}

func (h *Hub) RemoveWS(ws *websocket.Conn) {
	h.mu.Lock()
	delete(h.wsClients, ws)
	h.mu.Unlock()
	_ = ws.Close()
}

// BroadcastJSON returns once every client has been written to or dropped.
func (h *Hub) BroadcastJSON(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		h.Log.Error("marshal hub event", zap.String("type", fmt.Sprintf("%T", v)), zap.Error(err))
		return
	}
	b = append(b, '\n')

	h.mu.Lock()
	tcp := make(map[net.Conn]*sync.Mutex, len(h.clients))
	for c, wmu := range h.clients {
		tcp[c] = wmu
	}
	ws := make(map[*websocket.Conn]*sync.Mutex, len(h.wsClients))
	for c, wmu := range h.wsClients {
		ws[c] = wmu
	}
	h.mu.Unlock()

	var wg sync.WaitGroup
	for c, wmu := range tcp {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := h.writeTCP(c, wmu, b); err != nil {
				h.Log.Debug("dropping tcp client", zap.String("remote", c.RemoteAddr().String()), zap.Error(err))
				h.Remove(c)
			}
		}()
	}
	for c, wmu := range ws {
		wg.Add(1)
		go func() {
			defer wg.Done()
			wmu.Lock()
			_ = c.SetWriteDeadline(time.Now().Add(h.WriteTimeout))
			err := c.WriteMessage(websocket.TextMessage, b)
			wmu.Unlock()
			if err != nil {
				h.Log.Debug("dropping ws client", zap.Error(err))
				h.RemoveWS(c)
			}
		}()
	}
	wg.Wait()
}

func (h *Hub) writeTCP(c net.Conn, wmu *sync.Mutex, b []byte) error {
	wmu.Lock()
	defer wmu.Unlock()
	_ = c.SetWriteDeadline(time.Now().Add(h.WriteTimeout))
	_, err := c.Write(b)
	return err
}

func (h *Hub) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Stats{
		TCPClients: len(h.clients),
		WSClients:  len(h.wsClients),
	}
}

// CloseAll disconnects every client; used on shutdown.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		_ = c.Close()
		delete(h.clients, c)
	}
	for ws := range h.wsClients {
		_ = ws.Close()
		delete(h.wsClients, ws)
	}
}

// Welcome greets a client registered with Add.
func (h *Hub) Welcome(conn net.Conn) {
	h.mu.Lock()
	wmu, ok := h.clients[conn]
	n := len(h.clients)
	h.mu.Unlock()
	if !ok {
		return
	}
	msg := fmt.Sprintf("{\"type\":\"welcome\",\"message\":\"connected\",\"clients\":%d}\n", n)
	_ = h.writeTCP(conn, wmu, []byte(msg))
}
