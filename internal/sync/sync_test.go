package sync

import (
	"bufio"
	"encoding/json"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"slayervault/pkg/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func startServer(t *testing.T) (*Server, string, chan error) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := NewServer("", NewHub(nil), nil)
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ln) }()
	return srv, ln.Addr().String(), done
}

func readEvent(t *testing.T, r *bufio.Reader) map[string]any {
	t.Helper()
	line, err := r.ReadString('\n')
	require.NoError(t, err)
	var ev map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &ev))
	return ev
}

func waitClients(t *testing.T, hub *Hub, tcp, ws int) {
	t.Helper()
	require.Eventually(t, func() bool {
		s := hub.Stats()
		return s.TCPClients == tcp && s.WSClients == ws
	}, 5*time.Second, 10*time.Millisecond)
}

func TestServerBroadcastsToTCPClients(t *testing.T) {
	srv, addr, done := startServer(t)

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	r := bufio.NewReader(conn)

	welcome := readEvent(t, r)
	assert.Equal(t, "welcome", welcome["type"])
	waitClients(t, srv.Hub, 1, 0)

	srv.Hub.BroadcastJSON(OverrideEvent{
		Type:   EventOverrideUpdate,
		Slug:   "doma",
		Images: &models.Images{PosterURL: "X", GalleryURLs: []string{}},
		At:     time.Now().UTC(),
	})
	ev := readEvent(t, r)
	assert.Equal(t, EventOverrideUpdate, ev["type"])
	assert.Equal(t, "doma", ev["slug"])

	require.NoError(t, srv.Close())
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after Close")
	}
	assert.Equal(t, Stats{}, srv.Hub.Stats())
}

func TestServerClientDisconnect(t *testing.T) {
	srv, addr, done := startServer(t)

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	waitClients(t, srv.Hub, 1, 0)

	require.NoError(t, conn.Close())
	waitClients(t, srv.Hub, 0, 0)

	require.NoError(t, srv.Close())
	require.NoError(t, <-done)
}

func TestServerCloseBeforeServe(t *testing.T) {
	srv := NewServer("127.0.0.1:0", NewHub(nil), nil)
	require.NoError(t, srv.Close())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	assert.NoError(t, srv.Serve(ln))
}

func TestWebsocketClients(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub(nil)
	r := gin.New()
	r.GET("/ws", WSHandler(hub, nil))
	ts := httptest.NewServer(r)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	_ = ws.SetReadDeadline(time.Now().Add(5 * time.Second))

	_, msg, err := ws.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(msg), `"welcome"`)
	waitClients(t, hub, 0, 1)

	hub.BroadcastJSON(OverrideEvent{Type: EventOverrideReload, At: time.Now().UTC()})
	_, msg, err = ws.ReadMessage()
	require.NoError(t, err)
	var ev OverrideEvent
	require.NoError(t, json.Unmarshal(msg, &ev))
	assert.Equal(t, EventOverrideReload, ev.Type)
	assert.Nil(t, ev.Images)

	require.NoError(t, ws.Close())
	waitClients(t, hub, 0, 0)
}

func TestBroadcastDropsDeadClients(t *testing.T) {
	hub := NewHub(nil)
	a, b := net.Pipe()
	hub.Add(a)
	require.NoError(t, b.Close())

	hub.BroadcastJSON(map[string]string{"type": "ping"})
	assert.Equal(t, 0, hub.Stats().TCPClients)
}

func TestBroadcastStalledClientDoesNotBlockOthers(t *testing.T) {
	hub := NewHub(nil)
	hub.WriteTimeout = 500 * time.Millisecond

	// nobody reads from stalled, so writes to it block until the deadline
	stalled, stalledPeer := net.Pipe()
	defer stalledPeer.Close()
	hub.Add(stalled)

	healthy, healthyPeer := net.Pipe()
	defer healthyPeer.Close()
	hub.Add(healthy)

	done := make(chan struct{})
	go func() {
		hub.BroadcastJSON(map[string]string{"type": "ping"})
		close(done)
	}()

	_ = healthyPeer.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	ev := readEvent(t, bufio.NewReader(healthyPeer))
	assert.Equal(t, "ping", ev["type"])

	stats := make(chan Stats, 1)
	go func() { stats <- hub.Stats() }()
	select {
	case s := <-stats:
		assert.Equal(t, 2, s.TCPClients)
	case <-time.After(200 * time.Millisecond):
		t.Fatal("Stats blocked behind a stalled write")
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("broadcast did not finish")
	}
	assert.Equal(t, 1, hub.Stats().TCPClients)
}

func TestBroadcastLogsMarshalError(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	hub := NewHub(zap.New(core))

	hub.BroadcastJSON(map[string]any{"bad": make(chan int)})

	entries := logs.FilterMessage("marshal hub event").All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ContextMap()["error"], "unsupported type")
}
