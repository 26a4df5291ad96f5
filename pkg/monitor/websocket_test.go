package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.corespec/pkg/scenario"
)

func newTestServer(t *testing.T) (*Server, *EventCollector, *httptest.Server) {
	t.Helper()
	collector := NewEventCollector()
	s := NewServer("", collector, NewDashboard("run-1"))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, collector, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestServer_Health(t *testing.T) {
	_, _, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}

func TestServer_Dashboard(t *testing.T) {
	_, collector, ts := newTestServer(t)
	collector.Emit(scenario.Event{
		Type: scenario.EventCaseFinished, Name: "a", Status: scenario.StatusPassed,
	})

	resp, err := http.Get(ts.URL + "/dashboard")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	var snap Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Equal(t, "run-1", snap.RunID)
	assert.Equal(t, 1, snap.Summary.Passed)
}

func TestServer_WebSocketStream(t *testing.T) {
	s, collector, ts := newTestServer(t)
	conn := dial(t, ts)

	first := readMessage(t, conn)
	assert.Equal(t, MessageDashboard, first.Kind)
	require.NotNil(t, first.Dashboard)
	assert.Equal(t, "run-1", first.Dashboard.RunID)

	require.Eventually(t, func() bool {
		return s.ClientCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	collector.Emit(scenario.Event{
		Type:   scenario.EventCaseFinished,
		Path:   []string{"String"},
		Name:   "reverses",
		Status: scenario.StatusPassed,
	})

	msg := readMessage(t, conn)
	assert.Equal(t, MessageEvent, msg.Kind)
	require.NotNil(t, msg.Event)
	assert.Equal(t, "String reverses", msg.Event.FullName())
	assert.Equal(t, scenario.StatusPassed, msg.Event.Status)
}

func TestServer_ClientDisconnect(t *testing.T) {
	s, _, ts := newTestServer(t)
	conn := dial(t, ts)
	readMessage(t, conn)

	require.Eventually(t, func() bool {
		return s.ClientCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool {
		return s.ClientCount() == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestServer_StartStop(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	addr := fmt.Sprintf("127.0.0.1:%d", port)
	s := NewServer(addr, NewEventCollector(), NewDashboard("run"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverErr := make(chan error, 1)
	go func() { serverErr <- s.Start(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/health")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-serverErr:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_StopBeforeStart(t *testing.T) {
	s := NewServer(":0", NewEventCollector(), NewDashboard("run"))
	assert.NoError(t, s.Stop(context.Background()))
}
