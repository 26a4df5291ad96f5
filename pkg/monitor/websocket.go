package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"digital.vasic.corespec/pkg/scenario"
)

const (
	writeWait   = 5 * time.Second
	clientQueue = 64
)

// Server streams runner events to WebSocket clients on /ws and
// serves a JSON dashboard snapshot on /dashboard.
type Server struct {
	mu        sync.RWMutex
	collector *EventCollector
	dashboard *Dashboard
	clients   map[chan []byte]struct{}
	addr      string
	server    *http.Server
	upgrader  websocket.Upgrader
}

// NewServer creates a live monitor server. Events emitted on
// collector update dashboard and are broadcast to every
// connected client.
func NewServer(
	addr string,
	collector *EventCollector,
	dashboard *Dashboard,
) *Server {
	s := &Server{
		addr:      addr,
		collector: collector,
		dashboard: dashboard,
		clients:   make(map[chan []byte]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	collector.OnEvent(s.forward)
	return s
}

// Handler returns the server's HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/dashboard", s.handleDashboard)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// Start serves until ctx is cancelled or the server is
// stopped.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.mu.Lock()
	s.server = srv
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("monitor server: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.RLock()
	srv := s.server
	s.mu.RUnlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// ClientCount returns the number of connected clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Server) forward(ev scenario.Event) {
	s.dashboard.Update(ev)
	data, err := json.Marshal(Message{Kind: MessageEvent, Event: &ev})
	if err != nil {
		return
	}
	s.broadcast(data)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ch := make(chan []byte, clientQueue)
	s.mu.Lock()
	s.clients[ch] = struct{}{}
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.clients, ch)
		s.mu.Unlock()
	}()

	snap := s.dashboard.Snapshot()
	if err := s.write(conn, Message{
		Kind: MessageDashboard, Dashboard: &snap,
	}); err != nil {
		return
	}

	// The read loop only notices the client going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case data := <-ch:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(
				websocket.TextMessage, data,
			); err != nil {
				return
			}
		}
	}
}

func (s *Server) write(conn *websocket.Conn, msg Message) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}

func (s *Server) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.dashboard.Snapshot())
}

func (s *Server) broadcast(data []byte) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for ch := range s.clients {
		select {
		case ch <- data:
		default:
			// Client too slow, drop the frame.
		}
	}
}
