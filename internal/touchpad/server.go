// Package touchpad serves the companion touchpad over WebSockets. It never
// touches selection state; every decoded event goes to a Sink that hands it to
// the goroutine owning the canvas.
package touchpad

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"

	"touchviz/internal/domain"
)

// Path is where the WebSocket endpoint is mounted
const Path = "/touchpad"

// Sink receives decoded events. It is called from connection goroutines.
type Sink func(domain.DomainEvent)

// InfoFunc describes the canvas to newly connected pads
type InfoFunc func() PadInfo

// Server accepts touchpad connections
type Server struct {
	upgrader websocket.Upgrader
	sink     Sink
	info     InfoFunc

	mu      sync.Mutex
	clients map[string]*websocket.Conn
}

// NewServer creates a server delivering events to sink
func NewServer(sink Sink, info InfoFunc) *Server {
	if info == nil {
		info = func() PadInfo { return PadInfo{Aspect: 1} }
	}
	return &Server{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// pads are served from other origins on the local network
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		sink:    sink,
		info:    info,
		clients: make(map[string]*websocket.Conn),
	}
}

// Handler returns a mux with the touchpad endpoint mounted at Path
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(Path, s)
	return mux
}

// Clients returns the number of connected pads
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// ListenAndServe serves until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		s.closeAll()
	}()

	log.Printf("Touchpad: listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, conn := range s.clients {
		_ = conn.Close()
	}
}

// ServeHTTP upgrades the request and reads messages until the pad disconnects
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Touchpad: upgrade failed: %v", err)
		return
	}
	clientID := ulid.Make().String()

	s.mu.Lock()
	s.clients[clientID] = conn
	s.mu.Unlock()
	s.emit(domain.TouchpadJoinedEvent{ClientID: clientID})
	log.Printf("Touchpad: client %s connected from %s", clientID, r.RemoteAddr)

	defer func() {
		s.mu.Lock()
		delete(s.clients, clientID)
		s.mu.Unlock()
		_ = conn.Close()
		s.emit(domain.TouchpadLeftEvent{ClientID: clientID})
		log.Printf("Touchpad: client %s disconnected", clientID)
	}()

	for {
		_, buf, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("Touchpad: read from %s: %v", clientID, err)
			}
			return
		}
		if err := s.handleMessage(conn, clientID, buf); err != nil {
			log.Printf("Touchpad: message from %s: %v", clientID, err)
		}
	}
}

func (s *Server) handleMessage(conn *websocket.Conn, clientID string, buf []byte) error {
	var env envelope
	if err := json.Unmarshal(buf, &env); err != nil {
		return err
	}

	switch env.MessageType {
	case MsgPadDataRequest:
		info := s.info()
		return conn.WriteJSON(PadData{
			MessageType: MsgPadData,
			ClientID:    clientID,
			DataKeys:    info.DataKeys,
			Aspect:      info.Aspect,
		})
	case MsgTouchUpdate:
		var msg TouchUpdate
		if err := json.Unmarshal(buf, &msg); err != nil {
			return err
		}
		for _, tp := range msg.Touches {
			phase, err := domain.ParseTouchPhase(tp.Phase)
			if err != nil {
				log.Printf("Touchpad: %s: %v", clientID, err)
				continue
			}
			s.emit(domain.TouchEvent{
				Touch: domain.TouchID{Source: clientID, ID: tp.ID},
				Phase: phase,
				Pos:   domain.Point{X: clamp01(tp.X), Y: clamp01(tp.Y)},
			})
		}
		return nil
	default:
		log.Printf("Touchpad: unknown message type %q from %s", env.MessageType, clientID)
		return nil
	}
}

func (s *Server) emit(e domain.DomainEvent) {
	if s.sink != nil {
		s.sink(e)
	}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
