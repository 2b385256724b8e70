// Package ws is the WebSocket transport binding producer and observer
// connections to registry sessions.
package ws

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/smartsession/backend/internal/session"
)

type Server struct {
	registry       *session.Registry
	allowedOrigins map[string]bool
	allowedHosts   map[string]bool
}

func NewServer(registry *session.Registry, allowedOrigins []string) *Server {
	s := &Server{
		registry:       registry,
		allowedOrigins: make(map[string]bool),
		allowedHosts:   make(map[string]bool),
	}

	for _, origin := range allowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		s.allowedOrigins[trimmed] = true
		if parsed, err := url.Parse(trimmed); err == nil && parsed.Host != "" {
			s.allowedHosts[parsed.Host] = true
		}
	}

	return s
}

func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws/producer/", s.handleProducer)
	mux.HandleFunc("/ws/observer/", s.handleObserver)
	mux.HandleFunc("/api/sessions", s.handleSessions)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/", s.handleRoot)
}

// sessionID extracts the trailing path segment: /ws/producer/{id}.
func sessionID(path, prefix string) (string, bool) {
	raw := strings.TrimPrefix(path, prefix)
	if raw == "" || strings.Contains(raw, "/") {
		return "", false
	}
	id, err := url.PathUnescape(raw)
	if err != nil || id == "" {
		return "", false
	}
	return id, true
}

func (s *Server) upgrade(w http.ResponseWriter, r *http.Request) (*websocket.Conn, error) {
	upgrader := websocket.Upgrader{
		CheckOrigin: s.checkOrigin,
	}
	return upgrader.Upgrade(w, r, nil)
}

// handleProducer binds the producing connection to its session and pumps
// frames into the registry until the connection drops, which tears the
// session down.
func (s *Server) handleProducer(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(r.URL.Path, "/ws/producer/")
	if !ok {
		http.Error(w, "missing session id", http.StatusBadRequest)
		return
	}

	conn, err := s.upgrade(w, r)
	if err != nil {
		log.Printf("producer upgrade error: %v", err)
		return
	}

	if _, err := s.registry.AttachProducer(id); err != nil {
		// The existing producer stays authoritative; tell the rejected
		// connection why before closing it.
		conn.WriteMessage(websocket.TextMessage, session.EncodeError(err.Error()))
		conn.Close()
		return
	}
	log.Printf("producer connected: session=%s addr=%s", id, r.RemoteAddr)

	defer func() {
		s.registry.DetachProducer(id)
		conn.Close()
		log.Printf("producer disconnected: session=%s", id)
	}()

	for {
		var msg FrameMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if msg.Type != MsgFrame {
			continue
		}
		s.registry.Ingest(id, msg.Frame)
	}
}

// handleObserver attaches the connection to the session's fan-out set. The
// read loop exists only to detect the close.
func (s *Server) handleObserver(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(r.URL.Path, "/ws/observer/")
	if !ok {
		http.Error(w, "missing session id", http.StatusBadRequest)
		return
	}

	conn, err := s.upgrade(w, r)
	if err != nil {
		log.Printf("observer upgrade error: %v", err)
		return
	}

	c := newClient(conn)
	attached := s.registry.AttachObserver(id, c)
	log.Printf("observer connected: session=%s addr=%s attached=%v", id, r.RemoteAddr, attached)

	go func() {
		defer func() {
			if attached {
				s.registry.DetachObserver(id, c.ID())
			}
			c.close()
			log.Printf("observer disconnected: session=%s", id)
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.registry.Summaries())
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "SmartSession Backend",
		"status":  "running",
	})
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	if len(s.allowedOrigins) > 0 {
		if s.allowedOrigins[origin] {
			return true
		}
		if parsed, err := url.Parse(origin); err == nil && parsed.Host != "" {
			return s.allowedHosts[parsed.Host]
		}
		return false
	}

	parsed, err := url.Parse(origin)
	if err != nil {
		return false
	}

	host := parsed.Host
	if host == "" {
		return false
	}

	if host == r.Host {
		return true
	}

	if strings.HasPrefix(host, "localhost:") || host == "localhost" {
		return true
	}
	if strings.HasPrefix(host, "127.0.0.1:") || host == "127.0.0.1" {
		return true
	}
	if strings.HasPrefix(host, "[::1]:") || host == "::1" {
		return true
	}

	return false
}

func ListenAndServe(host string, port int, mux *http.ServeMux) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	log.Printf("Server listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}
