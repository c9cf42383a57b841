// Package api implements the HTTP and WebSocket surface for daf. It
// is the rendering-collaborator boundary: external UIs consume the
// layout projection and mirror store operations over the socket.
package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/sprite-ai/daf/internal/ingest"
	"github.com/sprite-ai/daf/internal/store"
)

// Server is the daf API server.
type Server struct {
	addr   string
	mux    *http.ServeMux
	server *http.Server

	store  *store.Store
	loader *ingest.Loader

	connMu sync.Mutex
	conns  map[*wsClient]bool
}

// New creates a new API server over a shared store.
func New(addr string, st *store.Store, loader *ingest.Loader) *Server {
	s := &Server{
		addr:   addr,
		store:  st,
		loader: loader,
		conns:  make(map[*wsClient]bool),
	}
	s.mux = http.NewServeMux()
	s.registerRoutes()
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("POST /api/load", s.handleLoad)
	s.mux.HandleFunc("GET /api/samples", s.handleSamples)
	s.mux.HandleFunc("GET /api/samples/{id}", s.handleSample)
	s.mux.HandleFunc("GET /api/samples/{id}/layout", s.handleLayout)
	s.mux.HandleFunc("POST /api/pool/search", s.handlePoolSearch)
	s.mux.HandleFunc("GET /api/ws", s.handleWebSocket)
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	log.Printf("daf API server listening on %s", s.addr)
	return s.server.ListenAndServe()
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Broadcast pushes the current state to every connected socket. Wired
// as the store's notify callback so asynchronous regenerate completion
// and highlight expiry reach clients without polling.
func (s *Server) Broadcast() {
	state := s.stateResponse()
	s.connMu.Lock()
	clients := make([]*wsClient, 0, len(s.conns))
	for c := range s.conns {
		clients = append(clients, c)
	}
	s.connMu.Unlock()
	for _, c := range clients {
		c.send(wsMsgState, state)
	}
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Printf("json encode error: %v", err)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// readJSON decodes a JSON request body into v.
func readJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("empty request body")
	}
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	return dec.Decode(v)
}
