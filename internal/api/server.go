// Package api provides the read-only HTTP observation surface: current run
// status, grid snapshots, recorded run history, and a WebSocket stream of
// per-turn snapshots. Nothing here mutates simulation state.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/talgya/invasion/internal/engine"
	"github.com/talgya/invasion/internal/persistence"
)

const maxLiveConns = 8

// Server serves simulation state over HTTP.
type Server struct {
	Runner *engine.Runner
	DB     *persistence.DB // Optional; history endpoints 404 without it
	Port   int

	upgrader websocket.Upgrader

	mu   sync.Mutex
	subs map[*websocket.Conn]chan engine.Snapshot
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	s.subs = make(map[*websocket.Conn]chan engine.Snapshot)
	s.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}

	historyLimiter := NewRateLimiter(60, time.Minute)

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Get("/grid", s.handleGrid)
		r.Get("/live", s.handleLive)
		r.With(historyLimiter.Limit).Get("/history", s.handleHistory)
		r.With(historyLimiter.Limit).Get("/history/{runID}", s.handleTurnHistory)
	})
	return r
}

// Start begins serving in a goroutine.
func (s *Server) Start() {
	h := s.Handler()
	go func() {
		addr := fmt.Sprintf(":%d", s.Port)
		slog.Info("observation API listening", "addr", addr)
		if err := http.ListenAndServe(addr, h); err != nil {
			slog.Error("api server failed", "error", err)
		}
	}()
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Runner.Status())
}

func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Runner.Snapshot())
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "run history not enabled", http.StatusNotFound)
		return
	}
	runs, err := s.DB.RunHistory(50)
	if err != nil {
		slog.Error("run history query failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, runs)
}

func (s *Server) handleTurnHistory(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "run history not enabled", http.StatusNotFound)
		return
	}
	stats, err := s.DB.TurnHistory(chi.URLParam(r, "runID"))
	if err != nil {
		slog.Error("turn history query failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, stats)
}

// handleLive upgrades to WebSocket and streams a grid snapshot after every
// turn until the client goes away.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	full := len(s.subs) >= maxLiveConns
	s.mu.Unlock()
	if full {
		http.Error(w, "too many live viewers", http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Debug("websocket upgrade failed", "error", err)
		return
	}

	ch := make(chan engine.Snapshot, 4)
	s.mu.Lock()
	s.subs[conn] = ch
	s.mu.Unlock()
	slog.Info("live viewer connected", "remote", r.RemoteAddr)

	// First frame immediately so the viewer has a grid to draw.
	if err := conn.WriteJSON(s.Runner.Snapshot()); err != nil {
		s.drop(conn)
		return
	}

	go func() {
		for snap := range ch {
			if err := conn.WriteJSON(snap); err != nil {
				s.drop(conn)
				return
			}
		}
	}()
}

// Broadcast pushes a snapshot to every live viewer. Slow viewers skip
// frames rather than stalling the run loop.
func (s *Server) Broadcast(snap engine.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}

func (s *Server) drop(conn *websocket.Conn) {
	s.mu.Lock()
	if ch, ok := s.subs[conn]; ok {
		close(ch)
		delete(s.subs, conn)
	}
	s.mu.Unlock()
	conn.Close()
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("write response failed", "error", err)
	}
}
