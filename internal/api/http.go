// Package api exposes the running session over HTTP: snapshots, the command
// grammar, and an SSE state stream. It is a pure consumer of the sim engine.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"mayday-sim/internal/sim"
	"mayday-sim/pkg/log"
)

type Server struct {
	eng    *sim.Engine
	logger *log.Logger
	r      chi.Router
}

func NewServer(eng *sim.Engine, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewDiscard()
	}
	s := &Server{eng: eng, logger: logger, r: chi.NewRouter()}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler { return s.r }

func (s *Server) routes() {
	s.r.Get("/health", s.health)
	s.r.Get("/state", s.state)

	s.r.Post("/command", s.command)
	s.r.Post("/command/mayday", s.mayday)
	s.r.Post("/command/oxygen", s.oxygen)
	s.r.Post("/command/shutdown", s.shutdown)
	s.r.Post("/command/firebottle", s.fireBottle)

	s.r.Get("/stream", s.streamSSE)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) state(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	snap, err := s.eng.GetState(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusRequestTimeout)
		return
	}
	writeJSON(w, snap)
}

// command accepts one line of the text grammar, e.g. {"line": "gear down"}.
func (s *Server) command(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Line string `json:"line"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	if err := s.eng.SubmitLine(body.Line); err != nil {
		writeJSON(w, map[string]any{"status": "rejected", "error": err.Error()})
		return
	}
	writeJSON(w, map[string]any{"status": "accepted", "line": body.Line})
}

func (s *Server) mayday(w http.ResponseWriter, r *http.Request) {
	s.eng.Submit(sim.MaydayCommand{At: time.Now()})
	writeJSON(w, map[string]any{"status": "accepted", "type": "mayday"})
}

func (s *Server) oxygen(w http.ResponseWriter, r *http.Request) {
	var body struct {
		On bool `json:"on"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	s.eng.Submit(sim.OxygenCommand{At: time.Now(), On: body.On})
	writeJSON(w, map[string]any{"status": "accepted", "type": "oxygen", "on": body.On})
}

func (s *Server) shutdown(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Engine string `json:"engine"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Engine == "" {
		http.Error(w, "engine required", http.StatusBadRequest)
		return
	}
	s.eng.Submit(sim.ShutdownCommand{At: time.Now(), Engine: body.Engine})
	writeJSON(w, map[string]any{"status": "accepted", "type": "shutdown", "engine": body.Engine})
}

func (s *Server) fireBottle(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Engine string `json:"engine,omitempty"`
	}
	// Body is optional; an empty engine targets the burning one.
	_ = json.NewDecoder(r.Body).Decode(&body)
	s.eng.Submit(sim.FireBottleCommand{At: time.Now(), Engine: body.Engine})
	writeJSON(w, map[string]any{"status": "accepted", "type": "firebottle"})
}

func (s *Server) streamSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ctx := r.Context()
	ch, unsub := s.eng.Subscribe(ctx)
	defer unsub()

	fmt.Fprintf(w, ": connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-ch:
			if !ok {
				return
			}
			b, _ := json.Marshal(snap)
			fmt.Fprintf(w, "event: state\n")
			fmt.Fprintf(w, "data: %s\n\n", b)
			flusher.Flush()
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
