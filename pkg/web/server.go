// Package web serves the anonymization results over HTTP: the graph as
// JSON, the run report, and a server-sent-event stream of run progress.
package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/gorilla/mux"

	"github.com/privgraph/graphanon/pkg/graph"
	"github.com/privgraph/graphanon/pkg/logging"
	"github.com/privgraph/graphanon/pkg/output"
	"github.com/privgraph/graphanon/pkg/pubsub"
)

// GraphData is the JSON shape served for a graph snapshot.
type GraphData struct {
	Vertices int      `json:"vertices"`
	Edges    [][2]int `json:"edges"`
	Labels   []int    `json:"labels,omitempty"`
}

// Server holds the latest graph snapshot and report and serves them.
type Server struct {
	mu        sync.RWMutex
	router    *mux.Router
	publisher *pubsub.Publisher
	graphData *GraphData
	report    *output.Report
}

// NewServer creates a server with no data yet; handlers return 404 until
// the first snapshot arrives.
func NewServer() *Server {
	s := &Server{
		router:    mux.NewRouter(),
		publisher: pubsub.NewPublisher(),
	}
	s.router.Use(logging.RequestIDMiddleware)
	s.router.HandleFunc("/api/graph", s.handleGraph).Methods("GET")
	s.router.HandleFunc("/api/report", s.handleReport).Methods("GET")
	s.router.HandleFunc("/api/events/{topic}", s.handleEvents).Methods("GET")
	s.router.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	return s
}

// Publisher returns the server's event publisher so the run loop can push
// progress updates.
func (s *Server) Publisher() *pubsub.Publisher { return s.publisher }

// Handler exposes the route tree for embedding and tests.
func (s *Server) Handler() http.Handler { return s.router }

// SetGraph stores a snapshot of g (with labels when lg is non-nil) and
// publishes a summary event.
func (s *Server) SetGraph(g *graph.Graph, lg *graph.Labelled) {
	data := &GraphData{Vertices: g.NumVertices()}
	for v := 0; v < g.NumVertices(); v++ {
		neighbours := g.Neighbors(v)
		sort.Ints(neighbours)
		for _, u := range neighbours {
			if v < u {
				data.Edges = append(data.Edges, [2]int{v, u})
			}
		}
	}
	if lg != nil {
		data.Labels = make([]int, lg.NumVertices())
		for v := range data.Labels {
			data.Labels[v] = lg.Label(v)
		}
	}

	s.mu.Lock()
	s.graphData = data
	s.mu.Unlock()

	_ = s.publisher.Publish(pubsub.TopicGraph, "snapshot", pubsub.GraphSummary{
		Vertices:  g.NumVertices(),
		Edges:     g.NumEdges(),
		Occupancy: g.Occupancy(),
		Labelled:  lg != nil,
	})
}

// SetReport stores the latest run report.
func (s *Server) SetReport(r *output.Report) {
	s.mu.Lock()
	s.report = r
	s.mu.Unlock()
}

// PublishStatus pushes a run-status event to subscribers.
func (s *Server) PublishStatus(phase, message string, step, total int) {
	_ = s.publisher.Publish(pubsub.TopicRunStatus, phase, pubsub.RunStatus{
		Phase:   phase,
		Message: message,
		Step:    step,
		Total:   total,
	})
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	data := s.graphData
	s.mu.RUnlock()
	if data == nil {
		http.Error(w, "no graph loaded yet", http.StatusNotFound)
		return
	}
	writeJSON(w, data)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	report := s.report
	s.mu.RUnlock()
	if report == nil {
		http.Error(w, "no report available yet", http.StatusNotFound)
		return
	}
	writeJSON(w, report)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	topic := mux.Vars(r)["topic"]
	if topic != pubsub.TopicRunStatus && topic != pubsub.TopicGraph {
		http.Error(w, fmt.Sprintf("unknown topic %q", topic), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// Establish the stream before the first event arrives.
	fmt.Fprintf(w, ": connected\n\n")
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	sub, err := s.publisher.Subscribe(r.Context(), topic)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer sub.Close()

	for event := range sub.Events() {
		if err := pubsub.WriteSSE(w, event); err != nil {
			logging.Error("writing SSE event", "error", err)
			return
		}
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("encoding response", "error", err)
	}
}

// Start serves on the given port, blocking.
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	logging.Info("starting web server", "addr", fmt.Sprintf("http://localhost%s", addr))
	return http.ListenAndServe(addr, s.router)
}
