// Package preview serves live chart frames over HTTP.
//
// A Server drives its charts from a real-time [animation.LoopClock] and
// exposes the latest frame of each chart as a PNG, together with the
// scheduler counters and a few controls for poking at a running chart:
//
//	GET    /health                               liveness
//	GET    /charts                               chart list and scheduler stats
//	GET    /charts/{key}/frame.png               latest frame
//	POST   /charts/{key}/pointer?x=..&y=..       move the hover pointer
//	DELETE /charts/{key}/pointer                 clear the hover pointer
//	POST   /charts/{key}/invalidate              drop cached bitmaps
//	POST   /charts/{key}/shapes/{id}/{action}    pause, resume or reset a shape
//
// Frames run under a frame lock that the PNG handler also takes, so a frame
// is never encoded half drawn.
package preview

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/felixge/httpsnoop"

	chart "github.com/go-drift/chart"
	"github.com/go-drift/chart/pkg/animation"
	"github.com/go-drift/chart/pkg/charts"
	"github.com/go-drift/chart/pkg/errors"
	"github.com/go-drift/chart/pkg/rendering"
	"github.com/go-drift/chart/pkg/scheduler"
)

// Server owns a scheduler, a loop clock and one gg canvas per chart.
type Server struct {
	frameLock sync.Mutex
	clock     *animation.LoopClock
	sched     *scheduler.Scheduler
	logger    *slog.Logger
	handler   http.Handler

	mu       sync.Mutex
	charts   map[string]*entry
	order    []string
	server   *http.Server
	listener net.Listener
}

type entry struct {
	chart  *charts.LineChart
	canvas *rendering.GGCanvas
}

// lockedClock runs every frame callback under the server's frame lock.
type lockedClock struct {
	animation.FrameClock
	mu *sync.Mutex
}

func (c lockedClock) RequestFrame(cb animation.FrameCallback) animation.FrameHandle {
	return c.FrameClock.RequestFrame(func(now time.Duration) {
		c.mu.Lock()
		defer c.mu.Unlock()
		cb(now)
	})
}

// New returns a server producing a frame every interval. A non-positive
// interval selects 60 frames per second.
func New(interval time.Duration, opts ...scheduler.Option) *Server {
	s := &Server{
		clock:  animation.NewLoopClock(interval),
		logger: chart.Logger(),
		charts: make(map[string]*entry),
	}
	opts = append([]scheduler.Option{
		scheduler.WithErrorHandler(&errors.LogHandler{Logger: s.logger}),
	}, opts...)
	s.sched = scheduler.New(lockedClock{FrameClock: s.clock, mu: &s.frameLock}, opts...)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", handleHealth)
	mux.HandleFunc("GET /charts", s.handleCharts)
	mux.HandleFunc("GET /charts/{key}/frame.png", s.handleFrame)
	mux.HandleFunc("POST /charts/{key}/pointer", s.handlePointer)
	mux.HandleFunc("DELETE /charts/{key}/pointer", s.handlePointer)
	mux.HandleFunc("POST /charts/{key}/invalidate", s.handleInvalidate)
	mux.HandleFunc("POST /charts/{key}/shapes/{id}/{action}", s.handleShape)
	s.handler = s.logRequests(mux)
	return s
}

// Scheduler returns the scheduler driving the charts.
func (s *Server) Scheduler() *scheduler.Scheduler {
	return s.sched
}

// Handler returns the HTTP handler serving the endpoints.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// logRequests logs every request with its status and latency.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)
		s.logger.Debug("preview request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", m.Code,
			"bytes", m.Written,
			"duration", m.Duration,
		)
	})
}

// Add lays lc out on a new canvas of size and registers it under key.
// Adding an existing key replaces the chart. Layout runs under the frame
// lock, since a running loop may be painting lc.
func (s *Server) Add(key string, lc *charts.LineChart, size rendering.Size) error {
	w, h := size.Pixels()
	canvas := rendering.NewGGCanvas(max(w, 1), max(h, 1))

	s.frameLock.Lock()
	defer s.frameLock.Unlock()
	g, err := lc.Group(canvas)
	if err != nil {
		return fmt.Errorf("chart %s: %w", key, err)
	}
	if err := s.sched.Register(key, g); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.charts[key]; !ok {
		s.order = append(s.order, key)
	}
	s.charts[key] = &entry{chart: lc, canvas: canvas}
	return nil
}

// Listen binds addr and starts serving in the background. It returns the
// bound address, which differs from addr when addr uses port 0. Calling
// Listen on a serving server returns the current address.
func (s *Server) Listen(addr string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		return s.listener.Addr().String(), nil
	}

	// Bind first to fail fast on port conflicts
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("preview server listen: %w", err)
	}
	server := &http.Server{Handler: s.handler, ReadHeaderTimeout: 5 * time.Second}
	s.server = server
	s.listener = listener

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.mu.Lock()
			s.server = nil
			s.listener = nil
			s.mu.Unlock()
			s.logger.Error("preview server failed", "err", err)
		}
	}()

	s.logger.Info("preview server listening", "addr", listener.Addr().String())
	return listener.Addr().String(), nil
}

// Run starts the scheduler and produces frames until ctx is done, then
// stops the scheduler and shuts the HTTP server down.
func (s *Server) Run(ctx context.Context) error {
	s.sched.Start()
	defer s.Close()
	err := s.clock.Run(ctx)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// Close stops the scheduler and gracefully shuts down the HTTP server.
func (s *Server) Close() {
	s.sched.Stop()

	s.mu.Lock()
	server := s.server
	s.server = nil
	s.listener = nil
	s.mu.Unlock()

	if server == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	server.Shutdown(ctx)
}

func (s *Server) lookup(key string) (*entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.charts[key]
	return e, ok
}

// ChartInfo describes one chart in the /charts response.
type ChartInfo struct {
	Key    string   `json:"key"`
	Width  float64  `json:"width"`
	Height float64  `json:"height"`
	Points int      `json:"points"`
	Shapes []string `json:"shapes"`
}

// Status is the /charts response.
type Status struct {
	Running bool            `json:"running"`
	Armed   bool            `json:"armed"`
	Stats   scheduler.Stats `json:"stats"`
	Charts  []ChartInfo     `json:"charts"`
}

func (s *Server) status() Status {
	s.frameLock.Lock()
	defer s.frameLock.Unlock()
	st := Status{
		Running: s.sched.Running(),
		Armed:   s.sched.Armed(),
		Stats:   s.sched.Stats(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range s.order {
		e := s.charts[key]
		size := e.canvas.Size()
		info := ChartInfo{Key: key, Width: size.Width, Height: size.Height}
		if fit := e.chart.Fit(); fit != nil {
			info.Points = len(fit.Points)
		}
		for _, sh := range e.chart.Shapes() {
			info.Shapes = append(info.Shapes, sh.ID)
		}
		st.Charts = append(st.Charts, info)
	}
	return st
}

// handleHealth returns a simple health check response.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	// Encode to buffer first so we can catch errors
	data, err := json.MarshalIndent(s.status(), "", "  ")
	if err != nil {
		http.Error(w, fmt.Sprintf("json encode error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	e, ok := s.lookup(r.PathValue("key"))
	if !ok {
		http.Error(w, "unknown chart", http.StatusNotFound)
		return
	}
	var buf bytes.Buffer
	s.frameLock.Lock()
	err := e.canvas.EncodePNG(&buf)
	s.frameLock.Unlock()
	if err != nil {
		http.Error(w, fmt.Sprintf("png encode error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}

func (s *Server) handlePointer(w http.ResponseWriter, r *http.Request) {
	var pos *rendering.Offset
	if r.Method == http.MethodPost {
		x, errX := strconv.ParseFloat(r.URL.Query().Get("x"), 64)
		y, errY := strconv.ParseFloat(r.URL.Query().Get("y"), 64)
		if errX != nil || errY != nil {
			http.Error(w, "x and y query parameters are required", http.StatusBadRequest)
			return
		}
		pos = &rendering.Offset{X: x, Y: y}
	}
	writeResult(w, s.sched.SetPointer(r.PathValue("key"), pos))
}

func (s *Server) handleInvalidate(w http.ResponseWriter, r *http.Request) {
	writeResult(w, s.sched.Invalidate(r.PathValue("key")))
}

func (s *Server) handleShape(w http.ResponseWriter, r *http.Request) {
	key, id := r.PathValue("key"), r.PathValue("id")
	var err error
	switch r.PathValue("action") {
	case "pause":
		err = s.sched.Pause(key, id)
	case "resume":
		err = s.sched.Resume(key, id)
	case "reset":
		err = s.sched.ResetShape(key, id)
	default:
		http.Error(w, "action must be pause, resume or reset", http.StatusBadRequest)
		return
	}
	writeResult(w, err)
}

func writeResult(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, errors.ErrUnknownGroup), errors.Is(err, errors.ErrUnknownShape):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
