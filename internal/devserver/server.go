package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/weave/internal/apps"
	werrors "github.com/vango-dev/weave/internal/errors"
	"github.com/vango-dev/weave/internal/telemetry"
	"github.com/vango-dev/weave/pkg/dom"
	"github.com/vango-dev/weave/pkg/sched"
	"github.com/vango-dev/weave/pkg/weave"
)

// Options configures a Server.
type Options struct {
	// App is the app to mount. Required.
	App *apps.App

	// Loop runs the engine. Required; the caller runs it.
	Loop *sched.Loop

	// Logger is the server's logger (default: slog.Default()).
	Logger *slog.Logger

	// Metrics, when set, observes the engine and counts clients and events.
	Metrics *telemetry.Metrics

	// Gatherer, when set, is served on /metrics.
	Gatherer prometheus.Gatherer

	// Observer receives engine notifications in addition to the server.
	Observer weave.Observer

	// YieldThreshold is passed to weave.WithYieldThreshold when positive.
	YieldThreshold time.Duration

	// HookOrder enables weave.WithHookOrderCheck.
	HookOrder bool
}

// Snapshot is the rendered state after a commit.
type Snapshot struct {
	Generation uint64 `json:"generation"`
	HTML       string `json:"html"`
	Error      string `json:"error,omitempty"`
}

// Server is the live view server for one app.
type Server struct {
	app     *apps.App
	loop    *sched.Loop
	logger  *slog.Logger
	metrics *telemetry.Metrics
	hub     *Hub
	router  chi.Router

	// Owned by the loop goroutine.
	doc    *dom.Document
	root   *dom.Node
	engine *weave.Engine

	mu       sync.RWMutex
	snapshot Snapshot
}

// New creates a Server. Nothing renders until Mount is called.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "devserver", "app", opts.App.Name)

	s := &Server{
		app:     opts.App,
		loop:    opts.Loop,
		logger:  logger,
		metrics: opts.Metrics,
		hub:     NewHub(),
		doc:     dom.New(),
	}
	s.root = s.doc.Container("main")

	if s.metrics != nil {
		s.hub.onJoin = s.metrics.ClientConnected
		s.hub.onLeave = s.metrics.ClientDisconnected
	}

	observers := []weave.Observer{weave.ObserverFuncs{
		OnCommit: s.committed,
		OnFail:   s.failed,
	}}
	if s.metrics != nil {
		observers = append(observers, s.metrics)
	}
	if opts.Observer != nil {
		observers = append(observers, opts.Observer)
	}

	engineOpts := []weave.Option{
		weave.WithLogger(logger),
		weave.WithObserver(weave.Observers(observers...)),
		weave.WithHookOrderCheck(opts.HookOrder),
	}
	if opts.YieldThreshold > 0 {
		engineOpts = append(engineOpts, weave.WithYieldThreshold(opts.YieldThreshold))
	}
	s.engine = weave.New(s.doc, opts.Loop, engineOpts...)

	s.router = s.routes(opts.Gatherer)
	return s
}

func (s *Server) routes(gatherer prometheus.Gatherer) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/", s.handlePage)
	r.Get("/snapshot", s.handleSnapshot)
	r.Post("/events", s.handleEvent)
	r.Get("/ws", s.handleWebSocket)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// requestLogger logs each request at debug level.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Hub returns the WebSocket hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Mount renders the app into the document.
func (s *Server) Mount(ctx context.Context) error {
	return s.loop.Do(ctx, func() {
		s.engine.Render(s.app.Root(), s.root)
	})
}

// Do runs fn on the loop goroutine with the root node of the document.
func (s *Server) Do(ctx context.Context, fn func(root *dom.Node)) error {
	return s.loop.Do(ctx, func() { fn(s.root) })
}

// Snapshot returns the snapshot of the last commit.
func (s *Server) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Dispatch delivers a host event to the node with the given ID and reports
// whether a listener handled it.
func (s *Server) Dispatch(ctx context.Context, node int, event, value string) (bool, error) {
	var handled bool
	err := s.loop.Do(ctx, func() {
		handled = s.doc.DispatchID(node, event, value)
	})
	if err != nil {
		return false, err
	}
	if s.metrics != nil {
		s.metrics.EventDispatched(event, handled)
	}
	return handled, nil
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("serving", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// committed runs on the loop goroutine after each commit.
func (s *Server) committed(r weave.CommitReport) {
	snap := Snapshot{
		Generation: r.Generation,
		HTML:       s.root.InnerHTML(dom.RenderOptions{NodeIDs: true}),
	}
	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()

	s.hub.Broadcast(Message{Type: MessageSnapshot, Generation: snap.Generation, HTML: snap.HTML})
}

// failed runs on the loop goroutine when a generation is aborted.
func (s *Server) failed(err error) {
	s.mu.Lock()
	s.snapshot.Error = err.Error()
	s.mu.Unlock()

	s.hub.Broadcast(Message{Type: MessageError, Error: err.Error()})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	snap := s.Snapshot()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderPage(w, s.app.Name, snap); err != nil {
		s.logger.Error("page render failed", "error", err)
	}
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Snapshot())
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	var msg Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeJSON(w, http.StatusBadRequest, Message{Type: MessageError, Error: err.Error()})
		return
	}
	if msg.Event == "" {
		writeJSON(w, http.StatusBadRequest, Message{Type: MessageError, Error: "missing event"})
		return
	}

	handled, err := s.Dispatch(r.Context(), msg.Node, msg.Event, msg.Value)
	if err != nil {
		status := http.StatusInternalServerError
		if werrors.Is(err, "W040") {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, Message{Type: MessageError, Error: err.Error()})
		return
	}
	if !handled {
		writeJSON(w, http.StatusNotFound, Message{Type: MessageError, Error: "no listener"})
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]bool{"handled": true})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	snap := s.Snapshot()
	conn, leave, err := s.hub.Upgrade(w, r, Message{
		Type:       MessageSnapshot,
		Generation: snap.Generation,
		HTML:       snap.HTML,
	})
	if err != nil {
		s.logger.Debug("websocket upgrade failed", "error", err)
		return
	}
	defer leave()

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if msg.Type != MessageEvent {
			continue
		}
		if _, err := s.Dispatch(r.Context(), msg.Node, msg.Event, msg.Value); err != nil {
			s.logger.Warn("event dispatch failed", "error", err)
			return
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
