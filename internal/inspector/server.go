// Package inspector serves the state of a layout pipeline over HTTP.
//
// Routes:
//
//	GET /healthz  liveness
//	GET /tree     last applied arrangement
//	GET /passes   recent pass events, oldest first
//	GET /metrics  Prometheus exposition, when a gatherer is set
//	GET /ws       pass events as they happen
package inspector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	layoutkit "github.com/grindlemire/go-layoutkit"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultHistory  = 64
	defaultPushRate = 10
	subscriberQueue = 32
	writeTimeout    = 5 * time.Second
)

// Server records pipeline events and serves them.
type Server struct {
	logger   *zap.Logger
	gatherer prometheus.Gatherer
	history  int
	pushRate rate.Limit
	upgrader websocket.Upgrader

	mu     sync.Mutex
	events []Event
	tree   *TreeNode
	subs   map[chan Event]struct{}

	router chi.Router
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets the server logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			return errors.New("logger must not be nil")
		}
		s.logger = logger
		return nil
	}
}

// WithGatherer exposes g on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) error {
		s.gatherer = g
		return nil
	}
}

// WithHistory sets how many events /passes keeps.
func WithHistory(n int) Option {
	return func(s *Server) error {
		if n < 1 {
			return fmt.Errorf("history must be at least 1, got %d", n)
		}
		s.history = n
		return nil
	}
}

// WithPushRate limits websocket pushes per second for each client.
func WithPushRate(perSecond float64) Option {
	return func(s *Server) error {
		if perSecond <= 0 {
			return fmt.Errorf("push rate must be positive, got %v", perSecond)
		}
		s.pushRate = rate.Limit(perSecond)
		return nil
	}
}

// New creates a Server.
func New(opts ...Option) (*Server, error) {
	s := &Server{
		logger:   zap.NewNop(),
		history:  defaultHistory,
		pushRate: defaultPushRate,
		subs:     make(map[chan Event]struct{}),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.upgrader = websocket.Upgrader{
		CheckOrigin: func(*http.Request) bool { return true },
	}
	s.router = s.routes()
	return s, nil
}

// Observe records e. Pass it to layoutkit.WithObserver. It never blocks:
// subscribers that fall behind miss events.
func (s *Server) Observe(e layoutkit.PassEvent) {
	ev := eventOf(e)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, ev)
	if over := len(s.events) - s.history; over > 0 {
		s.events = append(s.events[:0], s.events[over:]...)
	}
	if r := e.Result; r != nil && r.Outcome == layoutkit.PassApplied {
		s.tree = Snapshot(r.Arrangement)
	}
	for ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Events returns the recorded events, oldest first.
func (s *Server) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// Tree returns the last applied arrangement, or nil.
func (s *Server) Tree() *TreeNode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("inspector listening", zap.String("addr", addr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return nil
	}
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/tree", s.handleTree)
	r.Get("/passes", s.handlePasses)
	r.Get("/ws", s.handleWS)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("inspector request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

func (s *Server) handleTree(w http.ResponseWriter, _ *http.Request) {
	tree := s.Tree()
	if tree == nil {
		http.Error(w, "no pass applied yet", http.StatusNotFound)
		return
	}
	s.writeJSON(w, tree)
}

func (s *Server) handlePasses(w http.ResponseWriter, r *http.Request) {
	events := s.Events()
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 0 {
			http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		if n < len(events) {
			events = events[len(events)-n:]
		}
	}
	s.writeJSON(w, events)
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("inspector response failed", zap.Error(err))
	}
}

func (s *Server) subscribe() chan Event {
	ch := make(chan Event, subscriberQueue)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()
	return ch
}

func (s *Server) unsubscribe(ch chan Event) {
	s.mu.Lock()
	delete(s.subs, ch)
	s.mu.Unlock()
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ch := s.subscribe()
	defer s.unsubscribe(ch)

	// Reads only detect the client going away.
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	limiter := rate.NewLimiter(s.pushRate, 1)
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-ch:
			if err := limiter.Wait(ctx); err != nil {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(ev); err != nil {
				s.logger.Debug("websocket write failed", zap.Error(err))
				return
			}
		}
	}
}
