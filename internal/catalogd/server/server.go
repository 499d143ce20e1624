// Package server provides the HTTP server for catalogd.
package server

import (
	"bufio"
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/grovetools/catalogd/config"
	"github.com/grovetools/catalogd/errors"
	"github.com/grovetools/catalogd/internal/catalogd/executor"
	"github.com/grovetools/catalogd/internal/catalogd/store"
	"github.com/grovetools/catalogd/pkg/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

const (
	// HealthPath answers liveness probes.
	HealthPath = "/health"
	// SubscriptionsPath streams catAdded events over a websocket.
	SubscriptionsPath = "/subscriptions"

	// RequestIDHeader carries the per-request id.
	RequestIDHeader = "X-Request-ID"

	writeWait = 5 * time.Second
)

// Server manages the catalog's HTTP server.
type Server struct {
	logger   *logrus.Entry
	store    *store.Store
	router   *Router
	cfg      config.ServerConfig
	upgrader websocket.Upgrader

	mu      sync.Mutex
	server  *http.Server
	closing chan struct{}
	once    sync.Once
	streams sync.WaitGroup
}

// New creates a Server over st.
func New(st *store.Store, cfg config.ServerConfig, logger *logrus.Entry) (*Server, error) {
	exec, err := executor.New(st, logger)
	if err != nil {
		return nil, err
	}

	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = config.DefaultMaxBodyBytes
	}

	return &Server{
		logger:  logger,
		store:   st,
		router:  NewRouter(exec, maxBody, logger),
		cfg:     cfg,
		closing: make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}, nil
}

// Router returns the request router.
func (s *Server) Router() *Router {
	return s.router
}

// Handler returns the complete HTTP handler: health, subscriptions and the
// router behind request logging and h2c. Paths are matched verbatim, so
// unclean paths such as //schema reach the router and get a 404.
func (s *Server) Handler() http.Handler {
	dispatch := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case HealthPath:
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ok"))
		case SubscriptionsPath:
			s.handleSubscriptions(w, r)
		default:
			s.router.ServeHTTP(w, r)
		}
	})

	return h2c.NewHandler(s.withRequestLogging(dispatch), &http2.Server{})
}

// ListenAndServe listens on addr and serves until Shutdown.
func (s *Server) ListenAndServe(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeServerUnavailable, "failed to listen").
			WithDetail("addr", addr)
	}
	return s.Serve(listener)
}

// Serve serves on an existing listener. It blocks until the server stops or fails.
func (s *Server) Serve(listener net.Listener) error {
	s.mu.Lock()
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeoutDuration(),
	}
	srv := s.server
	s.mu.Unlock()

	s.logger.WithField("addr", listener.Addr().String()).Info("Catalog listening")
	return srv.Serve(listener)
}

// Shutdown gracefully stops the server and closes open subscriptions.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	s.once.Do(func() { close(s.closing) })

	s.mu.Lock()
	srv := s.server
	s.mu.Unlock()

	var err error
	if srv != nil {
		err = srv.Shutdown(ctx)
	}

	done := make(chan struct{})
	go func() {
		s.streams.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		if err == nil {
			err = ctx.Err()
		}
	}
	return err
}

// handleSubscriptions upgrades to a websocket and pushes a catAdded event for
// every entry appended while the connection is open.
func (s *Server) handleSubscriptions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.router.ServeHTTP(w, r)
		return
	}

	s.streams.Add(1)
	defer s.streams.Done()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client
		s.logger.WithError(err).Debug("Websocket upgrade failed")
		return
	}
	defer conn.Close()

	ch := s.store.Subscribe()
	defer s.store.Unsubscribe(ch)

	s.logger.Debug("Subscription client connected")

	// Drain reads so close frames from the client are noticed
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-gone:
			s.logger.Debug("Subscription client disconnected")
			return
		case <-s.closing:
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			return
		case update, ok := <-ch:
			if !ok {
				return
			}
			if update.Type != store.UpdateCatAdded {
				continue
			}

			var event models.CatAddedEvent
			event.Data.CatAdded = update.Cat

			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(event); err != nil {
				s.logger.WithError(err).Debug("Failed to write subscription event")
				return
			}
		}
	}
}

// statusRecorder captures the status code for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Hijack lets websocket upgrades through the recorder.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New(errors.ErrCodeInternal, "response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return hijacker.Hijack()
}

func (s *Server) withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		s.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     rec.status,
			"duration":   time.Since(start).String(),
		}).Debug("Handled request")
	})
}
