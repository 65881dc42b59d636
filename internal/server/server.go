// Package server serves the dashboard over HTTP: the HTML page, a PNG chart,
// the raw history as JSON, a health probe, and Prometheus metrics. Every
// request performs its own history load.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/pkindex/internal/dashboard"
	"github.com/rshade/pkindex/internal/history"
	"github.com/rshade/pkindex/internal/logging"
)

// Server defaults.
const (
	DefaultAddr            = ":8080"
	DefaultShutdownTimeout = 10 * time.Second
	readHeaderTimeout      = 5 * time.Second
)

// Options configure a Server.
type Options struct {
	Addr            string
	Compression     bool
	HTML            dashboard.HTMLOptions
	ChartWidth      int
	ChartHeight     int
	ShutdownTimeout time.Duration
	Logger          *zerolog.Logger
}

// Server is the dashboard HTTP server.
type Server struct {
	controller *dashboard.Controller
	metrics    *Metrics
	opts       Options
	logger     zerolog.Logger
	handler    http.Handler
}

// historyResponse is the body of GET /api/history.
type historyResponse struct {
	State   dashboard.State  `json:"state"`
	Message string           `json:"message,omitempty"`
	Records []history.Record `json:"records"`
}

// New returns a Server that builds pages with controller.
func New(controller *dashboard.Controller, opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = DefaultAddr
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = DefaultShutdownTimeout
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = logging.ComponentLogger(*opts.Logger, "server")
	}

	s := &Server{
		controller: controller,
		metrics:    NewMetrics(),
		opts:       opts,
		logger:     logger,
	}
	s.handler = s.routes()
	return s
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

func (s *Server) routes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/chart.png", s.handleChart).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/api/history", s.handleHistory).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/healthz", handleHealth).Methods(http.MethodGet, http.MethodHead)
	r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)
	r.Use(s.requestContext)

	if s.opts.Compression {
		return ZstdMiddleware(r)
	}
	return r
}

// requestContext attaches the logger and a fresh trace id to each request.
func (s *Server) requestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logging.ContextWithTraceID(r.Context(), logging.NewTraceID())
		ctx = s.logger.WithContext(ctx)
		start := time.Now()

		next.ServeHTTP(w, r.WithContext(ctx))

		s.logger.Debug().Ctx(ctx).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("request served")
	})
}

// build performs one load and records it.
func (s *Server) build(ctx context.Context) dashboard.Page {
	start := time.Now()
	page := s.controller.Build(ctx)
	s.metrics.Observe(page.State, time.Since(start))
	return page
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := s.build(r.Context())

	var buf bytes.Buffer
	if err := dashboard.RenderHTML(&buf, page, s.opts.HTML); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	page := s.build(r.Context())
	switch {
	case page.State == dashboard.StateError:
		http.Error(w, page.Message, http.StatusBadGateway)
		return
	case page.Chart == nil || page.Chart.Empty():
		w.WriteHeader(http.StatusNoContent)
		return
	}

	var buf bytes.Buffer
	if err := dashboard.RenderChartPNG(&buf, *page.Chart, s.opts.ChartWidth, s.opts.ChartHeight); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	page := s.build(r.Context())

	status := http.StatusOK
	if page.State == dashboard.StateError {
		status = http.StatusBadGateway
	}
	records := page.Records
	if records == nil {
		records = []history.Record{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(historyResponse{
		State:   page.State,
		Message: page.Message,
		Records: records,
	})
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error().Ctx(r.Context()).Err(err).Str("path", r.URL.Path).Msg("render failed")
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info().Ctx(ctx).Str("addr", ln.Addr().String()).Msg("server listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.ShutdownTimeout)
		defer cancel()
		s.logger.Info().Ctx(ctx).Msg("server shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
