// Package server is the HTTP presentation shell of the launch dashboard.
// Each browser gets its own dashboard.Session, tracked by cookie; the
// dataset and callback registry are shared read-only.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/spektr-org/launchdash/config"
	"github.com/spektr-org/launchdash/dashboard"
	"github.com/spektr-org/launchdash/dataset"
	"github.com/spektr-org/launchdash/logging"
	"github.com/spektr-org/launchdash/render"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Server serves the dashboard page, chart images and the JSON API.
type Server struct {
	ds       *dataset.Dataset
	reg      *dashboard.Registry
	controls dashboard.Controls
	listen   string
	cookie   string
	size     render.Size
	idle     time.Duration

	sessions *sessionStore
	limiter  *rateLimiter
	metrics  *metrics
	log      *slog.Logger
	handler  http.Handler
}

// New builds a server for ds using the HTTP, session, rate limit and render
// settings from cfg.
func New(ds *dataset.Dataset, cfg config.Config) *Server {
	s := &Server{
		ds:       ds,
		reg:      dashboard.DefaultRegistry(),
		controls: dashboard.NewControls(ds, cfg.RangeStep),
		listen:   cfg.Listen,
		cookie:   cfg.Sessions.CookieName,
		size:     cfg.Render,
		idle:     cfg.Sessions.IdleTimeout,
		metrics:  newMetrics(),
		log:      logging.New("server"),
	}

	s.sessions = newSessionStore(cfg.Sessions.IdleTimeout, s.newSession)
	s.sessions.onCount = func(n int) { s.metrics.sessions.Set(float64(n)) }

	var h http.Handler = s.routes()
	h = s.instrument(h)
	if cfg.RateLimit.RPS > 0 {
		s.limiter = newRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		s.limiter.onReject = s.metrics.rateLimited.Inc
		h = s.limiter.middleware(h)
	}
	s.handler = h
	return s
}

func (s *Server) newSession() *dashboard.Session {
	return dashboard.NewSession(s.ds, s.reg, s.metrics.observe)
}

// Handler returns the root handler with middleware applied.
func (s *Server) Handler() http.Handler { return s.handler }

// Start listens on the configured address and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.listen)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.listen, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
// Background sweeps for idle sessions and stale limiters run alongside.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info("listening",
			slog.String("addr", ln.Addr().String()),
			slog.String("data", s.ds.Source()),
			slog.Int("launches", s.ds.Len()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		s.sessions.run(gctx, sweepInterval(s.idle))
		return nil
	})

	if s.limiter != nil {
		g.Go(func() error {
			s.limiter.run(gctx)
			return nil
		})
	}

	return g.Wait()
}

// sweepInterval checks for idle sessions a few times per timeout, at most
// once a minute.
func sweepInterval(idle time.Duration) time.Duration {
	every := idle / 4
	if every > time.Minute {
		every = time.Minute
	}
	if every < time.Second {
		every = time.Second
	}
	return every
}

// ============================================================================
// MIDDLEWARE
// ============================================================================

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument counts requests per route and logs them at debug level.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		s.metrics.requests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		s.log.Debug("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("elapsed", time.Since(start)))
	})
}
