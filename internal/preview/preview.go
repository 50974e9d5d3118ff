// Package preview serves the output directory over HTTP and rebuilds the site
// whenever one of its inputs changes.
package preview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"git.home.luguber.info/inful/tarotbuild/internal/config"
	"git.home.luguber.info/inful/tarotbuild/internal/logfields"
)

// DefaultDebounce is the quiet period after the last change before a rebuild starts.
const DefaultDebounce = 300 * time.Millisecond

// BuildFunc runs one complete build and returns the configuration it built with.
type BuildFunc func(ctx context.Context) (*config.Config, error)

// Options configure a preview server.
type Options struct {
	// Addr is the listen address, e.g. "localhost:8080".
	Addr     string
	Debounce time.Duration
	// Metrics, when set, is mounted at /-/metrics.
	Metrics http.Handler
}

// Server serves the output directory and rebuilds on change.
type Server struct {
	mu     sync.RWMutex
	cfg    *config.Config
	build  BuildFunc
	opts   Options
	status buildStatus
	builds chan struct{}
}

// New creates a preview server for cfg.
func New(cfg *config.Config, build BuildFunc, opts Options) *Server {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	return &Server{cfg: cfg, build: build, opts: opts, builds: make(chan struct{}, 1)}
}

// buildStatus tracks the last build result for the status endpoint.
type buildStatus struct {
	mu           sync.RWMutex
	lastError    error
	hasGoodBuild bool
	builds       int
}

func (bs *buildStatus) record(err error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.builds++
	bs.lastError = err
	if err == nil {
		bs.hasGoodBuild = true
	}
}

func (bs *buildStatus) get() (builds int, hasGoodBuild bool, lastError error) {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.builds, bs.hasGoodBuild, bs.lastError
}

// config returns the configuration of the last successful build.
func (s *Server) config() *config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// rebuild runs a build and, when it succeeds with a reloaded configuration,
// returns that configuration. Failed builds keep the previous one.
func (s *Server) rebuild(ctx context.Context) *config.Config {
	cfg, err := s.build(ctx)
	s.status.record(err)
	if err != nil {
		slog.Warn("Rebuild failed", logfields.Error(err))
		return nil
	}
	slog.Info("Rebuild complete")
	if cfg == nil {
		return nil
	}
	s.mu.Lock()
	changed := cfg != s.cfg
	s.cfg = cfg
	s.mu.Unlock()
	if !changed {
		return nil
	}
	return cfg
}

// Run builds once, then serves and watches until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	s.rebuild(ctx)

	w, err := newWatcher(s.config())
	if err != nil {
		return err
	}
	defer func() { _ = w.close() }()

	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.opts.Addr, err)
	}
	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()
	slog.Info("Preview server listening", slog.String("url", "http://"+ln.Addr().String()))

	var workers sync.WaitGroup
	workers.Add(1)
	go func() {
		defer workers.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.builds:
				slog.Info("Change detected; rebuilding site")
				if cfg := s.rebuild(ctx); cfg != nil {
					w.update(cfg)
				}
			}
		}
	}()

	trigger := debouncer(s.opts.Debounce, func() {
		select {
		case s.builds <- struct{}{}:
		default:
		}
	})

	err = w.run(ctx, trigger)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		slog.Warn("HTTP server shutdown error", logfields.Error(shutdownErr))
	}
	workers.Wait()
	if err != nil {
		return err
	}
	return <-serveErr
}

// debouncer returns a trigger that calls fn once d has passed without another trigger.
func debouncer(d time.Duration, fn func()) func() {
	var mu sync.Mutex
	var timer *time.Timer
	return func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, fn)
	}
}
