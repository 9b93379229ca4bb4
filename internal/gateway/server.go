// Package gateway exposes the cockpit operations over a small HTTP JSON
// surface for the agent gateway to call.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/openclaw/dev-cockpit/internal/config"
	"github.com/openclaw/dev-cockpit/internal/core/apierr"
	"github.com/openclaw/dev-cockpit/internal/core/pricing"
	"github.com/openclaw/dev-cockpit/internal/core/registry"
	"github.com/openclaw/dev-cockpit/internal/data/gitlog"
	"github.com/openclaw/dev-cockpit/internal/data/projscan"
	"github.com/openclaw/dev-cockpit/internal/data/sessions"
	"github.com/openclaw/dev-cockpit/internal/gitactivity"
	"github.com/openclaw/dev-cockpit/internal/usage"
	"github.com/openclaw/dev-cockpit/internal/util"
)

// Server wires the store, the session source, and the aggregators behind
// HTTP handlers. The registry is read fresh on every request; nothing is
// cached across calls.
type Server struct {
	cfg     *config.Config
	store   *registry.Store
	source  *sessions.Source
	usage   *usage.Aggregator
	git     *gitactivity.Aggregator
	scanner *projscan.Scanner
}

// NewServer builds a Server from the resolved configuration.
func NewServer(cfg *config.Config) *Server {
	runner := gitlog.NewRunner()
	return &Server{
		cfg:     cfg,
		store:   registry.NewStore(cfg.Registry),
		source:  sessions.NewSource(cfg.AgentsDir, 0),
		usage:   usage.New(pricing.NewDefaultProvider()),
		git:     gitactivity.New(runner),
		scanner: projscan.NewScanner(runner, 0),
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/projects", s.requireMethod(http.MethodGet, s.handleProjects))
	mux.HandleFunc("/api/usage", s.requireMethod(http.MethodGet, s.handleUsage))
	mux.HandleFunc("/api/git-activity", s.requireMethod(http.MethodGet, s.handleGitActivity))
	mux.HandleFunc("/api/scan", s.requireMethod(http.MethodPost, s.handleScan))
	mux.HandleFunc("/api/toggle", s.requireMethod(http.MethodPost, s.handleToggle))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeResult(w, map[string]interface{}{"status": "ok", "time": time.Now().Unix()})
	})
	return recoverMiddleware(mux)
}

// ListenAndServe runs the gateway until ctx is cancelled, watching the
// registry file for external rewrites on the side.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Listen,
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	watchCtx, cancelWatch := context.WithCancel(ctx)
	defer cancelWatch()
	go s.watchRegistry(watchCtx)

	errCh := make(chan error, 1)
	go func() {
		util.LogInfo(fmt.Sprintf("Gateway listening on %s", s.cfg.Listen))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) requireMethod(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			writeError(w, apierr.New(apierr.CodeInvalidRequest, "method %s not allowed", r.Method))
			return
		}
		next(w, r)
	}
}

// recoverMiddleware keeps panics from escaping as raw stack traces.
func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				util.LogError(fmt.Sprintf("Panic in %s %s: %v", r.Method, r.URL.Path, rec))
				writeError(w, apierr.New(apierr.CodeUnavailable, "internal error"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
