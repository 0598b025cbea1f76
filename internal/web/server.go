package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"tcs/internal/menu"
	"tcs/internal/metric"
	"tcs/internal/model"
)

const (
	// DefaultReadTimeout is the maximum duration for reading a request.
	DefaultReadTimeout = 10 * time.Second

	// DefaultWriteTimeout is the maximum duration for writing a response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultShutdownTimeout is the grace period for in-flight requests on shutdown.
	DefaultShutdownTimeout = 5 * time.Second
)

// Server exposes the menu tree and launch metrics over HTTP. It only reads
// the tree, which is immutable once built, and never touches navigation.
type Server struct {
	addr            string
	mux             *http.ServeMux
	shutdownTimeout time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics serves the registry at /metrics.
func WithMetrics(reg prometheus.Gatherer) Option {
	return func(s *Server) {
		s.mux.Handle("/metrics", metric.GetHandlerForRegistry(reg))
	}
}

// WithShutdownTimeout overrides DefaultShutdownTimeout.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) { s.shutdownTimeout = d }
}

// New creates a server for tree listening on addr (e.g. ":8080").
func New(addr string, tree *menu.Tree, opts ...Option) *Server {
	s := &Server{
		addr:            addr,
		mux:             http.NewServeMux(),
		shutdownTimeout: DefaultShutdownTimeout,
	}

	// API Endpoints
	s.mux.Handle("/api/menu", MenuHandler(tree))
	s.mux.HandleFunc("/healthz", handleHealth)

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the server's request multiplexer.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Serve listens on the configured address and blocks until ctx is canceled,
// then shuts down gracefully. A nil error means a clean shutdown.
func (s *Server) Serve(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}
	return s.serve(ctx, listener)
}

func (s *Server) serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:      s.mux,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", listener.Addr().String()).Msg("starting menu server")
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown error")
		}
		log.Info().Msg("menu server stopped")
		return nil
	})

	return g.Wait()
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// MenuView is the JSON form of a menu.
type MenuView struct {
	Path   string     `json:"path"`
	Parent *string    `json:"parent,omitempty"`
	Items  []ItemView `json:"items"`
}

// ItemView is the JSON form of a menu item.
type ItemView struct {
	Name   string        `json:"name"`
	Kind   menu.Kind     `json:"kind"`
	Target *string       `json:"target,omitempty"`
	Launch *model.Launch `json:"launch,omitempty"`
}

// NewMenuView converts m for JSON output.
func NewMenuView(m *menu.Menu) MenuView {
	v := MenuView{Path: m.Path, Items: make([]ItemView, 0, len(m.Items))}
	if m.Parent != nil {
		p := m.Parent.Path
		v.Parent = &p
	}
	for _, it := range m.Items {
		iv := ItemView{Name: it.Name, Kind: it.Kind}
		if it.Target != nil {
			p := it.Target.Path
			iv.Target = &p
		}
		if it.Kind == menu.KindRun {
			l := it.Launch
			iv.Launch = &l
		}
		v.Items = append(v.Items, iv)
	}
	return v
}

// MenuHandler serves every menu of tree, or the one named by ?path=.
func MenuHandler(tree *menu.Tree) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var data any
		if r.URL.Query().Has("path") {
			path := r.URL.Query().Get("path")
			m, ok := tree.Menu(path)
			if !ok {
				http.Error(w, fmt.Sprintf("menu %q not found", path), http.StatusNotFound)
				return
			}
			data = NewMenuView(m)
		} else {
			menus := tree.Menus()
			views := make([]MenuView, 0, len(menus))
			for _, m := range menus {
				views = append(views, NewMenuView(m))
			}
			data = views
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Error().Err(err).Msg("failed to encode menu")
		}
	})
}
