// Package preview serves a live view of a reconciled tree over HTTP.
//
// Routes:
//
//	GET /          page that renders /tree and follows /trace
//	GET /tree      current container HTML
//	GET /trace     WebSocket stream of Update messages, one per pass
//	GET /metrics   Prometheus metrics
//	GET /healthz   liveness probe
//
// Apply mounts a new element and pushes the resulting Update to every
// /trace client:
//
//	srv := preview.NewServer(preview.NewSession())
//	srv.Apply(tree)
//	http.ListenAndServe(addr, srv.Handler())
package preview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/reconciler/pkg/element"
)

// Server exposes a Session over HTTP.
type Server struct {
	session  *Session
	hub      *Hub
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithGatherer sets the registry served on /metrics.
// Defaults to prometheus.DefaultGatherer.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a server for session.
func NewServer(session *Session, opts ...Option) *Server {
	s := &Server{
		session:  session,
		hub:      NewHub(),
		gatherer: prometheus.DefaultGatherer,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Session returns the served session.
func (s *Server) Session() *Session {
	return s.session
}

// Hub returns the update hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Apply mounts el and broadcasts the result. Failures are broadcast as
// error updates and returned.
func (s *Server) Apply(el element.Element) error {
	u, err := s.session.Mount(el)
	if err != nil {
		s.logger.Warn("preview: mount failed", "root", el.String(), "error", err)
	} else {
		s.logger.Info("preview: mounted", "root", u.Root, "version", u.Version, "calls", len(u.Trace))
	}
	s.hub.Broadcast(u)
	return err
}

// Fail broadcasts err without touching the tree, e.g. when a document no
// longer decodes.
func (s *Server) Fail(err error) {
	last := s.session.Last()
	s.hub.Broadcast(Update{Type: UpdateError, Version: last.Version, Error: err.Error(), Trace: []string{}})
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/tree", s.handleTree)
	r.Get("/trace", s.handleTrace)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("preview: listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

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

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if r.URL.Query().Get("indent") != "" {
		fmt.Fprint(w, s.session.Indented())
		return
	}
	fmt.Fprint(w, s.session.HTML())
}

func (s *Server) handleTrace(w http.ResponseWriter, r *http.Request) {
	s.hub.HandleWebSocket(w, r, s.session.Last())
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexPage)
}

const indexPage = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>reconcile preview</title>
<style>
body { font-family: sans-serif; margin: 0; display: flex; }
#tree { flex: 1; padding: 1em; }
#trace { flex: 1; padding: 1em; background: #f4f4f4; font: 12px monospace; white-space: pre; }
.error { color: #b00; }
</style></head>
<body>
<div id="tree"></div>
<div id="trace"></div>
<script>
(function() {
    var tree = document.getElementById('tree');
    var trace = document.getElementById('trace');
    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        var ws = new WebSocket(protocol + '//' + location.host + '/trace');
        ws.onmessage = function(e) {
            var u = JSON.parse(e.data);
            if (u.type === 'error') {
                trace.innerHTML = '<span class="error"></span>';
                trace.firstChild.textContent = u.error;
                return;
            }
            tree.innerHTML = u.html;
            trace.textContent = '#' + u.version + ' ' + (u.root || '') + '\n' + u.trace.join('\n');
        };
        ws.onclose = function() { setTimeout(connect, 1000); };
    }
    connect();
})();
</script>
</body>
</html>
`
