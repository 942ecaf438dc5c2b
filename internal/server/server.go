// Package server serves the rendered output directory during development.
//
// The server is a plain static file server with two additions: "/" redirects
// permanently to /index.html, and in dev mode a small live-reload client is
// appended to served HTML responses. The on-disk artifacts are never
// modified; injection happens only at the HTTP layer.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/druskus20/bageri/internal/logging"
)

// DefaultAddr is the fixed development server address.
const DefaultAddr = "127.0.0.1:3000"

// reloadScript is appended to HTML responses when live reload is enabled.
const reloadScript = `
<script>
  (() => {
    const connect = () => {
      const ws = new WebSocket("ws://" + location.host + "/_bageri/reload");
      ws.onmessage = () => location.reload();
      ws.onclose = () => setTimeout(connect, 1000);
    };
    connect();
  })();
</script>
`

// Server serves the output directory over HTTP.
type Server struct {
	addr       string
	root       http.Dir
	files      http.Handler
	logger     *logging.Logger
	reload     *reloadHub
	liveReload bool
}

// New creates a server for the given output directory.
func New(outputDir string, liveReload bool, logger *logging.Logger) *Server {
	root := http.Dir(outputDir)
	return &Server{
		addr:       DefaultAddr,
		root:       root,
		files:      http.FileServer(root),
		logger:     logger.WithComponent("server"),
		reload:     newReloadHub(logger),
		liveReload: liveReload,
	}
}

// Addr returns the listen address.
func (s *Server) Addr() string { return s.addr }

// NotifyReload tells every connected browser to refresh. Called by the dev
// loop after a successful rebuild.
func (s *Server) NotifyReload() {
	s.reload.broadcast()
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/_bageri/reload", s.reload.handle)
	mux.HandleFunc("/", s.handleSite)

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		s.reload.closeAll()
	}()

	s.logger.Info("dev server running", "url", "http://"+s.addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleSite(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/" {
		http.Redirect(w, r, "/index.html", http.StatusPermanentRedirect)
		return
	}

	if s.liveReload && strings.HasSuffix(r.URL.Path, ".html") {
		if s.serveHTMLWithReload(w, r) {
			return
		}
	}
	s.files.ServeHTTP(w, r)
}

// serveHTMLWithReload serves an HTML file with the reload client appended.
// Returns false when the file cannot be read, letting the plain file server
// produce the error response.
func (s *Server) serveHTMLWithReload(w http.ResponseWriter, r *http.Request) bool {
	f, err := s.root.Open(r.URL.Path)
	if err != nil {
		return false
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return false
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(content)
	_, _ = w.Write([]byte(reloadScript))
	return true
}
