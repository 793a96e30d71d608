package devserver

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/arthur-debert/packwise/pkg/errors"
	"github.com/arthur-debert/packwise/pkg/logging"
	"github.com/arthur-debert/packwise/pkg/types"
	"github.com/rs/cors"
)

// ReloadPath is the websocket endpoint of the reload hub
const ReloadPath = "/__livereload"

const allowOriginHeader = "Access-Control-Allow-Origin"

// Server serves one dev server descriptor
type Server struct {
	desc    types.DevServer
	hub     *Hub
	handler http.Handler

	mu   sync.Mutex
	addr string
}

// New creates a server for desc. Production configurations carry no dev
// server descriptor; passing nil is an error.
func New(desc *types.DevServer) (*Server, error) {
	if desc == nil {
		return nil, errors.New(errors.ErrInvalidInput, "configuration has no dev server (production build?)")
	}
	if desc.ContentBase == "" {
		return nil, errors.New(errors.ErrInvalidInput, "dev server needs a content base")
	}

	s := &Server{desc: *desc, hub: NewHub()}

	mux := http.NewServeMux()
	mux.Handle(ReloadPath, s.hub)
	mux.Handle("/", http.FileServer(http.Dir(desc.ContentBase)))

	s.handler = withHeaders(desc.Headers, withCORS(desc.Headers[allowOriginHeader], mux))
	return s, nil
}

// withCORS answers cross-origin requests from origin
func withCORS(origin string, h http.Handler) http.Handler {
	if origin == "" {
		return h
	}
	middleware := cors.New(cors.Options{
		AllowedOrigins: []string{origin},
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	return middleware.Handler(h)
}

// withHeaders adds the descriptor's remaining headers to every response
func withHeaders(headers map[string]string, h http.Handler) http.Handler {
	extra := make(map[string]string, len(headers))
	for k, v := range headers {
		if http.CanonicalHeaderKey(k) != allowOriginHeader {
			extra[k] = v
		}
	}
	if len(extra) == 0 {
		return h
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for k, v := range extra {
			w.Header().Set(k, v)
		}
		h.ServeHTTP(w, r)
	})
}

// Handler returns the server's HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Notify tells every connected page to reload
func (s *Server) Notify() int {
	sent := s.hub.Broadcast()
	logger := logging.GetLogger("devserver")
	logger.Debug().Int("clients", sent).Msg("Sent reload")
	return sent
}

// Clients returns the number of connected reload clients
func (s *Server) Clients() int {
	return s.hub.Clients()
}

// Addr returns the bound address once ListenAndServe is listening
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// ListenAndServe serves until ctx ends, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	logger := logging.GetLogger("devserver")
	address := net.JoinHostPort(s.desc.Host, strconv.Itoa(s.desc.Port))

	ln, err := net.Listen("tcp", address)
	if err != nil {
		return errors.Wrapf(err, errors.ErrServerListen, "failed to listen on %s", address).
			WithDetail("address", address)
	}

	s.mu.Lock()
	s.addr = ln.Addr().String()
	s.mu.Unlock()

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	logger.Info().
		Str("addr", ln.Addr().String()).
		Str("public", s.desc.PublicPath).
		Str("content", s.desc.ContentBase).
		Msg("Dev server listening")

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, errors.ErrServerListen, "dev server stopped")
	case <-ctx.Done():
	}

	s.hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, errors.ErrServerListen, "dev server shutdown failed")
	}
	logger.Info().Msg("Dev server stopped")
	return nil
}
