package httpserver

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	logpkg "github.com/evanxd/discord-agent-trigger/pkg/log"
)

// Pinger checks stream-store reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Gateway reports chat-gateway readiness.
type Gateway interface {
	Ready() bool
}

// Server serves the health endpoint.
type Server struct {
	srv     *http.Server
	lis     net.Listener
	store   Pinger
	gateway Gateway
	logger  logpkg.Logger
}

// New creates a Server over the given health sources.
func New(store Pinger, gateway Gateway, logger logpkg.Logger) *Server {
	mux := http.NewServeMux()
	s := &Server{
		srv:     &http.Server{Handler: mux},
		store:   store,
		gateway: gateway,
		logger:  logger.With(logpkg.Component("http")),
	}
	mux.HandleFunc("/v1/healthz", s.handleHealth)
	return s
}

// ListenAndServe serves until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.lis = l
	errCh := make(chan error, 1)
	go func() { errCh <- s.srv.Serve(l) }()
	select {
	case <-ctx.Done():
		cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(cctx)
		return nil
	case err := <-errCh:
		return err
	}
}

// Close stops the listener.
func (s *Server) Close() {
	if s.lis != nil {
		_ = s.lis.Close()
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok", "store": "ok", "gateway": "ok"}
	healthy := true
	if err := s.store.Ping(r.Context()); err != nil {
		status["store"] = "unreachable"
		healthy = false
	}
	if !s.gateway.Ready() {
		status["gateway"] = "not_ready"
		healthy = false
	}
	if !healthy {
		status["status"] = "not_serving"
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(status)
}
