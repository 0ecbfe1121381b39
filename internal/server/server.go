package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// Addr is the fixed loopback address the test server binds.
const Addr = "localhost:33000"

const shutdownGrace = 5 * time.Second

// URL returns the base URL clients use to reach Addr.
func URL() string {
    return "http://" + Addr
}

// Server owns the listener and http.Server for one process lifetime.
type Server struct {
    srv *http.Server
    ln  net.Listener
}

// New wraps h with request logging and cleartext HTTP/2 support.
func New(addr string, h http.Handler) *Server {
    return &Server{
        srv: &http.Server{
            Addr:    addr,
            Handler: h2c.NewHandler(LogRequests(h), &http2.Server{}),
        },
    }
}

// Listen binds the listening socket. Serve calls it when needed; calling it
// first lets the caller learn the bound address.
func (s *Server) Listen() error {
    ln, err := net.Listen("tcp", s.srv.Addr)
    if err != nil {
        return errors.Wrapf(err, "listen %s", s.srv.Addr)
    }
    s.ln = ln
    return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
    if s.ln == nil {
        return nil
    }
    return s.ln.Addr()
}

// Serve blocks until ctx is cancelled or the listener fails. On cancellation
// it shuts the server down and returns nil.
func (s *Server) Serve(ctx context.Context) error {
    if s.ln == nil {
        if err := s.Listen(); err != nil {
            return err
        }
    }

    errCh := make(chan error, 1)
    go func() {
        errCh <- s.srv.Serve(s.ln)
    }()

    select {
    case err := <-errCh:
        return errors.Wrap(err, "serve")
    case <-ctx.Done():
    }

    shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
    defer cancel()
    if err := s.srv.Shutdown(shutdownCtx); err != nil {
        return errors.Wrap(err, "shutdown")
    }
    if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
        return errors.Wrap(err, "serve")
    }
    return nil
}
