// Package tcp provides the TCP listener and per-connection sessions for the
// inventory command protocol.
package tcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/samir0607/InventoryMgmtSystem/internal/inventory/dispatch"
	"github.com/samir0607/InventoryMgmtSystem/pkg/metrics"
)

// Server accepts client connections on one configured port and runs one
// session goroutine per connection. There is no admission limit and no
// per-command timeout; a session lives until the peer disconnects, a
// protocol fault occurs, or the server shuts down.
type Server struct {
	addr       string
	dispatcher *dispatch.Dispatcher
	logger     *slog.Logger

	mu    sync.Mutex
	conns map[net.Conn]struct{}
	wg    sync.WaitGroup
}

// NewServer creates a Server that will listen on addr.
func NewServer(addr string, dispatcher *dispatch.Dispatcher, logger *slog.Logger) *Server {
	return &Server{
		addr:       addr,
		dispatcher: dispatcher,
		logger:     logger.With("component", "tcp"),
		conns:      make(map[net.Conn]struct{}),
	}
}

// ListenAndServe binds the configured address and serves until ctx is
// cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	return s.Serve(ctx, lis)
}

// Serve accepts connections from lis until ctx is cancelled, then closes
// the listener and any open connections and waits for all sessions to
// finish. One session's failure never affects the accept loop or other
// live sessions.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	s.logger.Info("TCP server listening", slog.String("addr", lis.Addr().String()))

	stop := context.AfterFunc(ctx, func() {
		if err := lis.Close(); err != nil {
			s.logger.Warn("failed to close listener", "error", err)
		}
		s.closeConns()
	})
	defer stop()

	for {
		conn, err := lis.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				s.wg.Wait()
				s.logger.Info("TCP server stopped")
				return nil
			}
			return fmt.Errorf("accept failed: %w", err)
		}

		metrics.SessionsTotal.Inc()
		metrics.SessionsActive.Inc()
		s.track(conn)

		sess := newSession(conn, s.dispatcher, s.logger)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer metrics.SessionsActive.Dec()
			defer s.untrack(conn)
			sess.serve(ctx)
		}()
	}
}

func (s *Server) track(conn net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conns[conn] = struct{}{}
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, conn)
}

func (s *Server) closeConns() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.conns {
		_ = conn.Close()
	}
}
