package tcp

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/google/uuid"

	"github.com/samir0607/InventoryMgmtSystem/internal/inventory/dispatch"
	"github.com/samir0607/InventoryMgmtSystem/pkg/metrics"
	"github.com/samir0607/InventoryMgmtSystem/pkg/proto/wire"
)

// session is the per-connection request/response loop. Each cycle reads
// exactly one command, dispatches it, writes exactly one response and
// flushes before reading again. Strictly request/response, no pipelining.
type session struct {
	id         string
	conn       net.Conn
	dec        *wire.Decoder
	enc        *wire.Encoder
	dispatcher *dispatch.Dispatcher
	logger     *slog.Logger
}

func newSession(conn net.Conn, dispatcher *dispatch.Dispatcher, logger *slog.Logger) *session {
	id := uuid.NewString()
	return &session{
		id:         id,
		conn:       conn,
		dec:        wire.NewDecoder(conn),
		enc:        wire.NewEncoder(conn),
		dispatcher: dispatcher,
		logger: logger.With(
			slog.String("session_id", id),
			slog.String("remote_addr", conn.RemoteAddr().String()),
		),
	}
}

// serve runs the session until the peer disconnects or a protocol fault
// occurs. Business-level rejections are ordinary responses and do not end
// the loop.
func (s *session) serve(ctx context.Context) {
	defer func() {
		_ = s.conn.Close()
	}()

	s.logger.Info("client connected")

	for {
		req, err := s.dec.DecodeRequest()
		if err != nil {
			switch {
			case errors.Is(err, io.EOF):
				s.logger.Info("client disconnected")
			case errors.Is(err, net.ErrClosed):
				s.logger.Info("session closed by server")
			default:
				s.logger.Warn("protocol error, closing session", "error", err)
			}
			return
		}

		start := time.Now()
		resp, err := s.dispatcher.Dispatch(ctx, req)
		if err != nil {
			metrics.ObserveCommand(req.Name, "fault", start)
			s.logger.Warn("closing session", "command", req.Name, "error", err)
			return
		}

		if err := s.enc.Encode(resp); err != nil {
			metrics.ObserveCommand(req.Name, "fault", start)
			s.logger.Warn("failed to write response, closing session", "error", err)
			return
		}
		if err := s.enc.Flush(); err != nil {
			metrics.ObserveCommand(req.Name, "fault", start)
			s.logger.Warn("failed to flush response, closing session", "error", err)
			return
		}
		metrics.ObserveCommand(req.Name, "ok", start)
	}
}
