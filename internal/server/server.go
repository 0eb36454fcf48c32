// Package server implements the TCP front end: a cloneable engine handle
// and a worker pool dispatch connections onto, each running the
// per-connection request/response loop.
package server

import (
	"bufio"
	stdErrors "errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wealrain/ignitekv/internal/kvengine"
	"github.com/wealrain/ignitekv/internal/metrics"
	"github.com/wealrain/ignitekv/internal/pool"
	"github.com/wealrain/ignitekv/internal/protocol"
	"github.com/wealrain/ignitekv/pkg/errors"
	"github.com/wealrain/ignitekv/pkg/options"
	"go.uber.org/zap"
)

// Server owns the listener, the engine handle every connection clones
// from, and the worker pool connections are dispatched onto.
type Server struct {
	engine  kvengine.Engine
	pool    pool.Pool
	log     *zap.SugaredLogger
	metrics *metrics.Metrics
}

// Config holds all parameters needed to construct a Server.
type Config struct {
	Engine  kvengine.Engine
	Options *options.Options
	Logger  *zap.SugaredLogger

	// Metrics is optional; a nil value disables instrumentation.
	Metrics *metrics.Metrics
}

// New builds a Server with the worker pool selected by config.Options.PoolKind.
func New(config *Config) (*Server, error) {
	if config == nil || config.Engine == nil || config.Options == nil || config.Logger == nil {
		return nil, errors.NewConfigurationValidationError("config", "server configuration is required")
	}

	p, err := pool.New(config.Options.PoolKind, config.Options.PoolSize, config.Logger)
	if err != nil {
		return nil, err
	}

	return &Server{engine: config.Engine, pool: p, log: config.Logger, metrics: config.Metrics}, nil
}

// ServeMetrics serves promhttp.Handler(), the handler for Prometheus's
// default registry, at /metrics on addr until the process exits or the
// listener errors; callers typically run this in its own goroutine
// alongside Run. It serves that handler whether or not the Server was
// given Metrics.
func (s *Server) ServeMetrics(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}

// Run binds addr and serves connections. It returns only if binding
// fails; once bound, every accept error is logged and the loop continues.
func (s *Server) Run(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.NewProtocolError(err, errors.ErrorCodeProtocolFraming, "failed to bind listener").
			WithRemoteAddr(addr)
	}
	defer listener.Close()

	s.log.Infow("Server listening", "addr", addr)

	for {
		conn, err := listener.Accept()
		if err != nil {
			s.log.Errorw("accept failed", "error", err)
			continue
		}

		clone := s.engine.Clone()
		s.pool.Submit(func() {
			defer clone.Close()
			if err := serveConn(clone, conn, s.metrics); err != nil {
				s.log.Warnw("connection terminated", "remoteAddr", conn.RemoteAddr().String(), "error", err)
			}
		})
	}
}

// Close releases the server's worker pool.
func (s *Server) Close() error {
	return s.pool.Close()
}

// serveConn wraps conn in a buffered reader/writer and stream-parses
// requests from it until EOF, a malformed request, or an I/O error
// terminates the connection.
func serveConn(e kvengine.Engine, conn net.Conn, m *metrics.Metrics) error {
	defer conn.Close()

	r := bufio.NewReader(conn)
	w := bufio.NewWriter(conn)

	for {
		req, err := protocol.ReadRequest(r)
		if err != nil {
			return handleReadError(err)
		}

		start := time.Now()
		if err := dispatch(e, w, req); err != nil {
			return err
		}
		m.ObserveLatency(string(req.Kind), time.Since(start).Seconds())

		if err := w.Flush(); err != nil {
			return err
		}
	}
}

func handleReadError(err error) error {
	if stdErrors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func dispatch(e kvengine.Engine, w *bufio.Writer, req protocol.Request) error {
	switch req.Kind {
	case protocol.RequestGet:
		value, found, err := e.Get(req.Key)
		resp := protocol.GetResponse{Found: found, Value: value}
		if err != nil {
			resp = protocol.GetResponse{Err: err.Error()}
		}
		return protocol.WriteResponse(w, resp)

	case protocol.RequestSet:
		var resp protocol.SetResponse
		if err := e.Set(req.Key, req.Value); err != nil {
			resp.Err = err.Error()
		}
		return protocol.WriteResponse(w, resp)

	case protocol.RequestRemove:
		var resp protocol.RemoveResponse
		if err := e.Remove(req.Key); err != nil {
			resp.Err = err.Error()
		}
		return protocol.WriteResponse(w, resp)

	default:
		return errors.NewDecodeError(nil, "unknown request kind").WithDetail("kind", req.Kind)
	}
}
