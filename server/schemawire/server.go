package schemawire

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/tuannm99/typewire/internal/registry"
)

type ServerConfig struct {
	Addr  string
	Debug bool
}

// Run listens on sc.Addr and serves registry requests until SIGINT or
// SIGTERM.
func Run(sc ServerConfig) error {
	ln, err := net.Listen("tcp", sc.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer func() { _ = ln.Close() }()

	logger := NewLogger(sc.Debug)
	logger.Info().Str("addr", ln.Addr().String()).Msg("typewire schema server listening")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	return Serve(ctx, ln, registry.New(), logger)
}

// NewLogger builds the server's console logger.
func NewLogger(debug bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(output).With().Timestamp().Str("app", "typewire").Logger().Level(level)
}

// Serve accepts connections until the listener closes or ctx is done.
// Split from Run so tests can drive it with their own listener.
func Serve(ctx context.Context, ln net.Listener, reg *registry.Registry, logger zerolog.Logger) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				logger.Warn().Err(err).Msg("accept")
				continue
			}
			return nil
		}
		go handleConn(ctx, conn, reg, logger)
	}
}

func handleConn(ctx context.Context, conn net.Conn, reg *registry.Registry, logger zerolog.Logger) {
	defer func() { _ = conn.Close() }()

	_ = conn.SetDeadline(time.Time{})
	log := logger.With().Str("peer", conn.RemoteAddr().String()).Logger()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		payload, err := ReadFrame(conn)
		if err != nil {
			// client closed or bad frame
			return
		}

		req, err := DecodeRequest(payload)
		if err != nil {
			log.Debug().Err(err).Msg("bad request frame")
			writeResponse(conn, Response{Status: StatusError, Err: err.Error()})
			continue
		}

		resp := handleRequest(reg, req)
		if resp.Status == StatusOK {
			log.Debug().Uint8("op", uint8(req.Op)).Str("name", req.Name).Msg("ok")
		} else {
			log.Debug().Uint8("op", uint8(req.Op)).Str("name", req.Name).Str("err", resp.Err).Msg("rejected")
		}
		writeResponse(conn, resp)
	}
}

func handleRequest(reg *registry.Registry, req Request) Response {
	switch req.Op {
	case OpRegister:
		if err := reg.Register(req.Name, req.Schema); err != nil {
			return errResponse(err)
		}
		return Response{Status: StatusOK}

	case OpFetch:
		d, err := reg.Get(req.Name)
		if err != nil {
			return errResponse(err)
		}
		return Response{Status: StatusOK, Schema: d}

	case OpList:
		return Response{Status: StatusOK, Names: reg.List()}

	case OpDrop:
		if err := reg.Drop(req.Name); err != nil {
			return errResponse(err)
		}
		return Response{Status: StatusOK}
	}
	return Response{Status: StatusError, Err: fmt.Sprintf("schemawire: unknown op %d", req.Op)}
}

func errResponse(err error) Response {
	return Response{Status: StatusError, Err: err.Error()}
}

func writeResponse(conn net.Conn, resp Response) {
	b, err := resp.Encode()
	if err != nil {
		return
	}
	_ = WriteFrame(conn, b)
}
