// Package schemaclient is a synchronous client for the typewire schema
// server.
package schemaclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/tuannm99/typewire/internal/typedesc"
	"github.com/tuannm99/typewire/server/schemawire"
)

// Client is a simple synchronous client. Send/recv are locked, so
// concurrent calls are safe but serialize on the connection.
type Client struct {
	conn net.Conn
	mu   sync.Mutex

	// Optional per-request timeout (0 = no timeout).
	rwTimeout time.Duration
}

func Dial(addr string, timeout time.Duration) (*Client, error) {
	d := net.Dialer{Timeout: timeout}
	c, err := d.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Client{conn: c}, nil
}

func DialContext(ctx context.Context, addr string, timeout time.Duration) (*Client, error) {
	d := net.Dialer{Timeout: timeout}
	c, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Client{conn: c}, nil
}

// SetRWTimeout sets a per-request read/write deadline. Useful to avoid
// hanging forever if the server dies.
func (c *Client) SetRWTimeout(d time.Duration) {
	if c == nil {
		return
	}
	c.rwTimeout = d
}

func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Register publishes a struct schema under name.
func (c *Client) Register(ctx context.Context, name string, schema *typedesc.Descriptor) error {
	_, err := c.roundTrip(ctx, schemawire.Request{Op: schemawire.OpRegister, Name: name, Schema: schema})
	return err
}

// Fetch retrieves the schema registered under name.
func (c *Client) Fetch(ctx context.Context, name string) (*typedesc.Descriptor, error) {
	resp, err := c.roundTrip(ctx, schemawire.Request{Op: schemawire.OpFetch, Name: name})
	if err != nil {
		return nil, err
	}
	if resp.Schema == nil {
		return nil, fmt.Errorf("schemaclient: server returned no schema for %q", name)
	}
	return resp.Schema, nil
}

// List returns all registered schema names, sorted.
func (c *Client) List(ctx context.Context) ([]string, error) {
	resp, err := c.roundTrip(ctx, schemawire.Request{Op: schemawire.OpList})
	if err != nil {
		return nil, err
	}
	return resp.Names, nil
}

// Drop removes the schema registered under name.
func (c *Client) Drop(ctx context.Context, name string) error {
	_, err := c.roundTrip(ctx, schemawire.Request{Op: schemawire.OpDrop, Name: name})
	return err
}

func (c *Client) roundTrip(ctx context.Context, req schemawire.Request) (schemawire.Response, error) {
	var zero schemawire.Response
	if c == nil || c.conn == nil {
		return zero, fmt.Errorf("schemaclient: nil client")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.applyDeadline(ctx); err != nil {
		return zero, err
	}
	defer func() {
		// Clear deadline after request so idle connection doesn't expire.
		_ = c.conn.SetDeadline(time.Time{})
	}()

	payload, err := req.Encode()
	if err != nil {
		return zero, err
	}
	if err := schemawire.WriteFrame(c.conn, payload); err != nil {
		return zero, err
	}

	raw, err := schemawire.ReadFrame(c.conn)
	if err != nil {
		return zero, err
	}
	resp, err := schemawire.DecodeResponse(raw)
	if err != nil {
		return zero, err
	}
	if resp.Status != schemawire.StatusOK {
		return zero, errors.New(resp.Err)
	}
	return resp, nil
}

func (c *Client) applyDeadline(ctx context.Context) error {
	// Prefer context deadline if present; otherwise use rwTimeout.
	if dl, ok := ctx.Deadline(); ok {
		return c.conn.SetDeadline(dl)
	}
	if c.rwTimeout > 0 {
		return c.conn.SetDeadline(time.Now().Add(c.rwTimeout))
	}
	return nil
}
