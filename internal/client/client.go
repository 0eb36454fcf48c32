// Package client implements the TCP client counterpart to internal/server:
// one connection, matching buffered reader/writer, and exactly one
// response read per request written.
package client

import (
	"bufio"
	"net"

	"github.com/wealrain/ignitekv/internal/protocol"
	"github.com/wealrain/ignitekv/pkg/errors"
)

// Client is a single connection to an ignitekv server. It is not safe for
// concurrent use: requests on one connection are strictly ordered, and
// concurrent callers would interleave their reads and writes.
type Client struct {
	conn net.Conn
	r    *bufio.Reader
	w    *bufio.Writer
}

// Connect dials addr and wraps the connection in matching buffered
// reader/writer.
func Connect(addr string) (*Client, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, errors.NewProtocolError(err, errors.ErrorCodeProtocolFraming, "failed to connect").
			WithRemoteAddr(addr)
	}

	return &Client{conn: conn, r: bufio.NewReader(conn), w: bufio.NewWriter(conn)}, nil
}

// Get retrieves the value stored for key. ok is false if the key has no
// live entry; a non-nil error means the request itself failed, not that
// the key was absent.
func (c *Client) Get(key string) (value string, ok bool, err error) {
	if err := c.send(protocol.GetRequest(key)); err != nil {
		return "", false, err
	}

	resp, err := protocol.ReadGetResponse(c.r)
	if err != nil {
		return "", false, err
	}
	if resp.Err != "" {
		return "", false, errors.NewStringError(resp.Err)
	}

	return resp.Value, resp.Found, nil
}

// Set stores value for key.
func (c *Client) Set(key, value string) error {
	if err := c.send(protocol.SetRequest(key, value)); err != nil {
		return err
	}

	resp, err := protocol.ReadSetResponse(c.r)
	if err != nil {
		return err
	}
	if resp.Err != "" {
		return errors.NewStringError(resp.Err)
	}
	return nil
}

// Remove deletes key.
func (c *Client) Remove(key string) error {
	if err := c.send(protocol.RemoveRequest(key)); err != nil {
		return err
	}

	resp, err := protocol.ReadRemoveResponse(c.r)
	if err != nil {
		return err
	}
	if resp.Err != "" {
		return errors.NewStringError(resp.Err)
	}
	return nil
}

func (c *Client) send(req protocol.Request) error {
	if err := protocol.WriteRequest(c.w, req); err != nil {
		return err
	}
	return c.w.Flush()
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
