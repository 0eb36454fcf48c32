package client

import (
	"bufio"
	"net"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wealrain/ignitekv/internal/protocol"
)

// newTestClient wires a Client to an in-process peer connection, so tests
// can exercise request/response framing without a real listener.
func newTestClient(t *testing.T) (c *Client, peer net.Conn) {
	t.Helper()
	clientSide, peerSide := net.Pipe()
	c = &Client{conn: clientSide, r: bufio.NewReader(clientSide), w: bufio.NewWriter(clientSide)}
	t.Cleanup(func() { _ = c.Close() })
	return c, peerSide
}

func TestClientGetFound(t *testing.T) {
	c, peer := newTestClient(t)
	defer peer.Close()

	go func() {
		req, err := protocol.ReadRequest(peer)
		require.NoError(t, err)
		require.Equal(t, protocol.GetRequest("a"), req)
		require.NoError(t, protocol.WriteResponse(peer, protocol.GetResponse{Found: true, Value: "1"}))
	}()

	value, ok, err := c.Get("a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "1", value)
}

func TestClientGetServerError(t *testing.T) {
	c, peer := newTestClient(t)
	defer peer.Close()

	go func() {
		_, err := protocol.ReadRequest(peer)
		require.NoError(t, err)
		require.NoError(t, protocol.WriteResponse(peer, protocol.GetResponse{Err: "boom"}))
	}()

	_, _, err := c.Get("a")
	require.Error(t, err)
	require.Equal(t, "boom", err.Error())
}

func TestClientSet(t *testing.T) {
	c, peer := newTestClient(t)
	defer peer.Close()

	go func() {
		req, err := protocol.ReadRequest(peer)
		require.NoError(t, err)
		require.Equal(t, protocol.SetRequest("a", "1"), req)
		require.NoError(t, protocol.WriteResponse(peer, protocol.SetResponse{}))
	}()

	require.NoError(t, c.Set("a", "1"))
}

func TestClientRemoveError(t *testing.T) {
	c, peer := newTestClient(t)
	defer peer.Close()

	go func() {
		_, err := protocol.ReadRequest(peer)
		require.NoError(t, err)
		require.NoError(t, protocol.WriteResponse(peer, protocol.RemoveResponse{Err: "key not found"}))
	}()

	err := c.Remove("a")
	require.Error(t, err)
	require.Equal(t, "key not found", err.Error())
}
