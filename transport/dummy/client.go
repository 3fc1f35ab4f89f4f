package dummy

import (
	"io"
	"net"
	"time"

	"github.com/indigo-web/lite/transport"
)

var _ transport.Client = new(Client)

// Client is a scripted client: every read returns the next piece it was initialised with.
// When the pieces are over, the terminal error is returned, io.EOF by default. Everything
// written is accumulated in Data.
type Client struct {
	pieces   [][]byte
	pending  []byte
	pointer  int
	terminal error
	Data     []byte
	Reads    int
	Closed   bool
}

func NewClient(pieces ...[]byte) *Client {
	return &Client{
		pieces:   pieces,
		terminal: io.EOF,
	}
}

// Scatter splits the data into pieces of at most n bytes each.
func Scatter(data []byte, n int) (pieces [][]byte) {
	for len(data) > n {
		pieces = append(pieces, data[:n])
		data = data[n:]
	}

	return append(pieces, data)
}

// FailWith replaces the error returned after the pieces are exhausted.
func (c *Client) FailWith(err error) *Client {
	c.terminal = err
	return c
}

func (c *Client) Read() ([]byte, error) {
	if len(c.pending) > 0 {
		pending := c.pending
		c.pending = nil

		return pending, nil
	}

	if c.Closed || c.pointer >= len(c.pieces) {
		return nil, c.terminal
	}

	piece := c.pieces[c.pointer]
	c.pointer++
	c.Reads++

	return piece, nil
}

func (c *Client) ReadBy(time.Time) ([]byte, error) {
	return c.Read()
}

func (c *Client) Unread(b []byte) {
	c.pending = b
}

func (c *Client) Write(b []byte) error {
	if c.Closed {
		return io.ErrClosedPipe
	}

	c.Data = append(c.Data, b...)
	return nil
}

func (c *Client) Remote() net.Addr {
	return nil
}

func (c *Client) Close() error {
	c.Closed = true
	return nil
}
