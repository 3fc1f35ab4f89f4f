package transport

import (
	"net"
	"sync/atomic"
	"time"

	"github.com/indigo-web/lite/config"
)

// Client is a byte stream bound to a single connection. Every read and every write is
// individually time-bounded.
type Client interface {
	// Read returns the next piece of data, bounded by the read timeout. The returned slice
	// is valid until the next call. io.EOF signals the end of the stream.
	Read() ([]byte, error)
	// ReadBy behaves as Read, but is bounded by the deadline instead.
	ReadBy(deadline time.Time) ([]byte, error)
	// Unread preserves a piece of data from previous read for the next read.
	Unread([]byte)
	// Write writes the whole data, bounded by the write timeout.
	Write([]byte) error
	Remote() net.Addr
	// Close closes the connection. Subsequent calls are no-op.
	Close() error
}

type client struct {
	conn         net.Conn
	buff         []byte
	pending      []byte
	readTimeout  time.Duration
	writeTimeout time.Duration
	closed       atomic.Bool
}

func NewClient(conn net.Conn, cfg config.NET) Client {
	return &client{
		conn:         conn,
		buff:         make([]byte, cfg.ReadBufferSize),
		readTimeout:  cfg.ReadTimeout,
		writeTimeout: cfg.WriteTimeout,
	}
}

// Read reads data into the internal buffer and returns a piece of it back. Timeouts are also
// handled automatically.
func (c *client) Read() ([]byte, error) {
	return c.ReadBy(time.Now().Add(c.readTimeout))
}

func (c *client) ReadBy(deadline time.Time) ([]byte, error) {
	if len(c.pending) > 0 {
		pending := c.pending
		c.pending = nil

		return pending, nil
	}

	if err := c.conn.SetReadDeadline(deadline); err != nil {
		return nil, err
	}

	n, err := c.conn.Read(c.buff)
	if n > 0 {
		// the error, if any, is going to be returned once again by the next read
		return c.buff[:n], nil
	}

	return nil, err
}

func (c *client) Unread(b []byte) {
	c.pending = b
}

func (c *client) Write(b []byte) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
		return err
	}

	_, err := c.conn.Write(b)
	return err
}

func (c *client) Remote() net.Addr {
	return c.conn.RemoteAddr()
}

func (c *client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	return c.conn.Close()
}
