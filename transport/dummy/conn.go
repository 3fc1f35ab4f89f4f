package dummy

import (
	"io"
	"net"
	"sync"
	"time"
)

// Conn is a net.Conn serving scripted pieces on reads and accumulating writes.
type Conn struct {
	mu      sync.Mutex
	pieces  [][]byte
	written []byte
	closed  bool
}

func NewConn(pieces ...[]byte) *Conn {
	return &Conn{pieces: pieces}
}

func (c *Conn) Read(b []byte) (n int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0, net.ErrClosed
	}

	if len(c.pieces) == 0 {
		return 0, io.EOF
	}

	n = copy(b, c.pieces[0])
	if n < len(c.pieces[0]) {
		c.pieces[0] = c.pieces[0][n:]
	} else {
		c.pieces = c.pieces[1:]
	}

	return n, nil
}

func (c *Conn) Write(b []byte) (n int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0, net.ErrClosed
	}

	c.written = append(c.written, b...)
	return len(b), nil
}

// Written returns a copy of everything written so far.
func (c *Conn) Written() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]byte(nil), c.written...)
}

func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	return nil
}

func (c *Conn) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.closed
}

func (c *Conn) LocalAddr() net.Addr {
	return dummyAddr{}
}

func (c *Conn) RemoteAddr() net.Addr {
	return dummyAddr{}
}

func (c *Conn) SetDeadline(time.Time) error {
	return nil
}

func (c *Conn) SetReadDeadline(time.Time) error {
	return nil
}

func (c *Conn) SetWriteDeadline(time.Time) error {
	return nil
}

type dummyAddr struct{}

func (dummyAddr) Network() string { return "dummy" }
func (dummyAddr) String() string  { return "dummy" }
