package transport

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"testing"
	"time"

	"github.com/indigo-web/lite/config"
	"github.com/stretchr/testify/require"
)

func newPipe(t *testing.T, cfg config.NET) (Client, net.Conn) {
	local, remote := net.Pipe()
	t.Cleanup(func() {
		_ = local.Close()
		_ = remote.Close()
	})

	return NewClient(local, cfg), remote
}

func TestClient(t *testing.T) {
	cfg := config.Default().NET

	t.Run("read and unread", func(t *testing.T) {
		client, remote := newPipe(t, cfg)
		go func() {
			_, _ = remote.Write([]byte("Hello, world!"))
		}()

		data, err := client.Read()
		require.NoError(t, err)
		require.Equal(t, "Hello, world!", string(data))

		client.Unread(data[7:])
		data, err = client.Read()
		require.NoError(t, err)
		require.Equal(t, "world!", string(data))
	})

	t.Run("read timeout", func(t *testing.T) {
		cfg := cfg
		cfg.ReadTimeout = 20 * time.Millisecond
		client, _ := newPipe(t, cfg)

		_, err := client.Read()
		require.True(t, errors.Is(err, os.ErrDeadlineExceeded))
	})

	t.Run("read by deadline", func(t *testing.T) {
		client, _ := newPipe(t, cfg)

		_, err := client.ReadBy(time.Now().Add(10 * time.Millisecond))
		require.True(t, errors.Is(err, os.ErrDeadlineExceeded))
	})

	t.Run("eof", func(t *testing.T) {
		client, remote := newPipe(t, cfg)
		require.NoError(t, remote.Close())

		_, err := client.Read()
		require.ErrorIs(t, err, io.EOF)
	})

	t.Run("idempotent close", func(t *testing.T) {
		client, _ := newPipe(t, cfg)
		require.NoError(t, client.Close())
		require.NoError(t, client.Close())
	})
}

func TestDialer(t *testing.T) {
	cfg := config.Default().NET
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	go func() {
		conn, err := l.Accept()
		if err != nil {
			return
		}

		_, _ = conn.Write([]byte("hi"))
		_ = conn.Close()
	}()

	port := uint16(l.Addr().(*net.TCPAddr).Port)

	t.Run("open", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		client, err := NewDialer(cfg).Open(ctx, "127.0.0.1", port, false)
		require.NoError(t, err)
		defer client.Close()

		data, err := client.Read()
		require.NoError(t, err)
		require.Equal(t, "hi", string(data))
	})

	t.Run("resolution bounded by context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewDialer(cfg).Open(ctx, "gateway.invalid", 80, false)
		require.Error(t, err)
	})
}
