package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/lite/http/status"
	"github.com/stretchr/testify/require"
)

func TestRequestLine(t *testing.T) {
	method, target, proto, ok := RequestLine("GET /status?x=1 HTTP/1.1")
	require.True(t, ok)
	require.Equal(t, "GET", method)
	require.Equal(t, "/status?x=1", target)
	require.Equal(t, "HTTP/1.1", proto)

	for _, bad := range []string{"", "GET", "GET /", "GET / HTTP/1.1 extra"} {
		_, _, _, ok = RequestLine(bad)
		require.False(t, ok, bad)
	}
}

func TestStatusLine(t *testing.T) {
	code, ok := StatusLine("HTTP/1.1 200 OK")
	require.True(t, ok)
	require.Equal(t, status.OK, code)

	code, ok = StatusLine("HTTP/1.0 404")
	require.True(t, ok)
	require.Equal(t, status.NotFound, code)

	for _, bad := range []string{"", "HTTP/1.1", "HTTP/1.1 abc OK", "SSH-2.0 200"} {
		_, ok = StatusLine(bad)
		require.False(t, ok, bad)
	}
}

func TestSplitHeader(t *testing.T) {
	key, value, ok := SplitHeader("Content-Type :  application/json ")
	require.True(t, ok)
	require.Equal(t, "Content-Type", key)
	require.Equal(t, "application/json", value)

	key, value, ok = SplitHeader("Host: 127.0.0.1:8080")
	require.True(t, ok)
	require.Equal(t, "Host", key)
	require.Equal(t, "127.0.0.1:8080", value)

	_, _, ok = SplitHeader("no colon here")
	require.False(t, ok)
}

func TestCutLine(t *testing.T) {
	line, rest, found := CutLine([]byte("GET / HTTP/1.1\r\nHost: x\r\n"))
	require.True(t, found)
	require.Equal(t, "GET / HTTP/1.1", string(line))
	require.Equal(t, "Host: x\r\n", string(rest))

	line, rest, found = CutLine([]byte("bare\nrest"))
	require.True(t, found)
	require.Equal(t, "bare", string(line))
	require.Equal(t, "rest", string(rest))

	_, rest, found = CutLine([]byte("incomplete"))
	require.False(t, found)
	require.Equal(t, "incomplete", string(rest))
}

// decodeChunked feeds the whole data at once. terminated reports, whether the zero-size
// chunk was met in case the data ended before the body did.
func decodeChunked(data []byte) (body []byte, done, terminated bool, err error) {
	decoder := NewChunkedDecoder()

	for len(data) > 0 {
		var chunk []byte
		chunk, data, done, err = decoder.Feed(data)
		if err != nil {
			return nil, false, false, err
		}

		body = append(body, chunk...)
		if done {
			break
		}
	}

	return body, done, decoder.Terminated(), nil
}

func TestChunked(t *testing.T) {
	t.Run("decode", func(t *testing.T) {
		body, done, _, err := decodeChunked([]byte("5\r\nhello\r\n0\r\n\r\n"))
		require.NoError(t, err)
		require.True(t, done)
		require.Equal(t, "hello", string(body))
	})

	t.Run("multiple chunks", func(t *testing.T) {
		body, done, _, err := decodeChunked([]byte("d\r\nHello, world!\r\nd\r\nHello, Pavlo!\r\n0\r\n\r\n"))
		require.NoError(t, err)
		require.True(t, done)
		require.Equal(t, "Hello, world!Hello, Pavlo!", string(body))
	})

	t.Run("trailer fields", func(t *testing.T) {
		body, done, _, err := decodeChunked([]byte("5\r\nhello\r\n0\r\nX-Sum: 1\r\nX-Other: 2\r\n\r\n"))
		require.NoError(t, err)
		require.True(t, done)
		require.Equal(t, "hello", string(body))
	})

	t.Run("bad hex character", func(t *testing.T) {
		_, _, _, err := decodeChunked([]byte("zz\r\nHello, world!\r\n0\r\n\r\n"))
		require.Error(t, err)
	})

	t.Run("truncated payload", func(t *testing.T) {
		body, done, terminated, err := decodeChunked([]byte("d\r\nHello"))
		require.NoError(t, err)
		require.False(t, done)
		require.False(t, terminated)
		require.Equal(t, "Hello", string(body))
	})

	t.Run("truncated size line", func(t *testing.T) {
		_, done, terminated, err := decodeChunked([]byte("5\r\nhello\r\n0"))
		require.NoError(t, err)
		require.False(t, done)
		require.False(t, terminated)
	})

	t.Run("terminated without the final CRLF", func(t *testing.T) {
		for _, data := range []string{
			"0\r\n",
			"5\r\nhello\r\n0\r\n",
			"5\nhello\n0\n",
			"5\r\nhello\r\n000;ext=1\r\n",
			"5\r\nhello\r\n0\r\nX-Sum: 1\r\n",
		} {
			_, done, terminated, err := decodeChunked([]byte(data))
			require.NoError(t, err, data)
			require.False(t, done, data)
			require.True(t, terminated, data)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		for _, size := range []int{0, 1, 7, 64, 513, 4096} {
			payload := []byte(uniuri.NewLen(size + 1))[:size]
			for _, chunkSize := range []int{1, 3, 16, 512} {
				body, done, _, err := decodeChunked(EncodeChunked(payload, chunkSize))
				require.NoError(t, err)
				require.True(t, done)
				require.Equal(t, string(payload), string(body))
			}
		}
	})

	t.Run("writer", func(t *testing.T) {
		var out bytes.Buffer
		w := NewChunkedWriter(&out)
		_, err := w.Write([]byte("Hello, "))
		require.NoError(t, err)
		_, err = w.Write(nil)
		require.NoError(t, err)
		_, err = w.Write([]byte(strings.Repeat("a", 20)))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		require.Equal(t, "7\r\nHello, \r\n14\r\n"+strings.Repeat("a", 20)+"\r\n0\r\n\r\n", out.String())
		body, done, _, err := decodeChunked(out.Bytes())
		require.NoError(t, err)
		require.True(t, done)
		require.Equal(t, "Hello, "+strings.Repeat("a", 20), string(body))
	})
}
