package http1

import (
	"bufio"
	"bytes"
	"io"
	stdhttp "net/http"
	"testing"

	"github.com/indigo-web/lite/http"
	"github.com/indigo-web/lite/http/mime"
	"github.com/indigo-web/lite/http/status"
	"github.com/indigo-web/lite/transport/dummy"
	"github.com/stretchr/testify/require"
)

func readResponse(t *testing.T, data []byte) (*stdhttp.Response, string) {
	resp, err := stdhttp.ReadResponse(bufio.NewReader(bytes.NewReader(data)), nil)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(body)
}

func requireCORS(t *testing.T, resp *stdhttp.Response) {
	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	require.Equal(t, "GET, POST, OPTIONS", resp.Header.Get("Access-Control-Allow-Methods"))
	require.Equal(t, "Content-Type, Authorization", resp.Header.Get("Access-Control-Allow-Headers"))
}

func TestSerializer(t *testing.T) {
	t.Run("dynamic", func(t *testing.T) {
		client := dummy.NewClient()
		s := NewSerializer(client, make([]byte, 0, 128))
		require.NoError(t, s.WriteHead(http.Head{
			Code:        status.OK,
			ContentType: mime.JSON,
			Length:      11,
		}))
		require.NoError(t, s.Write([]byte(`{"ok":true}`)))

		resp, body := readResponse(t, client.Data)
		require.Equal(t, 200, resp.StatusCode)
		require.Equal(t, "200 OK", resp.Status)
		require.Equal(t, mime.JSON, resp.Header.Get("Content-Type"))
		require.Equal(t, int64(11), resp.ContentLength)
		require.Equal(t, noCache, resp.Header.Get("Cache-Control"))
		require.Equal(t, "no-cache", resp.Header.Get("Pragma"))
		require.Equal(t, "0", resp.Header.Get("Expires"))
		require.True(t, resp.Close)
		requireCORS(t, resp)
		require.Equal(t, `{"ok":true}`, body)
	})

	t.Run("static", func(t *testing.T) {
		client := dummy.NewClient()
		s := NewSerializer(client, nil)
		require.NoError(t, s.WriteHead(http.Head{
			Code:        status.OK,
			ContentType: mime.HTML,
			Length:      0,
			Cache:       true,
		}))

		resp, _ := readResponse(t, client.Data)
		require.Equal(t, cacheForever, resp.Header.Get("Cache-Control"))
		require.Empty(t, resp.Header.Get("Pragma"))
		requireCORS(t, resp)
	})

	t.Run("no content", func(t *testing.T) {
		client := dummy.NewClient()
		s := NewSerializer(client, nil)
		require.NoError(t, s.WriteHead(http.Head{Code: status.NoContent, Length: -1}))
		require.Equal(t, "HTTP/1.1 204 No Content\r\n", string(client.Data[:len("HTTP/1.1 204 No Content\r\n")]))

		resp, body := readResponse(t, client.Data)
		require.Equal(t, 204, resp.StatusCode)
		require.Empty(t, resp.Header.Get("Content-Type"))
		require.Empty(t, body)
		requireCORS(t, resp)
	})

	t.Run("chunked", func(t *testing.T) {
		client := dummy.NewClient()
		request := http.NewRequest("id", client, NewSerializer(client, nil))
		w, err := request.Chunked(status.OK, mime.Plain)
		require.NoError(t, err)
		_, err = w.Write([]byte("Hello, "))
		require.NoError(t, err)
		_, err = w.Write([]byte("world!"))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		resp, body := readResponse(t, client.Data)
		require.Equal(t, []string{"chunked"}, resp.TransferEncoding)
		require.Equal(t, "Hello, world!", body)
	})

	t.Run("non-standard code", func(t *testing.T) {
		client := dummy.NewClient()
		s := NewSerializer(client, nil)
		require.NoError(t, s.WriteHead(http.Head{Code: 299, Length: 0}))
		require.True(t, bytes.HasPrefix(client.Data, []byte("HTTP/1.1 299\r\n")))
	})

	t.Run("closed client", func(t *testing.T) {
		client := dummy.NewClient()
		require.NoError(t, client.Close())
		s := NewSerializer(client, nil)
		require.Error(t, s.WriteHead(http.Head{Code: status.OK}))
	})
}
