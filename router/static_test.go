package router

import (
	"bufio"
	"bytes"
	"io"
	stdhttp "net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/lite/config"
	"github.com/indigo-web/lite/http"
	"github.com/indigo-web/lite/http/status"
	"github.com/indigo-web/lite/internal/protocol/http1"
	"github.com/indigo-web/lite/transport/dummy"
	"github.com/stretchr/testify/require"
)

func TestSafePath(t *testing.T) {
	for _, tc := range []string{
		"/",
		"/./",
		"/./.",
		"././.",
		"/a..b.html",
		"/.hidden",
	} {
		require.True(t, isSafe(tc), tc)
	}

	for _, tc := range []string{
		"/..",
		"../",
		"/../",
		"/css/../../etc/passwd",
		"/..\\secret",
	} {
		require.False(t, isSafe(tc), tc)
	}
}

func newStatic(t *testing.T, files map[string]string) *Static {
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	cfg := config.Default().Static
	cfg.Root = root
	cfg.ChunkSize = 16

	return NewStatic(cfg)
}

func serve(t *testing.T, s *Static, path string) (*dummy.Client, error) {
	client := dummy.NewClient()
	request := http.NewRequest(uniuri.New(), client, http1.NewSerializer(client, nil))
	request.Path = path

	return client, s.Serve(request)
}

func TestStatic(t *testing.T) {
	index := "<html>" + strings.Repeat(uniuri.New(), 10) + "</html>"
	s := newStatic(t, map[string]string{
		"index.html":    index,
		"about.html":    "about",
		"css/style.css": "body{}",
		"favicon.ico":   "\x00\x01\x02",
	})

	t.Run("index", func(t *testing.T) {
		client, err := serve(t, s, "/")
		require.NoError(t, err)

		resp, err := stdhttp.ReadResponse(bufio.NewReader(bytes.NewReader(client.Data)), nil)
		require.NoError(t, err)
		require.Equal(t, 200, resp.StatusCode)
		require.Equal(t, "text/html", resp.Header.Get("Content-Type"))
		require.Equal(t, "max-age=31536000", resp.Header.Get("Cache-Control"))
		require.Equal(t, int64(len(index)), resp.ContentLength)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.Equal(t, index, string(body))
	})

	t.Run("default extension", func(t *testing.T) {
		client, err := serve(t, s, "/about")
		require.NoError(t, err)
		require.True(t, bytes.HasSuffix(client.Data, []byte("\r\n\r\nabout")))
	})

	t.Run("nested and binary", func(t *testing.T) {
		client, err := serve(t, s, "/css/style.css")
		require.NoError(t, err)
		require.Contains(t, string(client.Data), "Content-Type: text/css\r\n")

		client, err = serve(t, s, "/favicon.ico")
		require.NoError(t, err)
		require.Contains(t, string(client.Data), "Content-Type: image/x-icon\r\n")
		require.True(t, bytes.HasSuffix(client.Data, []byte("\x00\x01\x02")))
	})

	t.Run("not found", func(t *testing.T) {
		for _, path := range []string{"/missing.html", "/missing", "/css", "/../secret.html"} {
			client, err := serve(t, s, path)
			require.ErrorIs(t, err, status.ErrNotFound, path)
			require.Empty(t, client.Data, path)
		}
	})

	t.Run("resolve", func(t *testing.T) {
		path, ok := s.Resolve("/")
		require.True(t, ok)
		require.Equal(t, filepath.Join(s.root, "index.html"), path)

		path, ok = s.Resolve("/dashboard")
		require.True(t, ok)
		require.Equal(t, filepath.Join(s.root, "dashboard.html"), path)

		_, ok = s.Resolve("/../etc/passwd")
		require.False(t, ok)
	})
}
