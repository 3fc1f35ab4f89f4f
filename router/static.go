package router

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/indigo-web/lite/config"
	"github.com/indigo-web/lite/http"
	"github.com/indigo-web/lite/http/mime"
	"github.com/indigo-web/lite/http/status"
)

// Static serves files from a directory. Files are streamed in fixed-size pieces, so they
// are never loaded into memory as a whole.
type Static struct {
	root      string
	chunkSize int
}

func NewStatic(cfg config.Static) *Static {
	return &Static{
		root:      cfg.Root,
		chunkSize: max(cfg.ChunkSize, 1),
	}
}

// Resolve maps the request path onto the file system. The root path results in index.html,
// paths without an extension get .html appended.
func (s *Static) Resolve(path string) (string, bool) {
	if path == "/" || len(path) == 0 {
		path = "/index.html"
	}

	if !isSafe(path) {
		return "", false
	}

	if !strings.Contains(path, ".") {
		path += ".html"
	}

	return filepath.Join(s.root, filepath.FromSlash(path)), true
}

// Serve responds with the file matching the request path, or with status.ErrNotFound
// if there's none.
func (s *Static) Serve(request *http.Request) error {
	path, ok := s.Resolve(request.Path)
	if !ok {
		return status.ErrNotFound
	}

	file, err := os.Open(path)
	if err != nil {
		return status.ErrNotFound
	}

	defer file.Close()

	stat, err := file.Stat()
	if err != nil || stat.IsDir() {
		return status.ErrNotFound
	}

	err = request.Respond(http.Head{
		Code:        status.OK,
		ContentType: mime.ByExtension(path),
		Length:      stat.Size(),
		Cache:       true,
	})
	if err != nil {
		return err
	}

	buff := make([]byte, s.chunkSize)

	for {
		n, err := file.Read(buff)
		if n > 0 {
			if werr := request.Write(buff[:n]); werr != nil {
				return werr
			}
		}

		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			return nil
		default:
			return err
		}
	}
}

// isSafe checks for path traversal, i.e. whether any of the path segments is a double dot.
func isSafe(path string) bool {
	for _, segment := range strings.FieldsFunc(path, isSeparator) {
		if segment == ".." {
			return false
		}
	}

	return true
}

func isSeparator(r rune) bool {
	return r == '/' || r == '\\'
}
