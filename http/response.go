package http

import (
	"errors"

	"github.com/indigo-web/lite/http/mime"
	"github.com/indigo-web/lite/http/status"
)

var ErrHeadSent = errors.New("response head is already sent")

// Head describes a response head.
type Head struct {
	Code        status.Code
	ContentType mime.MIME
	// Length is the Content-Length value. Negative values omit the header.
	Length int64
	// Cache marks the response as long-living static content. Otherwise, caching is
	// explicitly prohibited.
	Cache bool
	// Chunked announces the chunked transfer encoding.
	Chunked bool
}

// ResponseWriter is the outgoing side of a connection.
type ResponseWriter interface {
	WriteHead(Head) error
	Write([]byte) error
}
