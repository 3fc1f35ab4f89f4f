package http

import (
	"io"
	"net"

	"github.com/indigo-web/lite/http/headers"
	"github.com/indigo-web/lite/http/method"
	"github.com/indigo-web/lite/http/mime"
	"github.com/indigo-web/lite/http/query"
	"github.com/indigo-web/lite/http/status"
	"github.com/indigo-web/lite/internal/codec"
	"github.com/indigo-web/lite/transport"
)

// Request represents a single HTTP request. Every connection carries exactly one request,
// so requests are never reused.
type Request struct {
	// ID uniquely identifies the connection the request came from.
	ID string
	// Method is an enum representing the request method.
	Method method.Method
	// Path is the request target without the query.
	Path string
	// Args are the query arguments. Keys are unique, the last occurrence wins.
	Args query.Args
	// Headers holds the request header fields. Keys are stored lower-cased.
	Headers *headers.Headers
	// JSON is the decoded POST body. It is nil if there was no body or it wasn't a valid JSON.
	JSON any
	// Remote holds the remote address.
	Remote net.Addr
	client transport.Client
	writer ResponseWriter
	code   status.Code
	sent   bool
}

func NewRequest(id string, client transport.Client, writer ResponseWriter) *Request {
	return &Request{
		ID:      id,
		Method:  method.Unknown,
		Args:    make(query.Args),
		Headers: headers.New(),
		Remote:  client.Remote(),
		client:  client,
		writer:  writer,
		code:    status.OK,
	}
}

// Read returns the next piece of data from the connection. Bytes of the body already
// consumed by the engine are never returned again.
func (r *Request) Read() ([]byte, error) {
	return r.client.Read()
}

// Respond writes the response head. It may be called at most once, as there's exactly one
// response per connection.
func (r *Request) Respond(head Head) error {
	if r.sent {
		return ErrHeadSent
	}

	r.sent = true
	r.code = head.Code

	return r.writer.WriteHead(head)
}

// WriteHead writes a non-cacheable response head. Negative length omits the Content-Length.
func (r *Request) WriteHead(code status.Code, contentType mime.MIME, length int64) error {
	return r.Respond(Head{
		Code:        code,
		ContentType: contentType,
		Length:      length,
	})
}

// Write writes raw bytes to the connection.
func (r *Request) Write(b []byte) error {
	return r.writer.Write(b)
}

// Chunked writes a response head announcing the chunked transfer encoding and returns
// the writer encoding the body. The body is complete only after the writer is closed.
func (r *Request) Chunked(code status.Code, contentType mime.MIME) (io.WriteCloser, error) {
	err := r.Respond(Head{
		Code:        code,
		ContentType: contentType,
		Length:      -1,
		Chunked:     true,
	})
	if err != nil {
		return nil, err
	}

	return codec.NewChunkedWriter(writerFunc(r.writer.Write)), nil
}

// Close closes the connection. It's safe to call it multiple times.
func (r *Request) Close() error {
	return r.client.Close()
}

// Code returns the code of the response head, or 200 if none was written yet.
func (r *Request) Code() status.Code {
	return r.code
}

// Sent tells whether the response head was already written.
func (r *Request) Sent() bool {
	return r.sent
}

type writerFunc func([]byte) error

func (w writerFunc) Write(b []byte) (int, error) {
	if err := w(b); err != nil {
		return 0, err
	}

	return len(b), nil
}
