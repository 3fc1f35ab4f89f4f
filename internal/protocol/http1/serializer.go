package http1

import (
	"strconv"

	"github.com/indigo-web/lite/http"
	"github.com/indigo-web/lite/http/status"
	"github.com/indigo-web/lite/internal/codec"
	"github.com/indigo-web/lite/transport"
)

const (
	cacheForever = "max-age=31536000"
	noCache      = "no-cache, no-store, must-revalidate"
)

var _ http.ResponseWriter = new(Serializer)

// Serializer writes responses to the client. Nothing is buffered except the response head,
// which is always written in a single write.
type Serializer struct {
	client transport.Client
	buff   []byte
}

func NewSerializer(client transport.Client, buff []byte) *Serializer {
	return &Serializer{
		client: client,
		buff:   buff,
	}
}

func (s *Serializer) WriteHead(head http.Head) error {
	s.buff = append(s.buff[:0], codec.Protocol...)
	s.sp()
	s.appendStatus(head.Code)

	if len(head.ContentType) > 0 {
		s.appendKnownHeader("Content-Type: ", head.ContentType)
	}

	switch {
	case head.Chunked:
		s.appendKnownHeader("Transfer-Encoding: ", "chunked")
	case head.Length >= 0:
		s.appendContentLength(head.Length)
	}

	if head.Cache {
		s.appendKnownHeader("Cache-Control: ", cacheForever)
	} else {
		s.appendKnownHeader("Cache-Control: ", noCache)
		s.appendKnownHeader("Pragma: ", "no-cache")
		s.appendKnownHeader("Expires: ", "0")
	}

	s.appendKnownHeader("Access-Control-Allow-Origin: ", "*")
	s.appendKnownHeader("Access-Control-Allow-Methods: ", "GET, POST, OPTIONS")
	s.appendKnownHeader("Access-Control-Allow-Headers: ", "Content-Type, Authorization")
	s.appendKnownHeader("Connection: ", "close")
	s.crlf()

	return s.flush()
}

// Write writes the data directly to the client.
func (s *Serializer) Write(b []byte) error {
	return s.client.Write(b)
}

func (s *Serializer) flush() (err error) {
	if len(s.buff) > 0 {
		err = s.client.Write(s.buff)
		s.buff = s.buff[:0]
	}

	return err
}

func (s *Serializer) appendStatus(code status.Code) {
	s.buff = strconv.AppendUint(s.buff, uint64(code), 10)

	if text := status.Text(code); len(text) > 0 {
		s.sp()
		s.buff = append(s.buff, text...)
	}

	s.crlf()
}

// appendKnownHeader appends the header line. The key must already contain a colon and a space.
func (s *Serializer) appendKnownHeader(key, value string) {
	s.buff = append(s.buff, key...)
	s.buff = append(s.buff, value...)
	s.crlf()
}

func (s *Serializer) appendContentLength(value int64) {
	s.buff = append(s.buff, "Content-Length: "...)
	s.buff = strconv.AppendInt(s.buff, value, 10)
	s.crlf()
}

func (s *Serializer) sp() {
	s.buff = append(s.buff, ' ')
}

func (s *Serializer) crlf() {
	s.buff = append(s.buff, codec.CRLF...)
}
