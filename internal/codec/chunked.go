package codec

import (
	"bytes"
	"io"
	"strconv"

	"github.com/indigo-web/chunkedbody"
)

var chunkZeroTrailer = []byte("0\r\n\r\n")

// maxTrackedTail bounds the bytes kept after the last payload piece. A zero-size chunk line
// longer than that isn't recognized as one by Terminated.
const maxTrackedTail = 128

// ChunkedDecoder decodes a chunked body fed to it piece by piece. Trailer fields are
// consumed and discarded.
type ChunkedDecoder struct {
	parser *chunkedbody.Parser
	// tail holds the raw bytes consumed since the last payload piece
	tail []byte
}

func NewChunkedDecoder() *ChunkedDecoder {
	return &ChunkedDecoder{
		parser: chunkedbody.NewParser(chunkedbody.DefaultSettings()),
	}
}

// Feed consumes the data and returns a piece of the payload (possibly empty) together with
// the data which wasn't consumed yet. done is set as soon as the body, including the
// trailer, is complete; extra then holds whatever followed it.
func (c *ChunkedDecoder) Feed(data []byte) (chunk, extra []byte, done bool, err error) {
	chunk, extra, err = c.parser.Parse(data, true)
	switch err {
	case nil, io.EOF:
	default:
		return nil, nil, false, err
	}

	if len(chunk) > 0 {
		// the payload always comes last in the consumed data
		c.tail = c.tail[:0]
	} else {
		consumed := data[:len(data)-len(extra)]
		c.tail = append(c.tail, consumed[:min(len(consumed), maxTrackedTail-len(c.tail))]...)
	}

	return chunk, extra, err == io.EOF, nil
}

// Terminated reports whether the zero-size chunk was already consumed. The body is complete
// then, even if the stream ends before the trailer does.
func (c *ChunkedDecoder) Terminated() bool {
	rest, found := bytes.CutPrefix(c.tail, []byte(CRLF))
	if !found {
		rest = bytes.TrimPrefix(rest, []byte("\n"))
	}

	line, _, found := CutLine(rest)
	if !found {
		return false
	}

	size, _, _ := bytes.Cut(line, []byte(";"))
	size = bytes.TrimSpace(size)
	if len(size) == 0 {
		return false
	}

	for _, char := range size {
		if char != '0' {
			return false
		}
	}

	return true
}

// ChunkedWriter encodes everything written into it as chunks. Close writes the terminating
// zero-size chunk. Each Write produces exactly one chunk, unless it's empty.
type ChunkedWriter struct {
	w    io.Writer
	buff []byte
}

func NewChunkedWriter(w io.Writer) *ChunkedWriter {
	return &ChunkedWriter{w: w}
}

func (c *ChunkedWriter) Write(b []byte) (int, error) {
	if len(b) == 0 {
		// an empty chunk would be mistaken for the end of the body
		return 0, nil
	}

	c.buff = AppendChunk(c.buff[:0], b)
	if _, err := c.w.Write(c.buff); err != nil {
		return 0, err
	}

	return len(b), nil
}

func (c *ChunkedWriter) Close() error {
	_, err := c.w.Write(chunkZeroTrailer)
	return err
}

// AppendChunk appends a single chunk carrying the data.
func AppendChunk(dst, data []byte) []byte {
	dst = strconv.AppendUint(dst, uint64(len(data)), 16)
	dst = append(dst, CRLF...)
	dst = append(dst, data...)
	return append(dst, CRLF...)
}

// EncodeChunked encodes the body as a sequence of chunks at most chunkSize bytes long,
// terminated by the zero-size chunk.
func EncodeChunked(body []byte, chunkSize int) []byte {
	var out []byte

	for len(body) > 0 {
		n := min(chunkSize, len(body))
		out = AppendChunk(out, body[:n])
		body = body[n:]
	}

	return append(out, chunkZeroTrailer...)
}
