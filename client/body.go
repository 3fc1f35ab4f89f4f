package client

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/indigo-web/lite/http/headers"
	"github.com/indigo-web/lite/internal/codec"
	"github.com/indigo-web/lite/transport"
)

type bodyStrategy uint8

const (
	chunked bodyStrategy = iota + 1
	contentLength
	bounded
	dynamic
)

func (b bodyStrategy) String() string {
	switch b {
	case chunked:
		return "chunked"
	case contentLength:
		return "content-length"
	case bounded:
		return "bounded"
	case dynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

// chooseStrategy picks the way the body is going to be read, in the order of priority:
// chunked, content-length, bounded fallback and, if nothing else fits, dynamic.
func chooseStrategy(hdrs *headers.Headers, fallback int) bodyStrategy {
	switch {
	case hdrs.Contains(headers.TransferEncoding, "chunked"):
		return chunked
	case hdrs.Has(headers.ContentLength):
		return contentLength
	case fallback > 0:
		return bounded
	default:
		return dynamic
	}
}

type bodyReader struct {
	client   transport.Client
	deadline time.Time
}

func (b bodyReader) read(strategy bodyStrategy, hdrs *headers.Headers, fallback int) ([]byte, error) {
	switch strategy {
	case chunked:
		return b.chunked()
	case contentLength:
		length, err := strconv.Atoi(hdrs.Value(headers.ContentLength))
		if err != nil || length < 0 {
			return nil, ErrBadContentLength
		}

		return b.exactly(length)
	case bounded:
		return b.bounded(fallback)
	default:
		return b.bounded(-1)
	}
}

// chunked decodes the chunked body until the terminating zero-size chunk and the trailer.
// The stream ending before the zero-size chunk is a malformed body, ending within the
// trailer is not.
func (b bodyReader) chunked() ([]byte, error) {
	var (
		decoder = codec.NewChunkedDecoder()
		body    []byte
	)

	for {
		data, err := b.client.ReadBy(b.deadline)
		if err != nil {
			if errors.Is(err, io.EOF) {
				if decoder.Terminated() {
					return body, nil
				}

				return nil, fmt.Errorf("%w: unexpected end of stream", ErrBadChunk)
			}

			return nil, err
		}

		for len(data) > 0 {
			chunk, extra, done, err := decoder.Feed(data)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrBadChunk, err)
			}

			body = append(body, chunk...)
			if done {
				return body, nil
			}

			data = extra
		}
	}
}

// exactly reads the body of the known length. The stream ending earlier results in a
// truncated body, which isn't an error.
func (b bodyReader) exactly(length int) ([]byte, error) {
	body := make([]byte, 0, length)

	for len(body) < length {
		data, err := b.client.ReadBy(b.deadline)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			return nil, err
		}

		body = append(body, data[:min(len(data), length-len(body))]...)
	}

	return body, nil
}

// bounded accumulates the body until the end of the stream. Negative limit means
// no limit at all.
func (b bodyReader) bounded(limit int) ([]byte, error) {
	var body []byte
	if limit > 0 {
		body = make([]byte, 0, limit)
	}

	for {
		data, err := b.client.ReadBy(b.deadline)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return body, nil
			}

			return nil, err
		}

		if limit >= 0 && len(body)+len(data) > limit {
			return nil, ErrBodyTooLarge
		}

		body = append(body, data...)
	}
}
