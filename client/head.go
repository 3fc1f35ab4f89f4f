package client

import (
	"errors"
	"io"
	"strings"
	"time"

	"github.com/indigo-web/lite/http/headers"
	"github.com/indigo-web/lite/http/status"
	"github.com/indigo-web/lite/internal/buffer"
	"github.com/indigo-web/lite/internal/codec"
	"github.com/indigo-web/lite/transport"
	"github.com/indigo-web/utils/uf"
)

// readHead reads the response head, including the delimiter. Whatever was read past the
// delimiter is pushed back into the client. A head cut short by the end of the stream
// is returned as-is.
func readHead(client transport.Client, deadline time.Time, maxSize int) ([]byte, error) {
	head := buffer.New(min(maxSize, 512), maxSize)

	for {
		data, err := client.ReadBy(deadline)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return nil, err
			}

			if head.SegmentLength() == 0 {
				return nil, errNothingReceived
			}

			return head.Finish(), nil
		}

		end := delimiterEnd(head.Tail(len(codec.HeadEnd)-1), data)
		if end == -1 {
			if !head.Append(data) {
				return nil, ErrHeaderTooLarge
			}

			continue
		}

		if !head.Append(data[:end]) {
			return nil, ErrHeaderTooLarge
		}

		if rest := data[end:]; len(rest) > 0 {
			client.Unread(rest)
		}

		return head.Finish(), nil
	}
}

// delimiterEnd returns the offset in data right past the head delimiter, or -1 if there's
// none. The delimiter may begin in the tail of the previously read data.
func delimiterEnd(tail, data []byte) int {
	for i := range tail {
		prefix := uf.B2S(tail[i:])
		rest := len(codec.HeadEnd) - len(prefix)
		if rest <= len(data) &&
			strings.HasPrefix(codec.HeadEnd, prefix) &&
			uf.B2S(data[:rest]) == codec.HeadEnd[len(prefix):] {
			return rest
		}
	}

	if idx := strings.Index(uf.B2S(data), codec.HeadEnd); idx != -1 {
		return idx + len(codec.HeadEnd)
	}

	return -1
}

// parseHead parses the status line and the header fields. Malformed status line results
// in the 500 code, malformed header lines are skipped.
func parseHead(head []byte) (status.Code, *headers.Headers) {
	text := strings.TrimRight(uf.B2S(head), codec.CRLF)
	statusLine, fields, _ := strings.Cut(text, codec.CRLF)

	code, ok := codec.StatusLine(statusLine)
	if !ok {
		code = status.InternalServerError
	}

	hdrs := headers.New()
	for len(fields) > 0 {
		var line string
		line, fields, _ = strings.Cut(fields, codec.CRLF)
		if key, value, ok := codec.SplitHeader(line); ok {
			hdrs.Add(key, value)
		}
	}

	return code, hdrs
}
