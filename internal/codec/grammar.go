package codec

import (
	"bytes"
	"strings"

	"github.com/indigo-web/lite/http/status"
)

const (
	CRLF     = "\r\n"
	HeadEnd  = "\r\n\r\n"
	Protocol = "HTTP/1.1"
)

// RequestLine splits a request line into exactly three whitespace-separated tokens. Any other
// number of tokens results in ok=false.
func RequestLine(line string) (method, target, proto string, ok bool) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return "", "", "", false
	}

	return fields[0], fields[1], fields[2], true
}

// StatusLine extracts the status code out of a status line. The reason phrase isn't
// required.
func StatusLine(line string) (code status.Code, ok bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 || !strings.HasPrefix(fields[0], "HTTP/") {
		return 0, false
	}

	return status.Parse(fields[1])
}

// SplitHeader splits a header field line at the first colon, trimming both the key and the
// value.
func SplitHeader(line string) (key, value string, ok bool) {
	key, value, ok = strings.Cut(line, ":")
	if !ok {
		return "", "", false
	}

	return strings.TrimSpace(key), strings.TrimSpace(value), true
}

// CutLine cuts the data at the first LF. The line is returned without the line terminator,
// either bare LF or CRLF.
func CutLine(data []byte) (line, rest []byte, found bool) {
	lf := bytes.IndexByte(data, '\n')
	if lf == -1 {
		return nil, data, false
	}

	line, rest = data[:lf], data[lf+1:]
	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}

	return line, rest, true
}
