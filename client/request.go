package client

import (
	"maps"
	"slices"

	"github.com/indigo-web/lite/internal/codec"
)

const userAgent = "lite"

// renderRequest serializes the GET request. The connection is always asked to be closed,
// so the end of the stream is the end of the response.
func renderRequest(buff []byte, u URL, extra map[string]string) []byte {
	buff = append(buff, "GET "...)
	buff = append(buff, u.Path...)
	buff = append(buff, ' ')
	buff = append(buff, codec.Protocol...)
	buff = append(buff, codec.CRLF...)
	buff = appendHeader(buff, "Host", u.HostHeader())
	buff = appendHeader(buff, "User-Agent", userAgent)

	for _, key := range slices.Sorted(maps.Keys(extra)) {
		buff = appendHeader(buff, key, extra[key])
	}

	buff = appendHeader(buff, "Connection", "close")

	return append(buff, codec.CRLF...)
}

func appendHeader(buff []byte, key, value string) []byte {
	buff = append(buff, key...)
	buff = append(buff, ':', ' ')
	buff = append(buff, value...)
	return append(buff, codec.CRLF...)
}
