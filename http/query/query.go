package query

import (
	"net/url"
	"strings"
)

// Args holds query arguments. Keys are unique: a repeated key keeps the last value.
type Args = map[string]string

// Split cuts the request target at the first question mark into the path and the raw
// query string.
func Split(target string) (path, rawQuery string) {
	path, rawQuery, _ = strings.Cut(target, "?")
	return path, rawQuery
}

// Parse decomposes a raw query string. Pairs are separated by ampersands, the key and
// the value by the first equality sign. A pair without it results in an empty value.
// Percent-encoded sequences are decoded when valid and kept verbatim otherwise.
func Parse(raw string) Args {
	args := make(Args)
	if len(raw) == 0 {
		return args
	}

	for _, pair := range strings.Split(raw, "&") {
		key, value, _ := strings.Cut(pair, "=")
		args[unescape(key)] = unescape(value)
	}

	return args
}

func unescape(str string) string {
	if strings.IndexByte(str, '%') == -1 && strings.IndexByte(str, '+') == -1 {
		return str
	}

	decoded, err := url.QueryUnescape(str)
	if err != nil {
		return str
	}

	return decoded
}
