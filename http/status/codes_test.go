package status

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringCode(t *testing.T) {
	for _, code := range KnownCodes {
		require.Equal(t, strconv.Itoa(int(code)), StringCode(code))
		require.NotEmpty(t, Text(code))
	}

	require.Empty(t, Text(299))
}

func TestParse(t *testing.T) {
	code, ok := Parse("404")
	require.True(t, ok)
	require.Equal(t, NotFound, code)

	for _, bad := range []string{"", "20", "2000", "2x0", "099", "600"} {
		_, ok = Parse(bad)
		require.False(t, ok, bad)
	}
}

func TestHTTPError(t *testing.T) {
	err := NewError(Forbidden, "nope")
	require.EqualError(t, err, "nope")

	var httpErr HTTPError
	require.True(t, errors.As(err, &httpErr))
	require.Equal(t, Forbidden, httpErr.Code)
}

func TestPredefinedErrors(t *testing.T) {
	for _, err := range []error{ErrNotFound, ErrInternalServerError, ErrServiceUnavailable, ErrBodyTooLarge} {
		var httpErr HTTPError
		require.True(t, errors.As(err, &httpErr))
		require.True(t, strings.HasPrefix(httpErr.Message, StringCode(httpErr.Code)+" "), httpErr.Message)
	}

	require.EqualError(t, ErrServiceUnavailable, "503 Too many connections")
	require.EqualError(t, ErrInternalServerError, "500 Internal Server Error")
}
