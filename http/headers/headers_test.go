package headers

import (
	"strings"
	"testing"

	"github.com/dchest/uniuri"
	"github.com/stretchr/testify/require"
)

func TestHeaders(t *testing.T) {
	getHeaders := func() *Headers {
		return New().
			Add("Foo", "bar").
			Add("Hello", "World").
			Add("Lorem", "ipsum").
			Add("hello", "Pavlo")
	}

	t.Run("keys are normalized", func(t *testing.T) {
		for key := range getHeaders().Iter() {
			require.Equal(t, strings.ToLower(key), key)
		}
	})

	t.Run("case insensitive lookup", func(t *testing.T) {
		h := New().Add("Content-Length", "13")
		for _, key := range []string{"Content-Length", "content-length", "CONTENT-LENGTH"} {
			value, found := h.Get(key)
			require.True(t, found, key)
			require.Equal(t, "13", value)
		}
	})

	t.Run("first value wins", func(t *testing.T) {
		require.Equal(t, "World", getHeaders().Value("HELLO"))
		require.Empty(t, getHeaders().Value("random"))
	})

	t.Run("value or", func(t *testing.T) {
		require.Equal(t, "bar", getHeaders().ValueOr("foo", "nope"))
		require.Equal(t, "nope", getHeaders().ValueOr("random", "nope"))
	})

	t.Run("delete", func(t *testing.T) {
		h := getHeaders().Delete("HELLO")
		require.Equal(t, 2, h.Len())
		require.False(t, h.Has("hello"))
		require.Equal(t, "bar", h.Value("Foo"))
	})

	t.Run("contains token", func(t *testing.T) {
		h := New().Add("Transfer-Encoding", "gzip, Chunked")
		require.True(t, h.Contains("transfer-encoding", "chunked"))
		require.False(t, h.Contains("transfer-encoding", "deflate"))
	})

	t.Run("iter", func(t *testing.T) {
		key, value := uniuri.New(), uniuri.NewLen(32)
		h := New().Add(key, value)

		for k, v := range h.Iter() {
			require.Equal(t, strings.ToLower(key), k)
			require.Equal(t, value, v)
		}
	})
}
