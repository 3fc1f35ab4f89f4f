package headers

import (
	"iter"
	"strings"

	"github.com/indigo-web/utils/strcomp"
)

// Names of the headers the engine itself looks at or emits.
const (
	ContentType      = "content-type"
	ContentLength    = "content-length"
	TransferEncoding = "transfer-encoding"
	Connection       = "connection"
	Host             = "host"
)

type Pair struct {
	Key, Value string
}

// Headers is an associative structure for storing header fields. Keys are normalized to
// lower case on insertion and matched case-insensitively on lookup. It acts as a map but
// uses linear search instead, which proves to be more efficient on relatively low amount of
// entries, which always is the case on the wire we deal with.
type Headers struct {
	pairs []Pair
}

func New() *Headers {
	return new(Headers)
}

// NewPrealloc returns an instance of Headers with pre-allocated underlying storage.
func NewPrealloc(n int) *Headers {
	return &Headers{
		pairs: make([]Pair, 0, n),
	}
}

// FromMap returns a new instance with already inserted values from given map.
// Note: as maps are unordered, resulting underlying structure will also contain unordered
// pairs.
func FromMap(m map[string]string) *Headers {
	h := NewPrealloc(len(m))

	for key, value := range m {
		h.Add(key, value)
	}

	return h
}

// Add adds a new pair of key and value. The key is stored lower-cased.
func (h *Headers) Add(key, value string) *Headers {
	h.pairs = append(h.pairs, Pair{
		Key:   strings.ToLower(key),
		Value: value,
	})
	return h
}

// Delete removes all the entries of the key.
func (h *Headers) Delete(key string) *Headers {
	n := 0
	for _, pair := range h.pairs {
		if !strcomp.EqualFold(pair.Key, key) {
			h.pairs[n] = pair
			n++
		}
	}

	h.pairs = h.pairs[:n]
	return h
}

// Value returns the first value, corresponding to the key. Otherwise, empty string is returned
func (h *Headers) Value(key string) string {
	return h.ValueOr(key, "")
}

// ValueOr returns either the first value corresponding to the key or custom value, defined
// via the second parameter.
func (h *Headers) ValueOr(key, or string) string {
	value, found := h.Get(key)
	if !found {
		return or
	}

	return value
}

// Get returns a value and a bool, indicating whether the value was found.
func (h *Headers) Get(key string) (value string, found bool) {
	for _, pair := range h.pairs {
		if strcomp.EqualFold(key, pair.Key) {
			return pair.Value, true
		}
	}

	return "", false
}

// Contains reports whether any value of the key contains the token, ignoring case.
func (h *Headers) Contains(key, token string) bool {
	token = strings.ToLower(token)

	for _, pair := range h.pairs {
		if strcomp.EqualFold(pair.Key, key) && strings.Contains(strings.ToLower(pair.Value), token) {
			return true
		}
	}

	return false
}

// Has indicates, whether there's an entry of the key.
func (h *Headers) Has(key string) bool {
	_, found := h.Get(key)
	return found
}

// Iter returns an iterator over the pairs.
func (h *Headers) Iter() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, pair := range h.pairs {
			if !yield(pair.Key, pair.Value) {
				break
			}
		}
	}
}

// Len returns a number of stored pairs.
func (h *Headers) Len() int {
	return len(h.pairs)
}
