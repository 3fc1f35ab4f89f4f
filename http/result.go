package http

import (
	"errors"

	"github.com/indigo-web/lite/http/mime"
	"github.com/indigo-web/utils/uf"
	json "github.com/json-iterator/go"
)

// Handler processes a request. A returned status.HTTPError is rendered with its code,
// any other error results in 500 Internal Server Error.
type Handler func(*Request) (Result, error)

// ErrEmptyResult is returned by Render for the zero Result, which no handler is supposed
// to return along with a nil error.
var ErrEmptyResult = errors.New("handler returned an empty result")

type ResultKind uint8

const (
	// KindWritten means the handler already wrote the response on its own.
	KindWritten ResultKind = iota + 1
	KindJSON
	KindText
)

// Result is what a handler produced.
type Result struct {
	Kind  ResultKind
	Value any
	Text  string
}

// JSON results in the value serialized as application/json.
func JSON(value any) Result {
	return Result{
		Kind:  KindJSON,
		Value: value,
	}
}

// Text results in the string sent as text/plain.
func Text(text string) Result {
	return Result{
		Kind: KindText,
		Text: text,
	}
}

// Written tells that the response is already written by the handler.
func Written() Result {
	return Result{Kind: KindWritten}
}

// Render returns the content type and the body of the result. Written results have
// neither.
func (r Result) Render() (mime.MIME, []byte, error) {
	switch r.Kind {
	case KindJSON:
		body, err := json.ConfigDefault.Marshal(r.Value)
		return mime.JSON, body, err
	case KindText:
		return mime.Plain, uf.S2B(r.Text), nil
	case KindWritten:
		return "", nil, nil
	default:
		return "", nil, ErrEmptyResult
	}
}
